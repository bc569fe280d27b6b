package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"somnoseg/internal/errors"
)

// TestResult is the outcome of one group-comparison test.
type TestResult struct {
	TestName  string  `json:"test_name"`
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	DF1       int     `json:"df1"`
	DF2       int     `json:"df2,omitempty"`
	Groups    int     `json:"groups"`
}

// Significant reports whether the test rejects at the given alpha
func (r TestResult) Significant(alpha float64) bool {
	return r.PValue < alpha
}

// WelchTTest compares two group means without assuming equal variances.
// The p-value is two-tailed, from Student's t with Welch-Satterthwaite
// degrees of freedom.
func WelchTTest(a, b []float64) (TestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return TestResult{}, errors.InvalidInput("Welch's t-test needs at least 2 observations per group")
	}

	meanA, varA := meanVariance(a)
	meanB, varB := meanVariance(b)
	na, nb := float64(len(a)), float64(len(b))

	se := math.Sqrt(varA/na + varB/nb)
	if se == 0 {
		return TestResult{}, errors.InvalidInput("both groups have zero variance")
	}
	tStat := (meanA - meanB) / se

	// Welch-Satterthwaite approximation.
	num := math.Pow(varA/na+varB/nb, 2)
	den := math.Pow(varA/na, 2)/(na-1) + math.Pow(varB/nb, 2)/(nb-1)
	df := num / den

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - tDist.CDF(math.Abs(tStat)))

	return TestResult{
		TestName:  "welch_ttest",
		Statistic: tStat,
		PValue:    p,
		DF1:       int(df),
		Groups:    2,
	}, nil
}

// OneWayANOVA tests whether the means of two or more groups differ. The
// p-value comes from the F distribution with (k-1, N-k) degrees of freedom.
func OneWayANOVA(groups ...[]float64) (TestResult, error) {
	if len(groups) < 2 {
		return TestResult{}, errors.InvalidInput("ANOVA needs at least 2 groups")
	}

	total := 0
	grandSum := 0.0
	for _, g := range groups {
		if len(g) < 2 {
			return TestResult{}, errors.InvalidInput("ANOVA needs at least 2 observations per group")
		}
		total += len(g)
		for _, v := range g {
			grandSum += v
		}
	}
	grandMean := grandSum / float64(total)

	ssBetween, ssWithin := 0.0, 0.0
	for _, g := range groups {
		mean, _ := meanVariance(g)
		ssBetween += float64(len(g)) * (mean - grandMean) * (mean - grandMean)
		for _, v := range g {
			ssWithin += (v - mean) * (v - mean)
		}
	}

	df1 := len(groups) - 1
	df2 := total - len(groups)
	if ssWithin == 0 {
		return TestResult{}, errors.InvalidInput("zero within-group variance")
	}
	fStat := (ssBetween / float64(df1)) / (ssWithin / float64(df2))

	fDist := distuv.F{D1: float64(df1), D2: float64(df2)}
	p := 1 - fDist.CDF(fStat)

	return TestResult{
		TestName:  "one_way_anova",
		Statistic: fStat,
		PValue:    p,
		DF1:       df1,
		DF2:       df2,
		Groups:    len(groups),
	}, nil
}

// KruskalWallis is the rank-based counterpart to one-way ANOVA for skewed
// bout-duration distributions. The H statistic is tie-corrected and the
// p-value approximated by chi-square with k-1 degrees of freedom.
func KruskalWallis(groups ...[]float64) (TestResult, error) {
	if len(groups) < 2 {
		return TestResult{}, errors.InvalidInput("Kruskal-Wallis needs at least 2 groups")
	}

	type obs struct {
		value float64
		group int
	}
	var all []obs
	for gi, g := range groups {
		if len(g) == 0 {
			return TestResult{}, errors.InvalidInput("Kruskal-Wallis groups must be non-empty")
		}
		for _, v := range g {
			all = append(all, obs{value: v, group: gi})
		}
	}
	n := len(all)
	sort.Slice(all, func(i, j int) bool { return all[i].value < all[j].value })

	// Midranks for ties, with the tie-correction term accumulated as we go.
	ranks := make([]float64, n)
	tieCorrection := 0.0
	for i := 0; i < n; {
		j := i
		for j < n && all[j].value == all[i].value {
			j++
		}
		mid := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[k] = mid
		}
		t := float64(j - i)
		tieCorrection += t*t*t - t
		i = j
	}

	rankSums := make([]float64, len(groups))
	for i, o := range all {
		rankSums[o.group] += ranks[i]
	}

	nf := float64(n)
	h := 0.0
	for gi, g := range groups {
		h += rankSums[gi] * rankSums[gi] / float64(len(g))
	}
	h = 12/(nf*(nf+1))*h - 3*(nf+1)

	if c := 1 - tieCorrection/(nf*nf*nf-nf); c > 0 {
		h /= c
	}

	df := len(groups) - 1
	chi := distuv.ChiSquared{K: float64(df)}
	p := 1 - chi.CDF(h)

	return TestResult{
		TestName:  "kruskal_wallis",
		Statistic: h,
		PValue:    p,
		DF1:       df,
		Groups:    len(groups),
	}, nil
}

// meanVariance returns the sample mean and unbiased sample variance.
func meanVariance(data []float64) (mean, variance float64) {
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	if len(data) < 2 {
		return mean, 0
	}
	for _, v := range data {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(data) - 1)
	return mean, variance
}
