// Package pattern implements the error-pattern analyzer: linear regression
// of error against range, lag-1 autocorrelation, the Wald-Wolfowitz run
// test, and the max/RMSE spike ratio, feeding a single first-match-wins
// pattern classification.
//
// Grounded on the same ordered-rule, first-match-wins cascade idiom this
// codebase's scoring tier classifier uses, with the empirically calibrated
// constants kept as named package constants rather than inlined magic
// numbers, so they read as tunable in one place.
package pattern

import (
	"math"

	"github.com/jlighthall/tlcompare/pkg/tlcompare"
)

// Empirically calibrated constants.
const (
	slopeSignificance = 1e-6
	rSquaredBand      = 0.5
	autocorrBand      = 0.5
	runZCritical      = 1.96
	spikeRatioBand    = 3.0
	nullPointRMSE     = 1e-5
	pValueAlpha       = 0.05

	minPoints = 5
)

// Point is one (range, error) sample of the error-pattern dataset,
// collected for data-column elements where both values are <= Ignore.
type Point struct {
	Range float64
	Error float64 // signed: v1 - v2
}

// Analyze runs the error-pattern analyzer once over a finalized dataset.
// Fewer than minPoints samples yields a nil result; callers should treat
// nil as "pattern not classified".
func Analyze(points []Point) *tlcompare.PatternResult {
	n := len(points)
	if n < minPoints {
		return nil
	}

	slope, intercept, rSquared, pValue := linearRegression(points)
	autocorr, isCorrelated := lag1Autocorrelation(points)
	runs, expectedRuns, zScore, isRandom := runTest(points)
	rmse := rootMeanSquareError(points)
	spikeRatio := maxAbsError(points) / rmse

	pr := &tlcompare.PatternResult{
		Slope:           slope,
		Intercept:       intercept,
		RSquared:        rSquared,
		SlopePValue:     pValue,
		Autocorrelation: autocorr,
		IsCorrelated:    isCorrelated,
		Runs:            runs,
		ExpectedRuns:    expectedRuns,
		RunZScore:       zScore,
		IsRandom:        isRandom,
		SpikeRatio:      spikeRatio,
		RMSE:            rmse,
		N:               n,
	}
	pr.Pattern = classify(pr, mean(points))
	return pr
}

// classify applies the first-matching-rule-wins cascade. meanErr is mean(e),
// needed by the SYSTEMATIC_BIAS rule but not otherwise carried on
// PatternResult.
func classify(pr *tlcompare.PatternResult, meanErr float64) tlcompare.Pattern {
	slopeSignificant := math.Abs(pr.Slope) > slopeSignificance && pr.SlopePValue < pValueAlpha

	switch {
	case slopeSignificant && pr.RSquared > rSquaredBand && pr.Slope > 0:
		return tlcompare.PatternSystematicGrowth
	case pr.RSquared > rSquaredBand && !slopeSignificant && math.Abs(meanErr) > 0.1*pr.RMSE:
		return tlcompare.PatternSystematicBias
	case pr.IsRandom && !pr.IsCorrelated:
		return tlcompare.PatternRandomNoise
	case pr.SpikeRatio > spikeRatioBand && pr.IsRandom:
		return tlcompare.PatternTransientSpikes
	case pr.RMSE < nullPointRMSE:
		return tlcompare.PatternNullPointNoise
	default:
		return tlcompare.PatternRandomNoise
	}
}

// linearRegression computes the standard least-squares slope/intercept/r²
// of error on range, plus an approximate two-tailed p-value for the slope
// via p ~= erfc(|t|/sqrt(2)).
func linearRegression(points []Point) (slope, intercept, rSquared, pValue float64) {
	n := float64(len(points))
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.Range
		sumY += p.Error
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, sxy, syy float64
	for _, p := range points {
		dx := p.Range - meanX
		dy := p.Error - meanY
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}

	if sxx == 0 {
		return 0, meanY, 0, 1
	}

	slope = sxy / sxx
	intercept = meanY - slope*meanX

	if syy == 0 {
		return slope, intercept, 1, 0
	}
	rSquared = (sxy * sxy) / (sxx * syy)

	// Residual mean-square error and the slope's standard error.
	var ssRes float64
	for _, p := range points {
		pred := intercept + slope*p.Range
		res := p.Error - pred
		ssRes += res * res
	}
	dof := n - 2
	if dof <= 0 {
		return slope, intercept, rSquared, 1
	}
	mse := ssRes / dof
	seSlope := math.Sqrt(mse / sxx)
	if seSlope == 0 {
		return slope, intercept, rSquared, 0
	}
	t := slope / seSlope
	pValue = math.Erfc(math.Abs(t) / math.Sqrt2)

	return slope, intercept, rSquared, pValue
}

// mean returns the arithmetic mean of all sample errors. Analyze passes it
// to classify, since classify needs mean(e) but PatternResult doesn't carry
// it directly.
func mean(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Error
	}
	return sum / float64(len(points))
}

// lag1Autocorrelation computes cov(e[i], e[i+1]) / var(e); |rho| > 0.5
// marks the sequence correlated.
func lag1Autocorrelation(points []Point) (rho float64, isCorrelated bool) {
	n := len(points)
	m := mean(points)

	var variance float64
	for _, p := range points {
		d := p.Error - m
		variance += d * d
	}
	if variance == 0 {
		return 0, false
	}

	var cov float64
	for i := 0; i < n-1; i++ {
		cov += (points[i].Error - m) * (points[i+1].Error - m)
	}
	rho = cov / variance
	return rho, math.Abs(rho) > autocorrBand
}

// runTest counts runs of consecutive same-sign errors (zeros extend the
// current run) and computes the Wald-Wolfowitz z-statistic.
func runTest(points []Point) (runs int, expected, z float64, isRandom bool) {
	signs := make([]int, len(points))
	nPos, nNeg := 0, 0
	lastSign := 0
	for i, p := range points {
		s := sign(p.Error)
		if s == 0 {
			s = lastSign
		}
		signs[i] = s
		if s > 0 {
			nPos++
		} else if s < 0 {
			nNeg++
		}
		if s != 0 {
			lastSign = s
		}
	}

	runs = 1
	for i := 1; i < len(signs); i++ {
		if signs[i] != signs[i-1] {
			runs++
		}
	}

	n := float64(nPos + nNeg)
	if n == 0 || nPos == 0 || nNeg == 0 {
		return runs, 0, 0, false
	}

	fp, fn := float64(nPos), float64(nNeg)
	expected = 2*fp*fn/n + 1
	variance := 2 * fp * fn * (2*fp*fn - n) / (n * n * (n - 1))
	if variance <= 0 {
		return runs, expected, 0, false
	}
	z = (float64(runs) - expected) / math.Sqrt(variance)
	return runs, expected, z, math.Abs(z) < runZCritical
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func rootMeanSquareError(points []Point) float64 {
	var sumSq float64
	for _, p := range points {
		sumSq += p.Error * p.Error
	}
	return math.Sqrt(sumSq / float64(len(points)))
}

func maxAbsError(points []Point) float64 {
	max := 0.0
	for _, p := range points {
		if a := math.Abs(p.Error); a > max {
			max = a
		}
	}
	return max
}
