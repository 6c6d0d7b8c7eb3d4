package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Transform turns the grouped observations of one experiment into the series
// that gets summarized and displayed.
type Transform string

const (
	// Identity passes observations through, groups concatenated in key order.
	Identity Transform = "identity"
	// PerKeyAverage yields one mean per entity, in key order.
	PerKeyAverage Transform = "per_key_average"
)

func (t Transform) Apply(groups KeyedSeries) Series {
	keys := groups.Keys()
	switch t {
	case PerKeyAverage:
		out := make(Series, 0, len(keys))
		for _, k := range keys {
			if len(groups[k]) == 0 {
				continue
			}
			out = append(out, stat.Mean(groups[k], nil))
		}
		return out
	default:
		var out Series
		for _, k := range keys {
			out = append(out, groups[k]...)
		}
		return out
	}
}

type Summary struct {
	N        int
	Average  float64
	Variance float64 // population variance
	Min      float64
	Max      float64
}

// Summarize computes the summary statistics of s. It fails with an
// EmptySeriesError when s has no observations.
func Summarize(s Series) (Summary, error) {
	if len(s) == 0 {
		return Summary{}, &EmptySeriesError{}
	}
	mean, variance := stat.PopMeanVariance(s, nil)
	return Summary{
		N:        len(s),
		Average:  mean,
		Variance: variance,
		Min:      floats.Min(s),
		Max:      floats.Max(s),
	}, nil
}

// Result is the reduction of one experiment for one metric.
type Result struct {
	Experiment Experiment
	Summary    Summary
	Display    Series
}

// Reduce applies t to every experiment and summarizes the outcome.
func Reduce(t Transform, byExp map[Experiment]KeyedSeries) (map[Experiment]Result, error) {
	if len(byExp) == 0 {
		return nil, &EmptySeriesError{}
	}
	exps := make([]Experiment, 0, len(byExp))
	for exp := range byExp {
		exps = append(exps, exp)
	}
	sort.Slice(exps, func(i, j int) bool { return exps[i] < exps[j] })

	out := make(map[Experiment]Result, len(byExp))
	for _, exp := range exps {
		display := t.Apply(byExp[exp])
		sum, err := Summarize(display)
		if err != nil {
			return nil, &EmptySeriesError{Experiment: exp}
		}
		out[exp] = Result{Experiment: exp, Summary: sum, Display: display}
	}
	return out, nil
}

// FlatByExperiment wraps every series with Flat.
func FlatByExperiment(m map[Experiment]Series) map[Experiment]KeyedSeries {
	out := make(map[Experiment]KeyedSeries, len(m))
	for exp, s := range m {
		out[exp] = Flat(s)
	}
	return out
}
