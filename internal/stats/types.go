package stats

import "sort"

// Experiment names one simulation run. Records of different experiments are
// never merged.
type Experiment string

type Series []float64

// KeyedSeries holds observations grouped by entity id (agent or intersection).
type KeyedSeries map[string]Series

// Keys returns the entity ids in sorted order.
func (k KeyedSeries) Keys() []string {
	out := make([]string, 0, len(k))
	for key := range k {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Flat wraps an ungrouped series so it can go through a Transform.
func Flat(s Series) KeyedSeries {
	return KeyedSeries{"": s}
}

type Point struct {
	Time  int
	Count int
}

type Line struct {
	Experiment Experiment
	Points     []Point
}

// ParsedData is everything the parser accumulated over all sources. It is not
// modified after Parse returns.
type ParsedData struct {
	// Experiments in order of first appearance.
	Experiments []Experiment

	// s1
	LagPerAgent        map[Experiment]KeyedSeries
	LagPerIntersection map[Experiment]KeyedSeries
	AllLags            map[Experiment]Series
	// s2
	Speed map[Experiment]Series
	// s3
	ThroughputPerIntersection map[Experiment]KeyedSeries
	// s4
	ActiveCounts map[Experiment][]Point
}

func NewParsedData() *ParsedData {
	return &ParsedData{
		LagPerAgent:               make(map[Experiment]KeyedSeries),
		LagPerIntersection:        make(map[Experiment]KeyedSeries),
		AllLags:                   make(map[Experiment]Series),
		Speed:                     make(map[Experiment]Series),
		ThroughputPerIntersection: make(map[Experiment]KeyedSeries),
		ActiveCounts:              make(map[Experiment][]Point),
	}
}

func (d *ParsedData) begin(exp Experiment) {
	for _, e := range d.Experiments {
		if e == exp {
			return
		}
	}
	d.Experiments = append(d.Experiments, exp)
}

func (d *ParsedData) add(exp Experiment, rec Record) {
	switch r := rec.(type) {
	case LagEvent:
		appendKeyed(d.LagPerAgent, exp, r.Agent, r.Lag)
		appendKeyed(d.LagPerIntersection, exp, r.Intersection, r.Lag)
		d.AllLags[exp] = append(d.AllLags[exp], r.Lag)
	case SpeedEvent:
		d.Speed[exp] = append(d.Speed[exp], r.Speed())
	case ThroughputEvent:
		appendKeyed(d.ThroughputPerIntersection, exp, r.Intersection, r.Ratio())
	case ActiveCountEvent:
		d.ActiveCounts[exp] = append(d.ActiveCounts[exp], Point{Time: r.Time, Count: r.Count})
	}
}

func appendKeyed(m map[Experiment]KeyedSeries, exp Experiment, key string, v float64) {
	ks, ok := m[exp]
	if !ok {
		ks = make(KeyedSeries)
		m[exp] = ks
	}
	ks[key] = append(ks[key], v)
}
