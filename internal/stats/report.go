package stats

import (
	"errors"
	"os"

	errorsmod "cosmossdk.io/errors"
	"github.com/pion/logging"
)

// Report groups, in report order.
var (
	MetricLagPerAgent = Metric{
		Name:   "lag_per_agent",
		Label:  "Average lag per agent",
		Object: "agents",
	}
	MetricLagPerIntersection = Metric{
		Name:   "lag_per_intersection",
		Label:  "Average lag per intersection",
		Object: "intersections",
	}
	MetricAllLags = Metric{
		Name:   "all_lags",
		Label:  "Average lag",
		Object: "events",
	}
	MetricSpeed = Metric{
		Name:   "speed",
		Label:  "Average speed (m/s) of each agent",
		Object: "agents",
	}
	MetricThroughput = Metric{
		Name:   "throughput",
		Label:  "Average throughput (entered / requests for some duration) per intersection",
		Object: "intersections",
	}
	MetricActiveAgents = Metric{
		Name:   "active_agents",
		Label:  "Active agents over time",
		Object: "agents",
	}
)

type histogramGroup struct {
	metric    Metric
	transform Transform
	input     func(*ParsedData) map[Experiment]KeyedSeries
}

var histogramGroups = []histogramGroup{
	{MetricLagPerAgent, PerKeyAverage, func(d *ParsedData) map[Experiment]KeyedSeries { return d.LagPerAgent }},
	{MetricLagPerIntersection, PerKeyAverage, func(d *ParsedData) map[Experiment]KeyedSeries { return d.LagPerIntersection }},
	{MetricAllLags, Identity, func(d *ParsedData) map[Experiment]KeyedSeries { return FlatByExperiment(d.AllLags) }},
	{MetricSpeed, Identity, func(d *ParsedData) map[Experiment]KeyedSeries { return FlatByExperiment(d.Speed) }},
	{MetricThroughput, PerKeyAverage, func(d *ParsedData) map[Experiment]KeyedSeries { return d.ThroughputPerIntersection }},
}

// Reporter reduces parsed data metric by metric and hands the outcome to a
// Sink.
type Reporter struct {
	sink Sink
	log  logging.LeveledLogger
}

func NewReporter(sink Sink, log logging.LeveledLogger) *Reporter {
	if log == nil {
		log = logging.NewDefaultLeveledLoggerForScope("report", logging.LogLevelWarn, os.Stderr)
	}
	return &Reporter{sink: sink, log: log}
}

// Run reports every metric group. Metrics without observations are logged and
// skipped; sink failures abort the run.
func (r *Reporter) Run(d *ParsedData) error {
	for _, g := range histogramGroups {
		err := r.histogram(d, g)
		if errors.Is(err, ErrEmptySeries) {
			r.log.Warnf("skipping %q: %v", g.metric.Label, err)
			continue
		}
		if err != nil {
			return err
		}
	}

	lines := TimeSeries(d)
	if len(lines) == 0 {
		r.log.Warnf("skipping %q: %v", MetricActiveAgents.Label, &EmptySeriesError{Metric: MetricActiveAgents.Name})
		return nil
	}
	if err := r.sink.OnTimeSeries(MetricActiveAgents, lines); err != nil {
		return errorsmod.Wrapf(err, "report %s", MetricActiveAgents.Name)
	}
	return nil
}

func (r *Reporter) histogram(d *ParsedData, g histogramGroup) error {
	byExp, err := Reduce(g.transform, g.input(d))
	if err != nil {
		var empty *EmptySeriesError
		if errors.As(err, &empty) {
			empty.Metric = g.metric.Name
		}
		return err
	}
	results := make([]Result, 0, len(byExp))
	for _, exp := range d.Experiments {
		if res, ok := byExp[exp]; ok {
			results = append(results, res)
		}
	}
	if err := r.sink.OnHistogram(g.metric, results); err != nil {
		return errorsmod.Wrapf(err, "report %s", g.metric.Name)
	}
	return nil
}

// TimeSeries pairs the active-count points of each experiment into a line, in
// experiment order. Experiments without s4 records are left out.
func TimeSeries(d *ParsedData) []Line {
	var lines []Line
	for _, exp := range d.Experiments {
		pts, ok := d.ActiveCounts[exp]
		if !ok {
			continue
		}
		lines = append(lines, Line{Experiment: exp, Points: pts})
	}
	return lines
}
