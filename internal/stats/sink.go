package stats

// Metric describes one report group.
type Metric struct {
	// Name is a short identifier, also used for output file names.
	Name string
	// Label is the human readable title, used as the x-axis label.
	Label string
	// Object is what is being counted on the y-axis, e.g. "agents".
	Object string
}

// Sink consumes reduced series. Results and lines arrive in experiment order.
type Sink interface {
	OnHistogram(m Metric, results []Result) error
	OnTimeSeries(m Metric, lines []Line) error
	Close() error
}
