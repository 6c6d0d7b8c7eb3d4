package stats

// multiSink fans reports out to multiple Sink implementations
type multiSink struct {
	ss []Sink
}

// MultiSink creates a Sink that forwards every call to all sinks.
// The first error wins, but every sink still sees the call.
func MultiSink(ss ...Sink) Sink {
	out := &multiSink{ss: make([]Sink, 0, len(ss))}
	for _, s := range ss {
		if s != nil {
			out.ss = append(out.ss, s)
		}
	}
	return out
}

func (m *multiSink) OnHistogram(metric Metric, results []Result) error {
	var firstErr error
	for _, s := range m.ss {
		if err := s.OnHistogram(metric, results); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *multiSink) OnTimeSeries(metric Metric, lines []Line) error {
	var firstErr error
	for _, s := range m.ss {
		if err := s.OnTimeSeries(metric, lines); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *multiSink) Close() error {
	var firstErr error
	for _, s := range m.ss {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
