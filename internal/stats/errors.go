package stats

import (
	"fmt"
	"strconv"

	errorsmod "cosmossdk.io/errors"
)

const Codespace = "roadstats"

var (
	ErrUsage         = errorsmod.Register(Codespace, 2, "usage")
	ErrMalformedLine = errorsmod.Register(Codespace, 3, "malformed line")
	ErrEmptySeries   = errorsmod.Register(Codespace, 4, "empty series")
)

// UsageError means the tool was invoked without any input.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }
func (e *UsageError) Unwrap() error { return ErrUsage }

// MalformedLineError aborts the whole run.
type MalformedLineError struct {
	Source  string
	Line    int
	Content string
	Reason  string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %s", e.Source, e.Line, e.Reason, strconv.Quote(e.Content))
}

func (e *MalformedLineError) Unwrap() error { return ErrMalformedLine }

// EmptySeriesError is returned when a statistic is requested over zero
// observations. It only affects the metric it was raised for.
type EmptySeriesError struct {
	Metric     string
	Experiment Experiment
}

func (e *EmptySeriesError) Error() string {
	switch {
	case e.Metric != "" && e.Experiment != "":
		return fmt.Sprintf("%s: no observations for experiment %q", e.Metric, e.Experiment)
	case e.Metric != "":
		return fmt.Sprintf("%s: no observations", e.Metric)
	case e.Experiment != "":
		return fmt.Sprintf("no observations for experiment %q", e.Experiment)
	}
	return "no observations"
}

func (e *EmptySeriesError) Unwrap() error { return ErrEmptySeries }
