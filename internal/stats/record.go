package stats

import (
	"math"
	"strconv"
)

// Record tags as they appear in the first field of a log line.
const (
	TagLag         = "s1"
	TagSpeed       = "s2"
	TagThroughput  = "s3"
	TagActiveCount = "s4"
)

// Record is one parsed log line. The set of implementations is closed.
type Record interface {
	Tag() string
}

type LagEvent struct {
	Agent        string
	Intersection string
	Lag          float64
	// Time is zero for the legacy four-field form.
	Time float64
}

type SpeedEvent struct {
	Agent    string
	Time     float64
	Distance float64
}

type ThroughputEvent struct {
	Intersection string
	Requests     float64
	Entered      float64
	Time         float64
}

type ActiveCountEvent struct {
	Time  int
	Count int
}

func (LagEvent) Tag() string         { return TagLag }
func (SpeedEvent) Tag() string       { return TagSpeed }
func (ThroughputEvent) Tag() string  { return TagThroughput }
func (ActiveCountEvent) Tag() string { return TagActiveCount }

// Speed is distance over time in m/s.
func (e SpeedEvent) Speed() float64 { return e.Distance / e.Time }

// Ratio is entered over requests.
func (e ThroughputEvent) Ratio() float64 { return e.Entered / e.Requests }

// fieldError is a reason a line was rejected; the caller adds source and line.
type fieldError string

func (e fieldError) Error() string { return string(e) }

// ParseRecord decodes the whitespace-split fields of one line. ok is false for
// tags this version does not know about; those lines are skipped.
func ParseRecord(fields []string) (rec Record, ok bool, err error) {
	if len(fields) == 0 {
		return nil, false, nil
	}
	switch fields[0] {
	case TagLag:
		// legacy logs carry no time column
		if len(fields) != 4 && len(fields) != 5 {
			return nil, true, arity(fields, "4 or 5")
		}
		e := LagEvent{Agent: fields[1], Intersection: fields[2]}
		if e.Lag, err = float(fields[3], "lag"); err != nil {
			return nil, true, err
		}
		if len(fields) == 5 {
			if e.Time, err = float(fields[4], "time"); err != nil {
				return nil, true, err
			}
		}
		return e, true, nil

	case TagSpeed:
		if len(fields) != 4 {
			return nil, true, arity(fields, "4")
		}
		e := SpeedEvent{Agent: fields[1]}
		if e.Time, err = float(fields[2], "time"); err != nil {
			return nil, true, err
		}
		if e.Distance, err = float(fields[3], "distance"); err != nil {
			return nil, true, err
		}
		if e.Time == 0 {
			return nil, true, fieldError("time is zero, speed is undefined")
		}
		return e, true, nil

	case TagThroughput:
		if len(fields) != 5 {
			return nil, true, arity(fields, "5")
		}
		e := ThroughputEvent{Intersection: fields[1]}
		if e.Requests, err = float(fields[2], "requests"); err != nil {
			return nil, true, err
		}
		if e.Entered, err = float(fields[3], "entered"); err != nil {
			return nil, true, err
		}
		if e.Time, err = float(fields[4], "time"); err != nil {
			return nil, true, err
		}
		if e.Requests == 0 {
			return nil, true, fieldError("requests is zero, throughput is undefined")
		}
		return e, true, nil

	case TagActiveCount:
		if len(fields) != 3 {
			return nil, true, arity(fields, "3")
		}
		var e ActiveCountEvent
		if e.Time, err = integer(fields[1], "time"); err != nil {
			return nil, true, err
		}
		if e.Count, err = integer(fields[2], "count"); err != nil {
			return nil, true, err
		}
		if e.Count < 0 {
			return nil, true, fieldError("count is negative: " + strconv.Quote(fields[2]))
		}
		return e, true, nil
	}
	return nil, false, nil
}

func arity(fields []string, want string) error {
	return fieldError(fields[0] + " record wants " + want + " fields, got " + strconv.Itoa(len(fields)))
}

func float(s, name string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fieldError(name + " is not a number: " + strconv.Quote(s))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fieldError(name + " is not a finite number: " + strconv.Quote(s))
	}
	return v, nil
}

func integer(s, name string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fieldError(name + " is not an integer: " + strconv.Quote(s))
	}
	return v, nil
}
