package stats

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func src(name, body string) Source {
	return Source{Name: name, R: strings.NewReader(body)}
}

func TestParseLagEvents(t *testing.T) {
	d, err := Parse(src("a.log", "exp1\ns1 A1 I1 2.0\ns1 A1 I1 4.0\n"))
	require.NoError(t, err)

	require.Equal(t, []Experiment{"exp1"}, d.Experiments)
	require.Equal(t, Series{2.0, 4.0}, d.AllLags["exp1"])
	require.Equal(t, KeyedSeries{"A1": {2.0, 4.0}}, d.LagPerAgent["exp1"])
	require.Equal(t, KeyedSeries{"I1": {2.0, 4.0}}, d.LagPerIntersection["exp1"])

	res, err := Reduce(PerKeyAverage, d.LagPerAgent)
	require.NoError(t, err)
	require.Equal(t, Series{3.0}, res["exp1"].Display)

	res, err = Reduce(Identity, FlatByExperiment(d.AllLags))
	require.NoError(t, err)
	require.Equal(t, Series{2.0, 4.0}, res["exp1"].Display)
	require.InDelta(t, 3.0, res["exp1"].Summary.Average, 1e-12)
	require.InDelta(t, 1.0, res["exp1"].Summary.Variance, 1e-12)
}

func TestParseLagWithTimeMatchesLegacyForm(t *testing.T) {
	legacy, err := Parse(src("a.log", "exp\ns1 A1 I1 2.5\ns1 A2 I1 1.5\n"))
	require.NoError(t, err)
	timed, err := Parse(src("b.log", "exp\ns1 A1 I1 2.5 10\ns1 A2 I1 1.5 20\n"))
	require.NoError(t, err)

	require.Equal(t, legacy.AllLags, timed.AllLags)
	require.Equal(t, legacy.LagPerAgent, timed.LagPerAgent)
	require.Equal(t, legacy.LagPerIntersection, timed.LagPerIntersection)
}

func TestParseSpeed(t *testing.T) {
	d, err := Parse(src("a.log", "exp1\ns2 A1 10 100\n"))
	require.NoError(t, err)
	require.Equal(t, Series{10.0}, d.Speed["exp1"])
}

func TestParseThroughput(t *testing.T) {
	d, err := Parse(src("a.log", "exp1\ns3 I1 10 5 60\n"))
	require.NoError(t, err)
	require.Equal(t, KeyedSeries{"I1": {0.5}}, d.ThroughputPerIntersection["exp1"])
}

func TestParseActiveCount(t *testing.T) {
	d, err := Parse(src("a.log", "exp1\ns4 0 3\ns4 10 5\n"))
	require.NoError(t, err)
	require.Equal(t, []Point{{Time: 0, Count: 3}, {Time: 10, Count: 5}}, d.ActiveCounts["exp1"])
}

func TestParseKeepsExperimentsApart(t *testing.T) {
	d, err := Parse(
		src("one.log", "exp1\ns1 A1 I1 2.0\n"),
		src("two.log", "exp2\ns1 A1 I1 8.0\ns1 A2 I2 4.0\n"),
	)
	require.NoError(t, err)

	require.Equal(t, []Experiment{"exp1", "exp2"}, d.Experiments)
	require.Equal(t, Series{2.0}, d.AllLags["exp1"])
	require.Equal(t, Series{8.0, 4.0}, d.AllLags["exp2"])

	res, err := Reduce(PerKeyAverage, d.LagPerAgent)
	require.NoError(t, err)
	require.Len(t, res, 2)
	require.Equal(t, Series{2.0}, res["exp1"].Display)
	require.Equal(t, Series{8.0, 4.0}, res["exp2"].Display)
}

func TestParseSameLabelMerges(t *testing.T) {
	d, err := Parse(
		src("one.log", "exp\ns1 A1 I1 1\n"),
		src("two.log", "  exp  \ns1 A1 I1 3\n"),
	)
	require.NoError(t, err)
	require.Equal(t, []Experiment{"exp"}, d.Experiments)
	require.Equal(t, Series{1, 3}, d.AllLags["exp"])
}

func TestParseIgnoresUnknownAndBlankLines(t *testing.T) {
	d, err := Parse(src("a.log", "exp1\n\ns9 whatever 1 2 3\nnot a record\ns2 A1 2 8\n"))
	require.NoError(t, err)
	require.Equal(t, Series{4.0}, d.Speed["exp1"])
	require.Empty(t, d.AllLags)
}

func TestParseAbsentKeys(t *testing.T) {
	d, err := Parse(src("a.log", "exp1\ns2 A1 1 1\n"))
	require.NoError(t, err)

	_, ok := d.AllLags["exp1"]
	require.False(t, ok)
	_, ok = d.LagPerAgent["exp1"]
	require.False(t, ok)
	_, ok = d.ActiveCounts["exp1"]
	require.False(t, ok)
}

func TestParseMalformed(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"missing field", "s1 A1 I1"},
		{"extra field", "s1 A1 I1 1 2 3"},
		{"lag not a number", "s1 A1 I1 slow"},
		{"speed arity", "s2 A1 10"},
		{"speed time zero", "s2 A1 0 100"},
		{"throughput arity", "s3 I1 10 5"},
		{"throughput requests zero", "s3 I1 0 5 60"},
		{"count not an integer", "s4 10 2.5"},
		{"time not an integer", "s4 t 2"},
		{"negative count", "s4 10 -3"},
		{"lag is NaN", "s1 A1 I1 NaN"},
		{"distance is Inf", "s2 A1 1 Inf"},
		{"requests is -inf", "s3 I1 -inf 5 60"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Parse(src("bad.log", "exp1\ns1 A0 I0 1.0\n"+tc.line+"\n"))
			require.Nil(t, d)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrMalformedLine))

			var mle *MalformedLineError
			require.True(t, errors.As(err, &mle))
			require.Equal(t, "bad.log", mle.Source)
			require.Equal(t, 3, mle.Line)
			require.Equal(t, tc.line, mle.Content)
			require.Contains(t, err.Error(), "bad.log:3")
		})
	}
}

func TestParseMissingExperimentLabel(t *testing.T) {
	for _, body := range []string{"", "   \ns1 A1 I1 1\n"} {
		_, err := Parse(src("empty.log", body))
		var mle *MalformedLineError
		require.True(t, errors.As(err, &mle))
		require.Equal(t, 1, mle.Line)
	}
}

func TestParseLineTooLong(t *testing.T) {
	long := "s1 A1 I1 " + strings.Repeat("9", maxLineBytes+1)
	d, err := Parse(src("big.log", "exp1\ns1 A1 I1 1\n"+long+"\n"))
	require.Nil(t, d)
	require.True(t, errors.Is(err, ErrMalformedLine))

	var mle *MalformedLineError
	require.True(t, errors.As(err, &mle))
	require.Equal(t, "big.log", mle.Source)
	require.Equal(t, 3, mle.Line)
	require.Equal(t, "line too long", mle.Reason)
}

func TestParseStopsAtFirstBadSource(t *testing.T) {
	_, err := Parse(
		src("good.log", "exp1\ns1 A1 I1 1\n"),
		src("bad.log", "exp2\ns3 I1 x 1 1\n"),
		src("never.log", ""),
	)
	var mle *MalformedLineError
	require.True(t, errors.As(err, &mle))
	require.Equal(t, "bad.log", mle.Source)
}

func TestParseIsDeterministic(t *testing.T) {
	body := "exp1\ns1 A1 I1 2\ns1 A2 I2 3\ns2 A1 4 8\ns3 I1 4 2 1\ns4 1 2\n"
	a, err := Parse(src("a.log", body))
	require.NoError(t, err)
	b, err := Parse(src("a.log", body))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "one.log")
	require.NoError(t, os.WriteFile(p1, []byte("exp1\ns1 A1 I1 2\n"), 0o644))

	d, err := ParseFiles([]string{p1, StdinName}, strings.NewReader("exp2\ns1 A1 I1 6\n"))
	require.NoError(t, err)
	require.Equal(t, []Experiment{"exp1", "exp2"}, d.Experiments)
	require.Equal(t, Series{6}, d.AllLags["exp2"])
}

func TestParseFilesMissing(t *testing.T) {
	_, err := ParseFiles([]string{filepath.Join(t.TempDir(), "nope.log")}, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseRecord(t *testing.T) {
	rec, ok, err := ParseRecord(strings.Fields("s1 A1 I1 2.5 30"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, TagLag, rec.Tag())
	require.Equal(t, LagEvent{Agent: "A1", Intersection: "I1", Lag: 2.5, Time: 30}, rec)

	rec, ok, err = ParseRecord(strings.Fields("s3 I7 8 2 60"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, TagThroughput, rec.Tag())
	require.Equal(t, 0.25, rec.(ThroughputEvent).Ratio())

	rec, ok, err = ParseRecord(strings.Fields("s5 anything"))
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, rec)

	_, ok, err = ParseRecord(nil)
	require.NoError(t, err)
	require.False(t, ok)
}
