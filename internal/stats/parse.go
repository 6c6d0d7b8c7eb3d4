package stats

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// StdinName is the path argument that selects standard input.
const StdinName = "-"

const maxLineBytes = 1 << 20

// Source is one named input stream holding a single experiment.
type Source struct {
	Name string
	R    io.Reader
}

// Parse folds the sources, in order, into one ParsedData. The first line of
// each source names its experiment. Any malformed line aborts the parse and no
// data is returned.
func Parse(sources ...Source) (*ParsedData, error) {
	d := NewParsedData()
	for _, src := range sources {
		if err := parseSource(d, src); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ParseFiles is Parse over file paths. Each file is closed before the next one
// is opened. StdinName reads from stdin.
func ParseFiles(paths []string, stdin io.Reader) (*ParsedData, error) {
	d := NewParsedData()
	for _, p := range paths {
		if err := parseFile(d, p, stdin); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func parseFile(d *ParsedData, path string, stdin io.Reader) error {
	if path == StdinName {
		return parseSource(d, Source{Name: "<stdin>", R: stdin})
	}
	f, err := os.Open(path)
	if err != nil {
		return errorsmod.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()
	return parseSource(d, Source{Name: path, R: f})
}

func parseSource(d *ParsedData, src Source) error {
	sc := bufio.NewScanner(src.R)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	var (
		exp    Experiment
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if lineNo == 1 {
			label := strings.TrimSpace(line)
			if label == "" {
				return &MalformedLineError{Source: src.Name, Line: 1, Content: line, Reason: "missing experiment label"}
			}
			exp = Experiment(label)
			d.begin(exp)
			continue
		}

		if err := parseLine(d, exp, line); err != nil {
			return &MalformedLineError{Source: src.Name, Line: lineNo, Content: line, Reason: err.Error()}
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return &MalformedLineError{Source: src.Name, Line: lineNo + 1, Reason: "line too long"}
		}
		return errorsmod.Wrapf(err, "read %s", src.Name)
	}
	if lineNo == 0 {
		return &MalformedLineError{Source: src.Name, Line: 1, Reason: "missing experiment label"}
	}
	return nil
}

func parseLine(d *ParsedData, exp Experiment, line string) error {
	rec, ok, err := ParseRecord(strings.Fields(line))
	if err != nil {
		return err
	}
	if ok {
		d.add(exp, rec)
	}
	return nil
}
