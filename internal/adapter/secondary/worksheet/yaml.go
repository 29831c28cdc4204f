// Package worksheet reads duty worksheets from YAML files.
//
// A worksheet file looks like:
//
//	duty:
//	  start: "22:00"
//	  end: "06:00+1"
//	breaks:
//	  - id: lunch
//	    start: "01:00+1"
//	    end: "01:30+1"
//
// Times use HH:MM with an optional "+1" next-day marker. Breaks without an id
// get one from the IDGenerator.
package worksheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"duty-validator/internal/domain"
)

// LoadError describes a worksheet that could not be read or parsed.
type LoadError struct {
	File    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

type document struct {
	Duty   *span       `yaml:"duty"`
	Breaks []breakSpan `yaml:"breaks"`
}

type span struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type breakSpan struct {
	ID    string `yaml:"id"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Loader turns YAML documents into domain worksheets.
type Loader struct {
	ids domain.IDGenerator
}

// NewLoader creates a loader. A nil generator falls back to UUIDs.
func NewLoader(ids domain.IDGenerator) *Loader {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Loader{ids: ids}
}

// Parse parses a worksheet from YAML bytes.
func (l *Loader) Parse(data []byte) (domain.Worksheet, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Worksheet{}, &LoadError{Message: "worksheet is empty"}
		}
		return domain.Worksheet{}, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if doc.Duty == nil {
		return domain.Worksheet{}, &LoadError{Message: "duty is required"}
	}

	start, end, err := parseSpan(doc.Duty.Start, doc.Duty.End)
	if err != nil {
		return domain.Worksheet{}, &LoadError{Message: "invalid duty", Cause: err}
	}
	ws := domain.NewWorksheet().WithDuty(domain.Duty{Start: start, End: end})

	for i, b := range doc.Breaks {
		start, end, err := parseSpan(b.Start, b.End)
		if err != nil {
			return domain.Worksheet{}, &LoadError{Message: fmt.Sprintf("invalid break %d", i+1), Cause: err}
		}
		id := b.ID
		if id == "" {
			id = l.ids.NewID()
		}
		ws, err = ws.AddBreak(domain.Break{ID: id, Start: start, End: end})
		if err != nil {
			return domain.Worksheet{}, &LoadError{Message: fmt.Sprintf("invalid break %d", i+1), Cause: err}
		}
	}
	return ws, nil
}

// Load reads a worksheet from a file.
func (l *Loader) Load(path string) (domain.Worksheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Worksheet{}, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	ws, err := l.Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return domain.Worksheet{}, le
		}
		return domain.Worksheet{}, &LoadError{File: path, Message: err.Error()}
	}
	return ws, nil
}

// Marshal renders a worksheet back to YAML.
func Marshal(ws domain.Worksheet) ([]byte, error) {
	doc := document{
		Duty: &span{Start: ws.Duty.Start.String(), End: ws.Duty.End.String()},
	}
	for _, b := range ws.Breaks {
		doc.Breaks = append(doc.Breaks, breakSpan{ID: b.ID, Start: b.Start.String(), End: b.End.String()})
	}
	return yaml.Marshal(doc)
}

func parseSpan(startStr, endStr string) (domain.ClockTime, domain.ClockTime, error) {
	start, err := domain.ParseClockTime(startStr)
	if err != nil {
		return domain.ClockTime{}, domain.ClockTime{}, fmt.Errorf("start: %w", err)
	}
	end, err := domain.ParseClockTime(endStr)
	if err != nil {
		return domain.ClockTime{}, domain.ClockTime{}, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}
