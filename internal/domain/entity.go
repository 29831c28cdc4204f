package domain

import (
	"fmt"
	"strconv"
)

// Duty is the outer work period being validated.
type Duty struct {
	Start ClockTime
	End   ClockTime
}

// Break is a rest period that should lie inside the duty.
// ID is assigned by the caller and never interpreted by the validator.
type Break struct {
	ID    string
	Start ClockTime
	End   ClockTime
}

// BreakDuration reports the signed duration of the break numbered BreakNumber (1-based).
type BreakDuration struct {
	BreakNumber int
	Duration    int
}

// ValidationResult is the outcome of one validation run.
type ValidationResult struct {
	Valid               bool
	Issues              []string
	LegalIssues         []string
	DutyDurationMinutes int
	BreakDurations      []BreakDuration
}

// DefaultDuty returns the 08:00-16:00 duty a new worksheet starts with.
func DefaultDuty() Duty {
	return Duty{
		Start: ClockTime{Hour: 8},
		End:   ClockTime{Hour: 16},
	}
}

// DefaultBreak returns a 12:00-13:00 break with the given id.
func DefaultBreak(id string) Break {
	return Break{
		ID:    id,
		Start: ClockTime{Hour: 12},
		End:   ClockTime{Hour: 13},
	}
}

// Worksheet is the caller-owned duty and breaks being edited.
// Editing methods never mutate the receiver; they return a new Worksheet.
type Worksheet struct {
	Duty   Duty
	Breaks []Break
}

// NewWorksheet returns a worksheet with the default duty and no breaks.
func NewWorksheet() Worksheet {
	return Worksheet{Duty: DefaultDuty()}
}

// WithDuty replaces the duty.
func (w Worksheet) WithDuty(d Duty) Worksheet {
	return Worksheet{Duty: d, Breaks: w.cloneBreaks()}
}

// AddBreak appends b. Its ID must not already be in use.
func (w Worksheet) AddBreak(b Break) (Worksheet, error) {
	if w.indexOf(b.ID) >= 0 {
		return w, fmt.Errorf("%w: %s", ErrDuplicateBreakID, b.ID)
	}
	breaks := append(w.cloneBreaks(), b)
	return Worksheet{Duty: w.Duty, Breaks: breaks}, nil
}

// RemoveBreak drops the break with the given id.
func (w Worksheet) RemoveBreak(id string) (Worksheet, error) {
	idx := w.indexOf(id)
	if idx < 0 {
		return w, fmt.Errorf("%w: %s", ErrBreakNotFound, id)
	}
	breaks := make([]Break, 0, len(w.Breaks)-1)
	breaks = append(breaks, w.Breaks[:idx]...)
	breaks = append(breaks, w.Breaks[idx+1:]...)
	return Worksheet{Duty: w.Duty, Breaks: breaks}, nil
}

// UpdateBreak replaces the times of the break with the given id, keeping its position.
func (w Worksheet) UpdateBreak(id string, start, end ClockTime) (Worksheet, error) {
	idx := w.indexOf(id)
	if idx < 0 {
		return w, fmt.Errorf("%w: %s", ErrBreakNotFound, id)
	}
	breaks := w.cloneBreaks()
	breaks[idx] = Break{ID: id, Start: start, End: end}
	return Worksheet{Duty: w.Duty, Breaks: breaks}, nil
}

// BreakID resolves a reference that is either a break id or a 1-based break number.
func (w Worksheet) BreakID(ref string) (string, error) {
	if w.indexOf(ref) >= 0 {
		return ref, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(w.Breaks) {
		return w.Breaks[n-1].ID, nil
	}
	return "", fmt.Errorf("%w: %s", ErrBreakNotFound, ref)
}

func (w Worksheet) indexOf(id string) int {
	for i, b := range w.Breaks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (w Worksheet) cloneBreaks() []Break {
	if w.Breaks == nil {
		return nil
	}
	out := make([]Break, len(w.Breaks))
	copy(out, w.Breaks)
	return out
}
