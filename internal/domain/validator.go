package domain

import "fmt"

// Validator checks a duty and its breaks.
// It holds no state between calls and is safe for concurrent use.
type Validator struct {
	rule LegalRule
}

// NewValidator creates a validator using the given legal rule.
// A nil rule means every duty is legally compliant.
func NewValidator(rule LegalRule) *Validator {
	if rule == nil {
		rule = AlwaysCompliant{}
	}
	return &Validator{rule: rule}
}

// Validate runs structural, overlap and legal checks and returns a fresh result.
func (v *Validator) Validate(duty Duty, breaks []Break) ValidationResult {
	result := ValidationResult{
		LegalIssues:    []string{},
		BreakDurations: make([]BreakDuration, 0, len(breaks)),
	}
	issues := newIssueList()

	dutyDuration := Duration(duty.Start, duty.End)
	if dutyDuration <= 0 {
		issues.add("Duty end time must be after duty start time")
	} else {
		result.DutyDurationMinutes = dutyDuration
	}

	dutyStart := duty.Start.AbsoluteMinutes()
	dutyEnd := duty.End.AbsoluteMinutes()

	for i, b := range breaks {
		n := i + 1
		duration := Duration(b.Start, b.End)
		result.BreakDurations = append(result.BreakDurations, BreakDuration{BreakNumber: n, Duration: duration})

		if duration <= 0 {
			issues.add(fmt.Sprintf("Break %d: End time must be after start time", n))
		}

		start, end := b.Start.AbsoluteMinutes(), b.End.AbsoluteMinutes()
		if start < dutyStart {
			issues.add(fmt.Sprintf("Break %d: Start time must be after duty start time", n))
		}
		if end > dutyEnd {
			issues.add(fmt.Sprintf("Break %d: End time must be before duty end time", n))
		}

		for j, other := range breaks {
			if j == i {
				continue
			}
			if BreaksOverlap(b, other) {
				issues.add(fmt.Sprintf("Break %d overlaps with Break %d", n, j+1))
			}
		}
	}

	result.Issues = issues.items
	result.Valid = issues.empty()

	if !v.rule.IsLegalDuty(duty, breaks) {
		result.LegalIssues = append(result.LegalIssues, v.rule.Message())
		result.Valid = false
	}
	return result
}

// BreaksOverlap reports whether b collides with other, using the same
// predicate as Validate.
func BreaksOverlap(b, other Break) bool {
	return overlaps(b.Start.AbsoluteMinutes(), b.End.AbsoluteMinutes(), other.Start.AbsoluteMinutes(), other.End.AbsoluteMinutes())
}

// overlaps reports whether [start, end] collides with [otherStart, otherEnd].
// Touching at a shared boundary is not an overlap.
func overlaps(start, end, otherStart, otherEnd int) bool {
	return (start >= otherStart && start < otherEnd) ||
		(end > otherStart && end <= otherEnd) ||
		(start <= otherStart && end >= otherEnd)
}
