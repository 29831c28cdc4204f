package domain

import "fmt"

// LegalRule decides whether a duty and its breaks satisfy the regulatory break requirement.
type LegalRule interface {
	IsLegalDuty(duty Duty, breaks []Break) bool
	Message() string
}

// AlwaysCompliant accepts every duty.
type AlwaysCompliant struct{}

// IsLegalDuty always returns true.
func (AlwaysCompliant) IsLegalDuty(Duty, []Break) bool { return true }

// Message returns the default break requirement text. It is never reported.
func (AlwaysCompliant) Message() string {
	return BreakRequirement{MaxDutyMinutes: DefaultMaxDutyWithoutBreak, MinBreakMinutes: DefaultMinBreak}.Message()
}

// BreakRequirement requires at least one break of MinBreakMinutes when the
// duty lasts longer than MaxDutyMinutes.
type BreakRequirement struct {
	MaxDutyMinutes  int
	MinBreakMinutes int
}

// IsLegalDuty reports whether the duty complies.
// A duty of exactly MaxDutyMinutes needs no break.
func (r BreakRequirement) IsLegalDuty(duty Duty, breaks []Break) bool {
	if Duration(duty.Start, duty.End) <= r.MaxDutyMinutes {
		return true
	}
	for _, b := range breaks {
		if Duration(b.Start, b.End) >= r.MinBreakMinutes {
			return true
		}
	}
	return false
}

// Message describes the violated requirement.
func (r BreakRequirement) Message() string {
	return fmt.Sprintf("Legal requirement: Duty duration exceeds %s and requires at least one %d-minute break",
		spellMinutes(r.MaxDutyMinutes), r.MinBreakMinutes)
}

func spellMinutes(m int) string {
	switch {
	case m == 60:
		return "1 hour"
	case m%60 == 0:
		return fmt.Sprintf("%d hours", m/60)
	default:
		return fmt.Sprintf("%d minutes", m)
	}
}
