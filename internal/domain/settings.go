package domain

import (
	"fmt"
	"strings"
)

// LegalPolicy selects how legal compliance is evaluated.
type LegalPolicy string

const (
	// PolicyStub reports every duty as compliant.
	PolicyStub LegalPolicy = "stub"
	// PolicyBreakRule requires a minimum break once a duty exceeds a threshold.
	PolicyBreakRule LegalPolicy = "break-rule"
)

const (
	// DefaultMaxDutyWithoutBreak is the duty length (minutes) above which a break is required.
	DefaultMaxDutyWithoutBreak = 6 * 60
	// DefaultMinBreak is the minimum qualifying break length in minutes.
	DefaultMinBreak = 30
)

// ParseLegalPolicy converts a policy name, case-insensitively.
func ParseLegalPolicy(s string) (LegalPolicy, error) {
	switch p := LegalPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyStub, PolicyBreakRule:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownPolicy, s, PolicyStub, PolicyBreakRule)
	}
}

// Settings is the persisted tool configuration.
// This is a pure domain model with no dependencies on external concerns.
type Settings struct {
	LegalPolicy         LegalPolicy
	MaxDutyWithoutBreak int
	MinBreak            int
}

// DefaultSettings returns the default configuration values.
func DefaultSettings() Settings {
	return Settings{
		LegalPolicy:         PolicyBreakRule,
		MaxDutyWithoutBreak: DefaultMaxDutyWithoutBreak,
		MinBreak:            DefaultMinBreak,
	}
}

// Validate checks if the settings values are usable.
func (s Settings) Validate() error {
	if _, err := ParseLegalPolicy(string(s.LegalPolicy)); err != nil {
		return err
	}
	if s.MaxDutyWithoutBreak <= 0 || s.MinBreak <= 0 {
		return ErrInvalidThreshold
	}
	return nil
}

// LegalRule builds the rule selected by the settings.
func (s Settings) LegalRule() LegalRule {
	if p, err := ParseLegalPolicy(string(s.LegalPolicy)); err == nil && p == PolicyStub {
		return AlwaysCompliant{}
	}
	return BreakRequirement{
		MaxDutyMinutes:  s.MaxDutyWithoutBreak,
		MinBreakMinutes: s.MinBreak,
	}
}
