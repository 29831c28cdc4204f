package web

import (
	"errors"
	"fmt"

	"duty-validator/internal/domain"
)

type clockView struct {
	Hour      int  `json:"hour"`
	Minute    int  `json:"minute"`
	IsNextDay bool `json:"isNextDay"`
}

type dutyView struct {
	StartTime clockView `json:"startTime"`
	EndTime   clockView `json:"endTime"`
}

type breakView struct {
	ID        string    `json:"id"`
	StartTime clockView `json:"startTime"`
	EndTime   clockView `json:"endTime"`
}

type validateRequest struct {
	Duty   *dutyView   `json:"duty"`
	Breaks []breakView `json:"breaks"`
	Policy string      `json:"policy,omitempty"`
}

type breakDurationView struct {
	BreakNumber int `json:"breakNumber"`
	Duration    int `json:"duration"`
}

// ResultView is the JSON shape of a validation result.
type ResultView struct {
	IsValid             bool                `json:"isValid"`
	Issues              []string            `json:"issues"`
	LegalIssues         []string            `json:"legalIssues"`
	DutyDurationMinutes int                 `json:"dutyDurationMinutes"`
	DutyDuration        string              `json:"dutyDuration"`
	BreakDurations      []breakDurationView `json:"breakDurations"`
	Policy              string              `json:"policy"`
}

// NewResultView converts a domain result for JSON output.
func NewResultView(res domain.ValidationResult, policy domain.LegalPolicy) ResultView {
	view := ResultView{
		IsValid:             res.Valid,
		Issues:              append([]string{}, res.Issues...),
		LegalIssues:         append([]string{}, res.LegalIssues...),
		DutyDurationMinutes: res.DutyDurationMinutes,
		DutyDuration:        domain.FormatDuration(res.DutyDurationMinutes),
		BreakDurations:      make([]breakDurationView, 0, len(res.BreakDurations)),
		Policy:              string(policy),
	}
	for _, bd := range res.BreakDurations {
		view.BreakDurations = append(view.BreakDurations, breakDurationView{BreakNumber: bd.BreakNumber, Duration: bd.Duration})
	}
	return view
}

type settingsView struct {
	LegalPolicy                string `json:"legalPolicy"`
	MaxDutyWithoutBreakMinutes int    `json:"maxDutyWithoutBreakMinutes"`
	MinBreakMinutes            int    `json:"minBreakMinutes"`
}

type settingsPayload struct {
	LegalPolicy                *string `json:"legalPolicy"`
	MaxDutyWithoutBreakMinutes *int    `json:"maxDutyWithoutBreakMinutes"`
	MinBreakMinutes            *int    `json:"minBreakMinutes"`
}

func settingsToView(s domain.Settings) settingsView {
	return settingsView{
		LegalPolicy:                string(s.LegalPolicy),
		MaxDutyWithoutBreakMinutes: s.MaxDutyWithoutBreak,
		MinBreakMinutes:            s.MinBreak,
	}
}

func (c clockView) toDomain() (domain.ClockTime, error) {
	return domain.NewClockTime(c.Hour, c.Minute, c.IsNextDay)
}

// toWorksheet builds the worksheet, assigning ids to breaks that have none.
func (r validateRequest) toWorksheet(ids domain.IDGenerator) (domain.Worksheet, error) {
	if r.Duty == nil {
		return domain.Worksheet{}, errors.New("duty is required")
	}
	start, err := r.Duty.StartTime.toDomain()
	if err != nil {
		return domain.Worksheet{}, fmt.Errorf("duty start: %w", err)
	}
	end, err := r.Duty.EndTime.toDomain()
	if err != nil {
		return domain.Worksheet{}, fmt.Errorf("duty end: %w", err)
	}
	ws := domain.NewWorksheet().WithDuty(domain.Duty{Start: start, End: end})

	for i, b := range r.Breaks {
		start, err := b.StartTime.toDomain()
		if err != nil {
			return domain.Worksheet{}, fmt.Errorf("break %d start: %w", i+1, err)
		}
		end, err := b.EndTime.toDomain()
		if err != nil {
			return domain.Worksheet{}, fmt.Errorf("break %d end: %w", i+1, err)
		}
		id := b.ID
		if id == "" {
			id = ids.NewID()
		}
		if ws, err = ws.AddBreak(domain.Break{ID: id, Start: start, End: end}); err != nil {
			return domain.Worksheet{}, fmt.Errorf("break %d: %w", i+1, err)
		}
	}
	return ws, nil
}
