package usecase

import (
	"strings"
	"sync"

	"duty-validator/internal/domain"
	"duty-validator/internal/logging"
)

// ValidationUseCase is the primary port for duty validation.
type ValidationUseCase interface {
	Validate(ws domain.Worksheet) domain.ValidationResult
	ValidateWith(ws domain.Worksheet, policy domain.LegalPolicy) (domain.ValidationResult, error)
	Settings() domain.Settings
	UpdateSettings(settings domain.Settings) error
}

// validationInteractor implements ValidationUseCase.
// It depends only on domain layer and secondary ports.
type validationInteractor struct {
	repo domain.SettingsRepository

	mu       sync.RWMutex
	settings domain.Settings
}

// NewValidationUseCase loads settings from repo and prepares the use case.
func NewValidationUseCase(repo domain.SettingsRepository) (ValidationUseCase, error) {
	settings, err := repo.Load()
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &validationInteractor{repo: repo, settings: settings}, nil
}

// Validate checks the worksheet with the configured legal policy.
func (v *validationInteractor) Validate(ws domain.Worksheet) domain.ValidationResult {
	return v.run(ws, v.Settings())
}

// ValidateWith checks the worksheet with policy instead of the configured one.
// The configured thresholds still apply.
func (v *validationInteractor) ValidateWith(ws domain.Worksheet, policy domain.LegalPolicy) (domain.ValidationResult, error) {
	settings := v.Settings()
	p, err := domain.ParseLegalPolicy(string(policy))
	if err != nil {
		return domain.ValidationResult{}, err
	}
	settings.LegalPolicy = p
	return v.run(ws, settings), nil
}

func (v *validationInteractor) run(ws domain.Worksheet, settings domain.Settings) domain.ValidationResult {
	logging.Debugf("Duty: %s-%s", ws.Duty.Start, ws.Duty.End)
	if len(ws.Breaks) == 0 {
		logging.Debugf("No breaks provided")
	}
	for i, b := range ws.Breaks {
		logging.Debugf("Break %d (%s): %s-%s", i+1, b.ID, b.Start, b.End)
	}
	if logging.Enabled(logging.LevelTrace) {
		for i, b := range ws.Breaks {
			for j, other := range ws.Breaks {
				if i != j {
					logging.Tracef("Break %d vs Break %d: overlap=%t", i+1, j+1, domain.BreaksOverlap(b, other))
				}
			}
		}
	}

	result := domain.NewValidator(settings.LegalRule()).Validate(ws.Duty, ws.Breaks)

	if result.Valid {
		logging.Infof("duty valid (policy=%s, duration=%dm, breaks=%d)", settings.LegalPolicy, result.DutyDurationMinutes, len(ws.Breaks))
	} else {
		logging.Infof("duty invalid (policy=%s): %s", settings.LegalPolicy,
			strings.Join(append(append([]string{}, result.Issues...), result.LegalIssues...), "; "))
	}
	return result
}

// Settings returns the current settings snapshot.
func (v *validationInteractor) Settings() domain.Settings {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.settings
}

// UpdateSettings validates and persists new settings.
func (v *validationInteractor) UpdateSettings(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	p, _ := domain.ParseLegalPolicy(string(settings.LegalPolicy))
	settings.LegalPolicy = p

	if err := v.repo.Save(settings); err != nil {
		return err
	}

	v.mu.Lock()
	v.settings = settings
	v.mu.Unlock()
	logging.Infof("settings updated: policy=%s maxDuty=%dm minBreak=%dm",
		settings.LegalPolicy, settings.MaxDutyWithoutBreak, settings.MinBreak)
	return nil
}
