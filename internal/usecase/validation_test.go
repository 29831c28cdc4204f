package usecase_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duty-validator/internal/domain"
	"duty-validator/internal/logging"
	"duty-validator/internal/usecase"
)

type memoryRepo struct {
	settings domain.Settings
	saves    int
	loadErr  error
	saveErr  error
}

func (m *memoryRepo) Load() (domain.Settings, error) {
	return m.settings, m.loadErr
}

func (m *memoryRepo) Save(s domain.Settings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.settings = s
	return nil
}

func longDuty() domain.Worksheet {
	return domain.NewWorksheet()
}

func TestValidate_UsesConfiguredPolicy(t *testing.T) {
	repo := &memoryRepo{settings: domain.DefaultSettings()}
	uc, err := usecase.NewValidationUseCase(repo)
	require.NoError(t, err)

	res := uc.Validate(longDuty())
	assert.False(t, res.Valid)
	assert.Len(t, res.LegalIssues, 1)

	stub := domain.DefaultSettings()
	stub.LegalPolicy = domain.PolicyStub
	require.NoError(t, uc.UpdateSettings(stub))
	assert.Equal(t, 1, repo.saves)

	res = uc.Validate(longDuty())
	assert.True(t, res.Valid)
	assert.Empty(t, res.LegalIssues)
}

func TestValidateWith_OverridesPolicyOnly(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.MaxDutyWithoutBreak = 600
	uc, err := usecase.NewValidationUseCase(&memoryRepo{settings: settings})
	require.NoError(t, err)

	res, err := uc.ValidateWith(longDuty(), domain.PolicyBreakRule)
	require.NoError(t, err)
	assert.True(t, res.Valid, "480 minutes is under the configured 600 minute threshold")

	_, err = uc.ValidateWith(longDuty(), "bogus")
	assert.ErrorIs(t, err, domain.ErrUnknownPolicy)
	assert.Equal(t, domain.PolicyBreakRule, uc.Settings().LegalPolicy)
}

func TestUpdateSettings_RejectsInvalid(t *testing.T) {
	repo := &memoryRepo{settings: domain.DefaultSettings()}
	uc, err := usecase.NewValidationUseCase(repo)
	require.NoError(t, err)

	bad := domain.DefaultSettings()
	bad.MaxDutyWithoutBreak = -1
	assert.ErrorIs(t, uc.UpdateSettings(bad), domain.ErrInvalidThreshold)
	assert.Equal(t, 0, repo.saves)
	assert.Equal(t, domain.DefaultSettings(), uc.Settings())
}

func TestUpdateSettings_KeepsOldSettingsWhenSaveFails(t *testing.T) {
	repo := &memoryRepo{settings: domain.DefaultSettings(), saveErr: errors.New("disk full")}
	uc, err := usecase.NewValidationUseCase(repo)
	require.NoError(t, err)

	stub := domain.DefaultSettings()
	stub.LegalPolicy = domain.PolicyStub
	assert.EqualError(t, uc.UpdateSettings(stub), "disk full")
	assert.Equal(t, domain.PolicyBreakRule, uc.Settings().LegalPolicy)
}

func TestNewValidationUseCase_Errors(t *testing.T) {
	_, err := usecase.NewValidationUseCase(&memoryRepo{loadErr: errors.New("boom")})
	assert.EqualError(t, err, "boom")

	_, err = usecase.NewValidationUseCase(&memoryRepo{settings: domain.Settings{LegalPolicy: "x", MaxDutyWithoutBreak: 1, MinBreak: 1}})
	assert.ErrorIs(t, err, domain.ErrUnknownPolicy)
}

func TestValidate_TracesBreakPairs(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	logging.SetVerbosity(3)
	t.Cleanup(func() {
		logging.SetOutput(os.Stderr)
		logging.SetVerbosity(0)
	})

	uc, err := usecase.NewValidationUseCase(&memoryRepo{settings: domain.DefaultSettings()})
	require.NoError(t, err)

	ws := domain.NewWorksheet()
	ws.Breaks = []domain.Break{
		{ID: "a", Start: domain.ClockTime{Hour: 12}, End: domain.ClockTime{Hour: 13}},
		{ID: "b", Start: domain.ClockTime{Hour: 12, Minute: 30}, End: domain.ClockTime{Hour: 14}},
		{ID: "c", Start: domain.ClockTime{Hour: 14}, End: domain.ClockTime{Hour: 15}},
	}
	res := uc.Validate(ws)
	assert.False(t, res.Valid)

	logs := buf.String()
	assert.Contains(t, logs, "[TRC] Break 1 vs Break 2: overlap=true")
	assert.Contains(t, logs, "[TRC] Break 2 vs Break 3: overlap=false")

	buf.Reset()
	logging.SetVerbosity(2)
	uc.Validate(ws)
	assert.NotContains(t, buf.String(), "[TRC]")
}
