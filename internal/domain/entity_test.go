package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duty-validator/internal/domain"
)

func TestWorksheet_Defaults(t *testing.T) {
	ws := domain.NewWorksheet()
	assert.Equal(t, domain.Duty{Start: clock(8, 0), End: clock(16, 0)}, ws.Duty)
	assert.Empty(t, ws.Breaks)

	b := domain.DefaultBreak("x")
	assert.Equal(t, "x", b.ID)
	assert.Equal(t, 60, domain.Duration(b.Start, b.End))
}

func TestWorksheet_EditingIsImmutable(t *testing.T) {
	ws := domain.NewWorksheet()

	withA, err := ws.AddBreak(domain.DefaultBreak("a"))
	require.NoError(t, err)
	withAB, err := withA.AddBreak(brk(2, clock(14, 0), clock(14, 15)))
	require.NoError(t, err)

	assert.Empty(t, ws.Breaks)
	assert.Len(t, withA.Breaks, 1)
	assert.Len(t, withAB.Breaks, 2)

	updated, err := withAB.UpdateBreak("a", clock(11, 0), clock(11, 45))
	require.NoError(t, err)
	assert.Equal(t, clock(12, 0), withAB.Breaks[0].Start)
	assert.Equal(t, clock(11, 0), updated.Breaks[0].Start)
	assert.Equal(t, "b2", updated.Breaks[1].ID)

	removed, err := updated.RemoveBreak("a")
	require.NoError(t, err)
	assert.Len(t, updated.Breaks, 2)
	require.Len(t, removed.Breaks, 1)
	assert.Equal(t, "b2", removed.Breaks[0].ID)

	moved := removed.WithDuty(domain.Duty{Start: clock(22, 0), End: nextDay(6, 0)})
	assert.Equal(t, domain.DefaultDuty(), removed.Duty)
	assert.Equal(t, nextDay(6, 0), moved.Duty.End)
	assert.Equal(t, removed.Breaks, moved.Breaks)
}

func TestWorksheet_Errors(t *testing.T) {
	ws, err := domain.NewWorksheet().AddBreak(domain.DefaultBreak("a"))
	require.NoError(t, err)

	_, err = ws.AddBreak(domain.DefaultBreak("a"))
	assert.ErrorIs(t, err, domain.ErrDuplicateBreakID)
	_, err = ws.RemoveBreak("zzz")
	assert.ErrorIs(t, err, domain.ErrBreakNotFound)
	_, err = ws.UpdateBreak("zzz", clock(1, 0), clock(2, 0))
	assert.ErrorIs(t, err, domain.ErrBreakNotFound)
}

func TestWorksheet_BreakID(t *testing.T) {
	ws, _ := domain.NewWorksheet().AddBreak(domain.DefaultBreak("lunch"))
	ws, _ = ws.AddBreak(domain.DefaultBreak("7"))

	id, err := ws.BreakID("lunch")
	require.NoError(t, err)
	assert.Equal(t, "lunch", id)

	id, err = ws.BreakID("2")
	require.NoError(t, err)
	assert.Equal(t, "7", id)

	id, err = ws.BreakID("7")
	require.NoError(t, err)
	assert.Equal(t, "7", id, "ids win over break numbers")

	_, err = ws.BreakID("3")
	assert.ErrorIs(t, err, domain.ErrBreakNotFound)
}
