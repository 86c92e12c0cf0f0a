package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reclaim/internal/core/domain"
)

func TestHistoryCmd_List(t *testing.T) {
	_, _, h, _ := setupServices(t)
	report := sampleReport()
	report.StartedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.reports = []domain.Report{*report}

	out, err := execute(t, "", "history", "--limit", "5")

	require.NoError(t, err)
	assert.Equal(t, 5, h.limit)
	assert.Contains(t, out, "ev-1")
	assert.Contains(t, out, "1 deleted, 1 reparented, 1 skipped")
}

func TestHistoryCmd_Empty(t *testing.T) {
	setupServices(t)

	out, err := execute(t, "", "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No deletion events recorded.")
}

func TestHistoryCmd_Event(t *testing.T) {
	_, _, h, _ := setupServices(t)
	h.reports = []domain.Report{*sampleReport()}

	out, err := execute(t, "", "history", "ev-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Event ev-1: record 10 at -")
	assert.Contains(t, out, "media 55 [standard]: delete")

	_, err = execute(t, "", "history", "ev-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
