package ics_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/eventcal/internal/ics"
	"github.com/Tiliavir/eventcal/internal/model"
)

func TestExport(t *testing.T) {
	events := []model.Event{
		{
			ID:          "ev-1",
			Title:       "Dentist checkup",
			Category:    model.CategoryHealth,
			Date:        time.Date(2025, 6, 11, 14, 30, 0, 0, time.UTC),
			Description: "bring insurance card",
		},
		{
			ID:       "ev-2",
			Title:    "Pay rent",
			Category: model.CategoryFinance,
			Date:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ics.Export(&buf, events))
	out := buf.String()

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "END:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Dentist checkup")
	assert.Contains(t, out, "SUMMARY:Pay rent")
	assert.Contains(t, out, "CATEGORIES:health")
	assert.Contains(t, out, "CATEGORIES:finance")
	assert.Contains(t, out, "DESCRIPTION:bring insurance card")
	// Events export as all-day entries on their calendar day.
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250611")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250612")
}

func TestExportEmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ics.Export(&buf, nil))
	out := buf.String()

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}
