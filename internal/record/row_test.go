package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaubit/respirabot/internal/dialog"
)

func intp(n int) *int { return &n }

func confirmSession() *dialog.Session {
	return &dialog.Session{
		UserID:        42,
		FirstName:     "Iker",
		LastName:      "Etxeberria",
		Username:      "iker42",
		Branch:        dialog.BranchConfirm,
		StartedAt:     time.Date(2020, 4, 5, 10, 30, 0, 0, time.UTC),
		Province:      "Bizkaia",
		Delivered:     "Sí",
		QtyDeliveredA: intp(12),
		QtyDeliveredB: intp(3),
		PlaNeeded:     "Sí",
		PlaDiameter:   "1.75",
		CoilsReturned: "Sí",
		CoilsQty:      intp(2),
	}
}

func TestConfirmRowShape(t *testing.T) {
	persisted := time.Date(2020, 4, 5, 10, 42, 7, 0, time.UTC)
	row := ConfirmRow(confirmSession(), persisted)

	require.Len(t, row, 15)
	assert.Equal(t, []string{
		"05/04/2020 10:30:00",
		"05/04/2020 10:42:07",
		"Iker",
		"Etxeberria",
		"42",
		`=HYPERLINK("https://t.me/iker42", "iker42")`,
		"Bizkaia",
		"Sí",
		"12",
		"3",
		"Sí",
		"1.75",
		"NA", // PLA received amount is never asked
		"Sí",
		"2",
	}, row)
}

func TestConfirmRowAbortedPathKeepsWidth(t *testing.T) {
	s := &dialog.Session{
		UserID:    7,
		FirstName: "Ana",
		Branch:    dialog.BranchConfirm,
		StartedAt: time.Date(2020, 4, 5, 9, 0, 0, 0, time.UTC),
		Province:  "Álava",
		Delivered: "No", // pickup never happened, rest unanswered
	}
	row := ConfirmRow(s, time.Date(2020, 4, 5, 9, 5, 0, 0, time.UTC))

	require.Len(t, row, 15)
	assert.Equal(t, "No", row[7])
	for _, col := range row[8:] {
		assert.Equal(t, NotAvailable, col)
	}
	// No username: plain NA, not a hyperlink formula.
	assert.Equal(t, NotAvailable, row[5])
	assert.Equal(t, NotAvailable, row[3])
}

func TestScheduleRowShape(t *testing.T) {
	s := &dialog.Session{
		UserID:       42,
		FirstName:    "Iker",
		LastName:     "Etxeberria",
		Username:     "iker42",
		Branch:       dialog.BranchSchedule,
		StartedAt:    time.Date(2020, 4, 5, 10, 30, 0, 0, time.UTC),
		Province:     "Bizkaia",
		QtyPreparedA: intp(30),
		QtyPreparedB: intp(0),
		Municipality: "Getxo",
		Address:      "Calle Mayor 3",
		TimeWindow:   "Tarde",
		Phone:        "+34679123456",
	}
	row := ScheduleRow(s, time.Date(2020, 4, 5, 10, 48, 0, 0, time.UTC))

	require.Len(t, row, 13)
	assert.Equal(t, []string{
		"05/04/2020 10:30:00",
		"05/04/2020 10:48:00",
		"Iker",
		"Etxeberria",
		"42",
		`=HYPERLINK("https://t.me/iker42", "iker42")`,
		"Bizkaia",
		"30",
		"0",
		"Getxo",
		"Calle Mayor 3",
		"Tarde",
		"+34679123456",
	}, row)
}
