// Package record turns completed conversations into spreadsheet rows and
// pushes them to every configured destination.
package record

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gaubit/respirabot/internal/dialog"
)

// NotAvailable fills every column whose question was never reached, so the
// two row shapes keep fixed widths for the people reading the sheets.
const NotAvailable = "NA"

// Row timestamps use the sheet-local day-first layout.
const timeLayout = "02/01/2006 15:04:05"

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

func intOrNA(p *int) string {
	if p == nil {
		return NotAvailable
	}
	return strconv.Itoa(*p)
}

// userLink renders a clickable t.me hyperlink formula for the handle, or NA
// for users without one.
func userLink(username string) string {
	if username == "" {
		return NotAvailable
	}
	return fmt.Sprintf("=HYPERLINK(\"https://t.me/%s\", \"%s\")", username, username)
}

func head(s *dialog.Session, persistedAt time.Time) []string {
	return []string{
		s.StartedAt.Format(timeLayout),
		persistedAt.Format(timeLayout),
		orNA(s.FirstName),
		orNA(s.LastName),
		strconv.FormatInt(s.UserID, 10),
		userLink(s.Username),
		orNA(s.Province),
	}
}

// ConfirmRow builds the fifteen-column row for the confirmed-delivery sheet.
func ConfirmRow(s *dialog.Session, persistedAt time.Time) []string {
	row := head(s, persistedAt)
	row = append(row,
		orNA(s.Delivered),
		intOrNA(s.QtyDeliveredA),
		intOrNA(s.QtyDeliveredB),
		orNA(s.PlaNeeded),
		orNA(s.PlaDiameter),
		NotAvailable, // qty of PLA handed over; the flow never asks for it
		orNA(s.CoilsReturned),
		intOrNA(s.CoilsQty),
	)
	return row
}

// ScheduleRow builds the thirteen-column row for the scheduled-pickup sheet.
func ScheduleRow(s *dialog.Session, persistedAt time.Time) []string {
	row := head(s, persistedAt)
	row = append(row,
		intOrNA(s.QtyPreparedA),
		intOrNA(s.QtyPreparedB),
		orNA(s.Municipality),
		orNA(s.Address),
		orNA(s.TimeWindow),
		orNA(s.Phone),
	)
	return row
}
