package record

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gaubit/respirabot/core/logger"
	"github.com/gaubit/respirabot/internal/dialog"
)

// Appender pushes one row to a spreadsheet destination.
type Appender interface {
	Append(ctx context.Context, spreadsheet, sheet string, row []string) error
}

// Target is one destination a finished record is written to.
type Target struct {
	Name        string
	Spreadsheet string
	Appender    Appender
}

// Finalizer writes every completed session once to each target. Targets are
// independent: a failure on one never blocks or cancels the others, and the
// conversation is already over either way, so failures are only logged.
type Finalizer struct {
	targets        []Target
	confirmedSheet string
	scheduledSheet string
	timeout        time.Duration
	now            func() time.Time

	wg sync.WaitGroup
}

func NewFinalizer(targets []Target, confirmedSheet, scheduledSheet string, timeout time.Duration) *Finalizer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Finalizer{
		targets:        targets,
		confirmedSheet: confirmedSheet,
		scheduledSheet: scheduledSheet,
		timeout:        timeout,
		now:            time.Now,
	}
}

// Finalize snapshots the session into a row while the caller still holds it
// and appends to all targets in the background.
func (f *Finalizer) Finalize(s *dialog.Session) {
	var (
		sheet string
		row   []string
	)
	switch s.Branch {
	case dialog.BranchSchedule:
		sheet = f.scheduledSheet
		row = ScheduleRow(s, f.now())
	default:
		sheet = f.confirmedSheet
		row = ConfirmRow(s, f.now())
	}

	userID := s.UserID
	for _, t := range f.targets {
		t := t
		f.wg.Add(1)
		go func() {
			defer f.wg.Done()
			f.append(t, sheet, row, userID)
		}()
	}
}

func (f *Finalizer) append(t Target, sheet string, row []string, userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	started := f.now()
	err := t.Appender.Append(ctx, t.Spreadsheet, sheet, row)
	attrs := []slog.Attr{
		slog.String("target", t.Name),
		slog.String("sheet", sheet),
		slog.Int64("user_id", userID),
		slog.Int("columns", len(row)),
		slog.Duration("took", logger.Took(started)),
	}
	if err != nil {
		logger.Error(ctx, "records", "append.failed", append(attrs, slog.String("err", err.Error()))...)
		return
	}
	logger.Info(ctx, "records", "append.ok", attrs...)
}

// Wait blocks until all in-flight appends finish. Used on shutdown.
func (f *Finalizer) Wait() {
	f.wg.Wait()
}
