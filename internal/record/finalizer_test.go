package record

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaubit/respirabot/internal/dialog"
)

type fakeAppender struct {
	mu   sync.Mutex
	rows map[string][][]string // spreadsheet/sheet -> rows
	err  error
}

func newFakeAppender(err error) *fakeAppender {
	return &fakeAppender{rows: make(map[string][][]string), err: err}
}

func (f *fakeAppender) Append(_ context.Context, spreadsheet, sheet string, row []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	key := spreadsheet + "/" + sheet
	f.rows[key] = append(f.rows[key], row)
	return nil
}

func (f *fakeAppender) got(key string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[key]
}

func TestFinalizeFansOutToAllTargets(t *testing.T) {
	primary := newFakeAppender(nil)
	backup := newFakeAppender(nil)
	fin := NewFinalizer([]Target{
		{Name: "primary", Spreadsheet: "sheet-a", Appender: primary},
		{Name: "backup", Spreadsheet: "sheet-b", Appender: backup},
	}, "Confirmadas", "Programadas", time.Second)

	fin.Finalize(confirmSession())
	fin.Wait()

	require.Len(t, primary.got("sheet-a/Confirmadas"), 1)
	require.Len(t, backup.got("sheet-b/Confirmadas"), 1)
	assert.Equal(t, primary.got("sheet-a/Confirmadas"), backup.got("sheet-b/Confirmadas"))
}

func TestFinalizeFailedTargetDoesNotBlockOthers(t *testing.T) {
	primary := newFakeAppender(errors.New("quota exceeded"))
	backup := newFakeAppender(nil)
	fin := NewFinalizer([]Target{
		{Name: "primary", Spreadsheet: "sheet-a", Appender: primary},
		{Name: "backup", Spreadsheet: "sheet-b", Appender: backup},
	}, "Confirmadas", "Programadas", time.Second)

	fin.Finalize(confirmSession())
	fin.Wait()

	assert.Len(t, backup.got("sheet-b/Confirmadas"), 1)
}

func TestFinalizeRoutesScheduleBranch(t *testing.T) {
	target := newFakeAppender(nil)
	fin := NewFinalizer([]Target{
		{Name: "primary", Spreadsheet: "sheet-a", Appender: target},
	}, "Confirmadas", "Programadas", time.Second)

	s := &dialog.Session{
		UserID:    1,
		FirstName: "Ana",
		Branch:    dialog.BranchSchedule,
		StartedAt: time.Now(),
	}
	fin.Finalize(s)
	fin.Wait()

	rows := target.got("sheet-a/Programadas")
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 13)
	assert.Empty(t, target.got("sheet-a/Confirmadas"))
}
