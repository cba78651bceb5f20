package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	now := time.Date(2020, 4, 5, 10, 0, 0, 0, time.UTC)
	return &Session{
		UserID:    42,
		FirstName: "Iker",
		LastName:  "Etxeberria",
		Username:  "iker42",
		State:     StateProvince,
		StartedAt: now,
		LastTurn:  now,
	}
}

// script feeds each text in turn, applying Next the way the engine does, and
// returns the last outcome.
func script(t *testing.T, m *Machine, s *Session, texts ...string) Outcome {
	t.Helper()
	var out Outcome
	for _, text := range texts {
		out = m.Step(s, Input{Text: text})
		s.State = out.Next
	}
	return out
}

func TestConfirmFlowFullLoop(t *testing.T) {
	m := NewMachine(nil)
	s := newTestSession()

	// Delivered, then loop through coils before accepting PLA.
	out := script(t, m, s,
		"Bizkaia",
		"Confirmar recogida",
		"Sí",
		"12",
		"3",
		"No",   // no PLA yet, coils not asked: goes to coils
		"Sí",   // coils returned
		"2",    // how many
		"Sí",   // back on PLA, now yes
		"1.75mm",
	)

	assert.True(t, out.Finalize)
	assert.True(t, out.End)

	assert.Equal(t, "Bizkaia", s.Province)
	assert.Equal(t, BranchConfirm, s.Branch)
	assert.Equal(t, "Sí", s.Delivered)
	require.NotNil(t, s.QtyDeliveredA)
	assert.Equal(t, 12, *s.QtyDeliveredA)
	require.NotNil(t, s.QtyDeliveredB)
	assert.Equal(t, 3, *s.QtyDeliveredB)
	assert.Equal(t, "Sí", s.PlaNeeded)
	assert.Equal(t, "1.75", s.PlaDiameter)
	assert.Equal(t, "Sí", s.CoilsReturned)
	require.NotNil(t, s.CoilsQty)
	assert.Equal(t, 2, *s.CoilsQty)
}

func TestConfirmFlowNoPlaNoCoilsTerminates(t *testing.T) {
	m := NewMachine(nil)
	s := newTestSession()

	// Second "No" on PLA after coils were answered must end the session
	// rather than loop forever.
	out := script(t, m, s,
		"Álava",
		"Confirmar recogida",
		"Sí",
		"5",
		"0",
		"No", // PLA: no, coils unanswered -> ask coils
		"No", // coils: no -> ask PLA again
		"No", // PLA again: coils are answered now -> done
	)

	assert.True(t, out.Finalize)
	assert.True(t, out.End)
	assert.Equal(t, "No", s.PlaNeeded)
	assert.Equal(t, "No", s.CoilsReturned)
	assert.Nil(t, s.CoilsQty)
	assert.Empty(t, s.PlaDiameter)
}

func TestNotDeliveredBothAnswersFinalize(t *testing.T) {
	for _, answer := range []string{"Sí", "No"} {
		m := NewMachine(nil)
		s := newTestSession()

		out := script(t, m, s,
			"Gipuzkoa",
			"Confirmar recogida",
			"No",   // delivery did not happen
			answer, // wait (Sí) or report (No)
		)

		assert.True(t, out.Finalize, "answer %s", answer)
		assert.True(t, out.End, "answer %s", answer)
		assert.Equal(t, "No", s.Delivered)
		assert.Nil(t, s.QtyDeliveredA)
	}
}

func TestScheduleFlowWithContactPhone(t *testing.T) {
	m := NewMachine(nil)
	s := newTestSession()

	script(t, m, s,
		"Bizkaia",
		"Programar recogida",
		"30",
		"4",
		"Getxo",
		"Calle Mayor 3",
		"Tarde",
	)
	require.Equal(t, StatePhone, s.State)

	out := m.Step(s, Input{ContactPhone: "+34679123456"})
	assert.True(t, out.Finalize)
	assert.True(t, out.End)

	assert.Equal(t, BranchSchedule, s.Branch)
	require.NotNil(t, s.QtyPreparedA)
	assert.Equal(t, 30, *s.QtyPreparedA)
	require.NotNil(t, s.QtyPreparedB)
	assert.Equal(t, 4, *s.QtyPreparedB)
	assert.Equal(t, "Getxo", s.Municipality)
	assert.Equal(t, "Calle Mayor 3", s.Address)
	assert.Equal(t, "Tarde", s.TimeWindow)
	assert.Equal(t, "+34679123456", s.Phone)
}

func TestPhoneTextRules(t *testing.T) {
	m := NewMachine(nil)
	s := newTestSession()

	script(t, m, s,
		"Bizkaia",
		"Programar recogida",
		"10",
		"0",
		"Bilbao",
		"Gran Vía 1",
		"Mañana",
	)

	// Too short: corrective re-prompt, no transition, nothing final.
	out := m.Step(s, Input{Text: "679"})
	assert.Equal(t, StatePhone, out.Next)
	assert.False(t, out.Finalize)
	assert.False(t, out.Misunderstood)
	require.Len(t, out.Replies, 1)
	assert.True(t, out.Replies[0].RequestContact)
	assert.Empty(t, s.Phone)

	// Nine characters or more is taken verbatim.
	out = m.Step(s, Input{Text: "679123456"})
	assert.True(t, out.Finalize)
	assert.Equal(t, "679123456", s.Phone)
}

func TestMisunderstoodKeepsStateAndAnswers(t *testing.T) {
	m := NewMachine(nil)
	s := newTestSession()

	script(t, m, s, "Bizkaia", "Confirmar recogida")
	require.Equal(t, StateConfirmDelivery, s.State)

	out := m.Step(s, Input{Text: "quizás"})
	assert.True(t, out.Misunderstood)
	assert.Equal(t, StateConfirmDelivery, out.Next)
	assert.Equal(t, yesNoRows, out.Choices)
	assert.Empty(t, out.Replies)
	assert.Empty(t, s.Delivered)
	assert.Equal(t, "Bizkaia", s.Province)
}

func TestNumericRejectionUsesCorrectivePrompt(t *testing.T) {
	m := NewMachine(nil)
	s := newTestSession()

	script(t, m, s, "Bizkaia", "Confirmar recogida", "Sí")
	require.Equal(t, StateQtyDeliveredA, s.State)

	out := m.Step(s, Input{Text: "doce"})
	assert.Equal(t, StateQtyDeliveredA, out.Next)
	assert.False(t, out.Misunderstood)
	require.Len(t, out.Replies, 1)
	assert.Equal(t, defaultTexts["error_cantidad_entregada"], out.Replies[0].Text)
	assert.Nil(t, s.QtyDeliveredA)
}

func TestDiameterVariants(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"1.75mm", "1.75"},
		{"1.75 mm", "1.75"},
		{"1,75", "1.75"},
		{"175", "1.75"},
		{"1", "1.75"},
		{"3mm", "3"},
		{"3 mm", "3"},
		{"3", "3"},
	}

	for _, tc := range cases {
		m := NewMachine(nil)
		s := newTestSession()
		script(t, m, s, "Bizkaia", "Confirmar recogida", "Sí", "1", "1", "Sí")
		require.Equal(t, StatePlaDiameter, s.State)

		out := m.Step(s, Input{Text: tc.text})
		assert.True(t, out.Finalize, "text %q", tc.text)
		assert.Equal(t, tc.want, s.PlaDiameter, "text %q", tc.text)
	}
}

func TestBasqueAnswersAccepted(t *testing.T) {
	m := NewMachine(nil)
	s := newTestSession()

	script(t, m, s, "Gipuzkoa", "Confirmar recogida", "Bai")
	assert.Equal(t, "Sí", s.Delivered)
	assert.Equal(t, StateQtyDeliveredA, s.State)
}

func TestFarewellCarriesFirstName(t *testing.T) {
	m := NewMachine(nil)
	s := newTestSession()

	out := script(t, m, s,
		"Bizkaia", "Confirmar recogida", "Sí", "1", "1", "Sí", "3mm",
	)

	require.NotEmpty(t, out.Replies)
	last := out.Replies[len(out.Replies)-1]
	assert.Contains(t, last.Text, "Iker")
	assert.Equal(t, restartRows, last.Choices)
}

func TestCatalogOverride(t *testing.T) {
	cat := Catalog{"pregunta_rama": "zer moduz lagundu?"}
	m := NewMachine(cat)
	s := newTestSession()

	out := m.Step(s, Input{Text: "Bizkaia"})
	require.Len(t, out.Replies, 1)
	assert.Equal(t, "zer moduz lagundu?", out.Replies[0].Text)
}
