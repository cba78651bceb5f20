package dialog

import (
	"fmt"

	"github.com/gaubit/respirabot/internal/vocab"
)

// Input is one inbound turn, already reduced to a transport-neutral shape.
// ContactPhone is set when the user shared a structured contact.
type Input struct {
	Text         string
	ContactPhone string
}

// Reply is one outbound message plus its reply-keyboard hint.
type Reply struct {
	Text           string
	Choices        [][]string
	RequestContact bool
	RemoveKeyboard bool
}

// Outcome tells the engine what to do after a turn: which state comes next,
// what to send, and whether the session is finished.
type Outcome struct {
	Next State
	Replies []Reply
	// Misunderstood asks for the randomized apology followed by the
	// re-offered Choices for the current question.
	Misunderstood bool
	Choices       [][]string
	// Finalize hands the completed session to the record pipeline;
	// End disposes of the session. Finalize implies End.
	Finalize bool
	End      bool
}

// Machine is the pure conversation core: Step never performs I/O, it only
// classifies the input, records the answer on the session and decides what
// comes next.
type Machine struct {
	cat Catalog
}

func NewMachine(cat Catalog) *Machine {
	return &Machine{cat: cat}
}

// Greeting is the opening of a fresh session.
func (m *Machine) Greeting(firstName string) Reply {
	return Reply{
		Text:    fmt.Sprintf(m.cat.Text("saludo"), firstName),
		Choices: provinceRows,
	}
}

func (m *Machine) prompt(key string) Reply {
	return Reply{Text: m.cat.Text(key), RemoveKeyboard: true}
}

func (m *Machine) ask(key string, rows [][]string) Reply {
	return Reply{Text: m.cat.Text(key), Choices: rows}
}

func (m *Machine) farewell(firstName string) Reply {
	return Reply{
		Text:    fmt.Sprintf(m.cat.Text("fin"), firstName),
		Choices: restartRows,
	}
}

func stay(s *Session, replies ...Reply) Outcome {
	return Outcome{Next: s.State, Replies: replies}
}

func misunderstood(s *Session) Outcome {
	return Outcome{Next: s.State, Misunderstood: true, Choices: choiceRows(s.State)}
}

func (m *Machine) done(s *Session, replies ...Reply) Outcome {
	replies = append(replies, m.farewell(s.FirstName))
	return Outcome{Next: s.State, Replies: replies, Finalize: true, End: true}
}

// Step processes one turn for the session, which the caller must hold locked.
func (m *Machine) Step(s *Session, in Input) Outcome {
	cls := vocab.Classify(in.Text, Expect(s.State))

	switch s.State {
	case StateProvince:
		if cls.Result != vocab.Matched {
			return misunderstood(s)
		}
		s.Province = cls.Token
		return Outcome{Next: StateChooseBranch, Replies: []Reply{m.ask("pregunta_rama", branchRows)}}

	case StateChooseBranch:
		switch cls.Token {
		case "Confirmar":
			s.Branch = BranchConfirm
			return Outcome{Next: StateConfirmDelivery, Replies: []Reply{m.ask("confirma_entrega", yesNoRows)}}
		case "Programar":
			s.Branch = BranchSchedule
			return Outcome{Next: StateQtyPreparedA, Replies: []Reply{m.prompt("pide_cantidad_preparada")}}
		}
		return misunderstood(s)

	case StateConfirmDelivery:
		switch cls.Token {
		case "Sí":
			s.Delivered = "Sí"
			return Outcome{Next: StateQtyDeliveredA, Replies: []Reply{m.prompt("pide_cantidad_entregada")}}
		case "No":
			s.Delivered = "No"
			return Outcome{Next: StateNotDelivered, Replies: []Reply{m.ask("no_entregado", yesNoRows)}}
		}
		return misunderstood(s)

	case StateNotDelivered:
		switch cls.Token {
		case "Sí":
			return m.done(s, m.prompt("esperar"))
		case "No":
			return m.done(s, m.prompt("incidencia"))
		}
		return misunderstood(s)

	case StateQtyDeliveredA:
		if cls.Result != vocab.Numeric {
			return stay(s, m.prompt("error_cantidad_entregada"))
		}
		s.QtyDeliveredA = &cls.Number
		return Outcome{Next: StateQtyDeliveredB, Replies: []Reply{m.prompt("pide_cantidad_anterior")}}

	case StateQtyDeliveredB:
		if cls.Result != vocab.Numeric {
			return stay(s, m.prompt("error_cantidad_anterior"))
		}
		s.QtyDeliveredB = &cls.Number
		return Outcome{Next: StatePlaReceived, Replies: []Reply{m.ask("pregunta_pla", yesNoRows)}}

	case StatePlaReceived:
		switch cls.Token {
		case "Sí":
			s.PlaNeeded = "Sí"
			return Outcome{Next: StatePlaDiameter, Replies: []Reply{m.ask("pregunta_diametro", diameterRows)}}
		case "No":
			s.PlaNeeded = "No"
			if s.CoilsReturned != "" {
				return m.done(s)
			}
			return Outcome{Next: StateCoilsReturned, Replies: []Reply{m.ask("pregunta_bobinas", yesNoRows)}}
		}
		return misunderstood(s)

	case StatePlaDiameter:
		switch cls.Token {
		case "1.75":
			s.PlaDiameter = "1.75"
			return m.done(s, m.prompt("diametro_fino"))
		case "3":
			s.PlaDiameter = "3"
			return m.done(s, m.prompt("diametro_grueso"))
		}
		return misunderstood(s)

	case StateCoilsReturned:
		switch cls.Token {
		case "Sí":
			s.CoilsReturned = "Sí"
			return Outcome{Next: StateCoilsQty, Replies: []Reply{m.prompt("pide_cantidad_bobinas")}}
		case "No":
			s.CoilsReturned = "No"
			return Outcome{Next: StatePlaReceived, Replies: []Reply{m.ask("pregunta_pla", yesNoRows)}}
		}
		return misunderstood(s)

	case StateCoilsQty:
		if cls.Result != vocab.Numeric {
			return stay(s, m.prompt("error_cantidad_bobinas"))
		}
		s.CoilsQty = &cls.Number
		return Outcome{Next: StatePlaReceived, Replies: []Reply{m.ask("pregunta_pla", yesNoRows)}}

	case StateQtyPreparedA:
		if cls.Result != vocab.Numeric {
			return stay(s, m.prompt("error_cantidad_preparada"))
		}
		s.QtyPreparedA = &cls.Number
		return Outcome{Next: StateQtyPreparedB, Replies: []Reply{m.prompt("pide_cantidad_anterior_preparada")}}

	case StateQtyPreparedB:
		if cls.Result != vocab.Numeric {
			return stay(s, m.prompt("error_cantidad_anterior_preparada"))
		}
		s.QtyPreparedB = &cls.Number
		return Outcome{Next: StateMunicipality, Replies: []Reply{m.prompt("pide_municipio")}}

	case StateMunicipality:
		if cls.Result != vocab.Matched {
			return stay(s, m.prompt("pide_municipio"))
		}
		s.Municipality = cls.Token
		return Outcome{Next: StateAddress, Replies: []Reply{m.prompt("pide_direccion")}}

	case StateAddress:
		if cls.Result != vocab.Matched {
			return stay(s, m.prompt("pide_direccion"))
		}
		s.Address = cls.Token
		return Outcome{Next: StateTimeWindow, Replies: []Reply{m.ask("pregunta_horario", timeWindowRows)}}

	case StateTimeWindow:
		if cls.Result != vocab.Matched {
			return misunderstood(s)
		}
		s.TimeWindow = cls.Token
		return Outcome{Next: StatePhone, Replies: []Reply{{Text: m.cat.Text("pide_telefono"), RequestContact: true}}}

	case StatePhone:
		switch {
		case in.ContactPhone != "":
			s.Phone = in.ContactPhone
		case len([]rune(in.Text)) >= 9:
			s.Phone = in.Text
		default:
			return stay(s, Reply{Text: m.cat.Text("error_telefono"), RequestContact: true})
		}
		return m.done(s, m.prompt("recogida_programada"), m.prompt("prep_recogida"))
	}

	return misunderstood(s)
}
