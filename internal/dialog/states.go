package dialog

import "github.com/gaubit/respirabot/internal/vocab"

// State identifies the question a session is currently waiting on.
type State string

const (
	StateProvince        State = "province"
	StateChooseBranch    State = "choose_branch"
	StateConfirmDelivery State = "confirm_delivery"
	StateNotDelivered    State = "not_delivered"
	StateQtyDeliveredA   State = "qty_delivered_osakidetza"
	StateQtyDeliveredB   State = "qty_delivered_previous"
	StatePlaReceived     State = "pla_needed"
	StatePlaDiameter     State = "pla_diameter"
	StateCoilsReturned   State = "coils_returned"
	StateCoilsQty        State = "coils_returned_qty"
	StateQtyPreparedA    State = "qty_prepared_osakidetza"
	StateQtyPreparedB    State = "qty_prepared_previous"
	StateMunicipality    State = "municipality"
	StateAddress         State = "address"
	StateTimeWindow      State = "time_window"
	StatePhone           State = "phone"
)

// Branch records which of the two flows the session committed to.
type Branch string

const (
	BranchNone     Branch = ""
	BranchConfirm  Branch = "Confirmar"
	BranchSchedule Branch = "Programar"
)

var (
	yesNoSpec = vocab.Choice(vocab.YesNo("Sí", "No")...)

	branchSpec = vocab.Choice(
		vocab.Entry{Variant: "Programar", Token: "Programar"},
		vocab.Entry{Variant: "programar", Token: "Programar"},
		vocab.Entry{Variant: "Confirmar recogida", Token: "Confirmar"},
		vocab.Entry{Variant: "confirmar recogida", Token: "Confirmar"},
	)

	// Ordered widest-first so "1.75" never falls through to the bare "1".
	diameterSpec = vocab.Choice(
		vocab.Entry{Variant: "1.75mm", Token: "1.75"},
		vocab.Entry{Variant: "1.75 mm", Token: "1.75"},
		vocab.Entry{Variant: "1.75", Token: "1.75"},
		vocab.Entry{Variant: "1,75", Token: "1.75"},
		vocab.Entry{Variant: "175", Token: "1.75"},
		vocab.Entry{Variant: "3mm", Token: "3"},
		vocab.Entry{Variant: "3 mm", Token: "3"},
		vocab.Entry{Variant: "3", Token: "3"},
		vocab.Entry{Variant: "1", Token: "1.75"},
	)

	timeWindowSpec = vocab.Choice(
		vocab.Entry{Variant: "Mañana", Token: "Mañana"},
		vocab.Entry{Variant: "mañana", Token: "Mañana"},
		vocab.Entry{Variant: "Tarde", Token: "Tarde"},
		vocab.Entry{Variant: "tarde", Token: "Tarde"},
		vocab.Entry{Variant: "Todo el día", Token: "Todo el día"},
		vocab.Entry{Variant: "todo el día", Token: "Todo el día"},
	)
)

// expectations maps each state to the vocabulary it waits for.
var expectations = map[State]vocab.Spec{
	StateProvince:        vocab.Text(),
	StateChooseBranch:    branchSpec,
	StateConfirmDelivery: yesNoSpec,
	StateNotDelivered:    yesNoSpec,
	StateQtyDeliveredA:   vocab.Integer(),
	StateQtyDeliveredB:   vocab.Integer(),
	StatePlaReceived:     yesNoSpec,
	StatePlaDiameter:     diameterSpec,
	StateCoilsReturned:   yesNoSpec,
	StateCoilsQty:        vocab.Integer(),
	StateQtyPreparedA:    vocab.Integer(),
	StateQtyPreparedB:    vocab.Integer(),
	StateMunicipality:    vocab.Text(),
	StateAddress:         vocab.Text(),
	StateTimeWindow:      timeWindowSpec,
	StatePhone:           vocab.Text(),
}

// Expect returns the vocabulary spec a state waits for.
func Expect(st State) vocab.Spec {
	return expectations[st]
}

var (
	provinceRows   = [][]string{{"Álava", "Bizkaia", "Gipuzkoa"}}
	branchRows     = [][]string{{"Confirmar recogida", "Programar recogida"}}
	yesNoRows      = [][]string{{"Sí", "No"}}
	diameterRows   = [][]string{{"1.75mm", "3mm"}}
	timeWindowRows = [][]string{{"Mañana", "Tarde", "Todo el día"}}
	restartRows    = [][]string{{"Empezar"}}
)

// choiceRows returns the reply buttons offered for a state, nil when the
// state expects free text or a number.
func choiceRows(st State) [][]string {
	switch st {
	case StateProvince:
		return provinceRows
	case StateChooseBranch:
		return branchRows
	case StateConfirmDelivery, StateNotDelivered, StatePlaReceived, StateCoilsReturned:
		return yesNoRows
	case StatePlaDiameter:
		return diameterRows
	case StateTimeWindow:
		return timeWindowRows
	}
	return nil
}
