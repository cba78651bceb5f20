package dialog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gaubit/respirabot/core/logger"
	"github.com/gaubit/respirabot/core/telegram/helpers"
	"github.com/gaubit/respirabot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Finalizer hands a completed session to the record pipeline. It must copy
// whatever it needs before returning: the session is disposed of right after.
type Finalizer interface {
	Finalize(s *Session)
}

// entryLiterals restart a conversation even while one is in progress.
// Matched exactly and case-sensitively.
var entryLiterals = map[string]struct{}{
	"Vamos":   {},
	"vamos":   {},
	"Empezar": {},
	"empezar": {},
}

// Engine glues the conversation core to the bot transport: it owns session
// acquisition, reply delivery and turn-level fault recovery, and delegates
// every decision to the Machine.
type Engine struct {
	store     *Store
	machine   *Machine
	responder *Responder
	finalizer Finalizer
	cat       Catalog
	now       func() time.Time
}

func NewEngine(store *Store, machine *Machine, responder *Responder, finalizer Finalizer, cat Catalog) *Engine {
	return &Engine{
		store:     store,
		machine:   machine,
		responder: responder,
		finalizer: finalizer,
		cat:       cat,
		now:       time.Now,
	}
}

// Store exposes the session store for status reporting.
func (e *Engine) Store() *Store { return e.store }

// InProgress reports whether the user has a conversation going.
func (e *Engine) InProgress(userID int64) bool {
	return e.store.InProgress(userID)
}

// Start opens a fresh conversation, replacing any previous one.
func (e *Engine) Start(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}

	sess := e.store.Begin(user.ID, user.FirstName, user.LastName, user.Username, e.now())
	ctx := helpers.BuildContext(c)
	logger.Info(ctx, "dialog", "session.start",
		slog.String("state", string(sess.State)),
	)
	return e.deliver(c, e.machine.Greeting(user.FirstName))
}

// Cancel ends the conversation without persisting anything.
func (e *Engine) Cancel(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}

	ctx := helpers.BuildContext(c)
	if !e.store.Discard(user.ID) {
		return helpers.SendWithKeyboard(c, e.cat.Text("sin_conversacion"), keyboard.ReplyButtons(restartRows...))
	}
	logger.Info(ctx, "dialog", "session.cancel")
	return helpers.SendWithKeyboard(c, e.cat.Text("cancelado"), keyboard.RemoveKeyboard())
}

// MaybeStart handles text arriving outside a conversation: entry literals
// open one, anything else gets a pointer at /empezar.
func (e *Engine) MaybeStart(c tele.Context) error {
	if _, ok := entryLiterals[c.Text()]; ok {
		return e.Start(c)
	}
	return helpers.SendWithKeyboard(c, e.cat.Text("sin_conversacion"), keyboard.ReplyButtons(restartRows...))
}

// HandleTurn processes one inbound message for a session in progress. A
// runtime fault inside the turn ends the session with an apology instead of
// crashing the update loop.
func (e *Engine) HandleTurn(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}

	// Entry literals restart even mid-conversation.
	if _, ok := entryLiterals[c.Text()]; ok {
		return e.Start(c)
	}

	sess, release, ok := e.store.Acquire(user.ID)
	if !ok {
		return e.MaybeStart(c)
	}

	out, faulted := e.step(c, sess, release)
	if faulted {
		return e.Fault(c, nil)
	}

	var err error
	if out.Misunderstood {
		err = e.apologize(c, out.Choices)
	}
	for _, r := range out.Replies {
		if sendErr := e.deliver(c, r); sendErr != nil && err == nil {
			err = sendErr
		}
	}
	return err
}

// step runs the machine under the session lock and applies the outcome,
// converting a panic in the conversation core into a faulted turn.
func (e *Engine) step(c tele.Context, sess *Session, release func()) (out Outcome, faulted bool) {
	defer release()
	defer func() {
		if r := recover(); r != nil {
			faulted = true
			e.store.Remove(sess)
			ctx := helpers.BuildContext(c)
			logger.Error(ctx, "dialog", "turn.fault",
				slog.String("state", string(sess.State)),
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()

	in := Input{Text: c.Text()}
	if msg := c.Message(); msg != nil && msg.Contact != nil {
		in.ContactPhone = msg.Contact.PhoneNumber
	}

	before := sess.State
	out = e.machine.Step(sess, in)
	sess.State = out.Next
	sess.LastTurn = e.now()

	ctx := helpers.BuildContext(c)
	logger.Debug(ctx, "dialog", "turn",
		slog.String("from", string(before)),
		slog.String("to", string(out.Next)),
		slog.Bool("understood", !out.Misunderstood),
		slog.Bool("end", out.End),
	)

	if out.Finalize {
		e.finalizer.Finalize(sess)
	}
	if out.End {
		took := e.now().Sub(sess.StartedAt)
		e.store.Remove(sess)
		logger.Info(ctx, "dialog", "session.end",
			slog.String("branch", string(sess.Branch)),
			slog.Duration("took", took),
		)
	}
	return out, false
}

func (e *Engine) apologize(c tele.Context, choices [][]string) error {
	user := c.Sender()
	text := e.responder.Compose(user.FirstName)
	if len(choices) == 0 {
		return helpers.SendText(c, text)
	}
	return helpers.SendWithKeyboard(c, text, keyboard.ReplyButtons(choices...))
}

func (e *Engine) deliver(c tele.Context, r Reply) error {
	switch {
	case len(r.Choices) > 0:
		return helpers.SendWithKeyboard(c, r.Text, keyboard.ReplyButtons(r.Choices...))
	case r.RequestContact:
		return helpers.SendWithKeyboard(c, r.Text, keyboard.ContactRequest("Compartir contacto 📱"))
	case r.RemoveKeyboard:
		return helpers.SendWithKeyboard(c, r.Text, keyboard.RemoveKeyboard())
	default:
		return helpers.SendText(c, r.Text)
	}
}

// Fault discards the user's session after an unrecoverable handler error and
// apologizes. Nothing is persisted. Safe to call with no session in progress.
func (e *Engine) Fault(c tele.Context, _ any) error {
	if user := c.Sender(); user != nil {
		e.store.Discard(user.ID)
	}
	return helpers.SendWithKeyboard(c, e.cat.Text("error_generico"), keyboard.ReplyButtons(restartRows...))
}
