package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gaubit/respirabot/core/logger"

	tele "gopkg.in/telebot.v4"
)

// OnPanic, when set, lets the application answer the user after a recovered fault.
var OnPanic func(c tele.Context, recovered any)

// RecoverMiddleware catches panics in handlers and prevents the bot from crashing
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
				if OnPanic != nil {
					OnPanic(c, r)
				}
			}
		}()
		return next(c)
	}
}
