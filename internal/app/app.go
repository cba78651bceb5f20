// Package app assembles the bot: configuration, infrastructure, the dialog
// engine and the record pipeline.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/gaubit/respirabot/core/bootstrap"
	"github.com/gaubit/respirabot/core/buildinfo"
	corecmd "github.com/gaubit/respirabot/core/cmd"
	"github.com/gaubit/respirabot/core/logger"
	coretelegram "github.com/gaubit/respirabot/core/telegram"
	"github.com/gaubit/respirabot/core/telegram/commands"
	"github.com/gaubit/respirabot/core/telegram/helpers"
	"github.com/gaubit/respirabot/core/telegram/keyboard"
	"github.com/gaubit/respirabot/core/telegram/middleware"
	"github.com/gaubit/respirabot/core/telegram/router"
	"github.com/gaubit/respirabot/internal/archive"
	appconfig "github.com/gaubit/respirabot/internal/config"
	"github.com/gaubit/respirabot/internal/dialog"
	"github.com/gaubit/respirabot/internal/record"
	"github.com/gaubit/respirabot/internal/sheets"
)

// App wires every component of the bot together.
type App struct {
	cfg *appconfig.Config

	store     *dialog.Store
	engine    *dialog.Engine
	reaper    *dialog.Reaper
	finalizer *record.Finalizer
	archive   *archive.Store
	db        *sqlx.DB

	startedAt    time.Time
	reaperCancel context.CancelFunc
}

// LoadConfig adapts the application config loader to the runner contract.
func LoadConfig(path string) (corecmd.ConfigCarrier, error) {
	return appconfig.Load(path)
}

// Bootstrap initializes infrastructure and builds the application.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*appconfig.Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:       cfg.CoreConfig(),
		Database:     cfg.Database.Config,
		SkipDatabase: !cfg.Database.Enabled,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:       cfg,
		store:     dialog.NewStore(),
		db:        res.DB,
		startedAt: time.Now(),
	}

	cat := dialog.Catalog(cfg.Messages)
	machine := dialog.NewMachine(cat)
	responder := dialog.NewResponder(cat, rand.NewSource(time.Now().UnixNano()))

	client := sheets.NewClient(coretelegram.BuildHTTPClient(), cfg.Sheets.APIBase, cfg.Sheets.Token)
	targets := []record.Target{
		{Name: "sheets_primary", Spreadsheet: cfg.Sheets.Primary, Appender: client},
		{Name: "sheets_backup", Spreadsheet: cfg.Sheets.Backup, Appender: client},
	}
	if a.db != nil {
		a.archive = archive.New(a.db)
		targets = append(targets, record.Target{Name: "archive", Spreadsheet: cfg.Sheets.Primary, Appender: a.archive})
	}
	a.finalizer = record.NewFinalizer(
		targets,
		cfg.Sheets.ConfirmedSheet,
		cfg.Sheets.ScheduledSheet,
		time.Duration(cfg.Sheets.AppendTimeoutSeconds)*time.Second,
	)

	a.engine = dialog.NewEngine(a.store, machine, responder, a.finalizer, cat)
	a.reaper = dialog.NewReaper(
		a.store,
		cat,
		time.Duration(cfg.Conversation.TimeoutSeconds)*time.Second,
		time.Duration(cfg.Conversation.SweepIntervalSeconds)*time.Second,
		nil, // bound to the bot in OnStart
	)

	logger.APP.Info("app assembled",
		slog.String("event", "assembled"),
		slog.String("version", buildinfo.Version),
		slog.Bool("archive", a.archive != nil),
		slog.Int("targets", len(targets)),
	)
	return a, nil
}

// TelegramRunOptions builds the full bot wiring for the core runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.engine.Start,
		Description: "Empieza una conversación de recogida",
	})
	reg.RegisterCommand("/empezar", commands.Command{
		Handler:     a.engine.Start,
		Description: "Empieza una conversación de recogida",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.engine.Cancel,
		Description: "Cancela la conversación en curso",
		Aliases:     []string{"cancelar"},
	})
	reg.RegisterCommand("/estado", commands.Command{
		Handler:     a.statusHandler,
		Description: "Estado interno del bot",
		AdminOnly:   true,
		Hidden:      true,
	})

	reg.SetTextFallback(a.engine.MaybeStart)

	routes := router.TextRoutes(a.engine, reg, router.TextOptions{})
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})...)

	middleware.OnPanic = func(c tele.Context, _ any) {
		_ = a.engine.Fault(c, nil)
	}

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStart:     a.onStart,
		OnStop:      a.onStop,
	}, nil
}

func (a *App) onStart(ctx context.Context, rt coretelegram.Runtime) error {
	bot := rt.Bot
	a.reaper.Notify(func(userID int64, text string) {
		_, err := bot.Send(&tele.User{ID: userID}, text, keyboard.ReplyButtons([]string{"Empezar"}))
		if err != nil {
			logger.TG.Warn("expiry notice failed",
				slog.String("event", "session.expired.notify"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
	})

	reaperCtx, cancel := context.WithCancel(context.Background())
	a.reaperCancel = cancel
	go a.reaper.Run(reaperCtx)
	return nil
}

func (a *App) onStop(ctx context.Context, _ coretelegram.Runtime) error {
	if a.reaperCancel != nil {
		a.reaperCancel()
	}
	a.finalizer.Wait()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("app: close database: %w", err)
		}
	}
	return nil
}

func (a *App) statusHandler(c tele.Context) error {
	msg := fmt.Sprintf(
		"RespiraBot %s (%s)\nEn marcha desde hace %s\nConversaciones activas: %d",
		buildinfo.Version,
		buildinfo.Commit,
		time.Since(a.startedAt).Truncate(time.Second),
		a.store.Active(),
	)
	if a.archive != nil {
		ctx, cancel := context.WithTimeout(helpers.BuildContext(c), 5*time.Second)
		defer cancel()
		if n, err := a.archive.Count(ctx, ""); err == nil {
			msg += fmt.Sprintf("\nRegistros archivados: %d", n)
		}
	}
	return helpers.SendText(c, msg)
}
