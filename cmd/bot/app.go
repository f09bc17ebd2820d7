package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tickit-io/tickit/cmd/bot/config"
	"github.com/tickit-io/tickit/cmd/bot/monitoring"
	"github.com/tickit-io/tickit/pkg/dataaccess"
	"github.com/tickit-io/tickit/pkg/logging"
	"github.com/tickit-io/tickit/pkg/request"
	"golang.org/x/time/rate"
)

const (
	// PathMetrics is the path for metrics.
	PathMetrics = "/metrics"

	// PathHealth is the path for the health check.
	PathHealth = "/health"
)

// Ticket creation rate limit per user: one ticket every 30 seconds, with a
// small burst so a legitimate retry after a misclick is not punished.
const (
	ticketLimitRate  = rate.Limit(1.0 / 30.0)
	ticketLimitBurst = 2
)

// IApp is the surface the handlers work against. Handlers never touch the
// concrete App so they can be exercised with a fake in tests.
type IApp interface {
	// Log returns the application logger.
	Log() *slog.Logger

	// Session returns the discord session.
	Session() *discordgo.Session

	// GuildConfigDal returns the guild configuration data access layer.
	GuildConfigDal() dataaccess.GuildConfigDal

	// TicketDal returns the ticket data access layer.
	TicketDal() dataaccess.TicketDal

	// TicketLimiter returns the ticket creation rate limiter for a user.
	TicketLimiter(userID string) *rate.Limiter
}

type App struct {
	// l is the logger.
	l *slog.Logger

	// r is the router for the monitoring server.
	r *mux.Router

	// svr is the monitoring server.
	svr *http.Server

	// s is the discord session.
	s *discordgo.Session

	// limiters holds the per-user ticket creation limiters.
	limitersMtx sync.Mutex
	limiters    map[string]*rate.Limiter
}

// NewApp creates a new instance of App.
func NewApp(l *slog.Logger, r *mux.Router) *App {
	return &App{
		l:        l,
		r:        r,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (a *App) Run() error {
	if err := a.RegisterBot(); err != nil {
		return fmt.Errorf("error registering bot: %w", err)
	}

	a.s.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		a.l.Info(fmt.Sprintf("Logged in as %s#%s", r.User.Username, r.User.Discriminator))
	})

	if err := a.RegisterDiscordHandlers(); err != nil {
		return fmt.Errorf("error registering discord handlers: %w", err)
	}

	// Open websocket.
	if err := a.s.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	a.l.Info("Bot is now running.")

	a.generateServer()
	a.setupRoutes()
	a.runServer()

	// Register listener for shutdown signal.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	for sig := range c {
		a.l.Info("Received shutdown signal", slog.String("signal", sig.String()))
		if err := a.ShutdownHook(); err != nil {
			a.l.Error("Error shutting down application", slog.String(logging.KeyError, err.Error()))
		}
		os.Exit(0)
	}
	return nil
}

func (a *App) ShutdownHook() error {
	// Reset the total number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	if err := a.unregisterSlashCommands(); err != nil {
		return fmt.Errorf("error unregistering slash commands: %w", err)
	}

	// Close the connection to Discord.
	if err := a.s.Close(); err != nil {
		return fmt.Errorf("error closing connection to Discord: %w", err)
	}
	return nil
}

func (a *App) RegisterBot() error {
	// Default the number of guilds to 0. GuildCreate events on connect count
	// it back up.
	monitoring.TotalDiscordGuilds.Set(0)

	dg, err := discordgo.New("Bot " + config.BotToken)
	if err != nil {
		return fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsAll)

	a.s = dg
	return nil
}

func (a *App) runServer() {
	go func() {
		a.l.Info("Starting monitoring server", slog.String("addr", a.svr.Addr))
		if err := a.svr.ListenAndServe(); err != nil {
			a.l.Error("Error starting monitoring server", slog.String(logging.KeyError, err.Error()))
			a.l.Warn("Monitoring server will not be available")
		}
	}()
}

func (a *App) setupRoutes() {
	a.r.HandleFunc(PathMetrics, promhttp.Handler().ServeHTTP).Methods(http.MethodGet)
	a.r.HandleFunc(PathHealth, middlewareHttp(a.healthCheck(), a)).Methods(http.MethodGet)

	a.r.NotFoundHandler = request.NotFoundHandler(a.l)
	a.r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.l)
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:    ":" + config.MonitoringPort,
		Handler: a.r,
	}
}

func (a *App) RegisterDiscordHandlers() error {
	// Bot joined guild. Slash commands are registered per guild from here,
	// which also covers guilds joined while the bot is running.
	a.s.AddHandler(guildJoinedHandler(a))

	// Bot left guild.
	a.s.AddHandler(guildLeaveHandler(a))

	// "ping" responder.
	a.s.AddHandler(pingHandler(a))

	// Every gateway event, counted by type.
	a.s.AddHandler(func(_ *discordgo.Session, e *discordgo.Event) {
		if e.Type != "" {
			monitoring.TotalDiscordEvents.WithLabelValues(e.Type).Inc()
		}
	})

	a.s.AddHandler(interactionHandler(a, &routes{
		slash: slashRoutes(),
		buttons: map[string]componentHandler{
			StartConfigurationButtonID: step0HandleStart,
			SetupTicketPanelButtonID:   step4HandleSetup,
			EditTicketPanelButtonID:    step4HandleEdit,
			CreateTicketButtonID: func(a IApp, i *discordgo.InteractionCreate, _ string) error {
				return createTicket(a, i)
			},
			CloseTicketButtonID: func(a IApp, i *discordgo.InteractionCreate, _ string) error {
				return closeTicket(a, i)
			},
		},
		stringSelect: map[string]componentHandler{
			ConfigurationModeSelectID:  step1HandleModeSelection,
			ChannelSelectionID:         step3HandleChannelChoice,
			ExistingChannelSelectionID: step3HandleExistingSelection,
		},
		roleSelect: map[string]componentHandler{
			RoleSelectionID: step2HandleRoleSelection,
		},
		modals: map[string]componentHandler{
			EditTicketPanelModalID: step4HandleModalSubmit,
		},
	}))
	return nil
}

// registerGuildSlashCommands upserts every bot command on one guild.
func registerGuildSlashCommands(a IApp, guildID string) error {
	for _, cmd := range botCommands {
		if _, err := a.Session().ApplicationCommandCreate(config.ApplicationId, guildID, cmd); err != nil {
			return fmt.Errorf("error creating command %s for guild %s: %w", cmd.Name, guildID, err)
		}
	}
	return nil
}

func (a *App) unregisterSlashCommands() error {
	guilds, err := a.s.UserGuilds(0, "", "", false)
	if err != nil {
		return fmt.Errorf("error getting guilds: %w", err)
	}

	for _, guild := range guilds {
		// The IDs assigned at registration are not kept, so list what the
		// platform has and delete each one.
		cmds, err := a.s.ApplicationCommands(config.ApplicationId, guild.ID)
		if err != nil {
			return fmt.Errorf("error listing commands for guild %s: %w", guild.ID, err)
		}

		for _, cmd := range cmds {
			if err := a.s.ApplicationCommandDelete(config.ApplicationId, guild.ID, cmd.ID); err != nil {
				return fmt.Errorf("error deleting command %s for guild %s: %w", cmd.Name, guild.ID, err)
			}
		}
	}
	return nil
}

func (a *App) Log() *slog.Logger {
	return a.l
}

func (a *App) Session() *discordgo.Session {
	return a.s
}

// GuildConfigDal constructs the DAL on demand; the Mongo connection is not
// established until after configuration parsing.
func (a *App) GuildConfigDal() dataaccess.GuildConfigDal {
	return dataaccess.NewGuildConfigDal()
}

func (a *App) TicketDal() dataaccess.TicketDal {
	return dataaccess.NewTicketDal()
}

func (a *App) TicketLimiter(userID string) *rate.Limiter {
	a.limitersMtx.Lock()
	defer a.limitersMtx.Unlock()

	limiter, ok := a.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(ticketLimitRate, ticketLimitBurst)
		a.limiters[userID] = limiter
	}
	return limiter
}
