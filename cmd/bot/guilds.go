package main

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/tickit-io/tickit/cmd/bot/monitoring"
	"github.com/tickit-io/tickit/pkg/logging"
)

// guildJoinedHandler bootstraps the configuration channel the moment the bot
// lands in a new guild. GuildCreate also fires for every guild on connect, so
// the bootstrap has to stay idempotent.
func guildJoinedHandler(a IApp) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(_ *discordgo.Session, g *discordgo.GuildCreate) {
		monitoring.TotalDiscordGuilds.Inc()

		a.Log().Info("Joined guild",
			slog.String(logging.KeyGuildID, g.ID),
			slog.String("guild_name", g.Name),
		)

		if err := initializeConfigurationChannel(a, g.Guild); err != nil {
			a.Log().Error("Error initializing configuration channel",
				slog.String(logging.KeyGuildID, g.ID),
				slog.String(logging.KeyError, err.Error()),
			)
		}

		if err := registerGuildSlashCommands(a, g.ID); err != nil {
			a.Log().Error("Error registering slash commands",
				slog.String(logging.KeyGuildID, g.ID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}
}

func guildLeaveHandler(a IApp) func(s *discordgo.Session, g *discordgo.GuildDelete) {
	return func(_ *discordgo.Session, g *discordgo.GuildDelete) {
		if g.Unavailable {
			// An outage, not a removal.
			return
		}

		monitoring.TotalDiscordGuilds.Dec()
		a.Log().Info("Left guild", slog.String(logging.KeyGuildID, g.ID))
	}
}
