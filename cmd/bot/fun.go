package main

import (
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/tickit-io/tickit/pkg/logging"
)

// pingHandler replies to "ping" messages with a pong. Messages from bots are
// ignored so two bots cannot ping-pong each other forever.
func pingHandler(a IApp) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}
		if strings.ToLower(m.Content) != "ping" {
			return
		}

		if _, err := a.Session().ChannelMessageSendReply(m.ChannelID, "Pong! \U0001F3D3", m.Reference()); err != nil {
			a.Log().Error("Error replying to ping",
				slog.String(logging.KeyChannelID, m.ChannelID),
				slog.String(logging.KeyError, err.Error()),
			)
			return
		}

		a.Log().Info("Replied to ping",
			slog.String(logging.KeyGuildID, m.GuildID),
			slog.String(logging.KeyChannelID, m.ChannelID),
		)
	}
}
