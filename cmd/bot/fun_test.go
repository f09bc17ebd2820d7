package main

import (
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestPingHandler(t *testing.T) {
	tests := []struct {
		name      string
		message   *discordgo.Message
		wantSends int
	}{
		{
			name: "Ping",
			message: &discordgo.Message{
				ID:        "msg-1",
				ChannelID: "chan-1",
				Content:   "ping",
				Author:    &discordgo.User{ID: "user-1"},
			},
			wantSends: 1,
		},
		{
			name: "CaseInsensitive",
			message: &discordgo.Message{
				ID:        "msg-1",
				ChannelID: "chan-1",
				Content:   "PING",
				Author:    &discordgo.User{ID: "user-1"},
			},
			wantSends: 1,
		},
		{
			name: "BotAuthorIgnored",
			message: &discordgo.Message{
				ID:        "msg-1",
				ChannelID: "chan-1",
				Content:   "ping",
				Author:    &discordgo.User{ID: "bot-1", Bot: true},
			},
			wantSends: 0,
		},
		{
			name: "OtherContentIgnored",
			message: &discordgo.Message{
				ID:        "msg-1",
				ChannelID: "chan-1",
				Content:   "ping me later",
				Author:    &discordgo.User{ID: "user-1"},
			},
			wantSends: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sends := 0
			session := newStubSession(t, func(r *http.Request) (int, string) {
				if r.Method == http.MethodPost {
					sends++
				}
				return http.StatusOK, `{"id":"reply-1"}`
			})
			a := &testApp{l: discardLogger(), s: session}

			handler := pingHandler(a)
			handler(session, &discordgo.MessageCreate{Message: tt.message})

			require.Equal(t, tt.wantSends, sends)
		})
	}
}
