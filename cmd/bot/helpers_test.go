package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestSlugifyChannelName(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     string
	}{
		{
			name:     "Plain",
			username: "alice",
			want:     "ticket-alice",
		},
		{
			name:     "Uppercase",
			username: "Alice",
			want:     "ticket-alice",
		},
		{
			name:     "SpacesAndSymbols",
			username: "A lice!#99",
			want:     "ticket-alice99",
		},
		{
			name:     "UnicodeStripped",
			username: "día_света",
			want:     "ticket-da",
		},
		{
			name:     "Empty",
			username: "",
			want:     "ticket-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, slugifyChannelName(tt.username))
		})
	}
}

func TestUniqueChannelName(t *testing.T) {
	channelsNamed := func(names ...string) []*discordgo.Channel {
		out := make([]*discordgo.Channel, 0, len(names))
		for _, n := range names {
			out = append(out, &discordgo.Channel{Name: n})
		}
		return out
	}

	tests := []struct {
		name     string
		channels []*discordgo.Channel
		base     string
		want     string
	}{
		{
			name:     "NoCollision",
			channels: channelsNamed("general", "random"),
			base:     "ticket-alice",
			want:     "ticket-alice",
		},
		{
			name:     "OneCollision",
			channels: channelsNamed("ticket-alice"),
			base:     "ticket-alice",
			want:     "ticket-alice-1",
		},
		{
			name:     "MultipleCollisions",
			channels: channelsNamed("ticket-alice", "ticket-alice-1", "ticket-alice-2"),
			base:     "ticket-alice",
			want:     "ticket-alice-3",
		},
		{
			name:     "NoChannels",
			channels: nil,
			base:     "ticket-alice",
			want:     "ticket-alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, uniqueChannelName(tt.channels, tt.base))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{
			name:  "Short",
			input: "general",
			max:   25,
			want:  "general",
		},
		{
			name:  "ExactlyMax",
			input: strings.Repeat("a", 25),
			max:   25,
			want:  strings.Repeat("a", 25),
		},
		{
			name:  "OverMax",
			input: strings.Repeat("a", 30),
			max:   25,
			want:  strings.Repeat("a", 22) + "...",
		},
		{
			name:  "MultibyteOverMax",
			input: strings.Repeat("日", 30),
			max:   25,
			want:  strings.Repeat("日", 22) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateRunes(tt.input, tt.max)
			require.Equal(t, tt.want, got)
			require.True(t, utf8.ValidString(got))
			require.LessOrEqual(t, len([]rune(got)), tt.max)
		})
	}
}

func TestHistoryHasEmbedTitle(t *testing.T) {
	msgs := []*discordgo.Message{
		{Content: "plain message"},
		{Embeds: []*discordgo.MessageEmbed{{Title: RoleEmbedTitle}}},
		{Embeds: []*discordgo.MessageEmbed{{Title: "something else"}, {Title: ChannelEmbedTitle}}},
	}

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{
			name:  "FirstEmbed",
			title: RoleEmbedTitle,
			want:  true,
		},
		{
			name:  "SecondEmbedOnMessage",
			title: ChannelEmbedTitle,
			want:  true,
		},
		{
			name:  "Missing",
			title: WelcomeEmbedTitle,
			want:  false,
		},
		{
			name:  "SubstringDoesNotMatch",
			title: "Step 2",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, historyHasEmbedTitle(msgs, tt.title))
		})
	}
}

func TestFindPanelMessage(t *testing.T) {
	tests := []struct {
		name   string
		msgs   []*discordgo.Message
		wantID string
	}{
		{
			name: "DefaultTitle",
			msgs: []*discordgo.Message{
				{ID: "1", Embeds: []*discordgo.MessageEmbed{{Title: PanelEmbedTitle}}},
			},
			wantID: "1",
		},
		{
			name: "EditedTitleKeepsMarker",
			msgs: []*discordgo.Message{
				{ID: "1", Content: "noise"},
				{ID: "2", Embeds: []*discordgo.MessageEmbed{{Title: "Acme Support Ticket Panel"}}},
			},
			wantID: "2",
		},
		{
			name: "NoPanel",
			msgs: []*discordgo.Message{
				{ID: "1", Embeds: []*discordgo.MessageEmbed{{Title: "Welcome"}}},
			},
			wantID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findPanelMessage(tt.msgs)
			if tt.wantID == "" {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestModalInputValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: EditTicketPanelModalID + ":123",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: PanelTitleInputID, Value: "My Ticket Panel"},
				},
			},
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: PanelDescriptionInputID, Value: "Press the button."},
				},
			},
		},
	}

	require.Equal(t, "My Ticket Panel", modalInputValue(data, PanelTitleInputID))
	require.Equal(t, "Press the button.", modalInputValue(data, PanelDescriptionInputID))
	require.Empty(t, modalInputValue(data, "unknown-input"))
}

func TestHasRole(t *testing.T) {
	member := &discordgo.Member{Roles: []string{"1", "2"}}

	require.True(t, hasRole(member, "2"))
	require.False(t, hasRole(member, "3"))
	require.False(t, hasRole(member, ""))
	require.False(t, hasRole(nil, "1"))
}
