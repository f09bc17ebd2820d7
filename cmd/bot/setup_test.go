package main

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
	"github.com/tickit-io/tickit/pkg/entities"
)

func TestDeriveStepFromHistory(t *testing.T) {
	withTitles := func(titles ...string) []*discordgo.Message {
		out := make([]*discordgo.Message, 0, len(titles))
		for _, title := range titles {
			out = append(out, &discordgo.Message{
				Embeds: []*discordgo.MessageEmbed{{Title: title}},
			})
		}
		return out
	}

	tests := []struct {
		name string
		msgs []*discordgo.Message
		want entities.WizardStep
	}{
		{
			name: "Empty",
			msgs: nil,
			want: entities.StepWelcome,
		},
		{
			name: "WelcomeOnly",
			msgs: withTitles(WelcomeEmbedTitle),
			want: entities.StepWelcome,
		},
		{
			name: "ModeSent",
			msgs: withTitles(WelcomeEmbedTitle, ModeEmbedTitle),
			want: entities.StepMode,
		},
		{
			name: "RoleSent",
			msgs: withTitles(WelcomeEmbedTitle, ModeEmbedTitle, RoleEmbedTitle),
			want: entities.StepRole,
		},
		{
			name: "ChannelSent",
			msgs: withTitles(ModeEmbedTitle, RoleEmbedTitle, ChannelEmbedTitle),
			want: entities.StepChannel,
		},
		{
			name: "PanelInstructionSent",
			msgs: withTitles(ChannelEmbedTitle, PanelSetupEmbedTitle),
			want: entities.StepPanel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, deriveStepFromHistory(tt.msgs))
		})
	}
}

func TestInitializeConfigurationChannelRebuildsDocument(t *testing.T) {
	// The configuration channel exists but the database has no document for
	// the guild: the bootstrap must recreate it with the cursor derived from
	// the channel's history, or the wizard dead-ends.
	dal := &guildConfigDalStub{}

	session := newStubSession(t, func(r *http.Request) (int, string) {
		switch {
		case strings.Contains(r.URL.Path, "/guilds/"):
			return http.StatusOK, `[` +
				`{"id":"cat-1","type":4,"name":"Tickit"},` +
				`{"id":"chan-1","type":0,"name":"configuration"}` +
				`]`
		case strings.Contains(r.URL.Path, "/messages"):
			return http.StatusOK, fmt.Sprintf(`[`+
				`{"id":"msg-1","embeds":[{"title":%q}]},`+
				`{"id":"msg-2","embeds":[{"title":%q}]}`+
				`]`, WelcomeEmbedTitle, RoleEmbedTitle)
		}
		return http.StatusOK, `{}`
	})
	a := &testApp{l: discardLogger(), s: session, dal: dal}

	require.NoError(t, initializeConfigurationChannel(a, &discordgo.Guild{ID: "guild-1"}))

	require.NotNil(t, dal.cfg)
	require.Equal(t, "guild-1", dal.cfg.ID)
	require.Equal(t, "chan-1", dal.cfg.ConfigChannelID)
	require.Equal(t, entities.StepRole, dal.cfg.CurrentStep)
}

func TestInitializeConfigurationChannelLeavesIntactDocument(t *testing.T) {
	dal := &guildConfigDalStub{cfg: &entities.GuildConfig{
		ID:              "guild-1",
		CurrentStep:     entities.StepDone,
		ConfigChannelID: "chan-1",
	}}

	session := newStubSession(t, func(r *http.Request) (int, string) {
		if strings.Contains(r.URL.Path, "/guilds/") {
			return http.StatusOK, `[{"id":"chan-1","type":0,"name":"configuration"}]`
		}
		return http.StatusOK, `{}`
	})
	a := &testApp{l: discardLogger(), s: session, dal: dal}

	require.NoError(t, initializeConfigurationChannel(a, &discordgo.Guild{ID: "guild-1"}))

	require.Zero(t, dal.saves)
	require.Equal(t, entities.StepDone, dal.cfg.CurrentStep)
}
