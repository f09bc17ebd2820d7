package main

import (
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestStep3ChannelPickerOptions(t *testing.T) {
	textChannels := func(n int) []*discordgo.Channel {
		out := make([]*discordgo.Channel, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, &discordgo.Channel{
				ID:   fmt.Sprintf("chan-%d", i),
				Name: fmt.Sprintf("channel-%d", i),
				Type: discordgo.ChannelTypeGuildText,
			})
		}
		return out
	}

	tests := []struct {
		name     string
		channels []*discordgo.Channel
		wantLen  int
	}{
		{
			name:     "NoChannels",
			channels: nil,
			wantLen:  1,
		},
		{
			name:     "FewChannels",
			channels: textChannels(3),
			wantLen:  4,
		},
		{
			name:     "ExactlyAtLimit",
			channels: textChannels(channelPickerLimit),
			wantLen:  channelPickerLimit + 1,
		},
		{
			name:     "OneOverLimit",
			channels: textChannels(channelPickerLimit + 1),
			wantLen:  channelPickerLimit + 1,
		},
		{
			name:     "FarOverLimit",
			channels: textChannels(100),
			wantLen:  channelPickerLimit + 1,
		},
		{
			name: "NonTextChannelsFiltered",
			channels: []*discordgo.Channel{
				{ID: "cat-1", Name: "Tickit", Type: discordgo.ChannelTypeGuildCategory},
				{ID: "voice-1", Name: "Lounge", Type: discordgo.ChannelTypeGuildVoice},
				{ID: "chan-1", Name: "general", Type: discordgo.ChannelTypeGuildText},
			},
			wantLen: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := step3ChannelPickerOptions(tt.channels)

			require.Len(t, options, tt.wantLen)
			// Discord caps string select menus at 25 options.
			require.LessOrEqual(t, len(options), 25)
			require.Equal(t, ChannelOptionCancel, options[0].Value)
		})
	}
}

func TestStep3ChannelPickerOptionsTruncatesMultibyteNames(t *testing.T) {
	channels := []*discordgo.Channel{
		{
			ID:   "chan-1",
			Name: "техническая-поддержка-канал-очень-длинный",
			Type: discordgo.ChannelTypeGuildText,
		},
	}

	options := step3ChannelPickerOptions(channels)
	require.Len(t, options, 2)

	label := options[1].Label
	require.True(t, utf8.ValidString(label))
	require.LessOrEqual(t, len([]rune(label)), 25)
	require.NotEmpty(t, label)

	description := options[1].Description
	require.True(t, utf8.ValidString(description))
	require.LessOrEqual(t, len([]rune(description)), 45+len("Select #"))
}
