package main

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/tickit-io/tickit/pkg/logging"
)

func respondEphemeral(a IApp, i *discordgo.InteractionCreate, content string) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondOrFollowUp guarantees one message reaches the user: a reply when the
// interaction has not been acknowledged yet, a follow-up otherwise.
func respondOrFollowUp(a IApp, i *discordgo.InteractionCreate, content string) error {
	if err := respondEphemeral(a, i, content); err == nil {
		return nil
	}

	if _, err := a.Session().FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		return fmt.Errorf("error sending follow up: %w", err)
	}
	return nil
}

// deferUpdate acknowledges a component interaction without changing the message.
func deferUpdate(a IApp, i *discordgo.InteractionCreate) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// updateComponents acknowledges a component interaction by replacing the
// components on the message it came from.
func updateComponents(a IApp, i *discordgo.InteractionCreate, components []discordgo.MessageComponent) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Components: components,
		},
	})
}

func hasRole(member *discordgo.Member, roleID string) bool {
	if member == nil || roleID == "" {
		return false
	}
	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

var channelNameInvalidChars = regexp.MustCompile(`[^a-z0-9-]`)

// slugifyChannelName builds a ticket channel name from a username: prefixed,
// lowercased and stripped of anything outside [a-z0-9-].
func slugifyChannelName(username string) string {
	name := strings.ToLower(TicketChannelPrefix + username)
	return channelNameInvalidChars.ReplaceAllString(name, "")
}

// truncateRunes shortens s to at most max runes, with an ellipsis when it had
// to cut. Rune-based so a multibyte name near the limit is never split
// mid-character into invalid UTF-8.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// uniqueChannelName resolves name collisions by suffixing an incrementing
// counter until the name is unused in the guild.
func uniqueChannelName(channels []*discordgo.Channel, base string) string {
	taken := make(map[string]struct{}, len(channels))
	for _, c := range channels {
		taken[c.Name] = struct{}{}
	}

	name := base
	for counter := 1; ; counter++ {
		if _, ok := taken[name]; !ok {
			return name
		}
		name = fmt.Sprintf("%s-%d", base, counter)
	}
}

// sendTransientNotice sends a plain message that deletes itself after ttl.
// The delete is fire and forget; a failure is logged, never surfaced.
func sendTransientNotice(a IApp, channelID, content string, ttl time.Duration) {
	msg, err := a.Session().ChannelMessageSend(channelID, content)
	if err != nil {
		a.Log().Error("Error sending transient notice",
			slog.String(logging.KeyChannelID, channelID),
			slog.String(logging.KeyError, err.Error()),
		)
		return
	}

	scheduleMessageDelete(a, channelID, msg.ID, ttl)
}

func scheduleMessageDelete(a IApp, channelID, messageID string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		if err := a.Session().ChannelMessageDelete(channelID, messageID); err != nil {
			a.Log().Error("Error deleting scheduled message",
				slog.String(logging.KeyChannelID, channelID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	})
}

// historyHasEmbedTitle reports whether any message carries an embed with the
// exact given title. This is the fallback idempotency guard for wizard steps.
func historyHasEmbedTitle(msgs []*discordgo.Message, title string) bool {
	for _, m := range msgs {
		for _, e := range m.Embeds {
			if e.Title == title {
				return true
			}
		}
	}
	return false
}

// findPanelMessage finds the ticket panel message in a history window. The
// title is matched by substring because the panel title is editable.
func findPanelMessage(msgs []*discordgo.Message) *discordgo.Message {
	for _, m := range msgs {
		for _, e := range m.Embeds {
			if strings.Contains(e.Title, PanelEmbedTitleMarker) {
				return m
			}
		}
	}
	return nil
}

// modalInputValue pulls a text input's value out of a modal submission.
func modalInputValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range ar.Components {
			in, ok := c.(*discordgo.TextInput)
			if !ok {
				continue
			}
			if in.CustomID == customID {
				return in.Value
			}
		}
	}
	return ""
}
