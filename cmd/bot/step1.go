package main

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/tickit-io/tickit/pkg/entities"
	"github.com/tickit-io/tickit/pkg/logging"
	"github.com/tickit-io/tickit/pkg/messages"
)

func step1ModeEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: ModeEmbedTitle,
		Color: ColourWizard,
		Description: "**Please select the mode in which the bot will operate:**\n\n" +
			"\U0001F4BB **Run Locally**: Keep everything local to your Discord server.\n" +
			"\U0001F310 **Use Online Dashboard** *(Coming Soon)*: Manage tickets via an online dashboard.\n\n" +
			"Choose an option below to proceed.",
		Footer: &discordgo.MessageEmbedFooter{
			Text: "\U0001F504 You can change this later if needed.",
		},
	}
}

// step1ModeSelect builds the mode menu. localDefault marks the "Run Locally"
// option as selected, which is how a completed choice is rendered.
func step1ModeSelect(localDefault bool) discordgo.SelectMenu {
	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    ConfigurationModeSelectID,
		Placeholder: "Select Configuration Mode",
		Options: []discordgo.SelectMenuOption{
			{
				Label:       "Run Locally",
				Description: "Keep everything local to your Discord server.",
				Value:       ModeRunLocally,
				Emoji:       &discordgo.ComponentEmoji{Name: "\U0001F4BB"},
				Default:     localDefault,
			},
			{
				Label:       "Use Online Dashboard",
				Description: "Manage tickets via the online dashboard (coming soon).",
				Value:       ModeOnlineDashboard,
				Emoji:       &discordgo.ComponentEmoji{Name: "\U0001F310"},
			},
		},
	}
}

// step1Initialize sends the configuration mode selection message.
func step1Initialize(a IApp, channelID string) error {
	if _, err := a.Session().ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{step1ModeEmbed()},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{step1ModeSelect(false)},
			},
		},
	}); err != nil {
		return fmt.Errorf("error sending mode selection message: %w", err)
	}

	a.Log().Info("Sent configuration mode selection message",
		slog.String(logging.KeyChannelID, channelID))
	return nil
}

// step1HandleModeSelection reacts to the mode menu. The dashboard mode is not
// available yet; picking it resets the menu and tells the admin. Run locally
// marks the choice and hands over to Step 2.
func step1HandleModeSelection(a IApp, i *discordgo.InteractionCreate, _ string) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return respondEphemeral(a, i, messages.ErrUnknownAction)
	}

	switch values[0] {
	case ModeOnlineDashboard:
		if err := respondEphemeral(a, i, messages.ErrDashboardComingSoon); err != nil {
			return fmt.Errorf("error responding to interaction: %w", err)
		}

		// Put the menu back to its unselected state.
		if _, err := a.Session().ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel: i.ChannelID,
			ID:      i.Message.ID,
			Components: &[]discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{step1ModeSelect(false)},
				},
			},
		}); err != nil {
			return fmt.Errorf("error resetting mode menu: %w", err)
		}
		return nil

	case ModeRunLocally:
		if err := updateComponents(a, i, []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{step1ModeSelect(true)},
			},
		}); err != nil {
			return fmt.Errorf("error updating mode menu: %w", err)
		}

		if err := advanceWizard(a, i.GuildID, i.ChannelID, entities.StepMode); err != nil {
			return fmt.Errorf("error advancing to role selection: %w", err)
		}

		a.Log().Info("Configuration mode updated",
			slog.String(logging.KeyGuildID, i.GuildID),
			slog.String("mode", values[0]),
		)
		return nil

	default:
		// Not one of the step's enumerated values. Acknowledge and move on.
		a.Log().Warn("Unknown configuration mode value",
			slog.String(logging.KeyGuildID, i.GuildID),
			slog.String("value", values[0]),
		)
		return respondEphemeral(a, i, messages.ErrUnknownAction)
	}
}
