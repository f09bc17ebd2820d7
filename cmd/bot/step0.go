package main

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/tickit-io/tickit/pkg/entities"
	"github.com/tickit-io/tickit/pkg/logging"
)

// step0WelcomeEmbed is the welcome message shown when the configuration
// channel is created.
func step0WelcomeEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: WelcomeEmbedTitle,
		Color: ColourWizard,
		Description: "Welcome to the **Tickit Configuration** process! \n\n" +
			"This setup will guide you through the following steps:\n\n" +
			"1️⃣ **Select Configuration Mode**: Choose how the bot will operate.\n" +
			"2️⃣ **Assign Roles**: Select the role that will manage tickets.\n" +
			"3️⃣ **Set Up Channels**: Choose where tickets will be created.\n" +
			"4️⃣ **Configure Ticket Panel**: Set up the panel users will interact with.",
		Footer: &discordgo.MessageEmbedFooter{
			Text: `Click "Start Configuration" to begin.`,
		},
	}
}

func step0StartButton() discordgo.Button {
	return discordgo.Button{
		Label:    "Start Configuration",
		Style:    discordgo.PrimaryButton,
		CustomID: StartConfigurationButtonID,
		Emoji:    &discordgo.ComponentEmoji{Name: "\U0001F680"},
	}
}

// step0Initialize sends the welcome message with the start button.
func step0Initialize(a IApp, channelID string) error {
	if _, err := a.Session().ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{step0WelcomeEmbed()},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{step0StartButton()},
			},
		},
	}); err != nil {
		return fmt.Errorf("error sending welcome message: %w", err)
	}

	a.Log().Info("Sent welcome message to configuration channel",
		slog.String(logging.KeyChannelID, channelID))
	return nil
}

// step0HandleStart reacts to the "Start Configuration" button: the welcome
// message loses its footer and button, and Step 1 takes over.
func step0HandleStart(a IApp, i *discordgo.InteractionCreate, _ string) error {
	if err := deferUpdate(a, i); err != nil {
		return fmt.Errorf("error acknowledging interaction: %w", err)
	}

	// Strip the call to action from the welcome message so it cannot be
	// clicked twice from the UI. The step cursor still guards the transition
	// when two clicks land before the edit.
	if i.Message != nil && len(i.Message.Embeds) > 0 {
		updated := *i.Message.Embeds[0]
		updated.Footer = nil

		if _, err := a.Session().ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    i.ChannelID,
			ID:         i.Message.ID,
			Embeds:     &[]*discordgo.MessageEmbed{&updated},
			Components: &[]discordgo.MessageComponent{},
		}); err != nil {
			return fmt.Errorf("error updating welcome message: %w", err)
		}
	}

	if err := advanceWizard(a, i.GuildID, i.ChannelID, entities.StepWelcome); err != nil {
		return fmt.Errorf("error starting configuration: %w", err)
	}

	a.Log().Info("Admin started configuration",
		slog.String(logging.KeyGuildID, i.GuildID))
	return nil
}
