package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/tickit-io/tickit/pkg/entities"
	"github.com/tickit-io/tickit/pkg/logging"
	"github.com/tickit-io/tickit/pkg/messages"
)

func step3ChannelEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: ChannelEmbedTitle,
		Color: ColourWizard,
		Description: "\U0001F4C1 **Where would you like tickets to be created?**\n\n" +
			"You have two options for setting up ticket creation:\n\n" +
			"\U0001F4DD **Create a new channel**:\n" +
			"This option will create a dedicated channel named \"\U0001F3AB-create-a-ticket\" in your server. " +
			"Users will use this channel to create tickets. It is ideal if you want a clean and organized setup.\n\n" +
			"\U0001F50D **Use an existing channel**:\n" +
			"This option allows you to select an existing channel in your server where users can create tickets. " +
			"It is useful if you already have a channel for support or ticket-related purposes.\n\n" +
			"Make sure the selected channel is accessible to your users and fits your server's structure.\n\n" +
			"Choose an option below to proceed.",
		Footer: &discordgo.MessageEmbedFooter{
			Text: "\U0001F504 You can change this anytime.",
		},
	}
}

// step3ChannelOptionsSelect is the two-option menu the step starts with, and
// the state the cancel sentinel restores.
func step3ChannelOptionsSelect() discordgo.SelectMenu {
	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    ChannelSelectionID,
		Placeholder: "Select Channel Option",
		Options: []discordgo.SelectMenuOption{
			{
				Label:       "Create a new channel",
				Description: `Create a dedicated "create-a-ticket" channel`,
				Value:       ChannelOptionNew,
				Emoji:       &discordgo.ComponentEmoji{Name: "\U0001F4DD"},
			},
			{
				Label:       "Use existing channel",
				Description: "Select an existing channel for tickets",
				Value:       ChannelOptionExisting,
				Emoji:       &discordgo.ComponentEmoji{Name: "\U0001F50D"},
			},
		},
	}
}

// step3Initialize sends the channel setup message.
func step3Initialize(a IApp, channelID string) error {
	if _, err := a.Session().ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{step3ChannelEmbed()},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{step3ChannelOptionsSelect()},
			},
		},
	}); err != nil {
		return fmt.Errorf("error sending channel setup message: %w", err)
	}

	a.Log().Info("Sent channel setup message",
		slog.String(logging.KeyChannelID, channelID))
	return nil
}

// step3HandleChannelChoice reacts to the two-option menu.
func step3HandleChannelChoice(a IApp, i *discordgo.InteractionCreate, _ string) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return respondEphemeral(a, i, messages.ErrUnknownAction)
	}

	switch values[0] {
	case ChannelOptionNew:
		if err := deferUpdate(a, i); err != nil {
			return fmt.Errorf("error acknowledging interaction: %w", err)
		}

		if err := step3CreateNewChannel(a, i); err != nil {
			// The interaction is already acknowledged; tell the admin in the
			// config channel with a notice that cleans itself up.
			a.Log().Error("Error creating ticket channel",
				slog.String(logging.KeyGuildID, i.GuildID),
				slog.String(logging.KeyError, err.Error()),
			)
			sendTransientNotice(a, i.ChannelID,
				"❌ **An error occurred while creating the ticket channel. Please try again later.**",
				4*time.Second)
		}
		return nil

	case ChannelOptionExisting:
		return step3ShowExistingChannelPicker(a, i)

	default:
		a.Log().Warn("Unknown channel option value",
			slog.String(logging.KeyGuildID, i.GuildID),
			slog.String("value", values[0]),
		)
		return respondEphemeral(a, i, messages.ErrUnknownAction)
	}
}

// step3CreateNewChannel finds or creates the dedicated ticket channel under
// the Tickit category. An already existing channel is not an error: the admin
// is notified and the wizard moves on with it.
func step3CreateNewChannel(a IApp, i *discordgo.InteractionCreate) error {
	channels, err := a.Session().GuildChannels(i.GuildID)
	if err != nil {
		return fmt.Errorf("error fetching guild channels: %w", err)
	}

	category := findChannelByName(channels, CategoryName, discordgo.ChannelTypeGuildCategory)
	if category == nil {
		category, err = a.Session().GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
			Name: CategoryName,
			Type: discordgo.ChannelTypeGuildCategory,
		})
		if err != nil {
			return fmt.Errorf("error creating category: %w", err)
		}
		a.Log().Info("Created category", slog.String(logging.KeyGuildID, i.GuildID))
	}

	var ticketChannel *discordgo.Channel
	for _, c := range channels {
		if c.Name == TicketChannelName && c.ParentID == category.ID {
			ticketChannel = c
			break
		}
	}

	if ticketChannel != nil {
		sendTransientNotice(a, i.ChannelID,
			fmt.Sprintf("⚠️ **The ticket channel already exists:** <#%s>", ticketChannel.ID),
			5*time.Second)
	} else {
		ticketChannel, err = a.Session().GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
			Name:     TicketChannelName,
			Type:     discordgo.ChannelTypeGuildText,
			ParentID: category.ID,
			PermissionOverwrites: []*discordgo.PermissionOverwrite{
				// Everyone can see the channel and press the panel button.
				{
					ID:    i.GuildID,
					Type:  discordgo.PermissionOverwriteTypeRole,
					Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
				},
			},
		})
		if err != nil {
			return fmt.Errorf("error creating ticket channel: %w", err)
		}

		sendTransientNotice(a, i.ChannelID,
			fmt.Sprintf("✅ **New ticket channel created:** <#%s>", ticketChannel.ID),
			4500*time.Millisecond)

		a.Log().Info("Created new ticket channel",
			slog.String(logging.KeyGuildID, i.GuildID),
			slog.String(logging.KeyChannelID, ticketChannel.ID),
		)
	}

	if err := step3PersistSelection(a, i.GuildID, i.ChannelID, ticketChannel.ID); err != nil {
		return err
	}

	return step4CheckPanel(a, i.GuildID, i.ChannelID, ticketChannel.ID)
}

// step3ChannelPickerOptions builds the existing-channel picker: the cancel
// sentinel first, then at most channelPickerLimit text channels so the menu
// stays within the platform's 25 option maximum.
func step3ChannelPickerOptions(channels []*discordgo.Channel) []discordgo.SelectMenuOption {
	options := []discordgo.SelectMenuOption{
		{
			Label:       "Cancel",
			Description: "Cancel channel selection",
			Value:       ChannelOptionCancel,
			Emoji:       &discordgo.ComponentEmoji{Name: "❌"},
		},
	}

	for _, c := range channels {
		if c.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		if len(options) > channelPickerLimit {
			break
		}

		options = append(options, discordgo.SelectMenuOption{
			Label:       truncateRunes(c.Name, 25),
			Description: "Select #" + truncateRunes(c.Name, 45),
			Value:       c.ID,
			Emoji:       &discordgo.ComponentEmoji{Name: "\U0001F4DD"},
		})
	}

	return options
}

// step3ShowExistingChannelPicker swaps the two-option menu for a bounded list
// of the guild's text channels plus the cancel sentinel.
func step3ShowExistingChannelPicker(a IApp, i *discordgo.InteractionCreate) error {
	channels, err := a.Session().GuildChannels(i.GuildID)
	if err != nil {
		return fmt.Errorf("error fetching guild channels: %w", err)
	}

	options := step3ChannelPickerOptions(channels)
	if len(options) == 1 {
		return respondEphemeral(a, i, "❌ No text channels found in this server.")
	}

	if err := updateComponents(a, i, []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    ExistingChannelSelectionID,
					Placeholder: "Select a channel",
					Options:     options,
				},
			},
		},
	}); err != nil {
		return fmt.Errorf("error showing channel picker: %w", err)
	}

	a.Log().Info("Displayed channel selection menu",
		slog.String(logging.KeyGuildID, i.GuildID))
	return nil
}

// step3HandleExistingSelection reacts to the channel picker. Cancel restores
// the original two-option menu with no writes and no step messages.
func step3HandleExistingSelection(a IApp, i *discordgo.InteractionCreate, _ string) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return respondEphemeral(a, i, messages.ErrUnknownAction)
	}

	if values[0] == ChannelOptionCancel {
		return updateComponents(a, i, []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{step3ChannelOptionsSelect()},
			},
		})
	}

	selected, err := a.Session().Channel(values[0])
	if err != nil || selected == nil || selected.GuildID != i.GuildID {
		return respondEphemeral(a, i, "❌ Selected channel not found.")
	}

	if err := deferUpdate(a, i); err != nil {
		return fmt.Errorf("error acknowledging interaction: %w", err)
	}

	sendTransientNotice(a, i.ChannelID,
		fmt.Sprintf("✅ **Ticket channel has been selected:** <#%s>", selected.ID),
		5*time.Second)

	if err := step3PersistSelection(a, i.GuildID, i.ChannelID, selected.ID); err != nil {
		return err
	}

	a.Log().Info("Selected existing channel for tickets",
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String(logging.KeyChannelID, selected.ID),
	)

	return step4CheckPanel(a, i.GuildID, i.ChannelID, selected.ID)
}

// step3PersistSelection writes the config channel and ticket channel pointers
// plus the freshly derived panel flag. This happens before any Step 4 message
// goes out, so the pointers are always recoverable.
func step3PersistSelection(a IApp, guildID, configChannelID, ticketChannelID string) error {
	ctx := context.Background()

	cfg, err := a.GuildConfigDal().GetGuildConfig(ctx, guildID)
	if err != nil {
		return fmt.Errorf("error getting guild config: %w", err)
	}

	panelExists, err := ticketPanelExists(a, ticketChannelID)
	if err != nil {
		return err
	}

	cfg.ConfigChannelID = configChannelID
	cfg.TicketChannelID = ticketChannelID
	cfg.PanelExists = panelExists

	// A channel selection after the wizard has completed rewinds the cursor
	// so the panel setup step can run again for the new channel.
	if cfg.CurrentStep > entities.StepChannel {
		cfg.CurrentStep = entities.StepChannel
	}

	if err := a.GuildConfigDal().SaveGuildConfig(ctx, cfg); err != nil {
		return fmt.Errorf("error saving channel selection: %w", err)
	}
	return nil
}

// ticketPanelExists re-derives the panel flag from the channel's recent
// history. The stored flag is only trusted within a single step execution.
func ticketPanelExists(a IApp, ticketChannelID string) (bool, error) {
	msgs, err := a.Session().ChannelMessages(ticketChannelID, historyScanLimit, "", "", "")
	if err != nil {
		return false, fmt.Errorf("error fetching ticket channel history: %w", err)
	}
	return findPanelMessage(msgs) != nil, nil
}

func findChannelByName(channels []*discordgo.Channel, name string, channelType discordgo.ChannelType) *discordgo.Channel {
	for _, c := range channels {
		if c.Name == name && c.Type == channelType {
			return c
		}
	}
	return nil
}
