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

// bulkDeleteMaxAge is the platform's age limit for bulk message deletion;
// anything older has to be deleted one by one.
const bulkDeleteMaxAge = 14 * 24 * time.Hour

const defaultPanelDescription = "Click the button below to create a new support ticket.\n\n" +
	"Our support team will assist you as soon as possible.\n\n" +
	"*Please provide detailed information about your issue.*"

func step4InstructionEmbed(ticketChannelID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: PanelSetupEmbedTitle,
		Color: ColourWizard,
		Description: "\U0001F3AB **Now it's time to set up your ticket panel!**\n\n" +
			"The ticket panel is what users will interact with to create tickets. " +
			fmt.Sprintf("It will be created in <#%s>.\n\n", ticketChannelID) +
			"By default, we provide a standard ticket panel, but you can customize it later to match your server's needs.\n\n" +
			"Click the **Setup Ticket Panel** button below to create the default ticket panel.",
		Footer: &discordgo.MessageEmbedFooter{
			Text: "\U0001F504 You can edit the panel after setup.",
		},
	}
}

// step4InstructionButtons builds the setup and edit buttons. Both carry the
// ticket channel ID so the handlers do not depend on cached pointers.
func step4InstructionButtons(ticketChannelID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Setup Ticket Panel",
					Style:    discordgo.SuccessButton,
					CustomID: SetupTicketPanelButtonID + ":" + ticketChannelID,
					Emoji:    &discordgo.ComponentEmoji{Name: "\U0001F3AB"},
				},
				discordgo.Button{
					Label:    "Edit Ticket Panel",
					Style:    discordgo.SecondaryButton,
					CustomID: EditTicketPanelButtonID + ":" + ticketChannelID,
					Emoji:    &discordgo.ComponentEmoji{Name: "✏️"},
				},
			},
		},
	}
}

func panelEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Color:       ColourPanel,
		Description: description,
		Footer: &discordgo.MessageEmbedFooter{
			Text: PanelFooterText,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func panelComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Create Ticket",
					Style:    discordgo.PrimaryButton,
					CustomID: CreateTicketButtonID,
					Emoji:    &discordgo.ComponentEmoji{Name: "\U0001F3AB"},
				},
			},
		},
	}
}

// step4CheckPanel decides the setup-vs-edit affordance after Step 3 settled
// on a ticket channel. An existing panel completes the wizard outright;
// otherwise the Step 4 instruction message is sent, guarded by the cursor and
// the history scan like every other step message.
func step4CheckPanel(a IApp, guildID, configChannelID, ticketChannelID string) error {
	ctx := context.Background()

	exists, err := ticketPanelExists(a, ticketChannelID)
	if err != nil {
		return err
	}

	if exists {
		cfg, err := a.GuildConfigDal().GetGuildConfig(ctx, guildID)
		if err != nil {
			return fmt.Errorf("error getting guild config: %w", err)
		}
		cfg.PanelExists = true
		cfg.CurrentStep = entities.StepDone
		if err := a.GuildConfigDal().SaveGuildConfig(ctx, cfg); err != nil {
			return fmt.Errorf("error saving guild config: %w", err)
		}

		sendTransientNotice(a, configChannelID,
			fmt.Sprintf("ℹ️ **A ticket panel already exists in <#%s>**", ticketChannelID),
			5*time.Second)
		return nil
	}

	won, err := a.GuildConfigDal().AdvanceStep(ctx, guildID, entities.StepChannel, entities.StepPanel)
	if err != nil {
		return fmt.Errorf("error advancing to panel setup: %w", err)
	}
	if !won {
		return nil
	}

	msgs, err := a.Session().ChannelMessages(configChannelID, historyScanLimit, "", "", "")
	if err != nil {
		return fmt.Errorf("error fetching config channel history: %w", err)
	}
	if historyHasEmbedTitle(msgs, PanelSetupEmbedTitle) {
		a.Log().Info("Step 4 instruction message already exists",
			slog.String(logging.KeyGuildID, guildID))
		return nil
	}

	if _, err := a.Session().ChannelMessageSendComplex(configChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{step4InstructionEmbed(ticketChannelID)},
		Components: step4InstructionButtons(ticketChannelID),
	}); err != nil {
		return fmt.Errorf("error sending panel setup instructions: %w", err)
	}

	a.Log().Info("Sent ticket panel setup instructions",
		slog.String(logging.KeyGuildID, guildID),
		slog.String(logging.KeyChannelID, ticketChannelID),
	)
	return nil
}

// step4HandleSetup creates the default ticket panel. A second press finds the
// existing panel and short-circuits with a notice instead of a duplicate.
func step4HandleSetup(a IApp, i *discordgo.InteractionCreate, param string) error {
	if err := deferUpdate(a, i); err != nil {
		return fmt.Errorf("error acknowledging interaction: %w", err)
	}

	ctx := context.Background()

	ticketChannelID, err := resolveTicketChannel(a, i.GuildID, param)
	if err != nil {
		sendTransientNotice(a, i.ChannelID,
			"❌ **Error: Ticket channel not found. Please re-run Step 3.**",
			5*time.Second)
		return nil
	}

	exists, err := ticketPanelExists(a, ticketChannelID)
	if err != nil {
		return err
	}
	if exists {
		sendTransientNotice(a, i.ChannelID,
			fmt.Sprintf("ℹ️ **A ticket panel already exists in <#%s>**", ticketChannelID),
			5*time.Second)
		return nil
	}

	msg, err := a.Session().ChannelMessageSendComplex(ticketChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{panelEmbed(PanelEmbedTitle, defaultPanelDescription)},
		Components: panelComponents(),
	})
	if err != nil {
		return fmt.Errorf("error sending ticket panel: %w", err)
	}

	cfg, err := a.GuildConfigDal().GetGuildConfig(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild config: %w", err)
	}
	cfg.PanelExists = true
	cfg.PanelMessageID = msg.ID
	if err := a.GuildConfigDal().SaveGuildConfig(ctx, cfg); err != nil {
		return fmt.Errorf("error saving guild config: %w", err)
	}

	if _, err := a.GuildConfigDal().AdvanceStep(ctx, i.GuildID, entities.StepPanel, entities.StepDone); err != nil {
		return fmt.Errorf("error completing wizard: %w", err)
	}

	sendTransientNotice(a, i.ChannelID,
		fmt.Sprintf("✅ **Ticket panel successfully created in <#%s>**", ticketChannelID),
		5*time.Second)

	a.Log().Info("Ticket panel created",
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String(logging.KeyChannelID, ticketChannelID),
	)
	return nil
}

// step4HandleEdit opens the panel edit modal. Showing the modal is the one
// and only acknowledgement of this interaction.
func step4HandleEdit(a IApp, i *discordgo.InteractionCreate, param string) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: EditTicketPanelModalID + ":" + param,
			Title:    "Edit Ticket Panel",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    PanelTitleInputID,
							Label:       "Ticket Panel Title",
							Style:       discordgo.TextInputShort,
							Placeholder: "Enter the title for the ticket panel",
							Required:    true,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    PanelDescriptionInputID,
							Label:       "Ticket Panel Description",
							Style:       discordgo.TextInputParagraph,
							Placeholder: "Enter the description for the ticket panel",
							Required:    true,
						},
					},
				},
			},
		},
	})
}

// step4HandleModalSubmit applies the edited title and description to the
// panel message. When the panel message has gone missing the panel is rebuilt
// from scratch, after a best-effort purge of the channel's old messages.
func step4HandleModalSubmit(a IApp, i *discordgo.InteractionCreate, param string) error {
	data := i.ModalSubmitData()
	title := modalInputValue(data, PanelTitleInputID)
	description := modalInputValue(data, PanelDescriptionInputID)

	ticketChannelID, err := resolveTicketChannel(a, i.GuildID, param)
	if err != nil {
		return respondEphemeral(a, i, "❌ **"+messages.ErrTicketChannelMissing+"**")
	}

	msgs, err := a.Session().ChannelMessages(ticketChannelID, historyScanLimit, "", "", "")
	if err != nil {
		return fmt.Errorf("error fetching ticket channel history: %w", err)
	}

	panelMsg := findPanelMessage(msgs)
	if panelMsg != nil {
		if _, err := a.Session().ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel: ticketChannelID,
			ID:      panelMsg.ID,
			Embeds:  &[]*discordgo.MessageEmbed{panelEmbed(title, description)},
		}); err != nil {
			return fmt.Errorf("error editing ticket panel: %w", err)
		}

		a.Log().Info("Ticket panel updated",
			slog.String(logging.KeyGuildID, i.GuildID),
			slog.String(logging.KeyChannelID, ticketChannelID),
		)
		return respondEphemeral(a, i, "✅ **The ticket panel has been updated successfully.**")
	}

	// The expected panel message is gone. Rebuild the channel from scratch:
	// clear out the leftovers, then post a fresh panel with the new text.
	purgeChannelMessages(a, ticketChannelID, msgs)

	msg, err := a.Session().ChannelMessageSendComplex(ticketChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{panelEmbed(title, description)},
		Components: panelComponents(),
	})
	if err != nil {
		return fmt.Errorf("error recreating ticket panel: %w", err)
	}

	ctx := context.Background()
	cfg, err := a.GuildConfigDal().GetGuildConfig(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild config: %w", err)
	}
	cfg.PanelExists = true
	cfg.PanelMessageID = msg.ID
	cfg.CurrentStep = entities.StepDone
	if err := a.GuildConfigDal().SaveGuildConfig(ctx, cfg); err != nil {
		return fmt.Errorf("error saving guild config: %w", err)
	}

	a.Log().Info("Ticket panel recreated",
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String(logging.KeyChannelID, ticketChannelID),
	)
	return respondEphemeral(a, i, "✅ **The ticket panel has been recreated successfully.**")
}

// purgeChannelMessages deletes the given messages on a best-effort basis:
// bulk for anything young enough, one by one for the rest. Per-message
// failures are logged and swallowed; the caller's primary action decides the
// overall outcome.
func purgeChannelMessages(a IApp, channelID string, msgs []*discordgo.Message) {
	cutoff := time.Now().Add(-bulkDeleteMaxAge)

	var bulk []string
	var individual []string
	for _, m := range msgs {
		if m.Timestamp.After(cutoff) {
			bulk = append(bulk, m.ID)
		} else {
			individual = append(individual, m.ID)
		}
	}

	if len(bulk) >= 2 {
		if err := a.Session().ChannelMessagesBulkDelete(channelID, bulk); err != nil {
			a.Log().Error("Error bulk deleting messages",
				slog.String(logging.KeyChannelID, channelID),
				slog.String(logging.KeyError, err.Error()),
			)
			individual = append(individual, bulk...)
		}
	} else {
		individual = append(individual, bulk...)
	}

	for _, id := range individual {
		if err := a.Session().ChannelMessageDelete(channelID, id); err != nil {
			a.Log().Error("Error deleting message during panel purge",
				slog.String(logging.KeyChannelID, channelID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}
}

// resolveTicketChannel resolves the ticket channel from the interaction
// parameter, falling back to the persisted pointer.
func resolveTicketChannel(a IApp, guildID, param string) (string, error) {
	if param != "" {
		if _, err := a.Session().Channel(param); err == nil {
			return param, nil
		}
		a.Log().Warn("Ticket channel from custom ID not found, falling back to stored pointer",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyChannelID, param),
		)
	}

	cfg, err := a.GuildConfigDal().GetGuildConfig(context.Background(), guildID)
	if err != nil {
		return "", fmt.Errorf("error getting guild config: %w", err)
	}
	if cfg.TicketChannelID == "" {
		return "", fmt.Errorf("no ticket channel configured for guild %s", guildID)
	}

	if _, err := a.Session().Channel(cfg.TicketChannelID); err != nil {
		return "", fmt.Errorf("error getting ticket channel: %w", err)
	}
	return cfg.TicketChannelID, nil
}
