package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/tickit-io/tickit/pkg/entities"
	"github.com/tickit-io/tickit/pkg/logging"
	"github.com/tickit-io/tickit/pkg/messages"
)

func step2RoleEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: RoleEmbedTitle,
		Color: ColourWizard,
		Description: "\U0001F465 **Select the role that will manage tickets for your server.**\n\n" +
			"This role will have access to view and manage all tickets created by users. " +
			"Make sure to select a role that is trusted and has the appropriate permissions. " +
			"You can change this role later if needed by reconfiguring the bot settings.\n\n" +
			"Choose a role from the dropdown below.",
		Footer: &discordgo.MessageEmbedFooter{
			Text: "\U0001F504 You can change this later if needed.",
		},
	}
}

func step2RoleSelect() discordgo.SelectMenu {
	return discordgo.SelectMenu{
		MenuType:    discordgo.RoleSelectMenu,
		CustomID:    RoleSelectionID,
		Placeholder: "Select a Role",
	}
}

// step2Initialize sends the role selection message.
func step2Initialize(a IApp, channelID string) error {
	if _, err := a.Session().ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{step2RoleEmbed()},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{step2RoleSelect()},
			},
		},
	}); err != nil {
		return fmt.Errorf("error sending role selection message: %w", err)
	}

	a.Log().Info("Sent role selection message",
		slog.String(logging.KeyChannelID, channelID))
	return nil
}

// step2HandleRoleSelection persists the chosen manager role and hands over to
// Step 3. The role pointer is written before the next step's message is sent,
// so a crash in between leaves state the next run can pick up.
func step2HandleRoleSelection(a IApp, i *discordgo.InteractionCreate, _ string) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return respondEphemeral(a, i, messages.ErrUnknownAction)
	}
	roleID := values[0]

	if err := deferUpdate(a, i); err != nil {
		return fmt.Errorf("error acknowledging interaction: %w", err)
	}

	ctx := context.Background()

	cfg, err := a.GuildConfigDal().GetGuildConfig(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild config: %w", err)
	}

	cfg.ManagerRoleID = roleID
	if err := a.GuildConfigDal().SaveGuildConfig(ctx, cfg); err != nil {
		return fmt.Errorf("error saving manager role: %w", err)
	}

	if err := advanceWizard(a, i.GuildID, i.ChannelID, entities.StepRole); err != nil {
		return fmt.Errorf("error advancing to channel setup: %w", err)
	}

	a.Log().Info("Ticket manager role selected",
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String("role_id", roleID),
	)
	return nil
}
