package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/tickit-io/tickit/pkg/logging"
	"github.com/tickit-io/tickit/pkg/messages"
)

// Slash command names.
const (
	CmdConfig      = "tickitconfig"
	CmdHelp        = "help"
	CmdCommands    = "commands"
	CmdTicketAdd   = "ticket-add"
	CmdTicketClose = "ticket-close"
)

// botCommands is every slash command the bot registers on each guild.
var botCommands = []*discordgo.ApplicationCommand{
	{
		Name:        CmdConfig,
		Description: "Set up Tickit for this server (admins only)",
	},
	{
		Name:        CmdHelp,
		Description: "How to use Tickit",
	},
	{
		Name:        CmdCommands,
		Description: "List all Tickit commands",
	},
	{
		Name:        CmdTicketAdd,
		Description: "Add a user to the current ticket",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to add to this ticket",
				Required:    true,
			},
		},
	},
	{
		Name:        CmdTicketClose,
		Description: "Close the current ticket",
	},
}

func slashRoutes() map[string]commandController {
	return map[string]commandController{
		CmdConfig:      configCommandController,
		CmdHelp:        helpCommandController,
		CmdCommands:    commandsCommandController,
		CmdTicketAdd:   ticketAddCommandController,
		CmdTicketClose: ticketCloseCommandController,
	}
}

// memberIsAdmin reports whether the invoking member can manage the guild.
func memberIsAdmin(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	return i.Member.Permissions&(discordgo.PermissionAdministrator|discordgo.PermissionManageServer) != 0
}

// memberIsStaff reports whether the invoking member is an admin or holds the
// configured ticket manager role. An unconfigured guild has no staff beyond
// its admins.
func memberIsStaff(a IApp, i *discordgo.InteractionCreate) bool {
	if memberIsAdmin(i) {
		return true
	}

	cfg, err := a.GuildConfigDal().GetGuildConfig(context.Background(), i.GuildID)
	if err != nil {
		return false
	}
	return hasRole(i.Member, cfg.ManagerRoleID)
}

func configCommandController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	if !memberIsAdmin(i) {
		return nil, respondEphemeral(a, i, "❌ **"+messages.ErrAdminOnly+"**")
	}
	return configCommandProcessor, nil
}

func configCommandProcessor(a IApp, i *discordgo.InteractionCreate) error {
	guild, err := a.Session().Guild(i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild: %w", err)
	}

	if err := initializeConfigurationChannel(a, guild); err != nil {
		return err
	}

	cfg, err := a.GuildConfigDal().GetGuildConfig(context.Background(), i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild config: %w", err)
	}

	a.Log().Info("Configuration command invoked",
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String(logging.KeyUserID, i.Member.User.ID),
	)
	return respondEphemeral(a, i,
		fmt.Sprintf("✅ **Head over to <#%s> to configure Tickit.**", cfg.ConfigChannelID))
}

func helpCommandController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	return helpCommandProcessor, nil
}

func helpCommandProcessor(a IApp, i *discordgo.InteractionCreate) error {
	fields := []*discordgo.MessageEmbedField{
		{
			Name: "\U0001F3AB Creating a ticket",
			Value: "Press the **Create Ticket** button on the ticket panel. " +
				"A private channel will be opened for you and the support team.",
		},
		{
			Name:  "🔒 Closing a ticket",
			Value: "Press the **Close Ticket** button inside your ticket, or use `/" + CmdTicketClose + "`.",
		},
	}

	if memberIsStaff(a, i) {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "➕ Managing tickets",
			Value: "Use `/" + CmdTicketAdd + "` inside a ticket to bring another member into the conversation.",
		})
	}
	if memberIsAdmin(i) {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "⚙️ Server setup",
			Value: "Run `/" + CmdConfig + "` and follow the configuration wizard in the private configuration channel.",
		})
	}

	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Tickit Help",
					Color:       ColourPanel,
					Description: "Tickit manages support tickets for this server.",
					Fields:      fields,
					Footer: &discordgo.MessageEmbedFooter{
						Text: PanelFooterText,
					},
				},
			},
		},
	})
}

func commandsCommandController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	return commandsCommandProcessor, nil
}

func commandsCommandProcessor(a IApp, i *discordgo.InteractionCreate) error {
	staff := memberIsStaff(a, i)

	fields := make([]*discordgo.MessageEmbedField, 0, len(botCommands))
	for _, cmd := range botCommands {
		// Staff-only commands are hidden from regular members.
		if !staff && (cmd.Name == CmdConfig || cmd.Name == CmdTicketAdd) {
			continue
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "/" + cmd.Name,
			Value: cmd.Description,
		})
	}

	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:  "Tickit Commands",
					Color:  ColourPanel,
					Fields: fields,
					Footer: &discordgo.MessageEmbedFooter{
						Text: PanelFooterText,
					},
				},
			},
		},
	})
}

// ticketAddCommandController admits guild admins and members of the manager
// role; the ticket owner cannot invite arbitrary users on their own.
func ticketAddCommandController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	if !memberIsStaff(a, i) {
		return nil, respondEphemeral(a, i, "❌ **"+messages.ErrAdminOnly+"**")
	}
	return ticketAddCommandProcessor, nil
}

func ticketAddCommandProcessor(a IApp, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return respondEphemeral(a, i, "❌ **"+messages.ErrUnknownAction+"**")
	}

	user := data.Options[0].UserValue(nil)
	if user == nil {
		return respondEphemeral(a, i, "❌ **"+messages.ErrUnknownAction+"**")
	}
	return addUserToTicket(a, i, user.ID)
}

func ticketCloseCommandController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	return ticketCloseCommandProcessor, nil
}

func ticketCloseCommandProcessor(a IApp, i *discordgo.InteractionCreate) error {
	return closeTicket(a, i)
}
