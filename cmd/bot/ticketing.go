package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/tickit-io/tickit/cmd/bot/monitoring"
	"github.com/tickit-io/tickit/pkg/custom"
	"github.com/tickit-io/tickit/pkg/entities"
	"github.com/tickit-io/tickit/pkg/logging"
	"github.com/tickit-io/tickit/pkg/messages"
	"go.mongodb.org/mongo-driver/mongo"
)

// ticketCloseGrace is how long the closing notice stays visible before the
// ticket channel is deleted.
const ticketCloseGrace = 3 * time.Second

const ticketMemberPermissions = discordgo.PermissionViewChannel |
	discordgo.PermissionSendMessages |
	discordgo.PermissionReadMessageHistory

// createTicket opens a private ticket channel for the pressing user. The
// channel is visible to the user and the configured manager role only.
func createTicket(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	user := i.Member.User

	if !a.TicketLimiter(user.ID).Allow() {
		return respondEphemeral(a, i, "❌ **"+messages.ErrTooManyTickets+"**")
	}

	cfg, err := a.GuildConfigDal().GetGuildConfig(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild config: %w", err)
	}
	if cfg.ManagerRoleID == "" {
		return respondEphemeral(a, i, "❌ **"+messages.ErrTicketRoleNotConfigured+"**")
	}

	channels, err := a.Session().GuildChannels(i.GuildID)
	if err != nil {
		return fmt.Errorf("error fetching guild channels: %w", err)
	}

	// Tickets live under the same category as the panel channel so they sit
	// together in the channel list.
	categoryID := ""
	if panelChannel, err := a.Session().Channel(i.ChannelID); err == nil {
		categoryID = panelChannel.ParentID
	}
	if categoryID == "" {
		if category := findChannelByName(channels, CategoryName, discordgo.ChannelTypeGuildCategory); category != nil {
			categoryID = category.ID
		}
	}

	name := uniqueChannelName(channels, slugifyChannelName(user.Username))

	ticketChannel, err := a.Session().GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: categoryID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:   i.GuildID,
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
			{
				ID:    cfg.ManagerRoleID,
				Type:  discordgo.PermissionOverwriteTypeRole,
				Allow: ticketMemberPermissions,
			},
			{
				ID:    user.ID,
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: ticketMemberPermissions,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("error creating ticket channel: %w", err)
	}

	ticket := &entities.Ticket{
		GuildID:       i.GuildID,
		ChannelID:     ticketChannel.ID,
		OwnerID:       user.ID,
		OwnerUsername: user.Username,
		Status:        entities.TicketStatusOpen,
		CreatedAt:     custom.Now(),
	}
	if err := a.TicketDal().SaveTicket(ctx, ticket); err != nil {
		return fmt.Errorf("error saving ticket: %w", err)
	}

	if _, err := a.Session().ChannelMessageSendComplex(ticketChannel.ID, &discordgo.MessageSend{
		Content: fmt.Sprintf("<@%s> <@&%s>", user.ID, cfg.ManagerRoleID),
		Embeds: []*discordgo.MessageEmbed{
			{
				Title: "\U0001F3AB Support Ticket",
				Color: ColourPanel,
				Description: fmt.Sprintf("Hello <@%s>, thank you for creating a ticket!\n\n", user.ID) +
					"Please describe your issue in as much detail as possible. " +
					"A member of the support team will be with you shortly.",
				Footer: &discordgo.MessageEmbedFooter{
					Text: PanelFooterText,
				},
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Close Ticket",
						Style:    discordgo.DangerButton,
						CustomID: CloseTicketButtonID,
						Emoji:    &discordgo.ComponentEmoji{Name: "🔒"},
					},
				},
			},
		},
	}); err != nil {
		return fmt.Errorf("error sending ticket welcome message: %w", err)
	}

	if err := respondEphemeral(a, i,
		fmt.Sprintf("✅ **Your ticket has been created: <#%s>**", ticketChannel.ID)); err != nil {
		return err
	}

	// The ephemeral confirmation self-destructs once the user has had a
	// moment to click through to the new channel.
	interaction := i.Interaction
	time.AfterFunc(ticketCloseGrace, func() {
		if err := a.Session().InteractionResponseDelete(interaction); err != nil {
			a.Log().Debug("Error deleting ticket confirmation",
				slog.String(logging.KeyError, err.Error()))
		}
	})

	monitoring.TotalTicketsOpened.Inc()
	a.Log().Info("Ticket created",
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String(logging.KeyChannelID, ticketChannel.ID),
		slog.String(logging.KeyUserID, user.ID),
	)
	return nil
}

// closeTicket tears down a ticket channel. The record is removed before the
// channel so a crash between the two leaves a stray channel rather than a
// record pointing at nothing.
func closeTicket(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	ticket, err := a.TicketDal().GetTicket(ctx, i.GuildID, i.ChannelID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return respondEphemeral(a, i, "❌ **"+messages.ErrNotATicketChannel+"**")
	} else if err != nil {
		return fmt.Errorf("error getting ticket: %w", err)
	}

	if err := respondEphemeral(a, i, "🔒 **"+messages.TicketClosing+"**"); err != nil {
		return err
	}

	if err := a.TicketDal().DeleteTicket(ctx, i.GuildID, i.ChannelID); err != nil {
		return fmt.Errorf("error deleting ticket record: %w", err)
	}

	channelID := i.ChannelID
	guildID := i.GuildID
	time.AfterFunc(ticketCloseGrace, func() {
		if _, err := a.Session().ChannelDelete(channelID); err != nil {
			a.Log().Error("Error deleting ticket channel",
				slog.String(logging.KeyGuildID, guildID),
				slog.String(logging.KeyChannelID, channelID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	})

	monitoring.TotalTicketsClosed.Inc()
	a.Log().Info("Ticket closed",
		slog.String(logging.KeyGuildID, guildID),
		slog.String(logging.KeyChannelID, channelID),
		slog.String(logging.KeyUserID, ticket.OwnerID),
	)
	return nil
}

// addUserToTicket grants another member access to the current ticket channel.
func addUserToTicket(a IApp, i *discordgo.InteractionCreate, userID string) error {
	ctx := context.Background()

	if _, err := a.TicketDal().GetTicket(ctx, i.GuildID, i.ChannelID); errors.Is(err, mongo.ErrNoDocuments) {
		return respondEphemeral(a, i, "❌ **"+messages.ErrNotATicketChannel+"**")
	} else if err != nil {
		return fmt.Errorf("error getting ticket: %w", err)
	}

	if err := a.Session().ChannelPermissionSet(i.ChannelID, userID,
		discordgo.PermissionOverwriteTypeMember, ticketMemberPermissions, 0); err != nil {
		return fmt.Errorf("error granting ticket access: %w", err)
	}

	a.Log().Info("User added to ticket",
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String(logging.KeyChannelID, i.ChannelID),
		slog.String(logging.KeyUserID, userID),
	)
	return respondEphemeral(a, i, fmt.Sprintf("✅ **<@%s> has been added to this ticket.**", userID))
}
