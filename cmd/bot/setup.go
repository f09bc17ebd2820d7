package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/tickit-io/tickit/pkg/entities"
	"github.com/tickit-io/tickit/pkg/logging"
	"go.mongodb.org/mongo-driver/mongo"
)

// initializeConfigurationChannel ensures the guild has the private
// configuration channel under the Tickit category, and that the wizard's
// welcome message has been posted into it. Safe to call on every guild join
// and from the config command: an existing channel is adopted, not recreated.
func initializeConfigurationChannel(a IApp, guild *discordgo.Guild) error {
	ctx := context.Background()

	channels, err := a.Session().GuildChannels(guild.ID)
	if err != nil {
		return fmt.Errorf("error fetching guild channels: %w", err)
	}

	if existing := findChannelByName(channels, ConfigChannelName, discordgo.ChannelTypeGuildText); existing != nil {
		a.Log().Debug("Configuration channel already exists",
			slog.String(logging.KeyGuildID, guild.ID),
			slog.String(logging.KeyChannelID, existing.ID),
		)
		return adoptConfigurationChannel(a, guild.ID, existing.ID)
	}

	category := findChannelByName(channels, CategoryName, discordgo.ChannelTypeGuildCategory)
	if category == nil {
		category, err = a.Session().GuildChannelCreateComplex(guild.ID, discordgo.GuildChannelCreateData{
			Name: CategoryName,
			Type: discordgo.ChannelTypeGuildCategory,
		})
		if err != nil {
			return fmt.Errorf("error creating category: %w", err)
		}
	}

	// Hidden from @everyone; only members who can manage the guild see it
	// through their elevated permissions.
	channel, err := a.Session().GuildChannelCreateComplex(guild.ID, discordgo.GuildChannelCreateData{
		Name:     ConfigChannelName,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: category.ID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:   guild.ID,
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("error creating configuration channel: %w", err)
	}

	cfg, err := a.GuildConfigDal().GetGuildConfig(ctx, guild.ID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		cfg = &entities.GuildConfig{ID: guild.ID}
	} else if err != nil {
		return fmt.Errorf("error getting guild config: %w", err)
	}
	cfg.ConfigChannelID = channel.ID
	cfg.CurrentStep = entities.StepWelcome
	if err := a.GuildConfigDal().SaveGuildConfig(ctx, cfg); err != nil {
		return fmt.Errorf("error saving guild config: %w", err)
	}

	if err := step0Initialize(a, channel.ID); err != nil {
		return err
	}

	a.Log().Info("Configuration channel created",
		slog.String(logging.KeyGuildID, guild.ID),
		slog.String(logging.KeyChannelID, channel.ID),
	)
	return nil
}

// adoptConfigurationChannel makes sure an already existing configuration
// channel is backed by a guild config document. A guild whose database was
// wiped (or that predates the bot's records) gets its cursor re-derived from
// the step messages still visible in the channel, so the wizard can resume
// rather than dead-end on a missing document.
func adoptConfigurationChannel(a IApp, guildID, channelID string) error {
	ctx := context.Background()

	cfg, err := a.GuildConfigDal().GetGuildConfig(ctx, guildID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("error getting guild config: %w", err)
	}

	if err == nil && cfg.ConfigChannelID == channelID {
		return nil
	}

	welcomeMissing := false
	if cfg == nil {
		msgs, err := a.Session().ChannelMessages(channelID, historyScanLimit, "", "", "")
		if err != nil {
			return fmt.Errorf("error fetching config channel history: %w", err)
		}
		cfg = &entities.GuildConfig{
			ID:          guildID,
			CurrentStep: deriveStepFromHistory(msgs),
		}
		welcomeMissing = cfg.CurrentStep == entities.StepWelcome &&
			!historyHasEmbedTitle(msgs, WelcomeEmbedTitle)
	}
	cfg.ConfigChannelID = channelID

	if err := a.GuildConfigDal().SaveGuildConfig(ctx, cfg); err != nil {
		return fmt.Errorf("error saving guild config: %w", err)
	}

	if welcomeMissing {
		if err := step0Initialize(a, channelID); err != nil {
			return err
		}
	}

	a.Log().Info("Adopted existing configuration channel",
		slog.String(logging.KeyGuildID, guildID),
		slog.String(logging.KeyChannelID, channelID),
		slog.String(logging.KeyStep, cfg.CurrentStep.String()),
	)
	return nil
}

// deriveStepFromHistory infers how far the wizard progressed from which step
// messages are present in the configuration channel. The furthest step whose
// message exists is where the wizard stands.
func deriveStepFromHistory(msgs []*discordgo.Message) entities.WizardStep {
	step := entities.StepWelcome
	for s := entities.StepMode; s <= entities.StepPanel; s++ {
		if historyHasEmbedTitle(msgs, stepEmbedTitle(s)) {
			step = s
		}
	}
	return step
}

