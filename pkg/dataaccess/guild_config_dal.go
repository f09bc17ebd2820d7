package dataaccess

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tickit-io/tickit/pkg/dataaccess/monitoring"
	"github.com/tickit-io/tickit/pkg/entities"
	"github.com/tickit-io/tickit/pkg/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	guildConfigDalName    = "guild_config_dal"
	guildConfigCollection = "guild_configs"
)

type GuildConfigDal interface {
	// SaveGuildConfig saves a guild configuration, overwriting any earlier one.
	SaveGuildConfig(ctx context.Context, cfg *entities.GuildConfig) error

	// GetGuildConfig gets a guild configuration by guild ID.
	GetGuildConfig(ctx context.Context, guildID string) (*entities.GuildConfig, error)

	// AdvanceStep moves the wizard cursor from one step to the next, but only
	// when the stored cursor still equals from. It returns false when another
	// invocation won the race and the caller should not send the next step's
	// message.
	AdvanceStep(ctx context.Context, guildID string, from, to entities.WizardStep) (bool, error)
}

type guildConfigDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewGuildConfigDal creates a new guild configuration data access layer.
func NewGuildConfigDal() GuildConfigDal {
	l := slog.Default().With(slog.String(logging.KeyDal, guildConfigDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &guildConfigDalImpl{
		l:      l,
		client: MongoDB,
	}
}

func (g *guildConfigDalImpl) SaveGuildConfig(ctx context.Context, cfg *entities.GuildConfig) error {
	collection := g.client.Database(mongoDatabase).Collection(guildConfigCollection)

	monitoring.MongoTotalRequests.WithLabelValues(guildConfigDalName, "save_guild_config", mongoDatabase, guildConfigCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(guildConfigDalName, "save_guild_config", mongoDatabase, guildConfigCollection))
	defer t.ObserveDuration()

	opts := options.Update().SetUpsert(true)
	_, err := collection.UpdateOne(ctx, bson.M{"id": cfg.ID}, bson.M{"$set": cfg}, opts)
	if err != nil {
		return fmt.Errorf("error updating guild config: %w", err)
	}
	return nil
}

func (g *guildConfigDalImpl) GetGuildConfig(ctx context.Context, guildID string) (*entities.GuildConfig, error) {
	collection := g.client.Database(mongoDatabase).Collection(guildConfigCollection)

	monitoring.MongoTotalRequests.WithLabelValues(guildConfigDalName, "get_guild_config", mongoDatabase, guildConfigCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(guildConfigDalName, "get_guild_config", mongoDatabase, guildConfigCollection))
	defer t.ObserveDuration()

	cfg := new(entities.GuildConfig)

	err := collection.FindOne(ctx, bson.M{"id": guildID}).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("error getting guild config: %w", err)
	}
	return cfg, nil
}

func (g *guildConfigDalImpl) AdvanceStep(ctx context.Context, guildID string, from, to entities.WizardStep) (bool, error) {
	collection := g.client.Database(mongoDatabase).Collection(guildConfigCollection)

	monitoring.MongoTotalRequests.WithLabelValues(guildConfigDalName, "advance_step", mongoDatabase, guildConfigCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(guildConfigDalName, "advance_step", mongoDatabase, guildConfigCollection))
	defer t.ObserveDuration()

	// The filter doubles as the compare of the compare-and-set: a concurrent
	// advance that already moved the cursor leaves nothing to match.
	res, err := collection.UpdateOne(ctx,
		bson.M{"id": guildID, "current_step": from},
		bson.M{"$set": bson.M{"current_step": to}},
	)
	if err != nil {
		return false, fmt.Errorf("error advancing wizard step: %w", err)
	}

	if res.ModifiedCount == 0 {
		g.l.Info("Wizard step already advanced, skipping",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyStep, to.String()),
		)
		return false, nil
	}
	return true, nil
}
