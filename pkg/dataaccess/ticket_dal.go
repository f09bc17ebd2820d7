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
	ticketDalName    = "ticket_dal"
	ticketCollection = "tickets"
)

type TicketDal interface {
	// SaveTicket saves a ticket.
	SaveTicket(ctx context.Context, ticket *entities.Ticket) error

	// GetTicket gets a ticket by the channel that backs it.
	GetTicket(ctx context.Context, guildID, channelID string) (*entities.Ticket, error)

	// DeleteTicket removes a ticket record. The record must go before the
	// channel is deleted so a failed channel delete never leaves a record
	// pointing at nothing.
	DeleteTicket(ctx context.Context, guildID, channelID string) error
}

type ticketDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewTicketDal creates a new ticket data access layer.
func NewTicketDal() TicketDal {
	l := slog.Default().With(slog.String(logging.KeyDal, ticketDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &ticketDalImpl{
		l:      l,
		client: MongoDB,
	}
}

func (d *ticketDalImpl) SaveTicket(ctx context.Context, ticket *entities.Ticket) error {
	collection := d.client.Database(mongoDatabase).Collection(ticketCollection)

	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "save_ticket", mongoDatabase, ticketCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "save_ticket", mongoDatabase, ticketCollection))
	defer t.ObserveDuration()

	opts := options.Update().SetUpsert(true)
	_, err := collection.UpdateOne(ctx, bson.M{"guild_id": ticket.GuildID, "channel_id": ticket.ChannelID}, bson.M{"$set": ticket}, opts)
	if err != nil {
		return fmt.Errorf("error updating ticket: %w", err)
	}
	return nil
}

func (d *ticketDalImpl) GetTicket(ctx context.Context, guildID, channelID string) (*entities.Ticket, error) {
	collection := d.client.Database(mongoDatabase).Collection(ticketCollection)

	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "get_ticket", mongoDatabase, ticketCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "get_ticket", mongoDatabase, ticketCollection))
	defer t.ObserveDuration()

	var ticket entities.Ticket
	err := collection.FindOne(ctx, bson.M{
		"guild_id":   guildID,
		"channel_id": channelID,
	}).Decode(&ticket)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}

	return &ticket, nil
}

func (d *ticketDalImpl) DeleteTicket(ctx context.Context, guildID, channelID string) error {
	collection := d.client.Database(mongoDatabase).Collection(ticketCollection)

	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "delete_ticket", mongoDatabase, ticketCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "delete_ticket", mongoDatabase, ticketCollection))
	defer t.ObserveDuration()

	_, err := collection.DeleteOne(ctx, bson.M{
		"guild_id":   guildID,
		"channel_id": channelID,
	})
	if err != nil {
		return fmt.Errorf("error deleting ticket: %w", err)
	}
	return nil
}
