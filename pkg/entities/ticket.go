package entities

import "github.com/tickit-io/tickit/pkg/custom"

// TicketStatusOpen is the only status a stored ticket can have; closing a
// ticket deletes the record rather than flipping the status.
const TicketStatusOpen = "open"

// Ticket is an open support ticket, keyed by the channel that backs it.
type Ticket struct {
	// GuildID is the ID of the guild that the ticket is in.
	GuildID string `json:"guild_id" bson:"guild_id"`

	// ChannelID is the ID of the private channel created for the ticket.
	ChannelID string `json:"channel_id" bson:"channel_id"`

	// OwnerID is the ID of the user that opened the ticket.
	OwnerID string `json:"owner_id" bson:"owner_id"`

	// OwnerUsername is the username of the user that opened the ticket.
	OwnerUsername string `json:"owner_username" bson:"owner_username"`

	// Status is the ticket status.
	Status string `json:"status" bson:"status"`

	// CreatedAt is the time that the ticket was opened.
	CreatedAt custom.Datetime `json:"created_at" bson:"created_at"`
}
