// Package messages holds the user-facing message texts sent by the bot.
package messages

const (
	// ErrUserErrorProcessing is sent when a command fails for a reason the user cannot fix.
	ErrUserErrorProcessing = `Sorry, something went wrong while processing your request. Please try again later.`

	// ErrUnknownAction is sent when an interaction carries an unrecognised custom ID.
	ErrUnknownAction = `An unknown action was triggered. Please try again or contact support.`

	// ErrTicketRoleNotConfigured is sent when a ticket is opened before the wizard has persisted a manager role.
	ErrTicketRoleNotConfigured = `Ticket manager role not configured. Please contact an administrator.`

	// ErrNotATicketChannel is sent when a ticket command is used outside a ticket channel.
	ErrNotATicketChannel = `This channel is not a recognised ticket.`

	// ErrTicketChannelMissing is sent when the ticket channel pointer no longer resolves.
	ErrTicketChannelMissing = `The ticket channel does not exist. Please re-run the channel setup step.`

	// ErrAdminOnly is sent when a non-administrator invokes an admin command.
	ErrAdminOnly = `You must be an administrator to use this command.`

	// ErrDashboardComingSoon is sent when the online dashboard mode is selected.
	ErrDashboardComingSoon = `The online dashboard functionality is coming soon. Please choose "Run Locally" for now.`

	// ErrTooManyTickets is sent when ticket creation is rate limited for a user.
	ErrTooManyTickets = `You are opening tickets too quickly. Please wait a moment and try again.`

	// TicketClosing is sent as the acknowledgement when a ticket close begins.
	TicketClosing = `Closing ticket...`
)
