package entities

// GuildConfig is the per-guild configuration written by the setup wizard. The
// guild ID doubles as the namespace for everything the bot persists.
type GuildConfig struct {
	// ID is the ID of the guild.
	ID string `json:"id" bson:"id"`

	// CurrentStep is the wizard step the guild has reached.
	CurrentStep WizardStep `json:"current_step" bson:"current_step"`

	// ConfigChannelID is the ID of the hidden configuration channel.
	ConfigChannelID string `json:"config_channel_id" bson:"config_channel_id"`

	// TicketChannelID is the ID of the channel holding the ticket panel.
	TicketChannelID string `json:"ticket_channel_id" bson:"ticket_channel_id"`

	// ManagerRoleID is the ID of the role that manages tickets.
	ManagerRoleID string `json:"manager_role_id" bson:"manager_role_id"`

	// PanelExists is whether the ticket panel message has been posted.
	PanelExists bool `json:"panel_exists" bson:"panel_exists"`

	// PanelMessageID is the ID of the ticket panel message, if known.
	PanelMessageID string `json:"panel_message_id" bson:"panel_message_id"`
}

// Configured reports whether the wizard has persisted everything the ticket
// lifecycle needs.
func (g *GuildConfig) Configured() bool {
	return g.ManagerRoleID != "" && g.TicketChannelID != ""
}
