package main

// Fixed names for the resources the bot provisions.
const (
	// CategoryName is the category that holds the configuration and ticket channels.
	CategoryName = "Tickit"

	// ConfigChannelName is the hidden channel the wizard runs in.
	ConfigChannelName = "configuration"

	// TicketChannelName is the channel created by the "new channel" wizard option.
	TicketChannelName = "\U0001F3AB-create-a-ticket"

	// TicketChannelPrefix prefixes every per-user ticket channel name.
	TicketChannelPrefix = "ticket-"
)

// Custom IDs for buttons, select menus and modals. Some carry a channel ID
// parameter after a colon; the router splits it off before dispatch.
const (
	// StartConfigurationButtonID is the ID for the Step 0 start button.
	StartConfigurationButtonID = "start-configuration"

	// ConfigurationModeSelectID is the ID for the Step 1 mode select menu.
	ConfigurationModeSelectID = "configuration-mode"

	// RoleSelectionID is the ID for the Step 2 role select menu.
	RoleSelectionID = "role-selection"

	// ChannelSelectionID is the ID for the Step 3 channel option menu.
	ChannelSelectionID = "channel-selection"

	// ExistingChannelSelectionID is the ID for the Step 3 existing channel picker.
	ExistingChannelSelectionID = "existing-channel-selection"

	// SetupTicketPanelButtonID is the ID for the Step 4 setup button. Carries the ticket channel ID.
	SetupTicketPanelButtonID = "setup-ticket-panel"

	// EditTicketPanelButtonID is the ID for the Step 4 edit button. Carries the ticket channel ID.
	EditTicketPanelButtonID = "edit-ticket-panel"

	// EditTicketPanelModalID is the ID for the panel edit modal. Carries the ticket channel ID.
	EditTicketPanelModalID = "edit-ticket-panel-modal"

	// PanelTitleInputID is the ID for the modal title input.
	PanelTitleInputID = "ticket-panel-title"

	// PanelDescriptionInputID is the ID for the modal description input.
	PanelDescriptionInputID = "ticket-panel-description"

	// CreateTicketButtonID is the ID for the panel's create ticket button.
	CreateTicketButtonID = "create-ticket"

	// CloseTicketButtonID is the ID for the close ticket button inside a ticket.
	CloseTicketButtonID = "close-ticket"
)

// Values of the Step 1 and Step 3 string select menus.
const (
	// ModeRunLocally keeps everything local to the guild.
	ModeRunLocally = "run-locally"

	// ModeOnlineDashboard is the (still stubbed) dashboard mode.
	ModeOnlineDashboard = "use-online-dashboard"

	// ChannelOptionNew creates the dedicated ticket channel.
	ChannelOptionNew = "new-channel"

	// ChannelOptionExisting picks an existing text channel.
	ChannelOptionExisting = "existing-channel"

	// ChannelOptionCancel backs out of the existing channel picker.
	ChannelOptionCancel = "cancel"
)

// Embed titles. The wizard scans recent channel history for these as a
// fallback idempotency guard, so they must stay stable.
const (
	// WelcomeEmbedTitle is the Step 0 embed title.
	WelcomeEmbedTitle = "Tickit Configuration"

	// ModeEmbedTitle is the Step 1 embed title.
	ModeEmbedTitle = "Step 1: Configuration Mode"

	// RoleEmbedTitle is the Step 2 embed title.
	RoleEmbedTitle = "Step 2: Role Selection"

	// ChannelEmbedTitle is the Step 3 embed title.
	ChannelEmbedTitle = "Step 3: Channel Setup"

	// PanelSetupEmbedTitle is the Step 4 embed title.
	PanelSetupEmbedTitle = "Step 4: Ticket Panel Setup"

	// PanelEmbedTitle is the ticket panel embed title. Edited panels keep the
	// "Ticket Panel" substring so the scan still finds them.
	PanelEmbedTitle = "\U0001F3AB Ticket Panel"

	// PanelEmbedTitleMarker is the substring that identifies a panel embed
	// regardless of how the title has been edited.
	PanelEmbedTitleMarker = "Ticket Panel"
)

// Embed colours.
const (
	// ColourWizard is the light green used by the wizard embeds.
	ColourWizard = 0xc1daa1

	// ColourPanel is the blurple used by the panel and ticket embeds.
	ColourPanel = 0x5865F2
)

// PanelFooterText is the footer on the panel and ticket embeds.
const PanelFooterText = "Powered by Tickit"

// historyScanLimit bounds every history fetch used for idempotency checks.
const historyScanLimit = 20

// channelPickerLimit caps the existing channel picker at the platform's 25
// option maximum, minus one slot for the cancel sentinel.
const channelPickerLimit = 24
