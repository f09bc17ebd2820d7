package logging

const (
	// KeyService is the logging key for the service name.
	KeyService = `service`

	// KeyError is the logging key for errors.
	KeyError = `err`

	// KeyDal is the logging key for the data access layer in use.
	KeyDal = `dal`

	// KeyGuildID is the logging key for the guild ID.
	KeyGuildID = `guild_id`

	// KeyChannelID is the logging key for the channel ID.
	KeyChannelID = `channel_id`

	// KeyUserID is the logging key for the user ID.
	KeyUserID = `user_id`

	// KeyStep is the logging key for the configuration wizard step.
	KeyStep = `step`

	// KeyCustomID is the logging key for an interaction custom ID.
	KeyCustomID = `custom_id`
)
