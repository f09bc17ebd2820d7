package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tickit-io/tickit/cmd/bot/monitoring"
	"github.com/tickit-io/tickit/pkg/entities"
	"github.com/tickit-io/tickit/pkg/logging"
)

// stepEmbedTitle maps a wizard step to the title of its instructional embed.
func stepEmbedTitle(step entities.WizardStep) string {
	switch step {
	case entities.StepWelcome:
		return WelcomeEmbedTitle
	case entities.StepMode:
		return ModeEmbedTitle
	case entities.StepRole:
		return RoleEmbedTitle
	case entities.StepChannel:
		return ChannelEmbedTitle
	case entities.StepPanel:
		return PanelSetupEmbedTitle
	}
	return ""
}

// advanceWizard performs the uniform step transition: move the persisted
// cursor with a compare-and-set, re-check the channel history as a fallback
// guard, then send the next step's instructional message. Losing the
// compare-and-set to a concurrent interaction makes the advance a no-op, but
// a cursor that already sits at the target step still gets the history check:
// the winning attempt may have crashed between moving the cursor and sending
// the message, and the retry has to be able to repair that.
func advanceWizard(a IApp, guildID, configChannelID string, from entities.WizardStep) error {
	to := from.Next()

	won, err := a.GuildConfigDal().AdvanceStep(context.Background(), guildID, from, to)
	if err != nil {
		return fmt.Errorf("error advancing step cursor: %w", err)
	}

	if won {
		monitoring.WizardStepTransitions.WithLabelValues(to.String()).Inc()
	} else {
		cfg, err := a.GuildConfigDal().GetGuildConfig(context.Background(), guildID)
		if err != nil {
			return fmt.Errorf("error getting guild config: %w", err)
		}
		if cfg.CurrentStep != to {
			// The wizard has moved somewhere else entirely; nothing to do.
			return nil
		}
	}

	// The cursor is authoritative for the transition, but the message send is
	// guarded by the channel history: a channel that already shows the step's
	// message (a concurrent winner, a previous wizard run, or a restored
	// database) must not get a duplicate, and a channel that does not (the
	// winner's send failed) gets it now.
	msgs, err := a.Session().ChannelMessages(configChannelID, historyScanLimit, "", "", "")
	if err != nil {
		return fmt.Errorf("error fetching channel history: %w", err)
	}

	if historyHasEmbedTitle(msgs, stepEmbedTitle(to)) {
		a.Log().Info("Step message already present, skipping creation",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyStep, to.String()),
		)
		return nil
	}

	return initializeStep(a, configChannelID, to)
}

// initializeStep sends the instructional message for a step into the
// configuration channel. StepPanel is excluded: its message depends on the
// selected ticket channel and is sent by the Step 3 handlers directly.
func initializeStep(a IApp, configChannelID string, step entities.WizardStep) error {
	switch step {
	case entities.StepWelcome:
		return step0Initialize(a, configChannelID)
	case entities.StepMode:
		return step1Initialize(a, configChannelID)
	case entities.StepRole:
		return step2Initialize(a, configChannelID)
	case entities.StepChannel:
		return step3Initialize(a, configChannelID)
	}
	return fmt.Errorf("step %s has no initializer", step)
}
