package main

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/tickit-io/tickit/pkg/logging"
	"github.com/tickit-io/tickit/pkg/messages"
)

// commandController resolves a slash command invocation to its processor,
// performing any permission checks along the way. A nil processor with a nil
// error means the controller already replied (e.g. a permission rejection).
type commandController func(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error)

// commandProcessor executes a slash command.
type commandProcessor func(a IApp, i *discordgo.InteractionCreate) error

// componentHandler reacts to a button, select menu or modal interaction.
// param is whatever followed the colon in the custom ID, usually a channel ID.
type componentHandler func(a IApp, i *discordgo.InteractionCreate, param string) error

// routes is one static dispatch table per interaction kind.
type routes struct {
	slash        map[string]commandController
	buttons      map[string]componentHandler
	stringSelect map[string]componentHandler
	roleSelect   map[string]componentHandler
	modals       map[string]componentHandler
}

// decodeCustomID splits a component custom ID into its routing key and
// optional parameter. The ID is decoded exactly once, here; handlers receive
// the parameter and never re-parse the raw string.
func decodeCustomID(id string) (key, param string) {
	key, param, _ = strings.Cut(id, ":")
	return key, param
}

// interactionHandler is the single dispatch point for every inbound
// interaction. It guarantees each interaction is acknowledged exactly once,
// even when a handler fails or panics.
func interactionHandler(a IApp, r *routes) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in interaction handler",
					slog.String(logging.KeyError, fmt.Sprintf("%v", rec)),
					slog.String("stack", string(debug.Stack())),
				)
				replyLastResort(a, i, messages.ErrUserErrorProcessing)
			}
		}()

		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			dispatchSlash(a, r, i)
		case discordgo.InteractionMessageComponent:
			dispatchComponent(a, r, i)
		case discordgo.InteractionModalSubmit:
			dispatchModal(a, r, i)
		default:
			a.Log().Warn("Unhandled interaction type", slog.String("type", i.Type.String()))
		}
	}
}

func dispatchSlash(a IApp, r *routes, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name

	controller, ok := r.slash[name]
	if !ok {
		a.Log().Warn("No controller found for command", slog.String("command", name))
		replyLastResort(a, i, messages.ErrUnknownAction)
		return
	}

	processor, err := controller(a, i)
	if err != nil {
		a.Log().Error(fmt.Sprintf("Error getting processor for command %s", name),
			slog.String(logging.KeyError, err.Error()))
		replyLastResort(a, i, messages.ErrUserErrorProcessing)
		return
	} else if processor == nil {
		// The controller already replied.
		return
	}

	if err := processor(a, i); err != nil {
		a.Log().Error(fmt.Sprintf("Error processing command %s", name),
			slog.String(logging.KeyError, err.Error()))
		replyLastResort(a, i, messages.ErrUserErrorProcessing)
	}
}

func dispatchComponent(a IApp, r *routes, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	key, param := decodeCustomID(data.CustomID)

	var table map[string]componentHandler
	switch data.ComponentType {
	case discordgo.ButtonComponent:
		table = r.buttons
	case discordgo.SelectMenuComponent:
		table = r.stringSelect
	case discordgo.RoleSelectMenuComponent:
		table = r.roleSelect
	default:
		a.Log().Warn("Unhandled component type",
			slog.String(logging.KeyCustomID, data.CustomID),
			slog.Int("component_type", int(data.ComponentType)),
		)
		replyLastResort(a, i, messages.ErrUnknownAction)
		return
	}

	handler, ok := table[key]
	if !ok {
		a.Log().Warn("Unknown component custom ID",
			slog.String(logging.KeyCustomID, data.CustomID),
			slog.String(logging.KeyGuildID, i.GuildID),
		)
		replyLastResort(a, i, messages.ErrUnknownAction)
		return
	}

	if err := handler(a, i, param); err != nil {
		a.Log().Error("Error handling component interaction",
			slog.String(logging.KeyCustomID, data.CustomID),
			slog.String(logging.KeyError, err.Error()),
		)
		replyLastResort(a, i, messages.ErrUserErrorProcessing)
	}
}

func dispatchModal(a IApp, r *routes, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	key, param := decodeCustomID(data.CustomID)

	handler, ok := r.modals[key]
	if !ok {
		a.Log().Warn("Unknown modal custom ID", slog.String(logging.KeyCustomID, data.CustomID))
		replyLastResort(a, i, messages.ErrUnknownAction)
		return
	}

	if err := handler(a, i, param); err != nil {
		a.Log().Error("Error handling modal submission",
			slog.String(logging.KeyCustomID, data.CustomID),
			slog.String(logging.KeyError, err.Error()),
		)
		replyLastResort(a, i, messages.ErrUserErrorProcessing)
	}
}

// replyLastResort makes sure the platform gets one acknowledgement. If the
// handler already replied or deferred, this lands as a follow-up instead.
func replyLastResort(a IApp, i *discordgo.InteractionCreate, content string) {
	if err := respondOrFollowUp(a, i, content); err != nil {
		a.Log().Error("Error sending last resort reply", slog.String(logging.KeyError, err.Error()))
	}
}
