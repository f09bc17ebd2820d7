package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
	"github.com/tickit-io/tickit/pkg/dataaccess"
	"github.com/tickit-io/tickit/pkg/entities"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"
)

// stubRoundTripper answers the session's REST calls from a handler func, so
// tests can exercise full handler flows without a gateway.
type stubRoundTripper struct {
	handler func(r *http.Request) (int, string)
}

func (t *stubRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	status, body := t.handler(r)
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    r,
	}, nil
}

func newStubSession(t *testing.T, handler func(r *http.Request) (int, string)) *discordgo.Session {
	t.Helper()

	s, err := discordgo.New("Bot test-token")
	require.NoError(t, err, "Failed to create session")
	s.Client = &http.Client{Transport: &stubRoundTripper{handler: handler}}
	return s
}

// guildConfigDalStub is an in-memory GuildConfigDal with the same
// compare-and-set and not-found semantics as the Mongo implementation.
type guildConfigDalStub struct {
	cfg   *entities.GuildConfig
	saves int
}

func (d *guildConfigDalStub) SaveGuildConfig(_ context.Context, cfg *entities.GuildConfig) error {
	d.cfg = cfg
	d.saves++
	return nil
}

func (d *guildConfigDalStub) GetGuildConfig(_ context.Context, guildID string) (*entities.GuildConfig, error) {
	if d.cfg == nil || d.cfg.ID != guildID {
		return nil, fmt.Errorf("error getting guild config: %w", mongo.ErrNoDocuments)
	}
	return d.cfg, nil
}

func (d *guildConfigDalStub) AdvanceStep(_ context.Context, guildID string, from, to entities.WizardStep) (bool, error) {
	if d.cfg == nil || d.cfg.ID != guildID || d.cfg.CurrentStep != from {
		return false, nil
	}
	d.cfg.CurrentStep = to
	return true, nil
}

type testApp struct {
	l   *slog.Logger
	s   *discordgo.Session
	dal *guildConfigDalStub
}

func (a *testApp) Log() *slog.Logger                         { return a.l }
func (a *testApp) Session() *discordgo.Session               { return a.s }
func (a *testApp) GuildConfigDal() dataaccess.GuildConfigDal { return a.dal }
func (a *testApp) TicketDal() dataaccess.TicketDal           { return nil }
func (a *testApp) TicketLimiter(string) *rate.Limiter        { return rate.NewLimiter(rate.Inf, 1) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestStepEmbedTitle(t *testing.T) {
	tests := []struct {
		name string
		step entities.WizardStep
		want string
	}{
		{
			name: "Welcome",
			step: entities.StepWelcome,
			want: WelcomeEmbedTitle,
		},
		{
			name: "Mode",
			step: entities.StepMode,
			want: ModeEmbedTitle,
		},
		{
			name: "Role",
			step: entities.StepRole,
			want: RoleEmbedTitle,
		},
		{
			name: "Channel",
			step: entities.StepChannel,
			want: ChannelEmbedTitle,
		},
		{
			name: "Panel",
			step: entities.StepPanel,
			want: PanelSetupEmbedTitle,
		},
		{
			name: "Done",
			step: entities.StepDone,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, stepEmbedTitle(tt.step))
		})
	}
}

func TestAdvanceWizardRecoversFromFailedSend(t *testing.T) {
	dal := &guildConfigDalStub{cfg: &entities.GuildConfig{
		ID:              "guild-1",
		CurrentStep:     entities.StepMode,
		ConfigChannelID: "chan-1",
	}}

	sends := 0
	failSends := true
	session := newStubSession(t, func(r *http.Request) (int, string) {
		if r.Method == http.MethodPost {
			if failSends {
				return http.StatusInternalServerError, `{"message":"upstream error","code":0}`
			}
			sends++
			return http.StatusOK, `{"id":"msg-1","channel_id":"chan-1"}`
		}
		return http.StatusOK, `[]`
	})
	a := &testApp{l: discardLogger(), s: session, dal: dal}

	// First attempt: the cursor moves but the step message never lands.
	require.Error(t, advanceWizard(a, "guild-1", "chan-1", entities.StepMode))
	require.Equal(t, entities.StepRole, dal.cfg.CurrentStep)
	require.Zero(t, sends)

	// The retry loses the compare-and-set, but the cursor already sits at the
	// target step with no message in the channel, so it must repair the send.
	failSends = false
	require.NoError(t, advanceWizard(a, "guild-1", "chan-1", entities.StepMode))
	require.Equal(t, entities.StepRole, dal.cfg.CurrentStep)
	require.Equal(t, 1, sends)
}

func TestAdvanceWizardDoesNotDuplicateStepMessage(t *testing.T) {
	dal := &guildConfigDalStub{cfg: &entities.GuildConfig{
		ID:              "guild-1",
		CurrentStep:     entities.StepRole,
		ConfigChannelID: "chan-1",
	}}

	sends := 0
	session := newStubSession(t, func(r *http.Request) (int, string) {
		if r.Method == http.MethodPost {
			sends++
			return http.StatusOK, `{"id":"msg-2","channel_id":"chan-1"}`
		}
		return http.StatusOK, fmt.Sprintf(`[{"id":"msg-1","embeds":[{"title":%q}]}]`, RoleEmbedTitle)
	})
	a := &testApp{l: discardLogger(), s: session, dal: dal}

	// A duplicate trigger of an already completed transition: the message is
	// there, so nothing is sent.
	require.NoError(t, advanceWizard(a, "guild-1", "chan-1", entities.StepMode))
	require.Equal(t, entities.StepRole, dal.cfg.CurrentStep)
	require.Zero(t, sends)
}

func TestAdvanceWizardIgnoresStaleTransition(t *testing.T) {
	dal := &guildConfigDalStub{cfg: &entities.GuildConfig{
		ID:              "guild-1",
		CurrentStep:     entities.StepChannel,
		ConfigChannelID: "chan-1",
	}}

	sends := 0
	session := newStubSession(t, func(r *http.Request) (int, string) {
		if r.Method == http.MethodPost {
			sends++
		}
		return http.StatusOK, `[]`
	})
	a := &testApp{l: discardLogger(), s: session, dal: dal}

	// The wizard has moved past this transition; a late trigger is a no-op.
	require.NoError(t, advanceWizard(a, "guild-1", "chan-1", entities.StepMode))
	require.Equal(t, entities.StepChannel, dal.cfg.CurrentStep)
	require.Zero(t, sends)
}
