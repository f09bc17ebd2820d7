package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWizardStep_Next(t *testing.T) {
	tests := []struct {
		name string
		step WizardStep
		want WizardStep
	}{
		{
			name: "WelcomeToMode",
			step: StepWelcome,
			want: StepMode,
		},
		{
			name: "ChannelToPanel",
			step: StepChannel,
			want: StepPanel,
		},
		{
			name: "PanelToDone",
			step: StepPanel,
			want: StepDone,
		},
		{
			name: "DoneStaysDone",
			step: StepDone,
			want: StepDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.step.Next())
		})
	}
}

func TestWizardStep_Valid(t *testing.T) {
	require.True(t, StepWelcome.Valid())
	require.True(t, StepDone.Valid())
	require.False(t, WizardStep(-1).Valid())
	require.False(t, (StepDone + 1).Valid())
}

func TestGuildConfig_Configured(t *testing.T) {
	g := &GuildConfig{ID: "guild"}
	require.False(t, g.Configured())

	g.ManagerRoleID = "role"
	require.False(t, g.Configured())

	g.TicketChannelID = "channel"
	require.True(t, g.Configured())
}
