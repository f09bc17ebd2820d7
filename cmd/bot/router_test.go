package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeCustomID(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		wantKey   string
		wantParam string
	}{
		{
			name:    "NoParam",
			id:      StartConfigurationButtonID,
			wantKey: StartConfigurationButtonID,
		},
		{
			name:      "ChannelParam",
			id:        SetupTicketPanelButtonID + ":12345",
			wantKey:   SetupTicketPanelButtonID,
			wantParam: "12345",
		},
		{
			name:      "ParamWithColon",
			id:        EditTicketPanelModalID + ":12345:extra",
			wantKey:   EditTicketPanelModalID,
			wantParam: "12345:extra",
		},
		{
			name:    "Empty",
			id:      "",
			wantKey: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, param := decodeCustomID(tt.id)
			require.Equal(t, tt.wantKey, key)
			require.Equal(t, tt.wantParam, param)
		})
	}
}
