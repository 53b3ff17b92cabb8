package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    SlotLabel
		wantErr bool
	}{
		{name: "canonical", input: "10:00 AM", want: "10:00 AM"},
		{name: "zero padded", input: "09:00 AM", want: "9:00 AM"},
		{name: "lowercase no space", input: "2:00pm", want: "2:00 PM"},
		{name: "noon", input: "12:00 PM", want: "12:00 PM"},
		{name: "surrounding spaces", input: "  5:00 PM ", want: "5:00 PM"},
		{name: "empty", input: "", wantErr: true},
		{name: "24h format", input: "14:00", wantErr: true},
		{name: "garbage", input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSlotLabel(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSlotLabel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotLabelMinutesRoundTrip(t *testing.T) {
	label := MustSlotLabel("2:30 PM")

	minutes, err := label.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 14*60+30, minutes)
	assert.Equal(t, label, NewSlotLabelFromMinutes(minutes))
}

func TestSlotLabelOn(t *testing.T) {
	day := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

	start, err := MustSlotLabel("10:00 AM").On(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC), start)
}
