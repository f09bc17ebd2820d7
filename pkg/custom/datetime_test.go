package custom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDatetime_JSONRoundTrip(t *testing.T) {
	d := Datetime(time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC))

	got, err := d.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"2024-05-01T12:30:00Z"`, string(got))

	parsed := new(Datetime)
	require.NoError(t, parsed.UnmarshalJSON(got))
	require.True(t, time.Time(d).Equal(time.Time(*parsed)))
}

func TestDatetime_MarshalJSONZero(t *testing.T) {
	d := new(Datetime)
	got, err := d.MarshalJSON()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestDatetime_String(t *testing.T) {
	d := Datetime(time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC))
	require.Equal(t, "2024-05-01T12:30:00Z", d.String())
}
