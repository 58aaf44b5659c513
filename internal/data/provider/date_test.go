package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProviderDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "utc offset",
			input: "Wed Aug 27 13:08:45 +0000 2008",
			want:  time.Date(2008, 8, 27, 13, 8, 45, 0, time.UTC),
		},
		{
			name:  "positive offset converted to UTC",
			input: "Tue Jan 02 08:00:00 +0800 2018",
			want:  time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "single digit day",
			input: "Tue Jan 2 08:00:00 +0000 2018",
			want:  time.Date(2018, 1, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "yesterday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProviderDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestFormatProviderDateRoundTrip(t *testing.T) {
	in := time.Date(2018, 3, 5, 7, 9, 1, 0, time.FixedZone("X", 3600))

	formatted := FormatProviderDate(in)
	assert.Equal(t, "Mon Mar 05 06:09:01 +0000 2018", formatted)

	back, err := ParseProviderDate(formatted)
	require.NoError(t, err)
	assert.True(t, in.Equal(back))
}

func TestParseTimestamp(t *testing.T) {
	rfc, err := ParseTimestamp("2018-01-02T06:00:00+01:00")
	require.NoError(t, err)
	assert.True(t, time.Date(2018, 1, 2, 5, 0, 0, 0, time.UTC).Equal(rfc))

	api, err := ParseTimestamp("Tue Jan 02 06:00:00 +0000 2018")
	require.NoError(t, err)
	assert.True(t, time.Date(2018, 1, 2, 6, 0, 0, 0, time.UTC).Equal(api))

	_, err = ParseTimestamp("")
	assert.Error(t, err)
}
