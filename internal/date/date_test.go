package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestParse(t *testing.T) {
	d, err := Parse("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", d.String())
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "15.03.2026", "2026-3-15", "2026-13-01", "tomorrow"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, time.March, 15, 18, 30, 0, 0, time.UTC)

	tests := map[string]struct {
		date Date
		want int
	}{
		"today":      {New(2026, time.March, 15), 0},
		"tomorrow":   {New(2026, time.March, 16), 1},
		"yesterday":  {New(2026, time.March, 14), -1},
		"next week":  {New(2026, time.March, 22), 7},
		"next month": {New(2026, time.April, 15), 31},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.date.DaysUntil(now))
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2026, time.March, 15)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-15"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestJSONUnmarshalInvalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestYAMLRoundTrip(t *testing.T) {
	d := New(2026, time.March, 15)

	data, err := yaml.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2026-03-15")

	var back Date
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, d.String(), back.String())
}
