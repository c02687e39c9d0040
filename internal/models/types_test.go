package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnlyJSON(t *testing.T) {
	date := NewDate(2026, time.September, 1)
	raw, err := json.Marshal(date)
	require.NoError(t, err)
	assert.Equal(t, `"2026-09-01"`, string(raw))

	var parsed DateOnly
	require.NoError(t, json.Unmarshal([]byte(`"2026-09-01"`), &parsed))
	assert.Equal(t, date.Time, parsed.Time)

	// Zero renders as null and null parses to zero.
	raw, err = json.Marshal(DateOnly{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
	require.NoError(t, json.Unmarshal([]byte("null"), &parsed))
	assert.True(t, parsed.IsZero())

	require.Error(t, json.Unmarshal([]byte(`"01/09/2026"`), &parsed))
}

func TestDateOnlyScanAndValue(t *testing.T) {
	var date DateOnly
	require.NoError(t, date.Scan(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-09-01", date.Format("2006-01-02"))

	require.NoError(t, date.Scan(nil))
	assert.True(t, date.IsZero())

	value, err := date.Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestTimeOnlyJSON(t *testing.T) {
	var parsed TimeOnly
	require.NoError(t, json.Unmarshal([]byte(`"14:30"`), &parsed))
	raw, err := json.Marshal(parsed)
	require.NoError(t, err)
	assert.Equal(t, `"14:30"`, string(raw))

	raw, err = json.Marshal(TimeOnly{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestTimeOnlyScanAcceptsDriverStrings(t *testing.T) {
	var ts TimeOnly
	require.NoError(t, ts.Scan([]byte("14:30:00")))
	raw, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"14:30"`, string(raw))
}
