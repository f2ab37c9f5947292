package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2020-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2020-02-29", d.String())

	d, err = ParseDate("2021-06-01T23:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2021-06-01", d.String())

	_, err = ParseDate("01/06/2021")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Start *Date `json:"start"`
		End   *Date `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2019-09-01","end":null}`), &payload))
	require.NotNil(t, payload.Start)
	assert.Nil(t, payload.End)

	out, err := json.Marshal(payload.Start)
	require.NoError(t, err)
	assert.JSONEq(t, `"2019-09-01"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"start":"yesterday"}`), &payload))
}

func TestDatePtrRoundTrip(t *testing.T) {
	assert.Nil(t, DatePtr(nil))

	var nilDate *Date
	assert.Nil(t, nilDate.TimePtr())

	ts := time.Date(2022, 5, 17, 13, 45, 0, 0, time.UTC)
	d := DatePtr(&ts)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2022, 5, 17, 0, 0, 0, 0, time.UTC), *d.TimePtr())
}
