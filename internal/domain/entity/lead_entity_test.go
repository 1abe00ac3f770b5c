package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Valid(t *testing.T) {
	for _, s := range Sources() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Source("website").Valid())
	assert.False(t, Source("").Valid())
	assert.Equal(t, SourceWebsite, DefaultSource)
}

func TestLead_JSONShape(t *testing.T) {
	company := "Acme"
	lead := Lead{
		ID:        "abc",
		Name:      "Ann",
		Email:     "a@x.co",
		Company:   &company,
		Source:    SourceReferral,
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	b, err := json.Marshal(lead)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "abc", raw["id"])
	assert.Equal(t, "Acme", raw["company"])
	assert.Equal(t, "Referral", raw["source"])
	assert.Equal(t, "2024-05-01T10:00:00Z", raw["createdAt"])
	assert.NotContains(t, raw, "phone")
	assert.NotContains(t, raw, "message")

	var back Lead
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, lead, back)
}
