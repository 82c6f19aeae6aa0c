package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordID_MarshalJSON(t *testing.T) {
	// Beyond 2^53: a bare JSON number would lose precision in most clients.
	id := domain.RecordID(9007199254740993)

	raw, err := json.Marshal(id)

	require.NoError(t, err)
	assert.Equal(t, `"9007199254740993"`, string(raw))
}

func TestRecordID_UnmarshalJSON_String(t *testing.T) {
	var id domain.RecordID

	err := json.Unmarshal([]byte(`"42"`), &id)

	require.NoError(t, err)
	assert.Equal(t, domain.RecordID(42), id)
}

func TestRecordID_UnmarshalJSON_Number(t *testing.T) {
	var id domain.RecordID

	err := json.Unmarshal([]byte(`42`), &id)

	require.NoError(t, err)
	assert.Equal(t, domain.RecordID(42), id)
}

func TestRecordID_UnmarshalJSON_Invalid(t *testing.T) {
	var id domain.RecordID

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &id))
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestParseRecordID(t *testing.T) {
	id, err := domain.ParseRecordID("123")
	require.NoError(t, err)
	assert.Equal(t, domain.RecordID(123), id)

	for _, input := range []string{"0", "-5", "abc", "", "12.5"} {
		_, err := domain.ParseRecordID(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestRecord_JSONRoundTrip(t *testing.T) {
	rec := domain.Record{
		ID:        domain.RecordID(9007199254740993),
		Type:      domain.Income,
		AccountID: 7,
		Amount:    decimal.RequireFromString("123.45"),
	}

	raw, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded domain.Record
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, rec.ID, decoded.ID)
	assert.Equal(t, rec.Type, decoded.Type)
	assert.True(t, rec.Amount.Equal(decoded.Amount))
}
