package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// RecordType classifies a record as money coming in or going out.
type RecordType string

const (
	Income  RecordType = "INCOME"
	Expense RecordType = "EXPENSE"
)

// RecordID is a server-assigned 64-bit record identifier. It crosses the wire
// as a JSON string because values can exceed the integer range that JSON
// consumers decode losslessly.
type RecordID int64

// MarshalJSON serializes the id as a quoted decimal string.
func (id RecordID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatInt(int64(id), 10))), nil
}

// UnmarshalJSON accepts both a string and a bare number for compatibility
// with clients that have not adopted the string form.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid record id %s: %w", s, err)
		}
		s = unquoted
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid record id %q: %w", s, err)
	}
	*id = RecordID(v)
	return nil
}

// ParseRecordID parses a path parameter into a RecordID.
// Only positive integers are valid ids.
func ParseRecordID(s string) (RecordID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid record id %q", s)
	}
	return RecordID(v), nil
}

// String returns the decimal representation of the id.
func (id RecordID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Record is a single income or expense transaction tied to one account.
type Record struct {
	ID        RecordID        `json:"id"`
	Type      RecordType      `json:"type"`
	AccountID int64           `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
}

// RecordPatch carries the fields of a partial record update. Nil means
// "leave unchanged".
type RecordPatch struct {
	Type      *RecordType
	AccountID *int64
	Amount    *decimal.Decimal
	Date      *time.Time
}

var _ json.Marshaler = RecordID(0)
var _ json.Unmarshaler = (*RecordID)(nil)
