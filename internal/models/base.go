// internal/models/base.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MVPRankings is the JSONB column holding a finished match's MVP table.
type MVPRankings []MVPEntry

// Value stores the snapshot as JSONB. The transfer code lives in its own
// columns on the match record, so it is stripped here.
func (m MatchState) Value() (driver.Value, error) {
	m.TransferCode = nil
	return json.Marshal(m)
}

// Scan unmarshals a JSONB snapshot.
func (m *MatchState) Scan(src interface{}) error {
	b, err := jsonBytes(src, "MatchState")
	if err != nil {
		return err
	}
	return json.Unmarshal(b, m)
}

func (r MVPRankings) Value() (driver.Value, error) {
	if r == nil {
		return json.Marshal([]MVPEntry{})
	}
	return json.Marshal([]MVPEntry(r))
}

// Scan unmarshals JSONB bytes into the rankings.
func (r *MVPRankings) Scan(src interface{}) error {
	b, err := jsonBytes(src, "MVPRankings")
	if err != nil {
		return err
	}
	return json.Unmarshal(b, r)
}

func jsonBytes(src interface{}, name string) ([]byte, error) {
	switch v := src.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%s: expected []byte, got %T", name, src)
	}
}
