package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FieldChange records an old/new pair for one field in an audit entry.
type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// ChangeSet maps field names to their recorded changes, stored as JSONB.
type ChangeSet map[string]FieldChange

// Scan implements the Scanner interface for database reading
func (cs *ChangeSet) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*cs = ChangeSet{}
		return nil
	case []byte:
		return json.Unmarshal(v, cs)
	case string:
		return json.Unmarshal([]byte(v), cs)
	}
	return fmt.Errorf("cannot scan %T into ChangeSet", value)
}

// Value implements the Valuer interface for database writing
func (cs ChangeSet) Value() (driver.Value, error) {
	if cs == nil {
		return "{}", nil
	}
	b, err := json.Marshal(cs)
	return string(b), err
}

// AuditLog represents one recorded create/update/delete action against a
// tracked entity.
type AuditLog struct {
	ID            string      `json:"id" db:"id"`
	Action        AuditAction `json:"action" db:"action"`
	PerformedBy   *string     `json:"performed_by,omitempty" db:"performed_by"`
	ModelName     string      `json:"model_name" db:"model_name"`
	ObjectID      string      `json:"object_id" db:"object_id"`
	ObjectDisplay string      `json:"object_display" db:"object_display"`
	Changes       ChangeSet   `json:"changes" db:"changes"`
	Timestamp     time.Time   `json:"timestamp" db:"timestamp"`

	PerformedByName string `json:"performed_by_name,omitempty" db:"-"`
}
