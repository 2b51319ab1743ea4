package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Tags is a string list persisted as a JSON array.
type Tags []string

// Scan implements sql.Scanner
func (t *Tags) Scan(src any) error {
	if src == nil {
		*t = Tags{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("Tags: unsupported src type %T", src)
	}
	if len(data) == 0 {
		*t = Tags{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("Tags: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*t = out
	return nil
}

// Value implements driver.Valuer. The value is sent as text so that both
// sqlite json and postgres jsonb columns accept it.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
