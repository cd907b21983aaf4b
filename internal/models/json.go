package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonValue marshals a struct field for storage in a jsonb column.
func jsonValue(v interface{}) (driver.Value, error) {
	return json.Marshal(v)
}

// jsonScan unmarshals a jsonb column into the destination field.
func jsonScan(dst interface{}, value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// StringList is a []string stored as jsonb.
type StringList []string

func (s StringList) Value() (driver.Value, error) { return jsonValue(s) }
func (s *StringList) Scan(value interface{}) error { return jsonScan(s, value) }
