// Package valueobject holds small reusable value types shared by entities.
package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// ErrScanJSONMap is returned when a database value cannot be decoded into a JSONMap.
var ErrScanJSONMap = errors.New("valueobject: cannot scan value into JSONMap")

// JSONMap is an arbitrary JSON object, stored in jsonb columns.
type JSONMap map[string]any

// Value implements driver.Valuer.
func (j JSONMap) Value() (driver.Value, error) {
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSONMap) Scan(value any) error {
	if value == nil {
		*j = JSONMap{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case json.RawMessage:
		raw = []byte(v)
	case map[string]any:
		*j = JSONMap(v)
		return nil
	default:
		return ErrScanJSONMap
	}

	var decoded JSONMap
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}

	*j = decoded
	return nil
}

// Set stores value under key, replacing any previous value.
func (j JSONMap) Set(key string, value any) {
	j[key] = value
}

// Has reports whether key exists.
func (j JSONMap) Has(key string) bool {
	_, ok := j[key]
	return ok
}

// GetString returns the string under key, or "" when missing or not a string.
func (j JSONMap) GetString(key string) string {
	v, _ := j[key].(string)
	return v
}

// GetInt returns the integer under key. JSON numbers decode as float64, so
// both forms are accepted.
func (j JSONMap) GetInt(key string) int {
	switch v := j[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
