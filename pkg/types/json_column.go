package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONColumn persists any JSON-encodable value as a JSONB column.
type JSONColumn[T any] struct {
	Data T
}

// NewJSONColumn wraps data for persistence.
func NewJSONColumn[T any](data T) JSONColumn[T] {
	return JSONColumn[T]{Data: data}
}

// Value marshals the wrapped value into JSON.
func (c JSONColumn[T]) Value() (driver.Value, error) {
	buf, err := json.Marshal(c.Data)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes JSON into the wrapped value.
func (c *JSONColumn[T]) Scan(value interface{}) error {
	var zero T
	if value == nil {
		c.Data = zero
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("json column: unsupported scan type %T", value)
	}

	result := zero
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	c.Data = result
	return nil
}

// MarshalJSON renders the wrapped value directly.
func (c JSONColumn[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Data)
}

// UnmarshalJSON decodes directly into the wrapped value.
func (c *JSONColumn[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.Data)
}
