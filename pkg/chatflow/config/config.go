package config

import (
	"time"
)

// Data wraps a map[string]any for type-safe value extraction.
// Node data bags and engine settings files both decode into Data.
// All accessor methods return default values if the key is missing
// or the value cannot be converted to the requested type.
type Data struct {
	data map[string]any
}

// New creates a Data bag from the given map.
// If data is nil, an empty bag is returned.
func New(data map[string]any) Data {
	if data == nil {
		data = make(map[string]any)
	}
	return Data{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (d Data) String(key, defaultVal string) string {
	v, ok := d.data[key]
	if !ok {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return s
	}
	return defaultVal
}

// Duration returns the duration value for key, or defaultVal if missing or invalid.
//
// Accepts:
//   - string: parsed with time.ParseDuration
//   - int: interpreted as seconds
//   - int64: interpreted as seconds
//   - float64: interpreted as seconds
//   - time.Duration: used directly
func (d Data) Duration(key string, defaultVal time.Duration) time.Duration {
	v, ok := d.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case string:
		if dur, err := time.ParseDuration(val); err == nil {
			return dur
		}
	case float64:
		return time.Duration(val * float64(time.Second))
	case int:
		return time.Duration(val) * time.Second
	case int64:
		return time.Duration(val) * time.Second
	case time.Duration:
		return val
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (d Data) Bool(key string, defaultVal bool) bool {
	v, ok := d.data[key]
	if !ok {
		return defaultVal
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not convertible.
//
// JSON decoding produces float64 for all numbers, so float64 values are
// accepted when they have no fractional part.
func (d Data) Int(key string, defaultVal int) int {
	v, ok := d.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	}
	return defaultVal
}

// Float returns the float64 value for key, or defaultVal if missing or not convertible.
func (d Data) Float(key string, defaultVal float64) float64 {
	v, ok := d.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	}
	return defaultVal
}

// StringSlice returns the string slice for key, or defaultVal if missing or not convertible.
//
// Accepts:
//   - []string: used directly
//   - []any: each element converted to string if possible
func (d Data) StringSlice(key string, defaultVal []string) []string {
	v, ok := d.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return defaultVal
			}
			result = append(result, s)
		}
		return result
	}
	return defaultVal
}

// MapSlice returns the value for key as a slice of maps, or nil if missing
// or not convertible. Button and list row definitions decode through this.
func (d Data) MapSlice(key string) []Data {
	v, ok := d.data[key]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	result := make([]Data, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil
		}
		result = append(result, New(m))
	}
	return result
}

// Any returns the raw value for key, or defaultVal if missing.
func (d Data) Any(key string, defaultVal any) any {
	v, ok := d.data[key]
	if !ok {
		return defaultVal
	}
	return v
}

// Has returns true if the key exists.
func (d Data) Has(key string) bool {
	_, ok := d.data[key]
	return ok
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (d Data) Raw() map[string]any {
	return d.data
}
