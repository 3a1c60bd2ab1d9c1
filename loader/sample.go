package loader

import (
	"fmt"
	"strconv"
)

// A Sample is one namespace of server-reported name/value pairs (status
// counters or config variables), captured once and never mutated.
type Sample map[string]string

// Row is a string-keyed result row from the database session. NULL columns
// are absent from the map.
type Row = map[string]string

// Get methods for the given key. Server-side types are strings; callers
// coerce explicitly before arithmetic.

func (s Sample) GetString(key string) (string, error) {
	val, ok := s[key]
	if !ok {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return val, nil
}

func (s Sample) GetFloat(key string) (float64, error) {
	val, err := s.GetString(key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("key %s not a number: %v", key, err)
	}
	return f, nil
}

func (s Sample) GetInt(key string) (int64, error) {
	val, err := s.GetString(key)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("key %s not an integer: %v", key, err)
	}
	return i, nil
}

// GetBool handles the ON/OFF and YES/NO forms mysql variables use
func (s Sample) GetBool(key string) (bool, error) {
	val, err := s.GetString(key)
	if err != nil {
		return false, err
	}
	switch val {
	case `ON`, `YES`, `Yes`, `1`:
		return true, nil
	case `OFF`, `NO`, `No`, `0`:
		return false, nil
	}
	return false, fmt.Errorf("key %s not a boolean: %s", key, val)
}
