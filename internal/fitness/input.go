package fitness

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

var ErrUnsupportedValue = errors.New("unsupported value, expected string, number or null")

// Field is a raw request value. Clients send numbers both as JSON numbers and as
// strings, so the value is kept as text and parsed by the operation that owns it.
// Present tells an absent key apart from an explicit null or empty string.
type Field struct {
	Present bool
	Null    bool
	Raw     string
}

// FieldOf builds a present, non-null field.
func FieldOf(raw string) Field {
	return Field{Present: true, Raw: raw}
}

// NullField builds a present field holding JSON null.
func NullField() Field {
	return Field{Present: true, Null: true}
}

func (f *Field) UnmarshalJSON(b []byte) error {
	f.Present = true
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		f.Null = true
		f.Raw = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f.Raw = s
		return nil
	case len(b) > 0 && (b[0] == '{' || b[0] == '['):
		return ErrUnsupportedValue
	default:
		f.Raw = string(b)
		return nil
	}
}

func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Present || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Raw)
}

// DecodeJSON decodes a JSON object from r into v one key at a time, so a value of
// the wrong shape is reported as a *ValidationError naming its key.
func DecodeJSON(r io.Reader, v any) error {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return NewValidationError("body", "must be a JSON object")
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		single, err := json.Marshal(map[string]json.RawMessage{k: raw[k]})
		if err != nil {
			return NewValidationError(k, "malformed value")
		}
		if err := json.Unmarshal(single, v); err != nil {
			return NewValidationError(k, "must be a string, number or null")
		}
	}
	return nil
}

// Value returns the trimmed text of the field.
func (f Field) Value() string {
	return strings.TrimSpace(f.Raw)
}

// Blank reports whether the field is absent, null or an empty string.
func (f Field) Blank() bool {
	return !f.Present || f.Null || f.Value() == ""
}

// PositiveInt parses the field as an integer > 0.
func (f Field) PositiveInt(name string) (int64, error) {
	if f.Blank() {
		return 0, NewValidationError(name, "is required")
	}
	v, err := strconv.ParseInt(f.Value(), 10, 64)
	if err != nil {
		return 0, NewValidationError(name, "must be a whole number, got %q", f.Value())
	}
	if v <= 0 {
		return 0, NewValidationError(name, "must be positive, got %d", v)
	}
	return v, nil
}

// NonNegativeInt parses the field as an integer >= 0.
func (f Field) NonNegativeInt(name string) (int64, error) {
	if f.Blank() {
		return 0, NewValidationError(name, "is required")
	}
	v, err := strconv.ParseInt(f.Value(), 10, 64)
	if err != nil {
		return 0, NewValidationError(name, "must be a whole number, got %q", f.Value())
	}
	if v < 0 {
		return 0, NewValidationError(name, "must not be negative, got %d", v)
	}
	return v, nil
}

// NonNegativeFloat parses the field as a finite number >= 0.
func (f Field) NonNegativeFloat(name string) (float64, error) {
	if f.Blank() {
		return 0, NewValidationError(name, "is required")
	}
	v, err := strconv.ParseFloat(f.Value(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, NewValidationError(name, "must be a number, got %q", f.Value())
	}
	if v < 0 {
		return 0, NewValidationError(name, "must not be negative, got %g", v)
	}
	return v, nil
}

// Float parses the field as any float, used where no validation is applied.
func (f Field) Float() (float64, bool) {
	if f.Blank() {
		return 0, false
	}
	v, err := strconv.ParseFloat(f.Value(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
