package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Float is a float64 that round-trips NaN and ±Inf through JSON and text
// columns. Finite values encode as JSON numbers; non-finite values encode as
// the strings "NaN", "+Inf" and "-Inf".
type Float float64

// Float64 returns the underlying value.
func (f Float) Float64() float64 { return float64(f) }

// String formats f with the shortest representation that parses back to the
// same value. Non-finite values use strconv's spelling.
func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(f.String())
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseFloat(s)
		if err != nil {
			return err
		}
		*f = v
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// ParseFloat parses the text form written by Float.String. strconv also
// accepts "Infinity" and "-Infinity", case-insensitively.
func ParseFloat(s string) (Float, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("model: parse float %q: %w", s, err)
	}
	return Float(v), nil
}
