package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Points is a rule value such as points per task. Fractions are kept. Rule
// inputs arrive from forms and old saves in loose shapes, so decoding never
// fails: numeric strings are parsed and anything else becomes 0.
type Points float64

func (p *Points) UnmarshalJSON(data []byte) error {
	*p = CoercePoints(data)
	return nil
}

// CoercePoints converts a raw JSON value to Points.
func CoercePoints(raw []byte) Points {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		return ParsePoints(s)
	}
	return ParsePoints(string(raw))
}

// ParsePoints parses a form value, defaulting to 0.
func ParsePoints(s string) Points {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Points(f)
}

// CoerceWeekday converts a raw JSON day number. Values that are not whole
// numbers come back as -1, which Cadence.Normalized drops.
func CoerceWeekday(raw []byte) time.Weekday {
	f := float64(CoercePoints(raw))
	if f != math.Trunc(f) {
		return -1
	}
	return time.Weekday(f)
}
