package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// StatValue is the headline figure of a stat: either free text ("72 kg") or
// a plain number (8500).
type StatValue struct {
	text  string
	num   float64
	isNum bool
}

// StringValue wraps a pre-formatted value.
func StringValue(s string) StatValue { return StatValue{text: s} }

// NumberValue wraps a numeric value.
func NumberValue(n float64) StatValue { return StatValue{num: n, isNum: true} }

// IsNumber reports whether the value was built with NumberValue.
func (v StatValue) IsNumber() bool { return v.isNum }

// Number returns the numeric value and whether one is present.
func (v StatValue) Number() (float64, bool) { return v.num, v.isNum }

// String renders the value as it appears on a card. Numbers use the shortest
// decimal form: 8500, 3.5, 0.
func (v StatValue) String() string {
	if v.isNum {
		return FormatNumber(v.num)
	}
	return v.text
}

func (v StatValue) MarshalJSON() ([]byte, error) {
	if v.isNum {
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil, fmt.Errorf("stat value: unsupported number %v", v.num)
		}
		return []byte(FormatNumber(v.num)), nil
	}
	return json.Marshal(v.text)
}

func (v *StatValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("stat value: expected string or number, got %s", data)
	}
	*v = NumberValue(n)
	return nil
}

// FormatNumber prints n in its shortest decimal representation.
func FormatNumber(n float64) string {
	if n == 0 {
		n = 0 // normalise -0
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Trend is a percentage change expressed as a magnitude plus a direction.
// The sign of Value is ignored; IsPositive alone carries the direction.
type Trend struct {
	Value      float64 `json:"value"`
	IsPositive bool    `json:"is_positive"`
}

// Stat is the data behind one dashboard card.
type Stat struct {
	Kind     MetricKind `json:"kind"`
	Title    string     `json:"title"`
	Value    StatValue  `json:"value"`
	Subtitle *string    `json:"subtitle,omitempty"`
	Icon     string     `json:"icon"`
	Trend    *Trend     `json:"trend,omitempty"`
}
