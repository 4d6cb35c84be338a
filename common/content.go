package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Metric is structured content of a dataMetric slot.
type Metric struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
	Trend string `json:"trend,omitempty"`
}

// SlotValue is the content of a single slot: plain text or a metric.
type SlotValue struct {
	Text   string
	Metric *Metric
}

// Text creates plain text slot value.
func Text(s string) SlotValue {
	return SlotValue{Text: s}
}

// MetricValue creates structured metric slot value.
func MetricValue(value, label, trend string) SlotValue {
	return SlotValue{Metric: &Metric{Value: value, Label: label, Trend: trend}}
}

// IsMetric reports whether value carries structured metric.
func (v SlotValue) IsMetric() bool {
	return v.Metric != nil
}

// String returns text form of the value, metrics are flattened to
// "value|label|trend".
func (v SlotValue) String() string {
	if v.Metric == nil {
		return v.Text
	}
	parts := []string{v.Metric.Value, v.Metric.Label, v.Metric.Trend}
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, "|")
}

// IsBlank reports whether value has no visible content.
func (v SlotValue) IsBlank() bool {
	if v.Metric != nil {
		return strings.TrimSpace(v.Metric.Value+v.Metric.Label+v.Metric.Trend) == ""
	}
	return strings.TrimSpace(v.Text) == ""
}

// Len returns length of the value in characters.
func (v SlotValue) Len() int {
	return utf8.RuneCountInString(v.String())
}

// Clone returns deep copy.
func (v SlotValue) Clone() SlotValue {
	if v.Metric != nil {
		m := *v.Metric
		v.Metric = &m
	}
	return v
}

// Equal compares values by content.
func (v SlotValue) Equal(o SlotValue) bool {
	if (v.Metric == nil) != (o.Metric == nil) {
		return false
	}
	if v.Metric != nil {
		return *v.Metric == *o.Metric
	}
	return v.Text == o.Text
}

// AsMetric interprets value as a metric: structured values are returned as
// is, text is split on "|" into value, label and trend.
func (v SlotValue) AsMetric() Metric {
	if v.Metric != nil {
		return *v.Metric
	}
	parts := strings.SplitN(v.Text, "|", 3)
	var m Metric
	m.Value = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		m.Label = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		m.Trend = strings.TrimSpace(parts[2])
	}
	return m
}

func (v SlotValue) MarshalJSON() ([]byte, error) {
	if v.Metric != nil {
		return json.Marshal(v.Metric)
	}
	return json.Marshal(v.Text)
}

func (v *SlotValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = SlotValue{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = SlotValue{Text: s}
	case '{':
		var raw struct {
			Value json.RawMessage `json:"value"`
			Label string          `json:"label"`
			Trend string          `json:"trend"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("unable to decode metric: %w", err)
		}
		m := &Metric{Label: raw.Label, Trend: raw.Trend}
		if len(raw.Value) > 0 {
			var s string
			if err := json.Unmarshal(raw.Value, &s); err != nil {
				// numbers are kept as written
				s = string(bytes.TrimSpace(raw.Value))
			}
			m.Value = s
		}
		*v = SlotValue{Metric: m}
	case '[':
		return fmt.Errorf("unsupported slot value: %s", data)
	default:
		// numbers and booleans are kept as written
		*v = SlotValue{Text: string(data)}
	}
	return nil
}

// Content maps slot ids to their values.
type Content map[string]SlotValue

// Clone returns deep copy of content.
func (c Content) Clone() Content {
	if c == nil {
		return nil
	}
	out := make(Content, len(c))
	for k, v := range c {
		out[k] = v.Clone()
	}
	return out
}

// Equal compares content maps by value.
func (c Content) Equal(o Content) bool {
	if len(c) != len(o) {
		return false
	}
	for k, v := range c {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// ContentFromStrings is a convenience for callers which only deal with text.
func ContentFromStrings(m map[string]string) Content {
	out := make(Content, len(m))
	for k, v := range m {
		out[k] = Text(v)
	}
	return out
}
