package logs

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Entry is one decoded JSON log line.
type Entry struct {
	Time      string
	Level     string
	Component string
	Message   string
	Source    string
	Attrs     map[string]any
}

var reservedKeys = map[string]struct{}{
	"ts": {}, "level": {}, "msg": {}, "component": {}, "source": {},
}

// ParseEntry decodes line. Lines that are not JSON objects report false.
func ParseEntry(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}
	entry := Entry{
		Time:      stringField(raw, "ts"),
		Level:     strings.ToLower(stringField(raw, "level")),
		Component: stringField(raw, "component"),
		Message:   stringField(raw, "msg"),
		Source:    stringField(raw, "source"),
	}
	for key, value := range raw {
		if _, ok := reservedKeys[key]; ok {
			continue
		}
		if entry.Attrs == nil {
			entry.Attrs = make(map[string]any)
		}
		entry.Attrs[key] = value
	}
	return entry, true
}

func stringField(raw map[string]any, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

var levelRank = map[string]int{"debug": 0, "info": 1, "warn": 2, "warning": 2, "error": 3}

// Filter selects entries by minimum level and component.
type Filter struct {
	Level     string
	Component string
}

// Match reports whether e passes the filter. Unknown levels always match.
func (f Filter) Match(e Entry) bool {
	if f.Component != "" && !strings.EqualFold(f.Component, e.Component) {
		return false
	}
	if f.Level == "" {
		return true
	}
	threshold, ok := levelRank[strings.ToLower(f.Level)]
	if !ok {
		return true
	}
	rank, ok := levelRank[e.Level]
	if !ok {
		return true
	}
	return rank >= threshold
}

// Format renders e in the console layout: "ts LEVEL component: msg k=v".
func (e Entry) Format() string {
	var b strings.Builder
	if e.Time != "" {
		b.WriteString(e.Time)
		b.WriteByte(' ')
	}
	b.WriteString(strings.ToUpper(e.Level))
	b.WriteByte(' ')
	if e.Component != "" {
		b.WriteString(e.Component)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(formatValue(e.Attrs[k]))
	}
	return b.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " \t\"=") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
