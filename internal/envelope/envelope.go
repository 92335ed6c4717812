// Package envelope parses CloudEvents v1.0 envelopes from decoded JSON.
//
// Parsing is deliberately permissive: a missing or mistyped field defaults
// to its zero value instead of failing, so a delivery is never rejected
// because of a malformed optional attribute.
package envelope

import (
	"github.com/gridhook-systems/gridhook/internal/models"
)

// Parse extracts the standard CloudEvents attributes from a decoded JSON
// object. It never fails; unknown specversion values are passed through
// unchanged and an absent specversion defaults to "1.0".
func Parse(raw map[string]any) models.Envelope {
	env := models.Envelope{
		SpecVersion: stringField(raw, "specversion"),
		ID:          stringField(raw, "id"),
		Source:      stringField(raw, "source"),
		Type:        stringField(raw, "type"),
		Subject:     stringField(raw, "subject"),
		Time:        stringField(raw, "time"),
		Data:        map[string]any{},
	}

	if env.SpecVersion == "" {
		env.SpecVersion = models.DefaultSpecVersion
	}

	if data, ok := raw["data"].(map[string]any); ok {
		env.Data = data
	}

	return env
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
