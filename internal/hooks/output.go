package hooks

import (
	"encoding/json"
	"io"
)

// SessionStartOutput is the JSON structure the host expects on stdout
// from the SessionStart hook.
type SessionStartOutput struct {
	HookSpecificOutput struct {
		HookEventName     string `json:"hookEventName"`
		AdditionalContext string `json:"additionalContext"`
	} `json:"hookSpecificOutput"`
	// SystemMessage is shown to the user; AdditionalContext is not.
	SystemMessage string `json:"systemMessage,omitempty"`
}

// WriteSessionStartOutput writes the SessionStart response to w.
func WriteSessionStartOutput(w io.Writer, context, message string) error {
	out := SessionStartOutput{SystemMessage: message}
	out.HookSpecificOutput.HookEventName = "SessionStart"
	out.HookSpecificOutput.AdditionalContext = context
	return json.NewEncoder(w).Encode(out)
}
