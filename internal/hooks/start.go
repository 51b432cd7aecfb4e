package hooks

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lazypower/pimemory/internal/memory"
)

func (h *Handler) handleStart(log *zap.Logger, input *HookInput) {
	store, err := memory.Open(h.Config, input.CWD, log)
	if err != nil {
		// Degrade gracefully — return empty context
		log.Warn("open memory store", zap.Error(err))
		h.writeStart("", "")
		return
	}

	snap := store.Load()
	log.Debug("session start",
		zap.String("hook_event_name", input.HookEventName),
		zap.String("source", input.Source),
		zap.String("model", input.Model),
		zap.String("transcript_path", input.TranscriptPath),
		zap.Any("loaded", snap.Loaded()))
	h.writeStart(BuildContext(snap), LoadedMessage(snap))
}

// BuildContext renders loaded memory as hidden context for the assistant.
// It is empty when neither scope has content.
func BuildContext(snap memory.Snapshot) string {
	var parts []string
	for _, scope := range memory.Scopes {
		m := snap.Get(scope)
		if m.Empty() {
			continue
		}
		parts = append(parts, fmt.Sprintf("=== %s MEMORY (%s) ===\n%s", strings.ToUpper(string(scope)), m.Path, m.Content))
	}
	return strings.Join(parts, "\n\n")
}

// LoadedMessage is the user-facing notice naming which scopes loaded,
// e.g. "📝 Memory loaded: global + project". Empty when nothing loaded.
func LoadedMessage(snap memory.Snapshot) string {
	loaded := snap.Loaded()
	if len(loaded) == 0 {
		return ""
	}
	names := make([]string, len(loaded))
	for i, scope := range loaded {
		names[i] = string(scope)
	}
	return "📝 Memory loaded: " + strings.Join(names, " + ")
}
