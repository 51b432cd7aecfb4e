package hooks

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lazypower/pimemory/internal/config"
)

// Handler dispatches host hook events. Hooks must never break the host
// session: failures are logged and the handler still produces valid output.
type Handler struct {
	Config config.Config
	Log    *zap.Logger
	Stdout io.Writer
	// Dir is the project directory used when the hook input carries no cwd.
	Dir string
}

// Handle reads HookInput from stdin and dispatches on event.
func (h *Handler) Handle(event string, stdin io.Reader) {
	if h.Log == nil {
		h.Log = zap.NewNop()
	}

	var input HookInput
	if err := json.NewDecoder(stdin).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		// Garbled stdin: degrade to an empty response rather than failing.
		h.Log.Warn("decode hook input", zap.String("event", event), zap.Error(err))
		if event == "start" {
			h.writeStart("", "")
		}
		return
	}
	if input.SessionID == "" {
		input.SessionID = uuid.NewString()
	}
	if input.CWD == "" {
		input.CWD = h.Dir
	}
	log := h.Log.With(zap.String("session_id", input.SessionID), zap.String("event", event))

	switch event {
	case "start":
		h.handleStart(log, &input)
	case "end":
		handleEnd(log, &input)
	default:
		log.Warn("unknown hook event")
	}
}

func (h *Handler) writeStart(context, message string) {
	if err := WriteSessionStartOutput(h.Stdout, context, message); err != nil {
		h.Log.Error("write session start output", zap.Error(err))
	}
}
