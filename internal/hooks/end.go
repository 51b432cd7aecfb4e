package hooks

import "go.uber.org/zap"

// The store lives only for the duration of a hook invocation, so ending a
// session has nothing to release.
func handleEnd(log *zap.Logger, input *HookInput) {
	log.Debug("session end", zap.String("reason", input.Reason))
}
