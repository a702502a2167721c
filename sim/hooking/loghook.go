package hooking

import (
	"github.com/sirupsen/logrus"
)

type named interface {
	Name() string
}

// LogHook writes every invocation into a logrus logger at debug level.
type LogHook struct {
	logger logrus.FieldLogger
}

// NewLogHook creates a LogHook. A nil logger means the standard logger.
func NewLogHook(logger logrus.FieldLogger) *LogHook {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &LogHook{logger: logger}
}

// Func logs the hook context.
func (h *LogHook) Func(ctx HookCtx) {
	fields := logrus.Fields{
		"pos":  ctx.Pos.Name,
		"item": ctx.Item,
	}

	if n, ok := ctx.Domain.(named); ok {
		fields["domain"] = n.Name()
	}

	if ctx.Detail != nil {
		fields["detail"] = ctx.Detail
	}

	h.logger.WithFields(fields).Debug("hook")
}
