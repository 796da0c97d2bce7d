package core

import (
	"fmt"

	"go.uber.org/zap"
)

// Boundary is the last-resort handler for failures that escape a controller
// call chain. It shows the error, forces loading off and never propagates.
type Boundary struct {
	bindings *Bindings
	logger   *zap.Logger
}

func NewBoundary(b *Bindings, logger *zap.Logger) *Boundary {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Boundary{bindings: b, logger: logger}
}

// Handle displays err. It is safe to call from any goroutine.
func (bd *Boundary) Handle(err error) {
	if err == nil {
		return
	}
	qe := Normalize(err)
	bd.logger.Error("Unhandled error", zap.String("kind", string(qe.Kind)), zap.Error(err))

	defer func() {
		if r := recover(); r != nil {
			bd.logger.Error("Error display failed", zap.Any("panic", r))
		}
	}()

	if bd.bindings.Validate() != nil {
		// no complete UI to draw into; the log entry above is all we can do
		if bd.bindings != nil && bd.bindings.Error != nil {
			bd.bindings.Error.SetText(qe.Message)
			bd.bindings.Error.SetVisible(true)
		}
		return
	}
	bd.bindings.showError(qe.Message)
	bd.bindings.setLoading(false)
}

// Recover turns a panic in the calling goroutine into Handle. Use with defer.
func (bd *Boundary) Recover() {
	if r := recover(); r != nil {
		bd.Handle(fmt.Errorf("panic: %v", r))
	}
}

// Go runs fn in a new goroutine guarded by the boundary.
func (bd *Boundary) Go(fn func()) {
	go func() {
		defer bd.Recover()
		fn()
	}()
}
