package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler manages graceful shutdown with friendly messages.
type InterruptHandler struct {
	writer      io.Writer
	notify      func(chan<- os.Signal)
	interrupted bool
	saved       bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stderr
	}
	return &InterruptHandler{
		writer: writer,
		notify: func(c chan<- os.Signal) {
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		},
	}
}

// WithNotify replaces how the handler subscribes to signals. notify receives
// the channel that triggers cancellation.
func (h *InterruptHandler) WithNotify(notify func(chan<- os.Signal)) *InterruptHandler {
	h.notify = notify
	return h
}

// HandleInterrupts returns a context that is canceled on SIGINT or SIGTERM.
// When savesProgress is set the message tells the user that completed days
// are kept.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context, savesProgress bool) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.saved = savesProgress

	sigChan := make(chan os.Signal, 1)
	h.notify(sigChan)

	go func() {
		select {
		case <-sigChan:
			h.mu.Lock()
			// Cancel before the interrupt becomes visible through
			// WasInterrupted.
			cancel()
			if !h.interrupted {
				h.interrupted = true
				h.showInterruptMessage()
			}
			h.mu.Unlock()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx
}

func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n\n" + FormatWarning("Simulation interrupted!")

	if h.saved {
		msg += "\n" + FormatInfo("Completed days have been saved. Continue with: rose advance")
	}

	msg += "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
