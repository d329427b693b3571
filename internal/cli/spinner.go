package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames is the braille animation cycle shared by the spinner
// and the live progress display.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a progress indicator on stderr until stopped or the
// parent context is canceled.
type spinner struct {
	msg     string
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
}

// startSpinner launches the animation and returns a handle to stop it.
func startSpinner(ctx context.Context, msg string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		msg:     msg,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go s.run(sctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(90 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(os.Stderr, "\r%s %s", styleSpinner.Render(frame), StyleDim.Render(s.msg))
		}
	}
}

// stop halts the animation and clears the line. It is safe to call more
// than once and waits until the spinner goroutine has exited.
func (s *spinner) stop() {
	s.once.Do(s.cancel)
	<-s.stopped
}

func (s *spinner) clearLine() {
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.msg)+4))
}
