package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// TerminalRenderer prints each toast once, when it becomes visible, as a
// styled line centred on the terminal. Fade and removal are not drawn:
// scrolled output cannot be taken back.
type TerminalRenderer struct {
	mu    sync.Mutex
	out   io.Writer
	width int
}

// NewTerminalRenderer creates a renderer writing to out. When out is a
// terminal the toast is centred on its width.
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	width := 0
	if f, ok := out.(*os.File); ok {
		width = TerminalWidth(f)
	}
	return &TerminalRenderer{out: out, width: width}
}

// Render implements Renderer
func (r *TerminalRenderer) Render(t Toast) {
	if t.State != StateVisible {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.out, RenderToast(t, r.width))
}
