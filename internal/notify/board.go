package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/muurk/esplink/internal/logging"
)

// Renderer observes toast lifecycle transitions. Render is called once when a
// toast becomes visible, once when it starts fading and once when it is
// removed. Calls happen outside the Board's lock.
type Renderer interface {
	Render(t Toast)
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(t Toast)

// Render calls f(t).
func (f RendererFunc) Render(t Toast) {
	f(t)
}

// Board is a Notifier that keeps the stack of on-screen toasts and drives
// each one through visible, fading and removed. Toasts are independent:
// each has its own timers and there is no queue.
type Board struct {
	// Display is how long a toast stays visible before fading
	Display time.Duration

	// Fade is how long the fade lasts before removal
	Fade time.Duration

	mu        sync.Mutex
	toasts    []*Toast
	timers    map[string]*time.Timer
	renderers []Renderer
	closed    bool
	now       func() time.Time
}

// NewBoard creates a Board with the default display and fade durations.
func NewBoard(renderers ...Renderer) *Board {
	return &Board{
		Display:   DisplayDuration,
		Fade:      FadeDuration,
		timers:    make(map[string]*time.Timer),
		renderers: renderers,
		now:       time.Now,
	}
}

// AddRenderer registers another lifecycle observer.
func (b *Board) AddRenderer(r Renderer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.renderers = append(b.renderers, r)
}

// Notify creates a toast, shows it and schedules its fade and removal.
func (b *Board) Notify(message string, severity Severity) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}

	t := &Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity.Normalize(),
		State:     StateVisible,
		CreatedAt: b.now(),
	}
	b.toasts = append(b.toasts, t)
	b.timers[t.ID] = time.AfterFunc(b.Display, func() { b.fade(t.ID) })
	snapshot, renderers := *t, b.snapshotRenderers()
	b.mu.Unlock()

	b.emit(renderers, snapshot)
}

// fade moves a visible toast into its fade-out and schedules removal.
func (b *Board) fade(id string) {
	b.mu.Lock()
	t := b.find(id)
	if t == nil || t.State != StateVisible || b.closed {
		b.mu.Unlock()
		return
	}

	t.State = StateFading
	b.timers[id] = time.AfterFunc(b.Fade, func() { b.Dismiss(id) })
	snapshot, renderers := *t, b.snapshotRenderers()
	b.mu.Unlock()

	b.emit(renderers, snapshot)
}

// Dismiss removes a toast immediately. It reports false when the toast is
// already gone, so a removal scheduled after a manual dismiss is a no-op.
func (b *Board) Dismiss(id string) bool {
	b.mu.Lock()
	idx := -1
	for i, t := range b.toasts {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return false
	}

	t := b.toasts[idx]
	b.toasts = append(b.toasts[:idx], b.toasts[idx+1:]...)
	if timer, ok := b.timers[id]; ok {
		timer.Stop()
		delete(b.timers, id)
	}
	t.State = StateRemoved
	snapshot, renderers := *t, b.snapshotRenderers()
	b.mu.Unlock()

	b.emit(renderers, snapshot)
	return true
}

// Visible returns a copy of the current stack, oldest first.
func (b *Board) Visible() []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Toast, 0, len(b.toasts))
	for _, t := range b.toasts {
		out = append(out, *t)
	}
	return out
}

// Close stops all pending timers. Toasts still on the board are left as they
// are and later Notify calls are ignored.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for id, timer := range b.timers {
		timer.Stop()
		delete(b.timers, id)
	}
}

func (b *Board) find(id string) *Toast {
	for _, t := range b.toasts {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (b *Board) snapshotRenderers() []Renderer {
	return append([]Renderer(nil), b.renderers...)
}

func (b *Board) emit(renderers []Renderer, t Toast) {
	logging.LogToast(t.ID, string(t.Severity), t.State.String(), t.Message)
	for _, r := range renderers {
		r.Render(t)
	}
}
