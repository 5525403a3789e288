package notify

import "sync"

// Note is one recorded notification.
type Note struct {
	Message  string
	Severity Severity
}

// Recorder is a Notifier that remembers every call. It is safe for
// concurrent use and is meant for tests.
type Recorder struct {
	mu    sync.Mutex
	notes []Note
}

// Notify implements Notifier
func (r *Recorder) Notify(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Note{Message: message, Severity: severity.Normalize()})
}

// Notes returns a copy of the recorded notifications in call order.
func (r *Recorder) Notes() []Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Note(nil), r.notes...)
}

// Has reports whether a notification with this message and severity was recorded.
func (r *Recorder) Has(message string, severity Severity) bool {
	for _, n := range r.Notes() {
		if n.Message == message && n.Severity == severity {
			return true
		}
	}
	return false
}

// Reset clears the recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = nil
}
