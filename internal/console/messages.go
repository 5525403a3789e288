package console

import "github.com/muurk/esplink/internal/notify"

// ToastMsg carries a toast lifecycle event into the program.
type ToastMsg notify.Toast

// resultMsg reports the end of a device request.
type resultMsg struct {
	op    string
	reply map[string]any
	err   error
}
