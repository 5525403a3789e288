// Package notify shows short-lived, styled notifications ("toasts").
//
// A toast has a message and a severity (success, error or info). It is
// visible for DisplayDuration, fades for FadeDuration and is then removed.
// Toasts fired close together stack; each follows its own timers and there
// is no queue.
//
// Board implements the lifecycle and hands every transition to its
// Renderers: TerminalRenderer prints a centred lipgloss line, Relay streams
// JSON events to browser pages over websocket, and the console package
// draws the stack as a bottom-centred overlay.
//
//	board := notify.NewBoard(notify.NewTerminalRenderer(os.Stderr))
//	defer board.Close()
//	board.Notify("Connected Successfully", notify.SeveritySuccess)
//
// Anything that only needs to emit toasts should accept the Notifier
// interface; Recorder is a test double for it.
package notify
