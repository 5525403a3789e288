// Package ui renders the short bordered reports esplink prints when a
// command finishes: a green box for success, a red one with an error and
// troubleshooting hint for failure.
//
// Reports go to stderr and only when it is a terminal; piped output keeps
// the plain "Error: ..." form so scripts can parse it.
//
//	fmt.Fprintln(os.Stderr, ui.Failure("ping failed", err, device.Hint(err)).SetWidth(ui.ReportWidth(os.Stderr)))
package ui
