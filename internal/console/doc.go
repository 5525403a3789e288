// Package console is an interactive terminal front end for one device.
//
// A small form holds host, port, venue, device name and a level. Key
// bindings send a ping, switch the device on or off, or send the level.
// Toasts raised while the console runs are drawn as an overlay at the
// bottom of the screen and follow the same lifecycle as everywhere else:
// visible, fading, removed.
package console
