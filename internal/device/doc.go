// Package device is the client for the microcontroller's HTTP API.
//
// The firmware serves two endpoints over plain HTTP:
//
//	GET /ping                                    -> "pong"
//	GET /device?venue=<v>&name=<n>&state=on      -> JSON reply
//	GET /device?venue=<v>&name=<n>&value=0..100  -> JSON reply
//
// Host and port are taken as the user typed them and sanitized on every
// call: a leading http:// or https:// and one trailing slash are removed
// from the host, and every non-digit is removed from the port.
//
// # Usage Example
//
//	board := notify.NewBoard(notify.NewTerminalRenderer(os.Stderr))
//	client := device.NewClient(nil, board)
//
//	if _, err := client.CheckConnection(ctx, "http://192.168.1.50/", "80"); err != nil {
//	    return err
//	}
//
//	reply, err := client.ControlDevice(ctx, "192.168.1.50", "80",
//	    "hall-a", "stage-lights", device.State("on"))
//
// # Error Handling
//
// Every failure is a *DeviceError whose Kind tells what went wrong:
// NetworkUnavailable (no response), HttpError (non-2xx), ProtocolMismatch
// (ping body was not "pong"), InvalidArgument (missing host or port),
// ParseError (reply was not JSON) and ValidationError (reply did not match
// the configured ReplySchema). There are no retries; one failed attempt is
// final.
//
// # Notifications
//
// When no response is obtained the transport shows "ESP device not
// connected". CheckConnection additionally shows "Connected Successfully"
// or the failure message unless NotifyCheckResult is false.
package device
