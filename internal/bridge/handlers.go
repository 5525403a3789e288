package bridge

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muurk/esplink/internal/device"
	"github.com/muurk/esplink/internal/version"
)

// reserved query keys consumed by the bridge itself or set by ControlDevice
var reserved = map[string]bool{
	"host":  true,
	"port":  true,
	"venue": true,
	"name":  true,
}

// Health handles GET /health
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   version.Version,
		Listeners: s.relay.Clients(),
		Timestamp: time.Now(),
	})
}

// Ping handles GET /api/v1/ping?host=&port=
func (s *Server) Ping(c *gin.Context) {
	host := c.Query("host")
	port := c.Query("port")

	if _, err := s.client.CheckConnection(c.Request.Context(), host, port); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, PingResponse{
		Connected: true,
		Target:    device.Target{Host: host, Port: port}.String(),
	})
}

// Device handles GET /api/v1/device?host=&port=&venue=&name=&<extra>.
// Extra parameters are forwarded to the device in the order given.
func (s *Server) Device(c *gin.Context) {
	all, err := device.ParseQuery(c.Request.URL.RawQuery)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   device.KindInvalidArgument.String(),
			Message: err.Error(),
		})
		return
	}

	extra := make([]device.Param, 0, len(all))
	for _, p := range all {
		if !reserved[p.Key] {
			extra = append(extra, p)
		}
	}

	reply, err := s.client.ControlDevice(c.Request.Context(),
		c.Query("host"), c.Query("port"), c.Query("venue"), c.Query("name"), extra...)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

// statusFor maps a device error to the bridge's HTTP status.
func statusFor(err error) int {
	kind, ok := device.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case device.KindInvalidArgument:
		return http.StatusBadRequest
	case device.KindNetworkUnavailable:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeError(c *gin.Context, err error) {
	resp := ErrorResponse{
		Error:   "InternalError",
		Message: device.MessageOf(err),
	}
	if kind, ok := device.KindOf(err); ok {
		resp.Error = kind.String()
	}

	var devErr *device.DeviceError
	if errors.As(err, &devErr) && devErr.StatusCode != 0 {
		resp.StatusCode = devErr.StatusCode
	}

	c.JSON(statusFor(err), resp)
}
