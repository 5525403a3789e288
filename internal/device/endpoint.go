package device

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	schemePattern = regexp.MustCompile(`^https?://`)
	nonDigits     = regexp.MustCompile(`[^0-9]`)
)

// SanitizeHost strips a leading http:// or https:// and one trailing slash.
func SanitizeHost(host string) string {
	host = schemePattern.ReplaceAllString(host, "")
	return strings.TrimSuffix(host, "/")
}

// SanitizePort keeps only the digits of port. A port with no digits becomes
// the empty string and the resulting URL has an empty port segment.
func SanitizePort(port string) string {
	return nonDigits.ReplaceAllString(port, "")
}

// Target is a device address as the user supplied it. It is sanitized every
// time a URL is built from it, never cached.
type Target struct {
	Host string `yaml:"host" json:"host"`
	Port string `yaml:"port" json:"port"`
}

// Clean returns the target with host and port sanitized.
func (t Target) Clean() Target {
	return Target{Host: SanitizeHost(t.Host), Port: SanitizePort(t.Port)}
}

// IsZero reports whether either half of the address is missing.
func (t Target) IsZero() bool {
	return t.Host == "" || t.Port == ""
}

// BaseURL returns http://<host>:<port> using the sanitized values.
func (t Target) BaseURL() string {
	c := t.Clean()
	return fmt.Sprintf("http://%s:%s", c.Host, c.Port)
}

// URL joins the base URL with path and an already-encoded query.
func (t Target) URL(path, query string) string {
	u := t.BaseURL() + path
	if query != "" {
		u += "?" + query
	}
	return u
}

// String returns host:port as supplied
func (t Target) String() string {
	return t.Host + ":" + t.Port
}
