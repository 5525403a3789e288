package device

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Param is one query parameter of a device command.
type Param struct {
	Key   string
	Value string
}

// P builds a Param.
func P(key, value string) Param {
	return Param{Key: key, Value: value}
}

// State builds the state parameter, e.g. State("on").
func State(state string) Param {
	return Param{Key: "state", Value: state}
}

// Value builds the value parameter used for dimmers and similar outputs.
func Value(v int) Param {
	return Param{Key: "value", Value: strconv.Itoa(v)}
}

// Params is an insertion-ordered set of command parameters. Setting a key
// that already exists replaces its value but keeps its position, so the
// encoded query lists keys in the order they were first given.
type Params struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewParams starts a command with venue and name, followed by extra.
func NewParams(venueID, deviceName string, extra ...Param) *Params {
	p := &Params{m: orderedmap.New[string, string]()}
	p.Set("venue", venueID)
	p.Set("name", deviceName)
	for _, e := range extra {
		p.Set(e.Key, e.Value)
	}
	return p
}

// Set adds or replaces a parameter.
func (p *Params) Set(key, value string) {
	p.m.Set(key, value)
}

// Get returns a parameter value.
func (p *Params) Get(key string) (string, bool) {
	return p.m.Get(key)
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	return p.m.Len()
}

// Pairs returns the parameters in order.
func (p *Params) Pairs() []Param {
	out := make([]Param, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Param{Key: pair.Key, Value: pair.Value})
	}
	return out
}

// Encode returns the form-encoded query string in parameter order.
func (p *Params) Encode() string {
	var b strings.Builder
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(pair.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair.Value))
	}
	return b.String()
}

// ParseParam parses a "key=value" argument. A missing "=" yields an empty value.
func ParseParam(s string) (Param, error) {
	key, value, _ := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return Param{}, fmt.Errorf("invalid parameter %q: empty key", s)
	}
	return Param{Key: key, Value: value}, nil
}

// ParseQuery decodes a raw query string keeping the order of its keys,
// which url.ParseQuery does not.
func ParseQuery(raw string) ([]Param, error) {
	var out []Param
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, fmt.Errorf("invalid query key %q: %w", k, err)
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return nil, fmt.Errorf("invalid query value for %q: %w", key, err)
		}
		out = append(out, Param{Key: key, Value: value})
	}
	return out, nil
}
