package device

import (
	"bytes"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ReplySchema checks /device replies against a JSON Schema. Firmware that
// reports its state as e.g. {"name":"lamp","state":"on"} can be held to
// that shape so a mis-flashed board is noticed early.
type ReplySchema struct {
	schema *jsonschema.Schema
	source string
}

// CompileReplySchema compiles a JSON Schema document.
func CompileReplySchema(doc []byte) (*ReplySchema, error) {
	return compileReplySchema(doc, "reply-schema.json")
}

// LoadReplySchema reads and compiles a schema file.
func LoadReplySchema(path string) (*ReplySchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reply schema: %w", err)
	}
	return compileReplySchema(data, path)
}

func compileReplySchema(doc []byte, source string) (*ReplySchema, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse reply schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("reply-schema.json", parsed); err != nil {
		return nil, fmt.Errorf("failed to add reply schema: %w", err)
	}
	compiled, err := c.Compile("reply-schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile reply schema: %w", err)
	}

	return &ReplySchema{schema: compiled, source: source}, nil
}

// Source returns the file or name the schema was loaded from.
func (s *ReplySchema) Source() string {
	return s.source
}

// Validate checks a raw JSON reply body.
func (s *ReplySchema) Validate(body []byte) error {
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return err
	}
	return s.schema.Validate(v)
}
