package httpapi

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed translate_request.schema.json
var translateRequestSchemaJSON string

type translatePayload struct {
	Text       string `json:"text"`
	Source     string `json:"source,omitempty"`
	Target     string `json:"target,omitempty"`
	Translator string `json:"translator,omitempty"`
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// payloadError carries per-field validation messages for a JSend fail response.
type payloadError struct {
	fields map[string]string
}

func (e *payloadError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for field, msg := range e.fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid payload: " + strings.Join(parts, "; ")
}

func decodeTranslatePayload(raw []byte) (*translatePayload, error) {
	value, err := decodeStrictJSON(raw)
	if err != nil {
		return nil, &payloadError{fields: map[string]string{"body": err.Error()}}
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &payloadError{fields: schemaFieldErrors(validationErr)}
		}
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalize payload JSON: %w", err)
	}

	var payload translatePayload
	if err := json.Unmarshal(normalized, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return &payload, nil
}

func schemaFieldErrors(validationErr *jsonschema.ValidationError) map[string]string {
	fields := map[string]string{}
	for _, entry := range validationErr.BasicOutput().Errors {
		if entry.KeywordLocation == "" {
			continue
		}
		field := strings.TrimPrefix(entry.InstanceLocation, "/")
		if field == "" {
			field = "body"
		}
		if _, exists := fields[field]; !exists {
			fields[field] = entry.Error
		}
	}
	if len(fields) == 0 {
		fields["body"] = validationErr.Error()
	}
	return fields
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("translate_request.schema.json", strings.NewReader(translateRequestSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("translate_request.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("payload contains trailing content")
	}

	return value, nil
}
