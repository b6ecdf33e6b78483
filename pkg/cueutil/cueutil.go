// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the shared CUE parsing flow used by the cepack.cue
// and config.cue loaders: compile the embedded schema, compile the user data,
// unify, validate, and decode into a Go struct.
package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// MaxFileSize caps the size of parsed CUE documents. Declaration files are a
// few kilobytes in practice; anything near this limit is a mistake.
const MaxFileSize int64 = 5 * 1024 * 1024

type (
	decodeOptions struct {
		filename string
		concrete bool
	}

	// Option configures Decode behavior.
	Option func(*decodeOptions)
)

// WithFilename sets the filename reported in error messages.
func WithFilename(name string) Option {
	return func(o *decodeOptions) {
		o.filename = name
	}
}

// WithOptionalFields validates without requiring concrete values, for
// documents where every field is optional (e.g. the global config file).
func WithOptionalFields() Option {
	return func(o *decodeOptions) {
		o.concrete = false
	}
}

// Decode validates data against the named definition in schema and decodes
// the unified value into T. The returned error carries the offending CUE
// path so users can locate the bad field.
func Decode[T any](schema string, data []byte, defPath string, opts ...Option) (*T, error) {
	options := decodeOptions{filename: "<input>", concrete: true}
	for _, opt := range opts {
		opt(&options)
	}

	if int64(len(data)) > MaxFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			options.filename, len(data), MaxFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(options.filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), options.filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(defPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", defPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return nil, FormatError(err, options.filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, options.filename)
	}

	return &result, nil
}
