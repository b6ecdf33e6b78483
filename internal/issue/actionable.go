// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a user-facing error for the failure points of a
	// packaging run: loading configuration, rendering manifests, staging
	// trees, invoking the signer. Besides the message it carries what was
	// being attempted, the file or host involved, and how to get unstuck,
	// so commands can print more than a bare cause.
	//
	// Construct through the ErrorContext builder:
	//
	//	return issue.NewErrorContext().
	//		WithOperation("sign archive").
	//		WithResource(archivePath).
	//		WithSuggestion("Check the certificate password").
	//		Wrap(err).
	//		BuildError()
	ActionableError struct {
		// Operation is the attempted action as a verb phrase, such as
		// "load configuration" or "sign archive". Required.
		Operation string

		// Resource is the file, directory, or host the operation acted on.
		Resource string

		// Suggestions are remediation hints, printed as a bullet list.
		Suggestions []string

		// Cause is the underlying error, reachable via errors.Is/As.
		Cause error
	}

	// ErrorContext accumulates ActionableError fields fluently. A context
	// can be prepared up front and finished with Wrap at the failure site.
	ErrorContext struct {
		err ActionableError
	}
)

// NewErrorContext starts an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error renders the one-line form: the operation, then the resource and
// cause when present, colon-separated.
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes the cause to errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// HasSuggestions reports whether Format will print remediation hints.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// Format renders the error for terminal output: the one-line message,
// suggestions as bullets, and in verbose mode the unwrapped cause chain
// so nested failures (a signing error inside a packaging run) stay
// attributable.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, suggestion := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(suggestion)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}

	return msg.String()
}

// WithOperation sets the attempted action, as a verb phrase.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithResource sets the file, directory, or host involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.err.Resource = res
	return c
}

// WithSuggestion appends one remediation hint. Call repeatedly to stack
// several.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, sug)
	return c
}

// Wrap records the underlying error. Calling it again replaces the cause,
// so a prepared context can serve several failure sites.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// Build finishes the error. An operation is required; without one there is
// nothing sensible to report and Build returns nil.
func (c *ErrorContext) Build() *ActionableError {
	if c.err.Operation == "" {
		return nil
	}
	built := c.err
	return &built
}

// BuildError is Build returning the error interface, with the nil case
// kept as an untyped nil for direct use in return statements.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
