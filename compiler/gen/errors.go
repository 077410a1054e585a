package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates a schema tree that violates its invariants.
	ErrInvalidSchema = errors.New("teogen: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("teogen: missing configuration")
	// ErrUnresolvableType indicates a type that a target cannot express.
	ErrUnresolvableType = errors.New("teogen: unresolvable type")
	// ErrMalformedReference indicates a synthesized reference that violates its naming rules.
	ErrMalformedReference = errors.New("teogen: malformed synthesized reference")
	// ErrAmbiguousPath indicates a path the target's path style cannot express.
	ErrAmbiguousPath = errors.New("teogen: ambiguous path")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("teogen: code generation failed")
)

// SchemaError represents a schema definition error.
type SchemaError struct {
	Path    []string // Path of the offending declaration
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("teogen: schema error")
	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(path []string, message string, cause error) *SchemaError {
	return &SchemaError{
		Path:    path,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("teogen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("teogen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// UnresolvableTypeError is returned when a type has no rendering in a target,
// or when a compiler-internal type reaches the generator.
type UnresolvableTypeError struct {
	Target string // Target name, empty during outline construction
	Model  string // Owning model or interface (if known)
	Field  string // Field name (if known)
	Type   string // Display form of the offending type
}

// Error implements the error interface.
func (e *UnresolvableTypeError) Error() string {
	var b strings.Builder
	b.WriteString("teogen: unresolvable type ")
	b.WriteString(e.Type)
	if e.Target != "" {
		b.WriteString(" for target ")
		b.WriteString(e.Target)
	}
	if e.Model != "" {
		b.WriteString(" on ")
		b.WriteString(e.Model)
		if e.Field != "" {
			b.WriteString(".")
			b.WriteString(e.Field)
		}
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for UnresolvableTypeError.
func (e *UnresolvableTypeError) Is(target error) bool {
	return target == ErrUnresolvableType
}

// NewUnresolvableTypeError creates a new UnresolvableTypeError.
func NewUnresolvableTypeError(target, typ string) *UnresolvableTypeError {
	return &UnresolvableTypeError{
		Target: target,
		Type:   typ,
	}
}

// MalformedReferenceError is returned for synthesized references whose kind,
// owner or without value do not agree.
type MalformedReferenceError struct {
	Kind    string
	Owner   string
	Message string
}

// Error implements the error interface.
func (e *MalformedReferenceError) Error() string {
	var b strings.Builder
	b.WriteString("teogen: malformed reference")
	if e.Kind != "" {
		b.WriteString(" ")
		b.WriteString(e.Kind)
	}
	if e.Owner != "" {
		b.WriteString(" of ")
		b.WriteString(e.Owner)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for MalformedReferenceError.
func (e *MalformedReferenceError) Is(target error) bool {
	return target == ErrMalformedReference
}

// NewMalformedReferenceError creates a new MalformedReferenceError.
func NewMalformedReferenceError(kind, owner, message string) *MalformedReferenceError {
	return &MalformedReferenceError{
		Kind:    kind,
		Owner:   owner,
		Message: message,
	}
}

// AmbiguousPathError is returned when a reference cannot be expressed in a
// target's path style.
type AmbiguousPathError struct {
	Target  []string
	Current []string
	Message string
}

// Error implements the error interface.
func (e *AmbiguousPathError) Error() string {
	return fmt.Sprintf("teogen: ambiguous path %q from %q: %s",
		strings.Join(e.Target, "."), strings.Join(e.Current, "."), e.Message)
}

// Is reports whether the target matches the sentinel error for AmbiguousPathError.
func (e *AmbiguousPathError) Is(target error) bool {
	return target == ErrAmbiguousPath
}

// NewAmbiguousPathError creates a new AmbiguousPathError.
func NewAmbiguousPathError(target, current []string, message string) *AmbiguousPathError {
	return &AmbiguousPathError{
		Target:  target,
		Current: current,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // target name, "outline", "write", etc.
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("teogen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsUnresolvableTypeError reports whether the error is an UnresolvableTypeError.
func IsUnresolvableTypeError(err error) bool {
	var typeErr *UnresolvableTypeError
	return errors.As(err, &typeErr)
}

// IsMalformedReferenceError reports whether the error is a MalformedReferenceError.
func IsMalformedReferenceError(err error) bool {
	var refErr *MalformedReferenceError
	return errors.As(err, &refErr)
}

// IsAmbiguousPathError reports whether the error is an AmbiguousPathError.
func IsAmbiguousPathError(err error) bool {
	var pathErr *AmbiguousPathError
	return errors.As(err, &pathErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
