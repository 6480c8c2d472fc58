// Package errors provides standardized error handling for comicsort.
// It defines the error kinds produced while loading configuration and while
// sorting individual files, plus helpers for creating, wrapping and
// classifying them.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Configuration error kinds, fatal before any file is touched
	InvalidConfig
	ConfigNotFound
	// Per-file error kinds
	PatternMismatch
	InvalidTimestamp
	SplitMismatch
	DirectoryCreateFailed
	DirectoryNotFound
	MoveFailed
	FunctionFailed
)

var kindNames = map[ErrorKind]string{
	Unknown:               "unknown",
	InvalidConfig:         "invalid_config",
	ConfigNotFound:        "config_not_found",
	PatternMismatch:       "pattern_mismatch",
	InvalidTimestamp:      "invalid_timestamp",
	SplitMismatch:         "split_mismatch",
	DirectoryCreateFailed: "directory_create",
	DirectoryNotFound:     "directory_not_found",
	MoveFailed:            "move",
	FunctionFailed:        "function_failed",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// PerFile reports whether errors of this kind only affect the file being
// processed. The engine records them and moves on to the next file.
func (k ErrorKind) PerFile() bool {
	switch k {
	case PatternMismatch, InvalidTimestamp, SplitMismatch,
		DirectoryCreateFailed, DirectoryNotFound, MoveFailed, FunctionFailed:
		return true
	}
	return false
}

// Common error constants for frequently occurring errors
var (
	ErrInvalidConfig  = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrConfigNotFound = NewConfigError("configuration file not found", "", ConfigNotFound, nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Is matches errors of the same concrete kind so that the exported sentinel
// values work with errors.Is.
func (e *ApplicationError) Is(target error) bool {
	var k kinded
	if !errors.As(target, &k) {
		return false
	}
	return k.Kind() != Unknown && k.Kind() == e.kind
}

type kinded interface {
	Kind() ErrorKind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// MappingError represents a failure while applying a mapping to one file
type MappingError struct {
	ApplicationError
	mapping string
	file    string
}

// NewMappingError creates a new mapping error
func NewMappingError(msg string, mapping, file string, kind ErrorKind, err error) *MappingError {
	return &MappingError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		mapping: mapping,
		file:    file,
	}
}

// Error returns the mapping error message
func (e *MappingError) Error() string {
	prefix := e.msg
	if e.mapping != "" {
		prefix = fmt.Sprintf("%s: %s", prefix, e.mapping)
	}
	if e.file != "" {
		prefix = fmt.Sprintf("%s: %s", prefix, e.file)
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %v", prefix, e.err)
	}
	return prefix
}

// Mapping returns the title of the mapping that failed
func (e *MappingError) Mapping() string {
	return e.mapping
}

// File returns the filename being processed when the error occurred
func (e *MappingError) File() string {
	return e.file
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// NewKind creates a new error of the given kind
func NewKind(kind ErrorKind, format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: kind,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsKind checks whether err carries the given kind anywhere in its chain
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// IsInvalidConfig checks if the error is a configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig || configErr.Kind() == ConfigNotFound
	}
	return false
}

// IsPerFile checks if the error only concerns a single file
func IsPerFile(err error) bool {
	return KindOf(err).PerFile()
}
