package ics

import (
	"fmt"
	"strings"
)

type ErrorKind string

const (
	KindMalformedProperty ErrorKind = "malformed_property"
	KindMalformedDuration ErrorKind = "malformed_duration"
	KindInvalidTimeZone   ErrorKind = "invalid_time_zone"
	KindUnterminatedBlock ErrorKind = "unterminated_block"
)

type CustomError struct {
	kind ErrorKind
	msg  string
	args map[string]any
}

// Create a new custom error
func NewCustomError(kind ErrorKind, msg string, args map[string]any) *CustomError {
	if args == nil {
		args = make(map[string]any)
	}
	return &CustomError{
		kind: kind,
		msg:  msg,
		args: args,
	}
}

// Get which of the decode failure kinds this is
func (e *CustomError) Kind() ErrorKind {
	return e.kind
}

// Get a structured argument attached to the error, e.g. the offending
// zone identifier on an invalid_time_zone error
func (e *CustomError) Arg(key string) any {
	return e.args[key]
}

// Get the error message
func (e *CustomError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.kind))
	sb.WriteString(": ")
	sb.WriteString(e.msg)
	sb.WriteString(" |")
	for key, value := range e.args {
		sb.WriteString(fmt.Sprintf(" %s: %v", key, value))
	}
	return sb.String()
}
