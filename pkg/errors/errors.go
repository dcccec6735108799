package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeConfiguration Code = "CONFIGURATION_ERROR"
	CodeDataIntegrity Code = "DATA_INTEGRITY_ERROR"
	CodeArithmetic    Code = "ARITHMETIC_ERROR"
	CodeIO            Code = "IO_ERROR"
	CodeInternal      Code = "INTERNAL_ERROR"
)

type Metadata struct {
	ExitCode       int
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeConfiguration: {
		ExitCode:       2,
		PublicMessage:  "invalid generation configuration",
		DetailsAllowed: true,
	},
	CodeDataIntegrity: {
		ExitCode:       3,
		PublicMessage:  "dataset failed integrity checks",
		DetailsAllowed: true,
	},
	CodeArithmetic: {
		ExitCode:       4,
		PublicMessage:  "undefined arithmetic result",
		DetailsAllowed: true,
	},
	CodeIO: {
		ExitCode:       5,
		PublicMessage:  "artifact read/write failed",
		DetailsAllowed: false,
	},
	CodeInternal: {
		ExitCode:       1,
		PublicMessage:  "internal error",
		DetailsAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
