package scalar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies scalar codec failures.
type ErrorKind int

const (
	// UnsupportedType means the type name is not one the codec knows.
	UnsupportedType ErrorKind = iota + 1

	// MalformedValue means the type is known but the input cannot be
	// converted: bad number, wrong fixed width, bad hex, empty char.
	MalformedValue
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedType:
		return "unsupported type"
	case MalformedValue:
		return "malformed value"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrUnsupportedType = errors.New("scalar: unsupported type")
	ErrMalformedValue  = errors.New("scalar: malformed value")
)

// Error is returned by every failing Encode or Decode call.
type Error struct {
	Kind ErrorKind

	// TypeName is the type name the caller asked for.
	TypeName string

	// Value is the offending textual input on encode, empty on decode.
	Value string

	// Err is the underlying cause, e.g. a *strconv.NumError.
	Err error

	// encode marks failures of Encode, whose accepted set excludes the
	// decode-only types.
	encode bool
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnsupportedType:
		if !e.encode {
			return fmt.Sprintf("scalar: unsupported type %q, expected one of: %s",
				e.TypeName, strings.Join(SupportedTypes(), ", "))
		}
		if _, ok := decodeOnlyTypes[e.TypeName]; ok {
			return fmt.Sprintf("scalar: type %q is decode-only, encodable types: %s",
				e.TypeName, strings.Join(EncodableTypes(), ", "))
		}
		return fmt.Sprintf("scalar: unsupported type %q, expected one of: %s",
			e.TypeName, strings.Join(EncodableTypes(), ", "))
	default:
		msg := fmt.Sprintf("scalar: malformed %s value", e.TypeName)
		if e.Value != "" {
			msg += fmt.Sprintf(" %q", e.Value)
		}
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnsupportedType:
		return e.Kind == UnsupportedType
	case ErrMalformedValue:
		return e.Kind == MalformedValue
	}
	return false
}

// IsUnsupportedTypeError reports whether err is an unsupported type failure.
func IsUnsupportedTypeError(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}

// IsMalformedValueError reports whether err is a malformed value failure.
func IsMalformedValueError(err error) bool {
	return errors.Is(err, ErrMalformedValue)
}

func unsupported(typeName string) error {
	return &Error{Kind: UnsupportedType, TypeName: typeName}
}

func unsupportedEncode(typeName string) error {
	return &Error{Kind: UnsupportedType, TypeName: typeName, encode: true}
}

func malformed(typeName, value string, cause error) error {
	return &Error{Kind: MalformedValue, TypeName: typeName, Value: value, Err: cause}
}
