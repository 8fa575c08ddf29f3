// Package scalar moves single typed values in and out of raw binary
// payloads: fixed-width big-endian numbers, charset-encoded text and
// dotted-hex byte strings.
package scalar

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultCharset is used when no charset is configured.
const DefaultCharset = "UTF-8"

// Type names accepted by Encode and Decode.
const (
	TypeBytes   = "bytes"
	TypeChar    = "char"
	TypeShort   = "short"
	TypeInt     = "int"
	TypeInteger = "integer"
	TypeLong    = "long"
	TypeFloat   = "float"
	TypeDouble  = "double"
	TypeString  = "string"
	TypeText    = "text"
	TypeJSON    = "json"
)

var supportedTypes = map[string]struct{}{
	TypeBytes: {}, TypeChar: {}, TypeShort: {}, TypeInt: {}, TypeInteger: {},
	TypeLong: {}, TypeFloat: {}, TypeDouble: {}, TypeString: {}, TypeText: {},
	TypeJSON: {},
}

// decodeOnlyTypes have no textual source form to encode from.
var decodeOnlyTypes = map[string]struct{}{
	TypeJSON: {},
}

// SupportedTypes returns the accepted type names in sorted order.
func SupportedTypes() []string {
	names := make([]string, 0, len(supportedTypes))
	for name := range supportedTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EncodableTypes returns the type names Encode accepts in sorted order.
func EncodableTypes() []string {
	names := make([]string, 0, len(supportedTypes))
	for name := range supportedTypes {
		if _, ok := decodeOnlyTypes[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Codec converts single typed values to and from their fixed-width,
// big-endian binary form. Text types go through the configured charset.
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	charsetName string
	charset     encoding.Encoding
}

// New returns a Codec using the named IANA charset for string and text
// values. An empty name selects DefaultCharset.
func New(charset string) (*Codec, error) {
	if charset == "" {
		charset = DefaultCharset
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("scalar: unknown charset %q: %w", charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("scalar: charset %q is not supported", charset)
	}
	return &Codec{charsetName: charset, charset: enc}, nil
}

// Default returns a UTF-8 Codec.
func Default() *Codec {
	return &Codec{charsetName: DefaultCharset, charset: unicode.UTF8}
}

// Charset returns the configured charset name.
func (c *Codec) Charset() string {
	return c.charsetName
}

// Decode converts raw bytes to a typed value:
//
//	bytes          []byte (unchanged)
//	char           rune (one UTF-16 code unit)
//	short          int16
//	int, integer   int32
//	long           int64
//	float          float32
//	double         float64
//	string, text   string
//	json           string (indented)
//
// Fixed-width types require exactly their width.
func (c *Codec) Decode(b []byte, typeName string) (any, error) {
	switch typeName {
	case TypeBytes:
		return b, nil
	case TypeChar:
		if err := checkWidth(b, 2, typeName); err != nil {
			return nil, err
		}
		return rune(binary.BigEndian.Uint16(b)), nil
	case TypeShort:
		if err := checkWidth(b, 2, typeName); err != nil {
			return nil, err
		}
		return int16(binary.BigEndian.Uint16(b)), nil
	case TypeInt, TypeInteger:
		if err := checkWidth(b, 4, typeName); err != nil {
			return nil, err
		}
		return int32(binary.BigEndian.Uint32(b)), nil
	case TypeLong:
		if err := checkWidth(b, 8, typeName); err != nil {
			return nil, err
		}
		return int64(binary.BigEndian.Uint64(b)), nil
	case TypeFloat:
		if err := checkWidth(b, 4, typeName); err != nil {
			return nil, err
		}
		return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
	case TypeDouble:
		if err := checkWidth(b, 8, typeName); err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
	case TypeString, TypeText:
		out, err := c.charset.NewDecoder().Bytes(b)
		if err != nil {
			return nil, malformed(typeName, "", err)
		}
		return string(out), nil
	case TypeJSON:
		return prettyJSON(b)
	default:
		return nil, unsupported(typeName)
	}
}

// Encode converts the textual form of a value to raw bytes. Numbers are
// decimal, bytes are dotted hex ("0a.1f.3c") and char takes the first
// character of value. json is decode-only and is rejected here.
func (c *Codec) Encode(value, typeName string) ([]byte, error) {
	switch typeName {
	case TypeBytes:
		return ParseDottedHex(value)
	case TypeChar:
		r, size := utf8.DecodeRuneInString(value)
		if size == 0 {
			return nil, malformed(typeName, value, fmt.Errorf("empty input"))
		}
		unit := uint16(r)
		if r > 0xFFFF {
			unit = utf16.Encode([]rune{r})[0]
		}
		return binary.BigEndian.AppendUint16(nil, unit), nil
	case TypeShort:
		n, err := strconv.ParseInt(value, 10, 16)
		if err != nil {
			return nil, malformed(typeName, value, err)
		}
		return binary.BigEndian.AppendUint16(nil, uint16(n)), nil
	case TypeInt, TypeInteger:
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return nil, malformed(typeName, value, err)
		}
		return binary.BigEndian.AppendUint32(nil, uint32(n)), nil
	case TypeLong:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, malformed(typeName, value, err)
		}
		return binary.BigEndian.AppendUint64(nil, uint64(n)), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, malformed(typeName, value, err)
		}
		return binary.BigEndian.AppendUint32(nil, math.Float32bits(float32(f))), nil
	case TypeDouble:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, malformed(typeName, value, err)
		}
		return binary.BigEndian.AppendUint64(nil, math.Float64bits(f)), nil
	case TypeString, TypeText:
		out, err := c.charset.NewEncoder().Bytes([]byte(value))
		if err != nil {
			return nil, malformed(typeName, value, err)
		}
		return out, nil
	default:
		return nil, unsupportedEncode(typeName)
	}
}

// ParseDottedHex parses "0a.1f.3c" into its bytes. The empty string is an
// empty payload.
func ParseDottedHex(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	parts := strings.Split(s, ".")
	out := make([]byte, 0, len(parts))
	for _, part := range parts {
		if len(part) != 2 {
			return nil, malformed(TypeBytes, s, fmt.Errorf("byte %q is not two hex digits", part))
		}
		b, err := hex.DecodeString(part)
		if err != nil {
			return nil, malformed(TypeBytes, s, err)
		}
		out = append(out, b[0])
	}
	return out, nil
}

// FormatDottedHex is the inverse of ParseDottedHex, using lowercase digits.
func FormatDottedHex(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 3)
	for i, v := range b {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(hex.EncodeToString([]byte{v}))
	}
	return sb.String()
}

func checkWidth(b []byte, width int, typeName string) error {
	if len(b) != width {
		return malformed(typeName, "", fmt.Errorf("expected %d bytes, got %d", width, len(b)))
	}
	return nil
}

func prettyJSON(b []byte) (string, error) {
	if !json.Valid(b) {
		return "", malformed(TypeJSON, "", fmt.Errorf("payload is not valid JSON"))
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return "", malformed(TypeJSON, "", err)
	}
	return buf.String(), nil
}
