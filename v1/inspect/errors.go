package inspect

import "errors"

var (
	// ErrUnknownCodec is returned by NewInspector when a configured codec
	// URL does not resolve to a decoder.
	ErrUnknownCodec = errors.New("inspect: codec URL does not resolve to a decoder")

	// ErrDecodeFailed wraps the error of the last decoder tried when no
	// decoder could read a key or value.
	ErrDecodeFailed = errors.New("inspect: payload could not be decoded")
)

// IsDecodeFailedError reports whether err came from an undecodable payload.
func IsDecodeFailedError(err error) bool {
	return errors.Is(err, ErrDecodeFailed)
}
