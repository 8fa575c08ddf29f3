package decoders

import (
	"github.com/Aleph-Alpha/brokerlens/v1/codec"
)

const (
	// DecodersDir is the directory under the preferences root holding one
	// subdirectory per topic.
	DecodersDir = "decoders"

	// DescriptorExt marks descriptor files: {"name": ..., "type": <codec URL>}.
	DescriptorExt = ".js"
)

// Config configures a Registry.
type Config struct {
	// PrefsRoot is the preferences root; schema files live under
	// <PrefsRoot>/decoders/<topic>/.
	PrefsRoot string `yaml:"prefs_root" mapstructure:"prefs_root"`
}

// Logger is the subset of the std logger the registry needs.
// *logger.Logger satisfies it.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// DecoderResolver resolves the codec URL found in a descriptor file.
// *codec.Resolver satisfies it.
type DecoderResolver interface {
	ResolveDecoder(url string, lookup codec.DecoderLookup) (codec.Decoder, error)
}

type nopLogger struct{}

func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
