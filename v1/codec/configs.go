package codec

// Codec URL keywords and prefixes.
const (
	URLApacheLog = "apachelog"
	URLBytes     = "bytes"
	URLGzip      = "gzip"
	URLJSON      = "json"
	URLLogRaw    = "lograw"
	URLText      = "text"

	AvroPrefix    = "avro:"
	DecoderPrefix = "decoder:"
)

// Config configures a Resolver.
type Config struct {
	// Charset is the IANA name used by the text codec. Empty means UTF-8.
	Charset string `yaml:"charset" mapstructure:"charset"`
}
