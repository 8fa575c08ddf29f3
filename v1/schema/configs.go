package schema

// Supported Avro engines.
const (
	EngineGoAvro = "goavro"
	EngineHamba  = "hamba"
)

// Config selects the Avro implementation used to compile schemas.
type Config struct {
	// Engine is EngineGoAvro (default) or EngineHamba.
	Engine string `yaml:"avro_engine" mapstructure:"avro_engine"`
}
