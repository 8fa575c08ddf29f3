package metrics

// DefaultMetricsAddress is used when Config.Address is empty.
const DefaultMetricsAddress = ":9090"

// Namespace prefixes every metric this package registers.
const Namespace = "brokerlens"

// Config configures the Prometheus registry and the /metrics server.
type Config struct {
	// Address is where the /metrics HTTP server listens, e.g. ":9090" or
	// "127.0.0.1:9100". Empty means DefaultMetricsAddress.
	Address string `yaml:"address" mapstructure:"address"`

	// ServiceName is attached to every metric as the constant "service"
	// label.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`

	// EnableDefaultCollectors registers the Go runtime, process and build
	// info collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" mapstructure:"enable_default_collectors"`
}
