package tracer

// Config holds the tracer settings.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`

	// AppEnv is recorded as the deployment environment.
	AppEnv string `yaml:"app_env" mapstructure:"app_env"`

	// EnableExport sends finished spans to the OTLP HTTP endpoint named by
	// the standard OTEL_EXPORTER_OTLP_* environment variables.
	EnableExport bool `yaml:"enable_export" mapstructure:"enable_export"`
}
