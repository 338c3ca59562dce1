package config

// DevEnvironment is the ENV_NAME value that enables development behavior:
// stacks in responses, console logging and the diagnostics routes.
const DevEnvironment = "dev"

// response formats understood by the server
const (
	FormatCanonical = "canonical"
	FormatProblem   = "problem"
	FormatSimple    = "simple"
	FormatJSONAPI   = "jsonapi"
	FormatCompact   = "compact"
)

type Config struct {
	Environment     string `yaml:"environment" toml:"environment"`
	Port            string `yaml:"port" toml:"port"`
	LogLevel        string `yaml:"log_level" toml:"log_level"`
	StackTraceLimit int    `yaml:"stack_trace_limit" toml:"stack_trace_limit"`
	ResponseFormat  string `yaml:"response_format" toml:"response_format"`
	ProblemBaseURL  string `yaml:"problem_base_url" toml:"problem_base_url"`

	// ulule/limiter formatted rate, e.g. "100-M"; empty disables rate limiting
	RateLimit string `yaml:"rate_limit" toml:"rate_limit"`
	RedisURL  string `yaml:"redis_url" toml:"redis_url"`
}

type Flags struct {
	ConfigPath string
	Format     string
	Plain      bool
}
