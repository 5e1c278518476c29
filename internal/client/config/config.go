package config

import "time"

// Config holds runtime settings for the Task Keeper CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the server's gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: upper bound of a single call to the server.
type Config struct {
	ServerEndpointAddr  string        `env:"TASKKEEPER_SERVER_ADDR"`
	OnlineCheckInterval time.Duration `env:"TASKKEEPER_ONLINE_CHECK_INTERVAL"`
	RequestTimeout      time.Duration `env:"TASKKEEPER_REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
