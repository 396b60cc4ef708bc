package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Timeout:      "30s",
		MaxRedirects: 10,
	}
}
