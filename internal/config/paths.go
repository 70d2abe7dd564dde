package config

import "path/filepath"

// ConfigFilePath is the config file name under PRIVATELINK_HOME.
const ConfigFilePath = "config.toml"

func homeConfigPath(home string) string {
	return filepath.Join(home, ConfigFilePath)
}

func defaultHomePath(home string) string {
	return filepath.Join(home, ".privatelink")
}

// ConfigPath returns the config file location.
func (c *Config) ConfigPath() string {
	return homeConfigPath(c.HomeDir)
}
