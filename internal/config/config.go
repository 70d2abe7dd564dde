// Package config loads privatelink configuration from defaults, an optional TOML file, and environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/neoclaw-ai/privatelink/internal/output"
)

const (
	// CloudPublic is the global Azure cloud.
	CloudPublic = "public"
	// CloudChina is Azure operated by 21Vianet.
	CloudChina = "china"
	// CloudGovernment is Azure US Government.
	CloudGovernment = "government"
)

const redacted = "<redacted>"

// Environment variables read by Load.
const (
	EnvClientID       = "AZURE_CLIENT_ID"
	EnvClientSecret   = "AZURE_CLIENT_SECRET"
	EnvTenantID       = "AZURE_TENANT_ID"
	EnvSubscriptionID = "AZURE_SUBSCRIPTION_ID"
	EnvCloud          = "AZURE_CLOUD"
	EnvOutput         = "PRIVATELINK_OUTPUT"
	EnvHome           = "PRIVATELINK_HOME"
)

// Config is the runtime configuration loaded from defaults, config.toml, and env vars.
type Config struct {
	// HomeDir is runtime-resolved from PRIVATELINK_HOME and not read from config.
	HomeDir string       `mapstructure:"-"`
	Azure   AzureConfig  `mapstructure:"azure"`
	Output  OutputConfig `mapstructure:"output"`
}

// AzureConfig holds the service principal and target subscription.
type AzureConfig struct {
	ClientID       string `mapstructure:"client_id"`
	ClientSecret   string `mapstructure:"client_secret"`
	TenantID       string `mapstructure:"tenant_id"`
	SubscriptionID string `mapstructure:"subscription_id"`
	Cloud          string `mapstructure:"cloud"`
}

// OutputConfig controls how listed connections are rendered.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

var defaultConfig = Config{
	Azure: AzureConfig{
		Cloud: CloudPublic,
	},
	Output: OutputConfig{
		Format: string(output.FormatLegacy),
	},
}

var envBindings = map[string]string{
	"azure.client_id":       EnvClientID,
	"azure.client_secret":   EnvClientSecret,
	"azure.tenant_id":       EnvTenantID,
	"azure.subscription_id": EnvSubscriptionID,
	"azure.cloud":           EnvCloud,
	"output.format":         EnvOutput,
}

// HomeDir returns the privatelink home directory.
// Uses PRIVATELINK_HOME if set, otherwise ~/.privatelink.
func HomeDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return defaultHomePath(home), nil
}

// Load merges defaults, $PRIVATELINK_HOME/config.toml, and environment
// variables, in increasing precedence. A missing config file is not an error.
func Load() (*Config, error) {
	homeDir, err := HomeDir()
	if err != nil {
		return nil, err
	}

	v, err := newViper(homeDir)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(c *mapstructure.DecoderConfig) {
		c.DecodeHook = expandEnvStringHook()
	}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.HomeDir = homeDir

	return &cfg, nil
}

// Write writes the merged configuration to w in TOML format with the client
// secret redacted.
func Write(w io.Writer) error {
	if w == nil {
		return errors.New("writer is required")
	}

	homeDir, err := HomeDir()
	if err != nil {
		return err
	}
	v, err := newViper(homeDir)
	if err != nil {
		return err
	}
	if v.GetString("azure.client_secret") != "" {
		v.Set("azure.client_secret", redacted)
	}

	if err := v.WriteConfigTo(w); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func newViper(homeDir string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}
	v.SetConfigFile(homeConfigPath(homeDir))
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("azure.client_id", defaultConfig.Azure.ClientID)
	v.SetDefault("azure.client_secret", defaultConfig.Azure.ClientSecret)
	v.SetDefault("azure.tenant_id", defaultConfig.Azure.TenantID)
	v.SetDefault("azure.subscription_id", defaultConfig.Azure.SubscriptionID)
	v.SetDefault("azure.cloud", defaultConfig.Azure.Cloud)

	v.SetDefault("output.format", defaultConfig.Output.Format)
}

// Configured reports whether all four credentials are present. A partial set
// counts as not configured.
func (c AzureConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.TenantID != "" && c.SubscriptionID != ""
}

// Missing lists the environment variables of absent credentials.
func (c AzureConfig) Missing() []string {
	var missing []string
	for _, f := range []struct {
		value string
		env   string
	}{
		{c.ClientID, EnvClientID},
		{c.ClientSecret, EnvClientSecret},
		{c.TenantID, EnvTenantID},
		{c.SubscriptionID, EnvSubscriptionID},
	} {
		if f.value == "" {
			missing = append(missing, f.env)
		}
	}
	return missing
}

func expandEnvStringHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.String {
			return data, nil
		}
		value, ok := data.(string)
		if !ok {
			return data, nil
		}
		return os.ExpandEnv(value), nil
	}
}
