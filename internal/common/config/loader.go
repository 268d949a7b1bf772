// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, the environment overlay and the process environment.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // overlay is optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			if expanded := os.ExpandEnv(strVal); expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills secrets that are conventionally passed as bare env vars.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		cfg.Database.Postgres.User = os.Getenv("DB_USER")
	}
	if cfg.Database.Postgres.Password == "" {
		cfg.Database.Postgres.Password = os.Getenv("DB_PASSWORD")
	}
	if cfg.Storage.AccessKeyID == "" {
		cfg.Storage.AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	}
	if cfg.Storage.SecretAccessKey == "" {
		cfg.Storage.SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")
	}
	if cfg.Notifications.SNS.TopicARN == "" {
		cfg.Notifications.SNS.TopicARN = os.Getenv("SNS_TOPIC_ARN")
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "startup-analyst"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 120000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	w := &cfg.Pipeline.DecisionWeights
	if w.Founder == 0 && w.Market == 0 && w.Business == 0 && w.Risk == 0 {
		*w = DecisionWeights{Founder: 0.30, Market: 0.25, Business: 0.25, Risk: 0.20}
	}
	th := &cfg.Pipeline.DecisionThresholds
	if th.Invest == 0 && th.Consider == 0 && th.Pass == 0 {
		*th = DecisionThresholds{Invest: 75, Consider: 60, Pass: 40}
	}

	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "memory"
	}
	if cfg.Store.KeyPrefix == "" {
		cfg.Store.KeyPrefix = "analysis:"
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Storage.MaxFileSize == 0 {
		cfg.Storage.MaxFileSize = 20 * 1024 * 1024
	}

	if cfg.MarketIntel.Index == "" {
		cfg.MarketIntel.Index = "market_intel"
	}
	if cfg.MarketIntel.CacheTTL == 0 {
		cfg.MarketIntel.CacheTTL = 3600
	}
	if cfg.MarketIntel.Timeout == 0 {
		cfg.MarketIntel.Timeout = 5000
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 5
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 120000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Agents == nil {
		cfg.Agents = make(map[string]AgentConfig)
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	w := cfg.Pipeline.DecisionWeights
	if w.Founder < 0 || w.Market < 0 || w.Business < 0 || w.Risk < 0 {
		return fmt.Errorf("pipeline.decision_weights must be non-negative")
	}
	th := cfg.Pipeline.DecisionThresholds
	if th.Invest < th.Consider {
		return fmt.Errorf("pipeline.decision_thresholds.invest must be >= consider")
	}

	switch cfg.Store.Backend {
	case "memory":
	case "redis":
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required for the redis store")
		}
	case "postgres":
		if cfg.Database.Postgres.Host == "" || cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.host and database are required for the postgres store")
		}
	default:
		return fmt.Errorf("store.backend %q is not supported", cfg.Store.Backend)
	}

	if cfg.MarketIntel.Enabled && len(cfg.Database.Elasticsearch.Addresses) == 0 {
		return fmt.Errorf("database.elasticsearch.addresses is required when market_intel is enabled")
	}
	if cfg.Storage.Enabled && (cfg.Storage.Endpoint == "" || cfg.Storage.BucketName == "") {
		return fmt.Errorf("storage.endpoint and storage.bucket_name are required when storage is enabled")
	}
	if cfg.Notifications.SNS.Enabled && cfg.Notifications.SNS.TopicARN == "" {
		return fmt.Errorf("notifications.sns.topic_arn is required when sns is enabled")
	}
	if cfg.Notifications.Email.Enabled && (cfg.Notifications.Email.From == "" || len(cfg.Notifications.Email.To) == 0) {
		return fmt.Errorf("notifications.email.from and to are required when email is enabled")
	}
	if cfg.Camunda.Enabled && cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required when camunda is enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetAgentConfig retrieves slot-specific configuration with fallback to defaults
func GetAgentConfig(cfg *Config, slot string) AgentConfig {
	if agent, exists := lookupAgent(cfg, slot); exists {
		return agent
	}
	return AgentConfig{Enabled: true}
}

// IsAgentEnabled reports whether the built-in agent for a slot should be registered.
func IsAgentEnabled(cfg *Config, slot string) bool {
	if agent, exists := lookupAgent(cfg, slot); exists {
		return agent.Enabled
	}
	return true
}

// lookupAgent also tries the lowercased slot, since viper lowercases map keys.
func lookupAgent(cfg *Config, slot string) (AgentConfig, bool) {
	if agent, exists := cfg.Agents[slot]; exists {
		return agent, true
	}
	agent, exists := cfg.Agents[strings.ToLower(slot)]
	return agent, exists
}
