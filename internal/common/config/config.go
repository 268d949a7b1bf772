// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig              `mapstructure:"app"`
	Server        ServerConfig           `mapstructure:"server"`
	Pipeline      PipelineConfig         `mapstructure:"pipeline"`
	Agents        map[string]AgentConfig `mapstructure:"agents"`
	Store         StoreConfig            `mapstructure:"store"`
	Database      DatabaseConfig         `mapstructure:"database"`
	Storage       StorageConfig          `mapstructure:"storage"`
	MarketIntel   MarketIntelConfig      `mapstructure:"market_intel"`
	Notifications NotificationConfig     `mapstructure:"notifications"`
	Camunda       CamundaConfig          `mapstructure:"camunda"`
	Logging       LoggingConfig          `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// PipelineConfig tunes the scoring pipeline.
type PipelineConfig struct {
	DecisionWeights    DecisionWeights    `mapstructure:"decision_weights"`
	DecisionThresholds DecisionThresholds `mapstructure:"decision_thresholds"`
	RandomSeed         int64              `mapstructure:"random_seed"`      // 0 = time based
	ExtractionDelay    int                `mapstructure:"extraction_delay"` // milliseconds
}

type DecisionWeights struct {
	Founder  float64 `mapstructure:"founder"`
	Market   float64 `mapstructure:"market"`
	Business float64 `mapstructure:"business"`
	Risk     float64 `mapstructure:"risk"`
}

type DecisionThresholds struct {
	Invest   float64 `mapstructure:"invest"`
	Consider float64 `mapstructure:"consider"`
	Pass     float64 `mapstructure:"pass"`
}

// AgentConfig holds the settings applicable to every pipeline agent slot.
type AgentConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Timeout int  `mapstructure:"timeout"` // milliseconds, 0 = no limit
}

// StoreConfig selects the analysis result backend.
type StoreConfig struct {
	Backend   string `mapstructure:"backend"` // memory | redis | postgres
	KeyPrefix string `mapstructure:"key_prefix"`
	TTL       int    `mapstructure:"ttl"` // seconds, 0 = keep forever
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig points at the object store holding uploaded pitch documents.
type StorageConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	MaxFileSize     int64  `mapstructure:"max_file_size"`
}

// MarketIntelConfig configures the public-data lookup.
type MarketIntelConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Index    string `mapstructure:"index"`
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds
	Timeout  int    `mapstructure:"timeout"`   // milliseconds
}

// NotificationConfig holds settings for analysis completion events.
type NotificationConfig struct {
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		Region   string `mapstructure:"region"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
	Email struct {
		Enabled bool     `mapstructure:"enabled"`
		Region  string   `mapstructure:"region"`
		From    string   `mapstructure:"from"`
		To      []string `mapstructure:"to"`
	} `mapstructure:"email"`
}

type CamundaConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	BrokerAddress string `mapstructure:"broker_address"`
	MaxJobsActive int    `mapstructure:"max_jobs_active"`
	Timeout       int    `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
