package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root of the application configuration.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Worker        WorkerConfig        `mapstructure:"worker"`
	Log           LogConfig           `mapstructure:"log"`
}

// AppConfig holds HTTP server settings.
type AppConfig struct {
	Name        string   `mapstructure:"name"`
	Version     string   `mapstructure:"version"`
	Mode        string   `mapstructure:"mode"`
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DatabaseConfig holds PostgreSQL connection and pool settings.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	SSL             bool   `mapstructure:"ssl"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // seconds
}

// DSN returns the PostgreSQL connection string. An explicit sslmode wins over the ssl flag.
func (d *DatabaseConfig) DSN() string {
	mode := d.SSLMode
	if mode == "" {
		mode = "disable"
		if d.SSL {
			mode = "require"
		}
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, mode,
	)
}

// RedisConfig configures the pub/sub channel used for live messages.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	Channel  string `mapstructure:"channel"`
}

// Addr returns host:port.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig configures presigned media uploads.
type MinIOConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Endpoint       string `mapstructure:"endpoint"`
	PublicEndpoint string `mapstructure:"public_endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	UseSSL         bool   `mapstructure:"use_ssl"`
	Bucket         string `mapstructure:"bucket"`
	UploadExpiry   int    `mapstructure:"upload_expiry"` // seconds
}

// UploadExpiryDuration returns how long a presigned upload URL stays valid.
func (m *MinIOConfig) UploadExpiryDuration() time.Duration {
	if m.UploadExpiry <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(m.UploadExpiry) * time.Second
}

// KafkaConfig lists brokers and logical topic names.
type KafkaConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
}

// Topic returns the configured topic name for key, or key itself.
func (k *KafkaConfig) Topic(key string) string {
	if t, ok := k.Topics[key]; ok && t != "" {
		return t
	}
	return key
}

// ElasticsearchConfig configures the video search index.
type ElasticsearchConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	Hosts   []string          `mapstructure:"hosts"`
	Index   map[string]string `mapstructure:"index"`
}

// VideosIndex returns the name of the video search index.
func (e *ElasticsearchConfig) VideosIndex() string {
	if name := e.Index["videos"]; name != "" {
		return name
	}
	return "videos"
}

// WorkerConfig configures the counter reconciliation worker.
type WorkerConfig struct {
	GroupID           string `mapstructure:"group_id"`
	ReconcileInterval int    `mapstructure:"reconcile_interval"` // seconds, 0 disables the sweep
}

// ReconcileEvery returns the period of the full counter sweep.
func (w *WorkerConfig) ReconcileEvery() time.Duration {
	return time.Duration(w.ReconcileInterval) * time.Second
}

// LogConfig selects log level, encoding and sink.
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

var globalConfig *Config

// legacyEnv maps config keys to the plain variable names older deployments export.
var legacyEnv = map[string]string{
	"app.port":          "PORT",
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.dbname":   "DB_NAME",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.ssl":      "DB_SSL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "likering")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.mode", "debug")
	v.SetDefault("app.port", 3000)
	v.SetDefault("app.cors_origins", []string{"*"})

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "likering")
	v.SetDefault("database.sslmode", "")
	v.SetDefault("database.ssl", false)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 300)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.channel", "likering:messages")

	v.SetDefault("minio.enabled", false)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.public_endpoint", "")
	v.SetDefault("minio.access_key", "minioadmin")
	v.SetDefault("minio.secret_key", "minioadmin")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "public-videos")
	v.SetDefault("minio.upload_expiry", 900)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topics.video_activity", "video_activity")

	v.SetDefault("elasticsearch.enabled", false)
	v.SetDefault("elasticsearch.hosts", []string{"http://localhost:9200"})
	v.SetDefault("elasticsearch.index.videos", "videos")

	v.SetDefault("worker.group_id", "likering-counter-worker")
	v.SetDefault("worker.reconcile_interval", 600)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/app.log")
}

// Load reads .env, the optional YAML file at configPath and the environment, in
// increasing order of precedence.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), legacy); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", legacy, err)
		}
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	globalConfig = &cfg
	return &cfg, nil
}

// Get returns the loaded configuration. Load must have been called.
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded, please call Load() first")
	}
	return globalConfig
}

func GetApp() *AppConfig {
	return &Get().App
}

func GetDatabase() *DatabaseConfig {
	return &Get().Database
}

func GetRedis() *RedisConfig {
	return &Get().Redis
}

func GetMinIO() *MinIOConfig {
	return &Get().MinIO
}

func GetKafka() *KafkaConfig {
	return &Get().Kafka
}

func GetElasticsearch() *ElasticsearchConfig {
	return &Get().Elasticsearch
}

func GetWorker() *WorkerConfig {
	return &Get().Worker
}

func GetLog() *LogConfig {
	return &Get().Log
}
