package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  name: likering-test
  port: 8081
database:
  host: db.internal
  dbname: social
kafka:
  enabled: true
  brokers: ["k1:9092", "k2:9092"]
  topics:
    video_activity: activity-test
elasticsearch:
  index:
    videos: videos-test
worker:
  reconcile_interval: 30
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "likering-test", cfg.App.Name)
	assert.Equal(t, 8081, cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "social", cfg.Database.DBName)
	assert.Equal(t, 5432, cfg.Database.Port, "unset keys keep their defaults")
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "activity-test", cfg.Kafka.Topic("video_activity"))
	assert.Equal(t, "videos-test", cfg.Elasticsearch.VideosIndex())
	assert.Equal(t, 30*time.Second, cfg.Worker.ReconcileEvery())
	assert.Same(t, cfg, Get())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.App.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "public-videos", cfg.MinIO.Bucket)
	assert.Equal(t, 15*time.Minute, cfg.MinIO.UploadExpiryDuration())
}

func TestLoad_LegacyEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "pg.example")
	t.Setenv("DB_NAME", "legacy")
	t.Setenv("DB_SSL", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "pg.example", cfg.Database.Host)
	assert.Equal(t, "legacy", cfg.Database.DBName)
	assert.Contains(t, cfg.Database.DSN(), "sslmode=require")
}

func TestLoad_NestedEnvOverridesFile(t *testing.T) {
	t.Setenv("APP_PORT", "7070")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.App.Port)
	assert.True(t, cfg.Redis.Enabled)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "default disables ssl",
			cfg:  DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "d"},
			want: "host=h port=1 user=u password=p dbname=d sslmode=disable",
		},
		{
			name: "explicit mode wins",
			cfg:  DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "d", SSL: true, SSLMode: "verify-full"},
			want: "host=h port=1 user=u password=p dbname=d sslmode=verify-full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
