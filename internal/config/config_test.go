package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, StorageLocal, cfg.Storage.Driver)
	assert.Equal(t, MessageStoreSQL, cfg.MessageStore)
	assert.Equal(t, int64(2*1024*1024), cfg.Storage.MaxAvatarBytes)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.ExpirationTime)
	assert.Empty(t, cfg.Redis.URI)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("ALLOWED_ORIGINS", "https://campus.example.com")
	t.Setenv("PUBLIC_BASE_URL", "https://api.campus.example.com/")
	t.Setenv("JWT_EXPIRATION", "12h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"https://campus.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://api.campus.example.com", cfg.Server.PublicBaseURL)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpirationTime)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "short secret in production",
			env:  map[string]string{"APP_ENV": "production", "JWT_SECRET": "short"},
		},
		{
			name: "unknown db driver",
			env:  map[string]string{"DB_DRIVER": "oracle"},
		},
		{
			name: "minio without endpoint",
			env:  map[string]string{"STORAGE_DRIVER": "minio"},
		},
		{
			name: "mongo store without uri",
			env:  map[string]string{"MESSAGE_STORE": "mongo"},
		},
		{
			name: "unknown message store",
			env:  map[string]string{"MESSAGE_STORE": "cassandra"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	pg := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", DBName: "campus", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=campus port=5432 sslmode=disable TimeZone=UTC", pg.DSN())

	my := DatabaseConfig{Driver: DriverMySQL, Host: "db", Port: "3306", User: "u", Password: "p", DBName: "campus"}
	assert.Equal(t, "u:p@tcp(db:3306)/campus?charset=utf8mb4&parseTime=True&loc=UTC", my.DSN())

	pg.URL = "postgres://override"
	assert.Equal(t, "postgres://override", pg.DSN())
}
