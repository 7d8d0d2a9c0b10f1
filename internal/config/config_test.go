package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/purposematch/internal/compatibility"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "purposematch")
	t.Setenv("DB_NAME", "purposematch")
	t.Setenv("JWT_ACCESS_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())

	m := cfg.Matching
	assert.Equal(t, compatibility.PresetNarrative, m.WeightPreset)
	assert.Equal(t, 10, m.DefaultLimit)
	assert.Equal(t, 50, m.MinScore)
	assert.Equal(t, 100, m.MaxCandidates)
	assert.True(t, m.RequireVerified)
	assert.Equal(t, 8, m.Concurrency)
	assert.Equal(t, 10*time.Second, m.Timeout)
	assert.Equal(t, 3, m.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, m.RetryBaseDelay)

	w, err := m.Weights()
	require.NoError(t, err)
	assert.Equal(t, compatibility.NarrativeWeights(), w)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("MATCH_WEIGHT_PRESET", "demographic")
	t.Setenv("MATCH_MIN_SCORE", "65")
	t.Setenv("MATCH_TIMEOUT", "3s")
	t.Setenv("MATCH_PREFILTER_COUNTRY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "redis:6379", cfg.Redis.GetAddr())
	assert.Equal(t, 65, cfg.Matching.MinScore)
	assert.Equal(t, 3*time.Second, cfg.Matching.Timeout)
	assert.True(t, cfg.Matching.PrefilterCountry)

	w, err := cfg.Matching.Weights()
	require.NoError(t, err)
	assert.Equal(t, compatibility.DemographicWeights(), w)
}

func TestLoad_CustomWeights(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MATCH_WEIGHT_DOMAIN", "0.5")
	t.Setenv("MATCH_WEIGHT_ARCHETYPE", "0.25")
	t.Setenv("MATCH_WEIGHT_NARRATIVE", "0.25")

	cfg, err := Load()
	require.NoError(t, err)

	w, err := cfg.Matching.Weights()
	require.NoError(t, err)
	assert.Equal(t, compatibility.Weights{Domain: 0.5, Archetype: 0.25, Narrative: 0.25}, w)
}

func TestServerConfig_IsProduction(t *testing.T) {
	assert.True(t, (&ServerConfig{Env: "production"}).IsProduction())
	assert.False(t, (&ServerConfig{Env: "development"}).IsProduction())
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "short jwt secret", env: map[string]string{"JWT_ACCESS_SECRET": "short"}, want: "at least 32"},
		{name: "unknown preset", env: map[string]string{"MATCH_WEIGHT_PRESET": "zodiac"}, want: "unknown preset"},
		{name: "custom weights off by one", env: map[string]string{"MATCH_WEIGHT_DOMAIN": "0.9"}, want: "sum to"},
		{name: "min score out of range", env: map[string]string{"MATCH_MIN_SCORE": "120"}, want: "min score"},
		{name: "zero concurrency", env: map[string]string{"MATCH_CONCURRENCY": "0"}, want: "concurrency"},
		{name: "missing db host", env: map[string]string{"DB_HOST": ""}, want: "database host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", c.GetDSN())
}
