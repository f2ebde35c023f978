package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "dinevoice", cfg.DatabaseName)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "en-US", cfg.SpeechLanguage)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins())
}

func TestAllowedOrigins(t *testing.T) {
	cfg := Config{CORSAllowOrigins: " http://a.test , ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.Local, Config{Timezone: "Local"}.Location())
	assert.Equal(t, time.Local, Config{Timezone: "Nowhere/Invalid"}.Location())
	assert.Equal(t, "UTC", Config{Timezone: "UTC"}.Location().String())
}

func TestLoadConfigKeepsEmptyEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	viper.Reset()
	t.Cleanup(viper.Reset)

	LoadConfig()
	assert.Equal(t, "", AppConfig.RedisAddr)
	assert.Equal(t, "8080", AppConfig.AppPort)
}
