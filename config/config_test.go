package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "velora-api", cfg.AppName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "stripe", cfg.PaymentProvider)
	assert.Equal(t, "products", cfg.ESProductsIndex)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBUser: "app", DBPassword: "secret", DBHost: "db", DBPort: "5433",
		DBName: "velora", DBSSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:secret@db:5433/velora?sslmode=disable", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: "https://a.example.com, https://b.example.com ,"}
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins())

	empty := &Config{}
	assert.Empty(t, empty.CORSOrigins())
}

func TestESAddrs(t *testing.T) {
	cfg := &Config{ElasticsearchAddrs: "http://es1:9200,http://es2:9200"}
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ESAddrs())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PAYMENT_TIMEOUT", "2s")
	t.Setenv("MAIL_SEND_ENABLED", "false")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "2s", cfg.PaymentTimeout.String())
	assert.False(t, cfg.MailSendEnabled)
}
