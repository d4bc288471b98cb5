package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/sakethdamerla/li-hrms-sub003/config"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestRevocationWindow_Default(t *testing.T) {
	resetViper(t)

	assert.Equal(t, 3*time.Hour, config.RevocationWindow(""))
	assert.Equal(t, 3*time.Hour, config.RevocationWindow("D1"))
}

func TestRevocationWindow_GlobalSetting(t *testing.T) {
	resetViper(t)
	viper.Set("workflow.revocation.windowHours", 6)

	assert.Equal(t, 6*time.Hour, config.RevocationWindow(""))
	assert.Equal(t, 6*time.Hour, config.RevocationWindow("D1"))
}

func TestRevocationWindow_DepartmentOverrideWins(t *testing.T) {
	resetViper(t)
	viper.Set("workflow.revocation.windowHours", 6)
	viper.Set("workflow.revocation.departments.D1.windowHours", 1)

	assert.Equal(t, 1*time.Hour, config.RevocationWindow("D1"))
	assert.Equal(t, 6*time.Hour, config.RevocationWindow("D2"))
}

func TestResolveInt_FirstDefinedKeyWins(t *testing.T) {
	resetViper(t)
	viper.Set("b", 2)
	viper.Set("c", 3)

	assert.Equal(t, 2, config.ResolveInt(9, "a", "b", "c"))
	assert.Equal(t, 9, config.ResolveInt(9, "x", "y"))
}

func TestResolveString(t *testing.T) {
	resetViper(t)
	viper.Set("outpass.baseUrl", "https://hrms.example.com")

	assert.Equal(t, "https://hrms.example.com", config.ResolveString("http://localhost", "outpass.baseUrl"))
	assert.Equal(t, "http://localhost", config.ResolveString("http://localhost", "missing.key"))
}

func TestResolveDuration(t *testing.T) {
	resetViper(t)
	viper.Set("cache.ttl", "15m")

	assert.Equal(t, 15*time.Minute, config.ResolveDuration(time.Minute, "cache.ttl"))
	assert.Equal(t, time.Minute, config.ResolveDuration(time.Minute, "missing.ttl"))
}
