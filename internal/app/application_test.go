package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/WolofBridge/internal/config"
	"github.com/Rorical/WolofBridge/internal/core"
)

func TestCreateInitialAppModel(t *testing.T) {
	t.Setenv(config.EndpointEnv, "")
	cfg := config.NewDefaultConfig()

	m := createInitialAppModel(cfg, core.PolicyDisableTrigger)

	assert.True(t, m.Ready)
	assert.False(t, m.Resubmit)
	assert.True(t, m.Query.SubmitEnabled)
	require.Len(t, m.Notices, 3)
	assert.Contains(t, m.Notices[1].Content, "[OK]")
	assert.Contains(t, m.Notices[2].Content, "/process")
}

func TestCreateInitialAppModel_InvalidEndpoint(t *testing.T) {
	t.Setenv(config.EndpointEnv, "localhost")
	cfg := config.NewDefaultConfig()

	m := createInitialAppModel(cfg, core.PolicyCancelInFlight)

	assert.False(t, m.Ready)
	assert.True(t, m.Resubmit)
	assert.Contains(t, m.Notices[1].Content, "NOT CONFIGURED")
}

func TestNewController_UsesProfilePolicy(t *testing.T) {
	t.Setenv(config.EndpointEnv, "")
	cfg := config.NewDefaultConfig()
	p := cfg.Profiles[config.DefaultProfile]
	p.Policy = string(core.PolicyCancelInFlight)
	cfg.Profiles[config.DefaultProfile] = p
	require.NoError(t, cfg.Use(config.DefaultProfile))

	assert.Equal(t, core.PolicyCancelInFlight, NewController(cfg, nil).Policy())
}
