package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openimis/fe-config/internal/config"
)

func TestResultPlan(t *testing.T) {
	dir := setupProject(t, testConfig)

	res, err := run(t, "", true)
	require.NoError(t, err)

	plan := res.Plan()
	assert.Equal(t, filepath.Join(dir, config.DefaultConfigFile), plan.Source)
	assert.Equal(t, []string{"@openimis/fe-old", "@openimis/fe-core"}, plan.Removed)
	assert.False(t, plan.Written)

	require.Len(t, plan.Modules, 2)
	assert.Equal(t, PlanModule{
		Name:        "@openimis/fe-core",
		Version:     ">=1.5.1",
		Export:      "default",
		LogicalName: "fe-core",
	}, plan.Modules[0])
	assert.Equal(t, "HomeModule", plan.Modules[1].Export)

	require.Len(t, plan.Files, 3)
	assert.Equal(t, filepath.Join(dir, "src", "locales.js"), plan.Files[0].Path)
	assert.Equal(t, len(res.Locales), plan.Files[0].Bytes)
}

func TestResultPlanEnvSource(t *testing.T) {
	res := &Result{Source: config.SourceResult{Source: config.SourceEnv, Location: config.EnvConfJSON}}

	plan := res.Plan()
	assert.Equal(t, config.EnvConfJSON, plan.Source)
	assert.NotNil(t, plan.Removed)
	assert.Empty(t, plan.Modules)
	assert.True(t, plan.Written)
}
