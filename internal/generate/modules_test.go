package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openimis/fe-config/internal/descriptor"
	"github.com/openimis/fe-config/internal/manifest"
)

func TestRenderModules(t *testing.T) {
	t.Run("two modules", func(t *testing.T) {
		mods := []descriptor.Module{
			{ModuleName: "@openimis/fe-core", Version: "1.0.0", LogicalName: "fe-core"},
			{ModuleName: "@openimis/fe-home", Version: "2.0.0", Name: "HomeModule", LogicalName: "home"},
		}

		got, err := RenderModules(mods)
		require.NoError(t, err)

		want := "\n" +
			"export const packages = [\n" +
			"  \"@openimis/fe-core\",\n" +
			"  \"@openimis/fe-home\"\n" +
			"];\n" +
			"\n" +
			"\n" +
			"export function loadModules (cfg = {}) {\n" +
			"  return [\n" +
			"    require(\"@openimis/fe-core\").default(cfg[\"fe-core\"] || {}),\n" +
			"    require(\"@openimis/fe-home\").HomeModule(cfg[\"home\"] || {})\n" +
			"  ];\n" +
			"\n" +
			"}\n"
		assert.Equal(t, want, string(got))
	})

	t.Run("no modules", func(t *testing.T) {
		got, err := RenderModules(nil)
		require.NoError(t, err)

		want := "\n" +
			"export const packages = [\n" +
			"  \n" +
			"];\n" +
			"\n" +
			"\n" +
			"export function loadModules (cfg = {}) {\n" +
			"  return [\n" +
			"    \n" +
			"  ];\n" +
			"\n" +
			"}\n"
		assert.Equal(t, want, string(got))
	})

	t.Run("names are quoted", func(t *testing.T) {
		got, err := RenderModules([]descriptor.Module{
			{ModuleName: `odd"name`, Version: "1", LogicalName: `a"b`},
		})
		require.NoError(t, err)
		assert.Contains(t, string(got), `require("odd\"name").default(cfg["a\"b"] || {})`)
	})
}

func TestApplyModules(t *testing.T) {
	m, err := manifest.Parse([]byte(`{"name":"fe","dependencies":{"react":"^17.0.0","@openimis/fe-core":"0.9.0"}}`))
	require.NoError(t, err)

	err = ApplyModules(m, []descriptor.Module{
		{ModuleName: "@openimis/fe-core", Version: "1.0.0"},
		{ModuleName: "@openimis/fe-home", Version: "git+https://github.com/openimis/fe-home.git#main"},
	})
	require.NoError(t, err)

	assert.Equal(t, []manifest.Dependency{
		{Name: "react", Version: "^17.0.0"},
		{Name: "@openimis/fe-core", Version: "1.0.0"},
		{Name: "@openimis/fe-home", Version: "git+https://github.com/openimis/fe-home.git#main"},
	}, m.Dependencies())
}
