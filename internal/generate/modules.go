package generate

import (
	"fmt"

	"github.com/openimis/fe-config/internal/descriptor"
	"github.com/openimis/fe-config/internal/manifest"
)

type modulesData struct {
	Modules []descriptor.Module
}

// RenderModules renders the module loader. Packages are listed and
// initialized in the order given.
func RenderModules(mods []descriptor.Module) ([]byte, error) {
	return renderFile(ModulesTemplate, modulesData{Modules: mods})
}

// ApplyModules declares every module as a dependency at its version,
// replacing existing entries.
func ApplyModules(m *manifest.Manifest, mods []descriptor.Module) error {
	for _, mod := range mods {
		if err := m.Set(mod.ModuleName, mod.Version); err != nil {
			return fmt.Errorf("declaring %s: %w", mod.ModuleName, err)
		}
	}
	return nil
}
