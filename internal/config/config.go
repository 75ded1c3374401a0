// Package config provides configuration loading and management.
package config

import (
	"encoding/json"
	"path/filepath"
)

// EnvConfJSON is the environment variable holding a JSON configuration
// document.
const EnvConfJSON = "OPENIMIS_CONF_JSON"

// DefaultConfigFile is the configuration file looked up in the working
// directory when neither an argument nor EnvConfJSON is given.
const DefaultConfigFile = "openimis.json"

// Default settings.
const (
	DefaultManifest   = "package.json"
	DefaultLocalesOut = "src/locales.js"
	DefaultModulesOut = "src/modules.js"
	DefaultOrgPrefix  = "@openimis/"
	DefaultEnvFile    = ".env"
)

// Document is the configuration document selecting locales and modules.
type Document struct {
	// Locales lists locale groups in output order.
	Locales []LocaleGroup `json:"locales"`

	// Modules lists feature modules in initialization order.
	Modules []ModuleSpec `json:"modules"`
}

// LocaleGroup bundles language codes sharing translation metadata.
type LocaleGroup struct {
	// Languages are the language codes served by this group.
	Languages []string `json:"languages"`

	// Intl is opaque locale metadata, passed through verbatim.
	Intl json.RawMessage `json:"intl,omitempty"`

	// FileNames maps language codes to resource file lists, passed through verbatim.
	FileNames json.RawMessage `json:"fileNames,omitempty"`
}

// ModuleSpec is a module entry of the configuration document.
type ModuleSpec struct {
	// NPM is the "name@version" descriptor.
	NPM string `json:"npm"`

	// Name is the export invoked at startup. Empty means the default export.
	Name string `json:"name,omitempty"`

	// LogicalName keys the module's runtime configuration.
	LogicalName string `json:"logicalName,omitempty"`
}

// Settings holds the generator's own settings, resolved from flags,
// OPENIMIS_* environment variables and defaults.
type Settings struct {
	// Dir is the project directory. Relative paths below are joined to it.
	Dir string

	// Manifest is the dependency manifest (package.json).
	Manifest string

	// LocalesOut is the generated locale registry.
	LocalesOut string

	// ModulesOut is the generated module loader.
	ModulesOut string

	// OrgPrefix marks manifest dependencies owned by the generator.
	OrgPrefix string

	// EnvFile is a dotenv file loaded before resolving the configuration
	// source. Empty disables it.
	EnvFile string
}

// DefaultSettings returns settings matching a plain run in the current directory.
func DefaultSettings() Settings {
	return Settings{
		Dir:        ".",
		Manifest:   DefaultManifest,
		LocalesOut: DefaultLocalesOut,
		ModulesOut: DefaultModulesOut,
		OrgPrefix:  DefaultOrgPrefix,
		EnvFile:    DefaultEnvFile,
	}
}

// Path joins p to the project directory unless it is absolute.
func (s Settings) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, p)
}

// ManifestPath returns the resolved manifest path.
func (s Settings) ManifestPath() string {
	return s.Path(s.Manifest)
}

// LocalesPath returns the resolved locale registry path.
func (s Settings) LocalesPath() string {
	return s.Path(s.LocalesOut)
}

// ModulesPath returns the resolved module loader path.
func (s Settings) ModulesPath() string {
	return s.Path(s.ModulesOut)
}

// DefaultConfigPath returns the path of the conventional configuration file.
func (s Settings) DefaultConfigPath() string {
	return s.Path(DefaultConfigFile)
}
