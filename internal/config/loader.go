package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/openimis/fe-config/internal/output"
)

// Environment variable prefix for generator settings.
const envPrefix = "OPENIMIS"

// Setting keys. Each is also the name of the flag that overrides it.
const (
	KeyDir        = "dir"
	KeyManifest   = "manifest"
	KeyLocalesOut = "locales-out"
	KeyModulesOut = "modules-out"
	KeyOrgPrefix  = "org-prefix"
	KeyEnvFile    = "env-file"

	keyConfJSON = "conf-json"
)

var settingKeys = []string{KeyDir, KeyManifest, KeyLocalesOut, KeyModulesOut, KeyOrgPrefix, KeyEnvFile}

// Loader resolves settings and loads the configuration document.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv(keyConfJSON, EnvConfJSON)
	_ = v.BindEnv(KeyDir, "OPENIMIS_DIR")
	_ = v.BindEnv(KeyManifest, "OPENIMIS_MANIFEST")
	_ = v.BindEnv(KeyLocalesOut, "OPENIMIS_LOCALES_OUT")
	_ = v.BindEnv(KeyModulesOut, "OPENIMIS_MODULES_OUT")
	_ = v.BindEnv(KeyOrgPrefix, "OPENIMIS_ORG_PREFIX")
	_ = v.BindEnv(KeyEnvFile, "OPENIMIS_ENV_FILE")

	defaults := DefaultSettings()
	v.SetDefault(KeyDir, defaults.Dir)
	v.SetDefault(KeyManifest, defaults.Manifest)
	v.SetDefault(KeyLocalesOut, defaults.LocalesOut)
	v.SetDefault(KeyModulesOut, defaults.ModulesOut)
	v.SetDefault(KeyOrgPrefix, defaults.OrgPrefix)
	v.SetDefault(KeyEnvFile, defaults.EnvFile)

	return &Loader{v: v}
}

// BindFlags binds every setting flag present in fs. Flags only take
// precedence over the environment when explicitly set.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for _, key := range settingKeys {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", key, err)
		}
	}
	return nil
}

// Settings returns the resolved generator settings.
func (l *Loader) Settings() Settings {
	return Settings{
		Dir:        l.v.GetString(KeyDir),
		Manifest:   l.v.GetString(KeyManifest),
		LocalesOut: l.v.GetString(KeyLocalesOut),
		ModulesOut: l.v.GetString(KeyModulesOut),
		OrgPrefix:  l.v.GetString(KeyOrgPrefix),
		EnvFile:    l.v.GetString(KeyEnvFile),
	}
}

// LoadDotenv loads the settings' dotenv file into the process environment.
// Variables already set are left alone, and a missing file is not an error.
func (l *Loader) LoadDotenv() error {
	s := l.Settings()
	if s.EnvFile == "" {
		return nil
	}

	path := s.Path(s.EnvFile)
	exists, err := fileExists(path)
	if err != nil || !exists {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	output.Debug("loaded environment file", "path", path)
	return nil
}

// ConfJSON returns the inline configuration document from the environment.
func (l *Loader) ConfJSON() string {
	return l.v.GetString(keyConfJSON)
}

// Load resolves the configuration source, then reads, decodes and validates
// the document. arg is the first positional argument, or empty.
func (l *Loader) Load(arg string) (*Document, SourceResult, error) {
	settings := l.Settings()

	src, err := ResolveSource(ResolveSourceOptions{
		Arg:         arg,
		EnvValue:    l.ConfJSON(),
		DefaultPath: settings.DefaultConfigPath(),
	})
	if err != nil {
		return nil, src, err
	}
	LogResolvedSource(src)

	data, err := src.Read()
	if err != nil {
		return nil, src, err
	}

	doc, err := Decode(src.Location, FormatFor(src), data)
	if err != nil {
		return nil, src, err
	}

	return doc, src, nil
}
