package config

import (
	"fmt"
	"os"

	oerrors "github.com/openimis/fe-config/internal/errors"
	"github.com/openimis/fe-config/internal/output"
)

// Source indicates where the configuration document came from.
type Source string

const (
	// SourceArg indicates a file path given as the first positional argument.
	SourceArg Source = "arg"
	// SourceEnv indicates the OPENIMIS_CONF_JSON environment variable.
	SourceEnv Source = "env"
	// SourceDefault indicates openimis.json in the project directory.
	SourceDefault Source = "default"
)

// ResolveSourceOptions contains the candidate configuration sources.
type ResolveSourceOptions struct {
	// Arg is the first positional argument (empty if not given).
	Arg string

	// EnvValue is the content of OPENIMIS_CONF_JSON (empty if unset).
	EnvValue string

	// DefaultPath is the conventional configuration file path.
	DefaultPath string
}

// SourceResult is the selected configuration source.
type SourceResult struct {
	// Source indicates which candidate won.
	Source Source

	// Location is the file path, or the environment variable name for SourceEnv.
	Location string

	// Data is the inline document for SourceEnv.
	Data []byte

	// Shadowed contains lower-precedence candidates that were ignored.
	Shadowed map[Source]string
}

// ResolveSource picks the configuration source using precedence:
// (1) positional argument, (2) OPENIMIS_CONF_JSON, (3) openimis.json.
// The first available source wins; sources are never merged.
func ResolveSource(opts ResolveSourceOptions) (SourceResult, error) {
	result := SourceResult{
		Shadowed: make(map[Source]string),
	}

	defaultExists, statErr := fileExists(opts.DefaultPath)

	switch {
	case opts.Arg != "":
		result.Source = SourceArg
		result.Location = opts.Arg
		if opts.EnvValue != "" {
			result.Shadowed[SourceEnv] = EnvConfJSON
		}
		if defaultExists {
			result.Shadowed[SourceDefault] = opts.DefaultPath
		}
	case opts.EnvValue != "":
		result.Source = SourceEnv
		result.Location = EnvConfJSON
		result.Data = []byte(opts.EnvValue)
		if defaultExists {
			result.Shadowed[SourceDefault] = opts.DefaultPath
		}
	case defaultExists:
		result.Source = SourceDefault
		result.Location = opts.DefaultPath
	case statErr != nil:
		return result, oerrors.WrapFS(statErr, "checking", opts.DefaultPath)
	default:
		return result, oerrors.NewNotFoundError(
			"No configuration file found",
			fmt.Sprintf("Please provide a configuration in the CLI or in the %s environment variable", EnvConfJSON),
		)
	}

	return result, nil
}

// Read returns the raw configuration document.
func (r SourceResult) Read() ([]byte, error) {
	if r.Source == SourceEnv {
		return r.Data, nil
	}
	data, err := os.ReadFile(r.Location)
	if err != nil {
		return nil, oerrors.WrapFS(err, "reading", r.Location)
	}
	return data, nil
}

// String describes the source for progress output.
func (r SourceResult) String() string {
	if r.Source == SourceEnv {
		return "env"
	}
	return r.Location
}

// LogResolvedSource logs the selected source and, at debug level, the
// candidates it shadowed.
func LogResolvedSource(r SourceResult) {
	output.Info(fmt.Sprintf("  load configuration from '%s'", r.String()))
	output.Debug("configuration source resolved",
		"source", r.Source,
		"location", r.Location,
	)
	for _, source := range []Source{SourceEnv, SourceDefault} {
		if shadowed, ok := r.Shadowed[source]; ok {
			output.Debug("  shadowed by higher precedence",
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}

func fileExists(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}
