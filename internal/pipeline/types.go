package pipeline

import (
	"errors"

	"github.com/openimis/fe-config/internal/config"
	"github.com/openimis/fe-config/internal/descriptor"
)

// Options configures a generator run.
type Options struct {
	// Loader resolves settings and loads the configuration document.
	Loader *config.Loader

	// Arg is the configuration file given on the command line, or empty.
	Arg string

	// DryRun renders everything but writes nothing.
	DryRun bool
}

// Validate checks that the options can drive a run.
func (o Options) Validate() error {
	if o.Loader == nil {
		return errors.New("pipeline: loader is required")
	}
	return nil
}

// Result holds everything a run produced, whether or not it was written.
type Result struct {
	// Settings are the resolved generator settings.
	Settings config.Settings

	// Source is the configuration source that was used.
	Source config.SourceResult

	// Removed lists the org-prefixed dependencies purged from the manifest.
	Removed []string

	// Modules are the resolved modules in configuration order.
	Modules []descriptor.Module

	// Locales is the rendered locale registry.
	Locales []byte

	// ModuleLoader is the rendered module loader.
	ModuleLoader []byte

	// ManifestBefore is the manifest as loaded, re-encoded.
	ManifestBefore []byte

	// ManifestAfter is the rewritten manifest.
	ManifestAfter []byte

	// Written lists the files written, in write order. Empty on a dry run.
	Written []string

	// DryRun reports whether writes were skipped.
	DryRun bool
}
