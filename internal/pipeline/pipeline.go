// Package pipeline runs the generator end to end: purge the manifest, load
// the configuration, render both JavaScript sources and rewrite the
// manifest.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/openimis/fe-config/internal/config"
	"github.com/openimis/fe-config/internal/descriptor"
	"github.com/openimis/fe-config/internal/fileutil"
	"github.com/openimis/fe-config/internal/generate"
	"github.com/openimis/fe-config/internal/manifest"
	"github.com/openimis/fe-config/internal/output"
)

// Run executes the generator.
//
// Step sequence:
//  1. PURGE:    manifest.Load() then PurgePrefix(org prefix)
//  2. CONFIG:   Loader.Load() resolves and validates the document
//  3. LOCALES:  generate.RenderLocales()
//  4. MODULES:  descriptor.ResolveAll(), generate.RenderModules(), ApplyModules()
//  5. SAVE:     write locales, modules and manifest, each atomically
//
// Steps 1-4 only touch memory, so a failure before step 5 leaves every file
// as it was.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	settings := opts.Loader.Settings()
	res := &Result{Settings: settings, DryRun: opts.DryRun}

	// Step 1: PURGE
	output.Info(fmt.Sprintf("Remove %s dependencies from %s",
		strings.TrimSuffix(settings.OrgPrefix, "/"), settings.Manifest))
	m, err := manifest.Load(settings.ManifestPath())
	if err != nil {
		return nil, err
	}
	if res.ManifestBefore, err = m.Marshal(); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", settings.Manifest, err)
	}
	res.Removed = m.PurgePrefix(settings.OrgPrefix)
	for _, name := range res.Removed {
		output.Info("  removed " + name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: CONFIG
	output.Info("Load configuration")
	doc, src, err := opts.Loader.Load(opts.Arg)
	if err != nil {
		return nil, err
	}
	res.Source = src

	// Step 3: LOCALES
	output.Info("Process Locales")
	if res.Locales, err = generate.RenderLocales(doc.Locales); err != nil {
		return nil, fmt.Errorf("rendering locales: %w", err)
	}
	output.StepLogger("locales").Debug("rendered", "groups", len(doc.Locales), "bytes", len(res.Locales))

	// Step 4: MODULES
	output.Info("Process Modules")
	mods, err := descriptor.ResolveAll(moduleSpecs(doc.Modules))
	if err != nil {
		return nil, err
	}
	res.Modules = mods
	for _, mod := range mods {
		output.Info(fmt.Sprintf("  added %q: %s", mod.ModuleName, mod.Version))
	}
	if res.ModuleLoader, err = generate.RenderModules(mods); err != nil {
		return nil, fmt.Errorf("rendering modules: %w", err)
	}
	if err := generate.ApplyModules(m, mods); err != nil {
		return nil, err
	}
	if res.ManifestAfter, err = m.Marshal(); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", settings.Manifest, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 5: SAVE
	output.Info("Save " + settings.Manifest)
	if opts.DryRun {
		output.Debug("dry run, no files written")
		return res, nil
	}
	if err := res.write(settings, m); err != nil {
		return nil, err
	}
	return res, nil
}

// write persists the rendered sources and then the manifest.
func (r *Result) write(settings config.Settings, m *manifest.Manifest) error {
	files := []struct {
		path string
		data []byte
	}{
		{settings.LocalesPath(), r.Locales},
		{settings.ModulesPath(), r.ModuleLoader},
	}
	for _, f := range files {
		if err := fileutil.WriteAtomic(f.path, f.data); err != nil {
			return err
		}
		output.Debug("wrote file", "path", output.StyleNoun.Render(f.path), "bytes", len(f.data))
		r.Written = append(r.Written, f.path)
	}

	path := settings.ManifestPath()
	if err := m.Save(path); err != nil {
		return err
	}
	output.Debug("wrote file", "path", output.StyleNoun.Render(path), "bytes", len(r.ManifestAfter))
	r.Written = append(r.Written, path)
	return nil
}

func moduleSpecs(in []config.ModuleSpec) []descriptor.Spec {
	specs := make([]descriptor.Spec, len(in))
	for i, s := range in {
		specs[i] = descriptor.Spec{NPM: s.NPM, Name: s.Name, LogicalName: s.LogicalName}
	}
	return specs
}
