package pipeline

import (
	"github.com/openimis/fe-config/internal/config"
)

// Plan is a serializable summary of a run.
type Plan struct {
	Source  string       `json:"source" yaml:"source"`
	Removed []string     `json:"removed" yaml:"removed"`
	Modules []PlanModule `json:"modules" yaml:"modules"`
	Files   []PlanFile   `json:"files" yaml:"files"`
	Written bool         `json:"written" yaml:"written"`
}

// PlanModule describes one resolved module.
type PlanModule struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	Export      string `json:"export" yaml:"export"`
	LogicalName string `json:"logicalName" yaml:"logicalName"`
}

// PlanFile describes one generated file.
type PlanFile struct {
	Path  string `json:"path" yaml:"path"`
	Bytes int    `json:"bytes" yaml:"bytes"`
}

// Plan summarizes the result.
func (r *Result) Plan() Plan {
	p := Plan{
		Source:  sourceLabel(r.Source),
		Removed: append([]string{}, r.Removed...),
		Modules: make([]PlanModule, 0, len(r.Modules)),
		Files: []PlanFile{
			{Path: r.Settings.LocalesPath(), Bytes: len(r.Locales)},
			{Path: r.Settings.ModulesPath(), Bytes: len(r.ModuleLoader)},
			{Path: r.Settings.ManifestPath(), Bytes: len(r.ManifestAfter)},
		},
		Written: !r.DryRun,
	}
	for _, m := range r.Modules {
		p.Modules = append(p.Modules, PlanModule{
			Name:        m.ModuleName,
			Version:     m.Version,
			Export:      m.Export(),
			LogicalName: m.LogicalName,
		})
	}
	return p
}

func sourceLabel(src config.SourceResult) string {
	if src.Source == config.SourceEnv {
		return config.EnvConfJSON
	}
	return src.Location
}
