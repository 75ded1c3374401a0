package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/openimis/fe-config/internal/manifest"
	"github.com/openimis/fe-config/internal/output"
	"github.com/openimis/fe-config/internal/pipeline"
)

// writeDryRun prints the plan of a run. Except in JSON mode it is followed
// by a dependency summary and the structural diff of the manifest.
func writeDryRun(w io.Writer, res *pipeline.Result, format output.OutputFormat) error {
	switch format {
	case output.FormatJSON:
		return output.WriteDocument(w, res.Plan(), format)
	case output.FormatTable:
		fmt.Fprintln(w, moduleTable(res.Plan()))
	default:
		if err := output.WriteDocument(w, res.Plan(), format); err != nil {
			return err
		}
	}

	added, removed, modified, err := dependencyChanges(res)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, output.StyleDim.Render("---"))
	fmt.Fprintln(w, strings.TrimRight(output.RenderDiff(added, removed, modified), "\n"))

	diff, err := output.DiffDocuments(res.ManifestBefore, res.ManifestAfter, output.UseColor(w))
	if err != nil {
		return fmt.Errorf("diffing %s: %w", res.Settings.Manifest, err)
	}
	if diff == "" {
		fmt.Fprintln(w, output.StyleDim.Render("# "+res.Settings.Manifest+": no changes"))
		return nil
	}
	fmt.Fprintln(w, output.StyleDim.Render("# "+res.Settings.Manifest))
	fmt.Fprint(w, output.IndentDiff(diff, "  "))
	return nil
}

// dependencyChanges classifies the org-owned dependencies touched by a run.
// Purged entries that are not configured again are removed; configured
// modules are added, or modified when their version changes.
func dependencyChanges(res *pipeline.Result) (added, removed []string, modified []output.ModifiedItem, err error) {
	before, err := manifest.Parse(res.ManifestBefore)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parsing %s: %w", res.Settings.Manifest, err)
	}

	configured := make(map[string]bool, len(res.Modules))
	for _, mod := range res.Modules {
		configured[mod.ModuleName] = true

		prev, ok := before.Version(mod.ModuleName)
		switch {
		case !ok:
			added = append(added, mod.ModuleName+"@"+mod.Version)
		case prev != mod.Version:
			modified = append(modified, output.ModifiedItem{
				Name: mod.ModuleName,
				Diff: fmt.Sprintf("%s -> %s", prev, mod.Version),
			})
		}
	}
	for _, name := range res.Removed {
		if !configured[name] {
			removed = append(removed, name)
		}
	}
	return added, removed, modified, nil
}

// moduleTable renders the resolved modules in initialization order.
func moduleTable(plan pipeline.Plan) string {
	t := output.NewTable("MODULE", "VERSION", "EXPORT", "LOGICAL NAME")
	for _, m := range plan.Modules {
		t.Row(m.Name, m.Version, m.Export, m.LogicalName)
	}
	return t.String()
}
