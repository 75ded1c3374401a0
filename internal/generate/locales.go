package generate

import (
	"encoding/json"
	"fmt"

	"github.com/openimis/fe-config/internal/config"
	"github.com/openimis/fe-config/internal/ordered"
	"github.com/openimis/fe-config/internal/output"
)

// LocaleIndex is the locale registry derived from the configured groups.
type LocaleIndex struct {
	// Intl holds each group's metadata in group order. Missing metadata is nil.
	Intl []json.RawMessage

	// FileNamesByLang maps each language to its group's file name mapping.
	FileNamesByLang *ordered.Map

	// ByLang maps each language to its group's metadata.
	ByLang *ordered.Map
}

// BuildLocaleIndex indexes groups by language. A language listed by more
// than one group keeps its first position and takes the last group's values.
func BuildLocaleIndex(groups []config.LocaleGroup) LocaleIndex {
	idx := LocaleIndex{
		Intl:            make([]json.RawMessage, 0, len(groups)),
		FileNamesByLang: ordered.New(),
		ByLang:          ordered.New(),
	}

	for i, g := range groups {
		idx.Intl = append(idx.Intl, g.Intl)
		for _, lang := range g.Languages {
			if idx.ByLang.Has(lang) {
				output.Debug("language listed by several locale groups, last one wins",
					"language", lang, "group", i)
			}
			idx.ByLang.SetRaw(lang, g.Intl)
			idx.FileNamesByLang.SetRaw(lang, g.FileNames)
		}
	}
	return idx
}

type localesData struct {
	Locales         string
	FileNamesByLang string
	ByLang          string
}

// RenderLocales renders the locale registry module.
func RenderLocales(groups []config.LocaleGroup) ([]byte, error) {
	idx := BuildLocaleIndex(groups)

	intl := make([]json.RawMessage, len(idx.Intl))
	for i, raw := range idx.Intl {
		if len(raw) == 0 {
			intl[i] = json.RawMessage("null")
			continue
		}
		norm, err := ordered.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("encoding locale group %d: %w", i, err)
		}
		intl[i] = norm
	}

	locales, err := ordered.Marshal(intl)
	if err != nil {
		return nil, fmt.Errorf("encoding locales: %w", err)
	}
	fileNames, err := ordered.Marshal(idx.FileNamesByLang)
	if err != nil {
		return nil, fmt.Errorf("encoding file names: %w", err)
	}
	byLang, err := ordered.Marshal(idx.ByLang)
	if err != nil {
		return nil, fmt.Errorf("encoding locales by language: %w", err)
	}

	return renderFile(LocalesTemplate, localesData{
		Locales:         string(locales),
		FileNamesByLang: string(fileNames),
		ByLang:          string(byLang),
	})
}
