// Package descriptor parses module descriptors of the form "name@version".
//
// The package name never contains '@' beyond its leading scope marker, but the
// version may be any locator, including git URLs such as
// "git+ssh://git@github.com:org/repo.git#main". Examples:
//
//	"@openimis/fe-core@>=1.5.1"
//	  => "@openimis/fe-core", ">=1.5.1"
//	"@openimis/fe-language_my@git+ssh://git@github.com:BLSQ/openimis-fe-language_my_js.git#main"
//	  => "@openimis/fe-language_my", "git+ssh://git@github.com:BLSQ/openimis-fe-language_my_js.git#main"
package descriptor

import (
	"fmt"
	"strings"

	oerrors "github.com/openimis/fe-config/internal/errors"
)

// DefaultExport is the export invoked when a module does not name one.
const DefaultExport = "default"

// Descriptor is the result of splitting a module descriptor string.
type Descriptor struct {
	ModuleName string
	Version    string
}

// Split separates a descriptor into module name and version.
//
// The split happens at the first '@' that follows the first '@' of the
// string. Without such a second '@' the whole input is the module name and
// the version is empty.
func Split(s string) Descriptor {
	first := strings.IndexByte(s, '@')
	if first < 0 {
		return Descriptor{ModuleName: s}
	}

	second := strings.IndexByte(s[first+1:], '@')
	if second < 0 {
		return Descriptor{ModuleName: s}
	}
	second += first + 1

	return Descriptor{
		ModuleName: s[:second],
		Version:    s[second+1:],
	}
}

// Spec is a module entry of the configuration document.
type Spec struct {
	NPM         string
	Name        string
	LogicalName string
}

// Module is a fully resolved module descriptor.
type Module struct {
	// ModuleName is the package name, e.g. "@openimis/fe-core".
	ModuleName string

	// Version is the version or source locator; never empty.
	Version string

	// Name is the export to invoke; empty means the default export.
	Name string

	// NPM is the original descriptor string.
	NPM string

	// LogicalName keys the module's slice of the runtime configuration.
	LogicalName string
}

// Export returns the export invoked to initialize the module.
func (m Module) Export() string {
	if m.Name == "" {
		return DefaultExport
	}
	return m.Name
}

// MissingVersionError reports a descriptor that carries no version.
type MissingVersionError struct {
	NPM string
}

func (e *MissingVersionError) Error() string {
	return fmt.Sprintf("module %s has no version set", e.NPM)
}

// Unwrap lets errors.Is match ErrMissingVersion.
func (e *MissingVersionError) Unwrap() error {
	return oerrors.ErrMissingVersion
}

// Resolve splits spec.NPM and builds a Module. A missing version is fatal.
func Resolve(spec Spec) (Module, error) {
	d := Split(spec.NPM)
	if d.Version == "" {
		return Module{}, &MissingVersionError{NPM: spec.NPM}
	}

	logical := spec.LogicalName
	if logical == "" {
		logical = DefaultLogicalName(d.ModuleName)
	}

	return Module{
		ModuleName:  d.ModuleName,
		Version:     d.Version,
		Name:        spec.Name,
		NPM:         spec.NPM,
		LogicalName: logical,
	}, nil
}

// ResolveAll resolves specs in order and stops at the first failure.
func ResolveAll(specs []Spec) ([]Module, error) {
	mods := make([]Module, 0, len(specs))
	for _, s := range specs {
		m, err := Resolve(s)
		if err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// DefaultLogicalName derives the logical name from the part of a package
// name after its first '/': "@openimis/fe-core" gives "fe-core". Names
// without a '/' are returned unchanged.
func DefaultLogicalName(moduleName string) string {
	_, rest, ok := strings.Cut(moduleName, "/")
	if !ok || rest == "" {
		return moduleName
	}
	if i := strings.IndexByte(rest, '@'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
