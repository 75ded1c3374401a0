package errors

import "errors"

// Sentinel errors for the fatal conditions of a generation run.
var (
	// ErrConfigNotFound indicates none of the configuration sources is available.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrConfigParse indicates the configuration text is not valid structured data
	// or does not match the configuration schema.
	ErrConfigParse = errors.New("configuration parse error")

	// ErrMissingVersion indicates a module descriptor without a version.
	ErrMissingVersion = errors.New("missing module version")

	// ErrFilesystem indicates a read or write failure on the manifest or a generated file.
	ErrFilesystem = errors.New("filesystem error")
)
