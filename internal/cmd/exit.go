package cmd

// Exit codes.
const (
	// ExitSuccess indicates the run completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified or filesystem error.
	ExitGeneralError = 1

	// ExitValidationError indicates an unparsable or invalid configuration,
	// or a module without a version.
	ExitValidationError = 2

	// ExitPermissionDenied indicates a file could not be read or written.
	ExitPermissionDenied = 4

	// ExitNotFound indicates no configuration source was available.
	ExitNotFound = 5
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}
