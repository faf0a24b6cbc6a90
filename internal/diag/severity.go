package diag

// Severity defines the importance of a diagnostic. Only SevError fails a file.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning // e.g. --check found work to do
	SevError
)

// String is the upper-case form used by the pretty printer.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case form used by short, golden and JSON output.
func (s Severity) Label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}
