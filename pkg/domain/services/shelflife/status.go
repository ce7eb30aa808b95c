package shelflife

import "fmt"

// Status is the shelf-life risk of a stocked product
type Status int

const (
	Ok Status = iota
	Warning
	Expired
)

// String method for Status enum
func (s Status) String() string {
	switch s {
	case Ok:
		return "Ok"
	case Warning:
		return "Warning"
	case Expired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// MarshalText renders the status by name in JSON and YAML output
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Ok", "ok", "OK":
		*s = Ok
	case "Warning", "warning":
		*s = Warning
	case "Expired", "expired":
		*s = Expired
	default:
		return fmt.Errorf("invalid shelf life status: %s (expected: Ok, Warning, or Expired)", text)
	}
	return nil
}
