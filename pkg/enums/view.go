package enums

import "fmt"

// View names a top-level screen of the client application. The active
// view is persisted per client so a reload restores navigation state.
type View string

const (
	ViewHome      View = "home"
	ViewSearch    View = "search"
	ViewResults   View = "results"
	ViewPharmacy  View = "pharmacy"
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
)

var validViews = []View{
	ViewHome,
	ViewSearch,
	ViewResults,
	ViewPharmacy,
	ViewLogin,
	ViewDashboard,
}

// IsValid reports whether the value matches the canonical view enum.
func (v View) IsValid() bool {
	for _, candidate := range validViews {
		if candidate == v {
			return true
		}
	}
	return false
}

// String returns the wire value.
func (v View) String() string {
	return string(v)
}

// ParseView converts the raw string to View.
func ParseView(value string) (View, error) {
	for _, candidate := range validViews {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid view %q", value)
}
