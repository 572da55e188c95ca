package data

// A View is one of the dashboard's screens. Exactly one is shown at a time.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewCalendar  View = "calendar"
	ViewMyArtists View = "my-artists"
	ViewSearch    View = "search"
	ViewSettings  View = "settings"
)

// Views lists every view in navigation order.
var Views = []View{
	ViewDashboard,
	ViewCalendar,
	ViewMyArtists,
	ViewSearch,
	ViewSettings,
}

// ParseView returns the named view, falling back to the dashboard.
func ParseView(s string) View {
	for _, v := range Views {
		if string(v) == s {
			return v
		}
	}
	return ViewDashboard
}

func (v View) Label() string {
	switch v {
	case ViewCalendar:
		return "Calendar"
	case ViewMyArtists:
		return "My Artists"
	case ViewSearch:
		return "Search"
	case ViewSettings:
		return "Settings"
	default:
		return "Dashboard"
	}
}

func (v View) Path() string {
	switch v {
	case ViewCalendar:
		return "/calendar"
	case ViewMyArtists:
		return "/artists"
	case ViewSearch:
		return "/search"
	case ViewSettings:
		return "/settings"
	default:
		return "/"
	}
}
