package nav

import "fmt"

// Screen identifies the single visible screen
type Screen int

const (
	ScreenHome Screen = iota
	ScreenAnalyzing
	ScreenResultRisk
	ScreenResultSafe
	ScreenProfile
	ScreenSearch
	ScreenNotifications
)

var screenNames = map[Screen]string{
	ScreenHome:          "home",
	ScreenAnalyzing:     "analyzing",
	ScreenResultRisk:    "result-risk",
	ScreenResultSafe:    "result-safe",
	ScreenProfile:       "profile",
	ScreenSearch:        "search",
	ScreenNotifications: "notifications",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

// Valid reports whether s is one of the known screens
func (s Screen) Valid() bool {
	_, ok := screenNames[s]
	return ok
}

// IsResult reports whether s shows a settled verdict
func (s Screen) IsResult() bool {
	return s == ScreenResultRisk || s == ScreenResultSafe
}

// ParseScreen converts a screen name back to a Screen
func ParseScreen(name string) (Screen, error) {
	for s, n := range screenNames {
		if n == name {
			return s, nil
		}
	}
	return ScreenHome, fmt.Errorf("unknown screen: %q", name)
}

// AllScreens lists every screen in declaration order
func AllScreens() []Screen {
	return []Screen{
		ScreenHome,
		ScreenAnalyzing,
		ScreenResultRisk,
		ScreenResultSafe,
		ScreenProfile,
		ScreenSearch,
		ScreenNotifications,
	}
}
