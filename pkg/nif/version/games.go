package version

import (
	"fmt"
	"strings"
)

// Games lists the game names ForGame accepts.
var Games = []string{"oblivion", "fo3", "skyrim", "sse", "fo4", "fo76"}

// ForGame returns the version tuple of a game by name. Names are case
// insensitive; a few common aliases are accepted.
func ForGame(name string) (*NiVersion, error) {
	switch strings.ToLower(name) {
	case "oblivion", "ob":
		return Oblivion(), nil
	case "fo3", "fnv":
		return FO3(), nil
	case "skyrim", "sk":
		return SK(), nil
	case "sse", "skyrimse":
		return SSE(), nil
	case "fo4":
		return FO4(), nil
	case "fo76":
		return FO76(), nil
	}
	return nil, fmt.Errorf("unknown game %q (expected one of %s)", name, strings.Join(Games, ", "))
}

// Game names the game v belongs to, or returns an empty string for
// non-Bethesda files.
func (v *NiVersion) Game() string {
	switch {
	case v.IsOB():
		return "oblivion"
	case v.IsFO3():
		return "fo3"
	case v.IsSK():
		return "skyrim"
	case v.IsSSE():
		return "sse"
	case v.IsFO4():
		return "fo4"
	case v.IsFO76():
		return "fo76"
	}
	return ""
}
