package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// SteamAppID identifies Hunt: Showdown in Steam libraries.
const SteamAppID = 594650

// attributesRelPath is the attributes file relative to a Steam library root.
var attributesRelPath = filepath.Join("steamapps", "common", "Hunt Showdown", "user", "profiles", "default", "attributes.xml")

// ErrAttributesNotFound is returned when no attributes file can be located.
var ErrAttributesNotFound = errors.New("attributes file not found (set attributes.path or HUNT_ATTRIBUTES_PATH)")

// SteamLibraryRoots returns the usual Steam library locations for this OS.
func SteamLibraryRoots() []string {
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "windows":
		roots := []string{
			`C:\Program Files (x86)\Steam`,
			`C:\Program Files\Steam`,
		}
		for _, drive := range []string{"D", "E", "F"} {
			roots = append(roots, drive+`:\SteamLibrary`, drive+`:\Steam`)
		}
		return roots
	case "darwin":
		return []string{filepath.Join(home, "Library", "Application Support", "Steam")}
	default:
		return []string{
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
		}
	}
}

// LocateAttributes returns the configured path when set, otherwise the first
// existing attributes file under roots.
func LocateAttributes(configured string, roots []string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", err
		}
		return configured, nil
	}
	for _, root := range roots {
		candidate := filepath.Join(root, attributesRelPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrAttributesNotFound
}
