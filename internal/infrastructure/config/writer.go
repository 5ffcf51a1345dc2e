package config

import (
	"fmt"
	"os"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# Hunt tracker configuration

attributes:
  # path: /path/to/Hunt Showdown/user/profiles/default/attributes.xml (or set HUNT_ATTRIBUTES_PATH)
  bounds: probe # probe | declared

# profile_id: 0 # your profile id (or set HUNT_PROFILE_ID)

resources_dir: resources

archive:
  compress: false

qdrant:
  enabled: false
  host: localhost
  port: 6334
  collection: hunt_lobbies
  # api_key: your-api-key (or set QDRANT_API_KEY env var)

log:
  level: debug
  color: true

watch:
  debounce: 50ms
  poll_interval: 1s
`

// WriteDefault creates the .hunt directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := ConfigDir(basePath)
	configFile := ConfigFilePath(basePath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Exists checks if a hunt config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
