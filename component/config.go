package component

import "sync"

// MarkerOption is stamped into every effective configuration to
// identify this integration layer to the player runtime. It is always
// true and always wins the merge.
const MarkerOption = "playerview"

// ConfigProp names the property holding a base configuration object,
// merged beneath the individually passed options.
const ConfigProp = "config"

// DefaultOptions lists the player configuration keys recognized from
// individual properties. The supported-option list is data, not code:
// callers may supply their own table per component.
var DefaultOptions = []string{
	"file",
	"playlist",
	"image",
	"title",
	"autostart",
	"mute",
	"volume",
	"repeat",
	"speed",
	"width",
	"height",
}

// defaults mirrors the optional process-wide defaults object,
// merged at the lowest precedence.
var (
	defaults      map[string]interface{}
	defaultsMutex sync.Mutex
)

// SetDefaults replaces the process-wide configuration defaults.
func SetDefaults(config map[string]interface{}) {
	defaultsMutex.Lock()
	defer defaultsMutex.Unlock()

	defaults = make(map[string]interface{}, len(config))
	for key, value := range config {
		defaults[key] = value
	}
}

// Defaults returns a copy of the process-wide configuration defaults.
func Defaults() map[string]interface{} {
	defaultsMutex.Lock()
	defer defaultsMutex.Unlock()

	config := make(map[string]interface{}, len(defaults)+1)
	for key, value := range defaults {
		config[key] = value
	}

	return config
}

// BuildConfig derives the effective player configuration from a
// property bag. Precedence, lowest first: process defaults, the
// "config" property, whitelisted individual properties, the marker
// flag. Inputs are never mutated, and property names outside the
// whitelist are dropped silently.
func BuildConfig(props Props, whitelist []string) map[string]interface{} {
	config := Defaults()

	if base, ok := props[ConfigProp].(map[string]interface{}); ok {
		for key, value := range base {
			config[key] = value
		}
	}

	for _, key := range whitelist {
		if value, ok := props[key]; ok {
			config[key] = value
		}
	}

	config[MarkerOption] = true

	return config
}
