package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/darkhz/playerview/platform"
	"github.com/darkhz/playerview/resolver"
	"github.com/hjson/hjson-go/v4"
	hjsonparser "github.com/knadh/koanf/parsers/hjson"
	koanffile "github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/go-homedir"
)

// ConfigName is the name of the application's configuration file.
const ConfigName = "playerview.conf"

// DefaultConfig holds the built-in configuration, loaded beneath the
// configuration file and the command-line parameters.
const DefaultConfig = `
{
  runtime: mpv
  source: mpv
  num-retries: 10
  volume: 100
  autostart: true
}
`

// Config describes the configuration for the app.
type Config struct {
	path string

	mutex sync.Mutex

	*koanf.Koanf
}

var config Config

// setup sets up the configuration store and directory.
func (c *Config) setup() {
	c.Koanf = koanf.New(".")

	if err := c.Load(rawbytes.Provider([]byte(DefaultConfig)), hjsonparser.Parser()); err != nil {
		printer.Error(err.Error())
	}

	home, err := homedir.Dir()
	if err != nil {
		printer.Error("Config: Cannot get home directory")
	}

	dirs := []string{".config/playerview", ".playerview"}
	for i, dir := range dirs {
		p := filepath.Join(home, dir)
		dirs[i] = p

		if _, err := os.Stat(p); err == nil {
			c.path = p
			break
		}
	}

	if c.path == "" {
		pos := 1
		if _, err := os.Stat(filepath.Join(home, ".config")); err == nil {
			pos = 0
		}

		if err := os.MkdirAll(dirs[pos], 0700); err != nil {
			printer.Error(fmt.Sprintf("Config: Cannot create %s", dirs[pos]))
		}

		c.path = dirs[pos]
	}

	conf := filepath.Join(c.path, ConfigName)
	if _, err := os.Stat(conf); err == nil {
		if err := c.Load(koanffile.Provider(conf), hjsonparser.Parser()); err != nil {
			printer.Error(fmt.Sprintf("Config: Cannot parse %s", conf))
		}
	}
}

// GetPath returns the full config path for the provided file type.
func GetPath(ftype string) (string, error) {
	if ftype == "socket" {
		socket := filepath.Join(config.path, "socket")

		return platform.Socket(socket), nil
	}

	cfpath := filepath.Join(config.path, ftype)

	fd, err := os.OpenFile(cfpath, os.O_CREATE, os.ModePerm)
	if err != nil {
		return "", fmt.Errorf("Config: Cannot create %s file at %s", ftype, cfpath)
	}
	fd.Close()

	return cfpath, nil
}

// GetOptionValue returns a value for an option
// from the configuration store.
func GetOptionValue(key string) string {
	config.mutex.Lock()
	defer config.mutex.Unlock()

	return config.String(key)
}

// SetOptionValue sets a value for an option
// in the configuration store.
func SetOptionValue(key string, value interface{}) {
	config.mutex.Lock()
	defer config.mutex.Unlock()

	config.Set(key, value)
}

// IsOptionEnabled returns if an option is enabled.
func IsOptionEnabled(key string) bool {
	config.mutex.Lock()
	defer config.mutex.Unlock()

	return config.Bool(key)
}

// configProp reads a JSON file of player options into the base
// configuration property.
func configProp(path string) (map[string]interface{}, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Config: Cannot open %s", path)
	}
	defer file.Close()

	var options map[string]interface{}

	if err := resolver.DecodeReader(file, &options); err != nil {
		return nil, fmt.Errorf("Config: Cannot parse %s", path)
	}

	return options, nil
}

// generateConfig generates and updates the configuration file.
// Any existing values are carried over.
func generateConfig() {
	genMap := make(map[string]interface{})

	for _, option := range options {
		if !option.Generated {
			continue
		}

		genMap[option.Name] = config.Get(option.Name)
	}

	defaults := config.Get("defaults")
	if defaults == nil {
		defaults = make(map[string]interface{})
	}
	genMap["defaults"] = defaults

	data, err := hjson.Marshal(genMap)
	if err != nil {
		printer.Error(err.Error())
	}

	conf, err := GetPath(ConfigName)
	if err != nil {
		printer.Error(err.Error())
	}

	file, err := os.OpenFile(conf, os.O_WRONLY|os.O_TRUNC, os.ModePerm)
	if err != nil {
		printer.Error(err.Error())
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		printer.Error(err.Error())
	}

	if err := file.Sync(); err != nil {
		printer.Error(err.Error())
	}
}
