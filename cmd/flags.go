package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/darkhz/playerview/utils"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/spf13/pflag"
)

// Option describes a command-line option.
type Option struct {
	Name, Description string
	Value             string
	Type              string

	// Generated marks the options carried into a generated
	// configuration file.
	Generated bool
}

var options = []Option{
	{
		Name:        "runtime",
		Description: "Specify the player runtime to mount against.",
		Value:       "mpv",
		Type:        "string",
		Generated:   true,
	},
	{
		Name:        "source",
		Description: "Specify the path or URL to load the player runtime from.",
		Value:       "mpv",
		Type:        "string",
		Generated:   true,
	},
	{
		Name:        "num-retries",
		Description: "Set the number of retries for connecting to the player socket.",
		Value:       "10",
		Type:        "int",
		Generated:   true,
	},
	{
		Name:        "file",
		Description: "Specify a file or URL to play.",
		Type:        "string",
	},
	{
		Name:        "playlist",
		Description: "Specify a playlist (or M3U8 manifest) to play.",
		Type:        "string",
	},
	{
		Name:        "title",
		Description: "Set the media title.",
		Type:        "string",
	},
	{
		Name:        "player-config",
		Description: "Specify a JSON file with player options, merged beneath the individual options.",
		Type:        "string",
	},
	{
		Name:        "volume",
		Description: "Set the initial volume.",
		Value:       "100",
		Type:        "int",
		Generated:   true,
	},
	{
		Name:        "mute",
		Description: "Start the player muted.",
		Type:        "bool",
	},
	{
		Name:        "autostart",
		Description: "Start playback as soon as media is loaded.",
		Value:       "true",
		Type:        "bool",
		Generated:   true,
	},
	{
		Name:        "repeat",
		Description: "Repeat the playlist.",
		Type:        "bool",
	},
	{
		Name:        "show-events",
		Description: "Print every player event.",
		Type:        "bool",
	},
	{
		Name:        "generate",
		Description: "Generate the configuration file.",
		Type:        "bool",
	},
	{
		Name:        "version",
		Description: "Print version information.",
		Type:        "bool",
	},
}

// parse parses the command-line parameters into the configuration store.
func parse() {
	fs := pflag.NewFlagSet("playerview", pflag.ContinueOnError)

	for _, option := range options {
		switch option.Type {
		case "bool":
			fs.Bool(option.Name, option.Value == "true", option.Description)

		case "int":
			fs.Int(option.Name, atoi(option.Value), option.Description)

		default:
			fs.String(option.Name, option.Value, option.Description)
		}
	}

	fs.Usage = func() {
		var usage strings.Builder

		conf, _ := GetPath(ConfigName)
		fmt.Fprintf(
			&usage,
			"playerview [<flags>]\n\nConfig file is %s\n\nFlags:\n",
			conf,
		)
		usage.WriteString(fs.FlagUsages())

		printer.Print(usage.String(), 0)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		printer.Error(err.Error())
	}

	if err := config.Load(posflag.Provider(fs, ".", config.Koanf), nil); err != nil {
		printer.Error(err.Error())
	}

	checkOptions()
}

// checkOptions validates the parsed options.
func checkOptions() {
	if source := GetOptionValue("source"); source != "" {
		if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
			return
		}

		if _, err := utils.IsValidURL(source); err != nil {
			printer.Error("Invalid source URL")
		}
	}
}

// atoi converts an option default to an integer.
func atoi(value string) int {
	var number int

	fmt.Sscanf(value, "%d", &number)

	return number
}
