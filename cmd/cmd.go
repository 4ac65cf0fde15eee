package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/darkhz/playerview/component"
	"github.com/darkhz/playerview/loader"
	"github.com/darkhz/playerview/runtime"
	"github.com/darkhz/playerview/utils"
)

// Version stores the version information.
var Version string

// Init parses the command-line parameters and loads the player runtime.
func Init() {
	printer.setup()
	config.setup()

	parse()

	printVersion()
	generate()

	loadRuntime()

	printer.Stop()
}

// Run mounts a player component driven by the command-line options and
// keeps it mounted until the player exits or an interrupt arrives.
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	socket, err := GetPath("socket")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if defaults, ok := config.Get("defaults").(map[string]interface{}); ok {
		component.SetDefaults(defaults)
	}

	comp := component.New(component.Options{
		Runtime: GetOptionValue("runtime"),
		Source:  GetOptionValue("source"),
		Socket:  socket,
		Retries: config.Int("num-retries"),
		Props:   buildProps(),
		OnMount: func(e component.Event) {
			fmt.Printf("Mounted %s\n", e.ID)
		},
		OnUnmount: func(e component.Event) {
			fmt.Printf("Unmounting %s\n", e.ID)
		},
	})

	if err := comp.Mount(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer comp.Unmount()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			handle := comp.Handle()
			if handle == nil || handle.Closed() {
				return
			}
		}
	}
}

// buildProps builds the component's property bag from the
// command-line options.
func buildProps() component.Props {
	props := component.Props{
		"autostart": config.Bool("autostart"),
		"volume":    config.Int("volume"),
		utils.HandlerName("once", "ready"): component.EventCallback(
			func(payload map[string]interface{}) {
				fmt.Println(readyMessage(payload))
			}),
		utils.HandlerName("on", "complete"): component.EventCallback(
			func(payload map[string]interface{}) {
				fmt.Println("Playback complete")
			}),
	}

	for _, key := range []string{"file", "title"} {
		if value := GetOptionValue(key); value != "" {
			props[key] = value
		}
	}

	if value := GetOptionValue("playlist"); value != "" {
		props["playlist"] = playlistEntries(value)
	}

	if path := GetOptionValue("player-config"); path != "" {
		options, err := configProp(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		props[component.ConfigProp] = options
	}

	for _, key := range []string{"mute", "repeat"} {
		if IsOptionEnabled(key) {
			props[key] = true
		}
	}

	if IsOptionEnabled("show-events") {
		props[utils.HandlerName("on", "all")] = component.AllCallback(printEvent)
	}

	return props
}

// playlistEntries settles the playlist option into a playlist value.
// A comma-separated value becomes a list of entries, duplicates removed.
func playlistEntries(value string) interface{} {
	if !strings.Contains(value, ",") {
		return value
	}

	var entries []string

	for _, entry := range strings.Split(value, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			entries = append(entries, entry)
		}
	}

	return utils.Deduplicate(entries)
}

// readyMessage renders the media-ready notification.
func readyMessage(payload map[string]interface{}) string {
	message := "Media is ready"

	if size, ok := payload["size"].(int); ok && size > 0 {
		message += " (" + utils.FormatNumber(size) + "B)"
	}

	return message
}

// printEvent prints a player event.
func printEvent(event string, payload map[string]interface{}) {
	if event == "time" {
		if position, ok := payload["position"].(float64); ok {
			fmt.Printf("\r%s", utils.FormatDuration(int64(position)))
		}

		return
	}

	fmt.Printf("[%s] %v\n", event, payload)
}

// loadRuntime loads the player runtime.
func loadRuntime() {
	name := GetOptionValue("runtime")
	source := GetOptionValue("source")

	printer.Print(loadMessage(name, source))

	socket, err := GetPath("socket")
	if err != nil {
		printer.Error(err.Error())
	}

	err = loader.Load(context.Background(), loader.Options{
		Runtime: name,
		Source:  source,
		Socket:  socket,
		Retries: config.Int("num-retries"),
	})
	if err != nil {
		printer.Error(err.Error())
	}

	if _, ok := runtime.Lookup(name); !ok {
		printer.Error("Runtime " + name + " did not register itself")
	}
}

// loadMessage returns the spinner message for a load attempt.
func loadMessage(name, source string) string {
	message := "Loading " + name

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		message += " from " + utils.GetHostname(source)
	}

	return message
}

// printVersion prints the version information.
func printVersion() {
	if !IsOptionEnabled("version") {
		return
	}

	printer.Print(fmt.Sprintf("playerview v%s", Version), 0)
}

// generate generates the configuration.
func generate() {
	if !IsOptionEnabled("generate") {
		return
	}

	generateConfig()

	printer.Print("Configuration is generated", 0)
}
