package component

import (
	"reflect"
	"testing"
)

func TestBuildConfig(t *testing.T) {
	SetDefaults(map[string]interface{}{
		"width":  400,
		"height": 300,
	})
	t.Cleanup(func() { SetDefaults(nil) })

	props := Props{
		"config": map[string]interface{}{
			"height": 480,
		},
		"width":       720,
		"unsupported": 3,
	}

	config := BuildConfig(props, []string{"width", "height"})

	want := map[string]interface{}{
		"width":      720,
		"height":     480,
		MarkerOption: true,
	}

	if !reflect.DeepEqual(config, want) {
		t.Errorf("BuildConfig = %v, want %v", config, want)
	}

	if len(props) != 3 {
		t.Error("property bag was mutated")
	}
}

func TestBuildConfigNoDefaults(t *testing.T) {
	config := BuildConfig(Props{"volume": 50}, DefaultOptions)

	want := map[string]interface{}{
		"volume":     50,
		MarkerOption: true,
	}

	if !reflect.DeepEqual(config, want) {
		t.Errorf("BuildConfig = %v, want %v", config, want)
	}
}

func TestBuildConfigMarkerWins(t *testing.T) {
	props := Props{
		"config": map[string]interface{}{
			MarkerOption: false,
		},
	}

	config := BuildConfig(props, nil)

	if config[MarkerOption] != true {
		t.Error("marker flag did not win the merge")
	}
}
