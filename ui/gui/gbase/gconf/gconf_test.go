package gconf

import (
	"os"
	"testing"

	"radialmenu/ui/gui/gbase"
)

// chtemp runs the test from an empty working directory, since the config
// file lives in the cwd.
func chtemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestNewGUIConfigDefaults(t *testing.T) {
	chtemp(t)

	conf, err := NewGUIConfig()
	if err != nil {
		t.Fatal(err)
	}
	if conf.WindowW != gbase.WindowW || conf.WindowH != gbase.WindowH {
		t.Errorf("window = %dx%d, want %dx%d", conf.WindowW, conf.WindowH, gbase.WindowW, gbase.WindowH)
	}
	if conf.Theme != "dark" || conf.MenuFile != "radial_menu.json" {
		t.Errorf("Theme = %q, MenuFile = %q, want dark/radial_menu.json", conf.Theme, conf.MenuFile)
	}
	if conf.Debug || conf.Disabled {
		t.Errorf("Debug = %v, Disabled = %v, want both off", conf.Debug, conf.Disabled)
	}
}

func TestNewGUIConfigCorrects(t *testing.T) {
	chtemp(t)

	raw := `{"theme": "neon", "window_w": 100, "window_h": 100, "debug": true}`
	if err := os.WriteFile("radialmenu.json", []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := NewGUIConfig()
	if err != nil {
		t.Fatal(err)
	}
	if conf.Theme != "dark" {
		t.Errorf("Theme = %q, want dark for an unknown theme", conf.Theme)
	}
	if conf.WindowW != gbase.WindowW || conf.WindowH != gbase.WindowH {
		t.Errorf("window = %dx%d, want defaults for an undersized window", conf.WindowW, conf.WindowH)
	}
	// explicit fields survive correction
	if !conf.Debug {
		t.Error("Debug = false, want the stored value kept")
	}
}
