package gconf

import (
	"encoding/json"
	"fmt"
	"os"

	"radialmenu/ui/gui/gbase"
)

type Config struct {
	Theme       string `json:"theme"`       // light/dark
	MenuFile    string `json:"menu_file"`   // path to the menu definition
	Interpreter string `json:"interpreter"` // action interpreter binary, empty = log only
	WindowH     int    `json:"window_h"`    //
	WindowW     int    `json:"window_w"`    //
	Disabled    bool   `json:"disabled"`    // popup ignores triggers
	Debug       bool   `json:"debug"`       // true/false
}

func defaultConfig() Config {
	return Config{
		Theme:       "dark",
		MenuFile:    "radial_menu.json",
		Interpreter: "",
		WindowH:     gbase.WindowH,
		WindowW:     gbase.WindowW,
		Disabled:    false,
		Debug:       false,
	}
}

func NewGUIConfig() (*Config, error) {
	file := "radialmenu.json"

	_, err := os.Stat(file)
	if os.IsNotExist(err) {
		def := defaultConfig()
		return &def, nil
	} else if err != nil {
		return nil, err
	}

	conf, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer conf.Close()

	dec := json.NewDecoder(conf)
	var c Config
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("error decode config: %s", err)
	}
	correctableConfig(&c)

	return &c, nil
}

func (c *Config) Save() error {
	file := "radialmenu.json"
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	err = os.WriteFile(file, jsonData, 0644)
	if err != nil {
		return err
	}
	return nil
}

func correctableConfig(c *Config) {
	def := defaultConfig()
	if c.Theme != "light" && c.Theme != "dark" {
		c.Theme = def.Theme
	}
	if c.MenuFile == "" {
		c.MenuFile = def.MenuFile
	}
	if c.WindowH < 480 || c.WindowW < 640 {
		c.WindowH = def.WindowH
		c.WindowW = def.WindowW
	}
}
