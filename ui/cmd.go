package ui

import (
	"context"
	"fmt"
	"os"

	"radialmenu/src/logx"
	"radialmenu/src/radial"
	"radialmenu/src/store"
	clic "radialmenu/ui/cli"
	"radialmenu/ui/gui"
	"radialmenu/ui/gui/gbase/gconf"

	"github.com/urfave/cli/v3"
)

const logfile string = "radialmenu.log"

func GetLogger(file *os.File, c *cli.Command, debug bool) *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(c.String("level")),
		debug,
		c.Bool("console"),
	)
	l.InitLogger(file)
	return l
}

func setup(c *cli.Command) (*gconf.Config, *store.Store, radial.ActionRunner, *logx.Logx, *os.File, error) {
	conf, err := gconf.NewGUIConfig()
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	if f := c.String("file"); f != "" {
		conf.MenuFile = f
	}

	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("error open logfile: %w", err)
	}
	// the config flag turns debug on for users who never touch the CLI flags
	l := GetLogger(file, c, c.Bool("debug") || conf.Debug)

	st := store.NewStore(conf.MenuFile, l)

	var runner radial.ActionRunner
	if conf.Interpreter != "" {
		runner = &radial.ExecRunner{Interpreter: conf.Interpreter, Logx: l}
	} else {
		runner = &radial.LogRunner{Logx: l}
	}
	return conf, st, runner, l, file, nil
}

func RunGUI(c *cli.Command, popup bool) error {
	conf, st, runner, l, file, err := setup(c)
	if err != nil {
		fmt.Println(err)
		return nil
	}
	defer file.Close()

	if popup && conf.Disabled {
		l.Info("menu disabled by config")
		return nil
	}

	g, err := gui.NewGUI(st, conf, runner, l, popup)
	if err != nil {
		return err
	}
	return g.Run()
}

func RunRadialMenu() error {
	df := &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "enable debug mod",
	}
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Usage:   "logger level",
	}
	cf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console logger encoding",
	}
	ff := &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "path to menu definition file",
	}
	flags := []cli.Flag{df, lf, cf, ff}

	return (&cli.Command{
		Name:  "radialmenu",
		Usage: "radial context menu",
		Flags: flags,
		Commands: []*cli.Command{
			{
				Name:  "menu",
				Usage: "show the popup menu",
				Flags: flags,
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := RunGUI(c, true); err != nil {
						fmt.Printf("error menu: %v", err)
					}
					return nil
				},
			},
			{
				Name:  "editor",
				Usage: "open the menu editor",
				Flags: flags,
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := RunGUI(c, false); err != nil {
						fmt.Printf("error editor: %v", err)
					}
					return nil
				},
			},
			{
				Name:  "presets",
				Usage: "browse and activate presets in the terminal",
				Flags: flags,
				Action: func(ctx context.Context, c *cli.Command) error {
					_, st, _, _, file, err := setup(c)
					if err != nil {
						fmt.Println(err)
						return nil
					}
					defer file.Close()
					if err := clic.NewCLI(st).Run(); err != nil {
						fmt.Printf("error presets: %v", err)
					}
					return nil
				},
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := RunGUI(c, true); err != nil {
				fmt.Printf("error menu: %v", err)
			}
			return nil
		},
	}).Run(context.Background(), os.Args)
}
