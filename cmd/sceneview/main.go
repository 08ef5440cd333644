package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"scenelink/internal/adapters/tui"
	"scenelink/internal/registry"
)

func main() {
	configFlag := flag.String("config", "", "config file (default $SCENELINK_CONFIG)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: sceneview [-config file] <scene>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configFlag, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, scene string) error {
	rt, err := registry.Setup(configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	path := scene
	if _, err := os.Stat(scene); err == nil {
		path, err = filepath.Abs(scene)
		if err != nil {
			return err
		}
	} else if path, err = rt.Catalog.Resolve(scene); err != nil {
		return err
	}

	app := tui.NewApp(rt.Registry, path)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
