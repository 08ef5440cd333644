// Command scene-mcp serves the scene tools over MCP on stdio.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "scenelink/internal/adapters/mcp"
	"scenelink/internal/logger"
	"scenelink/internal/registry"
)

var version = "0.1.0"

func main() {
	configFlag := flag.String("config", "", "config file (default $SCENELINK_CONFIG)")
	flag.Parse()
	os.Exit(run(*configFlag))
}

func run(configPath string) int {
	rt, err := registry.Setup(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scene-mcp: %v\n", err)
		return 1
	}
	defer rt.Close()

	log := logger.Component("mcp")
	log.Info().Str("scenes", rt.Config.ScenesDir).Str("version", version).Msg("serving on stdio")

	s := mcpadapter.NewServer("scene-mcp", version, mcpadapter.Deps{
		Opener:  rt.Registry,
		Catalog: rt.Catalog,
		Results: rt.Results,
	})
	if err := server.ServeStdio(s); err != nil {
		log.Error().Err(err).Msg("stdio server stopped")
		return 1
	}
	return 0
}
