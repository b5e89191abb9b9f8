package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/leaf-doctor-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("leaf-doctor-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("leaf-doctor-mcp - MCP server for leaf condition analysis")
			fmt.Println()
			fmt.Println("Usage: leaf-doctor-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  LEAF_MCP_LOG_LEVEL=debug          Log level (debug, info, warn, error)")
			fmt.Println("  LEAF_MCP_ADVISORY_PATH=<file>     JSON advisory table replacing the built-in one")
			fmt.Println("  LEAF_MCP_CALIBRATION_PATH=<file>  JSON mask thresholds and rule constants")
			fmt.Println("  LEAF_MCP_MAX_DIMENSION=<pixels>   Downscale images to fit before analysis")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := server.ConfigFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	level, err := cfg.Level()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)

	log.WithFields(log.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("Leaf Doctor MCP Server starting")

	srv, err := server.NewWithConfig(cfg)
	if err != nil {
		log.Fatalf("Server setup failed: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
