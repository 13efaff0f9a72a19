// Package cli defines the cobra command tree for the dlvr CLI.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/scbrown/deliverable/internal/config"
	"github.com/scbrown/deliverable/internal/delivery"
	"github.com/scbrown/deliverable/internal/logger"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	logLevel   string
)

// rootCmd is the top-level dlvr command.
var rootCmd = &cobra.Command{
	Use:   "dlvr",
	Short: "Deliverable - find the main file an AI agent produced",
	Long: `dlvr reads the tool calls an AI coding agent made and decides which one
produced the primary deliverable (index.html, main.py, ...) rather than a
support file such as a stylesheet, a config file or a test.

Transcripts are read from a file or stdin using a source plugin (see
"dlvr sources"). Settings live in ~/.dlvr/config.toml. All output commands
support --json for machine-readable output.`,
	Example: `  # Find the deliverable in a Claude Code session
  dlvr scan --source claude-code ~/.claude/projects/app/session.jsonl

  # Show how each file-mutation call was judged
  dlvr scan --explain events.json

  # React to tool calls as they arrive
  agent-run | dlvr stream

  # Check how a file name is classified
  dlvr classify index.html style.css latest.html`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadFrom(configPath)
		if err != nil {
			logger.Warnf("Ignoring config %s: %v", configPath, err)
			return
		}
		if cfg.DefaultFormat == "json" && !cmd.Flags().Changed("json") {
			jsonOutput = true
		}
		if cfg.LogLevel != "" && !cmd.Flags().Changed("log-level") {
			logger.Init(cfg.LogLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cobra.OnInitialize(func() { logger.Init(logLevel) })
}

// loadScanner returns the default scanner extended with any tool names
// listed in the config file.
func loadScanner() (*delivery.Scanner, *config.Config, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	s := delivery.DefaultScanner
	if len(cfg.MutationTools) > 0 || len(cfg.MomentTools) > 0 {
		s = s.WithTools(cfg.MutationTools, cfg.MomentTools)
		logger.Debugf("Extra tools from config: mutation=%v moment=%v", cfg.MutationTools, cfg.MomentTools)
	}
	return s, cfg, nil
}

// openInput returns the named file, or stdin when path is "" or "-".
func openInput(path string) (io.ReadCloser, string, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), "", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open transcript: %w", err)
	}
	return f, path, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
