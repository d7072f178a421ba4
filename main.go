package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LFroesch/gravily/internal/config"
	"github.com/LFroesch/gravily/internal/logger"
)

var version = "dev"

func rootCmd() *cobra.Command {
	var configPath string
	var debug bool

	cmd := &cobra.Command{
		Use:           "gravily [path]",
		Short:         "A terminal file manager",
		Long:          `Gravily browses a directory tree, previews files and images, and creates, renames or deletes files.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init("", debug); err != nil {
				fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
			}
			defer logger.Close()

			cfg := config.Load(configPath)

			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			startPath, err := config.ResolveStartPath(arg, cfg)
			if err != nil {
				logger.Warn("%v", err)
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
			logger.Info("Starting in %q", startPath)

			p := tea.NewProgram(newModel(startPath, cfg), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				logger.Error("Program failed: %v", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/gravily/config.yaml)")
	cmd.Flags().BoolVar(&debug, "debug", false, "log debug messages")
	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
