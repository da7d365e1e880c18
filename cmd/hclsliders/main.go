package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/jsvensson/hclsliders/internal/config"
)

var version = "dev" // Injected at build time via ldflags

// errUnformatted makes fmt --check exit non-zero without an extra message.
var errUnformatted = errors.New("files need formatting")

func newRootCmd() *cobra.Command {
	var settingsPath string
	var verbose int

	rootCmd := &cobra.Command{
		Use:           "hclsliders",
		Short:         "Convert, adjust and inspect colors across ten color models",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose > 0 {
				commonlog.Configure(verbose, nil)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", defaultSettingsPath(), "path to the settings file")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log settings warnings and more (repeat for debug output)")

	load := func() (*config.Settings, error) {
		return loadSettings(settingsPath)
	}

	rootCmd.AddCommand(
		newConvertCmd(),
		newParseCmd(),
		newSetCmd(load),
		newGradientCmd(load),
		newChannelsCmd(load),
		newHistoryCmd(load, func() string { return settingsPath }),
		newExportCmd(load),
		newFmtCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return rootCmd
}

// defaultSettingsPath returns the settings file in the user's config
// directory, or in the working directory when there is none.
func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return config.FileName
	}
	return filepath.Join(dir, "hclsliders", config.FileName)
}

// loadSettings loads the settings at path, falling back to the defaults when
// the file does not exist.
func loadSettings(path string) (*config.Settings, error) {
	s, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return s, nil
}

func newFmtCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Format settings files",
		Long:  "Format one or more settings files in-place. Prints the name of each file that was modified.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, check)
		},
	}
	cmd.Flags().BoolVarP(&check, "check", "c", false, "check if files are formatted (do not write changes)")
	return cmd
}

func runFmt(cmd *cobra.Command, args []string, check bool) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		formatted, changed := config.Check(string(data))
		if !changed {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !check {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	switch {
	case hasErrors:
		return errors.New("formatting failed")
	case check && needsFormatting:
		return errUnformatted
	}
	return nil
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUnformatted) {
			fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		}
		os.Exit(1)
	}
}
