package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsvensson/hclsliders/internal/export"
)

func newExportCmd(load settingsLoader) *cobra.Command {
	var templates, out string
	var apps []string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render templates against the color history",
		Long:  "Render every .tmpl file in the templates directory with the history and displayed channels, writing one file per template.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load()
			if err != nil {
				return err
			}

			e := &export.Engine{
				TemplatesDir: templates,
				OutputDir:    out,
				Apps:         apps,
			}
			if err := e.Run(s); err != nil {
				return fmt.Errorf("exporting: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported files in %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "output", "output directory")
	cmd.Flags().StringVar(&templates, "templates", "templates", "templates directory")
	cmd.Flags().StringArrayVar(&apps, "app", nil, "export only specific templates by output name (can be repeated)")
	return cmd
}
