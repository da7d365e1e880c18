package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsvensson/hclsliders/internal/color"
	"github.com/jsvensson/hclsliders/internal/config"
	"github.com/jsvensson/hclsliders/internal/css"
)

type settingsLoader func() (*config.Settings, error)

// parseColor parses color text, printing the text with a marker under the
// failing token when it is malformed.
func parseColor(cmd *cobra.Command, text string, parse func(string) (color.Color, error)) (color.Color, error) {
	c, err := parse(text)
	var pe *css.ParseError
	if errors.As(err, &pe) {
		w := cmd.ErrOrStderr()
		fmt.Fprintf(w, "  %s\n  %s^\n", text, strings.Repeat(" ", pe.Pos))
	}
	if err != nil {
		return color.Color{}, fmt.Errorf("parsing %q: %w", text, err)
	}
	return c, nil
}

func newConvertCmd() *cobra.Command {
	var to string
	var hue float64

	cmd := &cobra.Command{
		Use:   "convert <color>",
		Short: "Convert a color to another model",
		Long:  "Convert hex, oklab() or oklch() color text to another model and print it as a settings function call.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := color.ParseModel(to)
			if err != nil {
				return err
			}
			c, err := parseColor(cmd, args[0], css.Parse)
			if err != nil {
				return err
			}

			var out color.Color
			if cmd.Flags().Changed("hue") {
				out = color.ConvertHue(c, m, hue)
			} else {
				out = color.Convert(c, m)
			}
			newPrinter(cmd.OutOrStdout()).line(out, "%s", config.CallText(out, m))
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "oklch", "target model")
	cmd.Flags().Float64Var(&hue, "hue", 0, "hue to keep when the color is achromatic")
	return cmd
}

func newParseCmd() *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse color text and print it in every notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse := css.Parse
			switch strings.ToLower(as) {
			case "":
			case "oklab":
				parse = css.ParseAsOklab
			case "oklch":
				parse = css.ParseAsOklch
			default:
				return fmt.Errorf("--as must be oklab or oklch, got %q", as)
			}

			c, err := parseColor(cmd, args[0], parse)
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			for _, n := range css.Notations {
				p.line(c, "%-6s %s", n, css.Format(c, n))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&as, "as", "", "read bare components as oklab or oklch")
	return cmd
}

func newSetCmd(load settingsLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "set <channel> <color> <value>",
		Short: "Set one channel of a color",
		Long:  "Set a channel to a value in display units (degrees for hues, percent otherwise) and print the result in the settings notation.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load()
			if err != nil {
				return err
			}
			ch, err := s.Channel(args[0])
			if err != nil {
				return err
			}
			c, err := parseColor(cmd, args[1], css.Parse)
			if err != nil {
				return err
			}
			v, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("parsing value %q: %w", args[2], err)
			}
			if limit := ch.Limit(c); v < 0 || v > limit {
				return fmt.Errorf("%s value %g outside [0, %g]", ch.Name, v, limit)
			}

			out := ch.Apply(c, v)
			newPrinter(cmd.OutOrStdout()).line(out, "%s", css.Format(out, s.Notation))
			return nil
		},
	}
}

func newGradientCmd(load settingsLoader) *cobra.Command {
	var points int

	cmd := &cobra.Command{
		Use:   "gradient <channel> <color>",
		Short: "Print the gradient of a channel around a color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load()
			if err != nil {
				return err
			}
			ch, err := s.Channel(args[0])
			if err != nil {
				return err
			}
			c, err := parseColor(cmd, args[1], css.Parse)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			for _, stop := range ch.Gradient(c, points) {
				p.line(stop, "%s", css.Format(stop, css.NotationHex))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&points, "points", 0, "number of stops (default depends on the channel)")
	return cmd
}

func newChannelsCmd(load settingsLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "channels [color]",
		Short: "List the displayed channels, with their values for a color",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load()
			if err != nil {
				return err
			}
			var c *color.Color
			if len(args) == 1 {
				parsed, err := parseColor(cmd, args[0], css.Parse)
				if err != nil {
					return err
				}
				c = &parsed
			}

			w := cmd.OutOrStdout()
			for _, ch := range s.DisplayedChannels() {
				line := fmt.Sprintf("%-16s interval %-5g displacement %-5g", ch.Name, ch.Interval, ch.Displacement)
				if c != nil {
					line += fmt.Sprintf(" value %.3f / %.3f", ch.Read(*c), ch.Limit(*c))
				}
				fmt.Fprintln(w, strings.TrimRight(line, " "))
			}
			return nil
		},
	}
}
