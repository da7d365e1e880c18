package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jsvensson/hclsliders/internal/config"
	"github.com/jsvensson/hclsliders/internal/css"
	"github.com/jsvensson/hclsliders/internal/history"
)

func newHistoryCmd(load settingsLoader, path func() string) *cobra.Command {
	var offset, limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the color history, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, h, err := loadHistory(load)
			if err != nil {
				return err
			}
			n := limit
			if n <= 0 {
				n = h.Len()
			}
			p := newPrinter(cmd.OutOrStdout())
			for i, c := range h.Window(offset, n) {
				p.line(c, "%3d  %s", offset+i, css.Format(c, s.Notation))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "index of the first color to list")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of colors to list (0 for all)")

	// edit loads the history, applies fn and saves the result back.
	edit := func(fn func(h *history.History) error) error {
		s, h, err := loadHistory(load)
		if err != nil {
			return err
		}
		if !s.History.Enabled {
			return fmt.Errorf("history is disabled in %s", path())
		}
		if err := fn(h); err != nil {
			return err
		}
		s.History.Colors = h.Colors()
		return saveSettings(path(), s)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <color>...",
			Short: "Add colors to the front of the history",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return edit(func(h *history.History) error {
					for _, text := range args {
						c, err := parseColor(cmd, text, css.Parse)
						if err != nil {
							return err
						}
						h.Add(c)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "use <index>",
			Short: "Move a history color to the front and print it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				i, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("parsing index %q: %w", args[0], err)
				}
				return edit(func(h *history.History) error {
					c, err := h.Use(i)
					if err != nil {
						return err
					}
					newPrinter(cmd.OutOrStdout()).line(c, "%s", css.Format(c, css.NotationHex))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <index> [<index>]",
			Short: "Delete one color, or every color between two indices",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx := make([]int, len(args))
				for i, a := range args {
					v, err := strconv.Atoi(a)
					if err != nil {
						return fmt.Errorf("parsing index %q: %w", a, err)
					}
					idx[i] = v
				}
				return edit(func(h *history.History) error {
					if len(idx) == 1 {
						return h.Delete(idx[0])
					}
					return h.DeleteRange(idx[0], idx[1])
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every color",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return edit(func(h *history.History) error {
					h.Clear()
					return nil
				})
			},
		},
	)
	return cmd
}

func loadHistory(load settingsLoader) (*config.Settings, *history.History, error) {
	s, err := load()
	if err != nil {
		return nil, nil, err
	}
	h, err := s.NewHistory()
	if err != nil {
		return nil, nil, err
	}
	return s, h, nil
}

// saveSettings writes s to path, creating its directory when needed.
func saveSettings(path string, s *config.Settings) error {
	var buf bytes.Buffer
	if err := config.Write(&buf, s); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
