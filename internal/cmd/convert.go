package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wudi/colorkit/color"
)

func (a *app) newRGBCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rgb R G B",
		Short:   "Build a color record from RGB channels (0-255)",
		Example: "  colorkit rgb 0 128 255",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := parseChannels(args, "red", "green", "blue")
			if err != nil {
				return err
			}
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := e.FromRGB(ch[0], ch[1], ch[2])
			if err != nil {
				return err
			}
			return a.printRecord(cmd, rec)
		},
	}
}

func (a *app) newHexCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "hex HEX",
		Short:   "Build a color record from a hex color (#rrggbb or #rgb)",
		Example: "  colorkit hex '#0080ff'\n  colorkit hex fc0",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := e.FromHex(args[0])
			if err != nil {
				return err
			}
			return a.printRecord(cmd, rec)
		},
	}
}

func (a *app) newCMYKCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "cmyk C M Y K",
		Short:   "Build a color record from CMYK channels (0-100)",
		Example: "  colorkit cmyk 0 100 100 0",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := parseChannels(args, "cyan", "magenta", "yellow", "black")
			if err != nil {
				return err
			}
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := e.FromCMYK(ch[0], ch[1], ch[2], ch[3])
			if err != nil {
				return err
			}
			return a.printRecord(cmd, rec)
		},
	}
}

func (a *app) newNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "name NAME",
		Short:   "Build a color record from a CSS/SVG color keyword",
		Example: "  colorkit name navy\n  colorkit name light sea green",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := e.FromName(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return a.printRecord(cmd, rec)
		},
	}
}

func (a *app) printRecord(cmd *cobra.Command, rec color.Record) error {
	if a.v.GetBool("json") {
		return writeJSON(cmd, rec)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), rec)
	return err
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseChannels parses integer channel arguments. Range checks are left to
// the engine so they report every offending channel at once.
func parseChannels(args []string, names ...string) ([]int, error) {
	out := make([]int, len(args))
	for i, s := range args {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: must be an integer", names[i], s)
		}
		out[i] = n
	}
	return out, nil
}
