package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"starfolk-client/internal/navigation"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

// ErrInvalidID is returned for a character id that is not a positive integer.
var ErrInvalidID = zerr.New("character id must be a positive integer")

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *CLI) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Search characters by name and print them as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := c.newService().SearchItems(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), found)
		},
	}
}

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one character as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return zerr.With(zerr.Wrap(ErrInvalidID, "parsing id"), "id", args[0])
			}
			character, err := c.newService().GetItemByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), character)
		},
	}
}

func (c *CLI) newFeaturedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "Print the featured characters as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			featured, err := c.newService().Featured(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), featured)
		},
	}
}

func (c *CLI) newRouteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route <path>",
		Short: "Print the view a path resolves to",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			r := navigation.ParsePath(args[0])
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", r, r.Path())
		},
	}
}
