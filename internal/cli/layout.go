package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/fenestra/internal/project"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		opts   engineOptions
	)

	cmd := &cobra.Command{
		Use:   "layout <project.json>",
		Short: "Lay out the openings of a project",
		Long: `Lay out the openings of a project.

Every segment of every wall gets its openings proposed from the usage of
the space behind it, sized against the catalogs of the style and spread
along the segment. The result is written as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	opts.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, opts engineOptions) error {
	p, result, err := c.runProject(ctx, input, opts)
	if err != nil {
		return err
	}

	if output == "" {
		output = outputBase(input) + ".layout.json"
	}
	if err := project.SaveResult(output, result); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	out := c.out()
	out.success("Layout complete")
	out.file(output)
	out.stats(len(p.Walls), "walls", result.OpeningCount(), "openings")
	return nil
}
