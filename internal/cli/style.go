package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/piwi3910/fenestra/internal/project"
)

// styleCommand creates the style command.
func (c *CLI) styleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "style",
		Short: "Inspect styles",
	}
	cmd.AddCommand(c.styleShowCommand())
	return cmd
}

// styleShowCommand creates the "style show" subcommand.
func (c *CLI) styleShowCommand() *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the usages and asset families of a style",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStyleShow(cmd.Context(), style)
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "style file (default: config, then built-in)")
	return cmd
}

func (c *CLI) runStyleShow(ctx context.Context, path string) error {
	if path == "" {
		config, err := c.loadConfig()
		if err != nil {
			return err
		}
		path = config.StylePath
	}
	style, err := project.LoadStyle(path)
	if err != nil {
		return fmt.Errorf("load style: %w", err)
	}
	loggerFromContext(ctx).Debug("style loaded", "path", path)

	out := c.out()
	name := style.Name
	if name == "" {
		name = "(unnamed)"
	}
	out.title("Style " + name)

	out.title("Openings")
	for _, usage := range style.UsageNames() {
		def := style.Openings[usage]
		out.keyValue(usage, fmt.Sprintf("%s %s, cill %.2f m, %d variants", def.Type, def.Name, def.Cill, len(style.Assets[def.Name])))
	}

	families := make([]string, 0, len(style.Assets))
	for name := range style.Assets {
		families = append(families, name)
	}
	sort.Strings(families)

	out.title("Assets")
	for _, name := range families {
		out.keyValue(name, "")
		for i, v := range style.Assets[name] {
			out.detail("%d: %.2f x %.2f m, side %.2f, end %.2f, %s", i, v.Width, v.Height, v.Side, v.End, v.File)
		}
	}
	return nil
}
