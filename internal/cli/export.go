package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/fenestra/internal/export"
	"github.com/piwi3910/fenestra/internal/model"
)

// Export formats and the suffix each appends to the output base.
var exportFormats = map[string]string{
	"pdf":    ".elevations.pdf",
	"labels": ".labels.pdf",
	"xlsx":   ".schedule.xlsx",
	"dxf":    ".plan.dxf",
}

// exportOrder fixes the order formats are written in.
var exportOrder = []string{"pdf", "labels", "xlsx", "dxf"}

// parseFormats splits a comma separated format list, rejecting unknown
// formats and dropping duplicates.
func parseFormats(s string) ([]string, error) {
	want := map[string]bool{}
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if _, ok := exportFormats[f]; !ok {
			return nil, fmt.Errorf("unknown format %q (want pdf, labels, xlsx or dxf)", f)
		}
		want[f] = true
	}
	if len(want) == 0 {
		return nil, fmt.Errorf("no export format given")
	}

	var formats []string
	for _, f := range exportOrder {
		if want[f] {
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		formats string
		output  string
		opts    engineOptions
	)

	cmd := &cobra.Command{
		Use:   "export <project.json>",
		Short: "Lay out a project and export drawings, labels and schedules",
		Long: `Lay out a project and export the result.

Formats:
  pdf     elevation of every wall segment seen from outside
  labels  QR-coded labels, one per opening
  xlsx    opening schedule and bill of quantities
  dxf     plan with wall axes and openings on separate layers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := parseFormats(formats)
			if err != nil {
				return err
			}
			return c.runExport(cmd.Context(), args[0], list, output, opts)
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", "pdf", "comma separated formats: pdf, labels, xlsx, dxf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: <input> without extension)")
	opts.register(cmd)

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, formats []string, output string, opts engineOptions) error {
	p, result, err := c.runProject(ctx, input, opts)
	if err != nil {
		return err
	}

	base := output
	if base == "" {
		base = outputBase(input)
	}
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	out := c.out()
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := base + exportFormats[format]
		if err := writeExport(format, path, p.Walls, result); err != nil {
			return fmt.Errorf("export %s: %w", format, err)
		}
		loggerFromContext(ctx).Debug("exported", "format", format, "path", path)
		out.success("Exported %s", format)
		out.file(path)
	}
	out.stats(len(p.Walls), "walls", result.OpeningCount(), "openings")
	return nil
}

func writeExport(format, path string, walls []model.Wall, result model.LayoutResult) error {
	switch format {
	case "pdf":
		return export.ExportElevationPDF(path, walls, result)
	case "labels":
		return export.ExportLabels(path, result)
	case "xlsx":
		return export.ExportScheduleXLSX(path, result)
	case "dxf":
		return export.ExportPlanDXF(path, walls, result)
	}
	return fmt.Errorf("unknown format %q", format)
}
