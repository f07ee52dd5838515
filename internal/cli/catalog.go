package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/fenestra/internal/importer"
	"github.com/piwi3910/fenestra/internal/model"
	"github.com/piwi3910/fenestra/internal/project"
)

// catalogCommand creates the catalog management command.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the opening catalogs of a style",
	}
	cmd.AddCommand(c.catalogImportCommand())
	return cmd
}

// catalogImportCommand creates the "catalog import" subcommand.
func (c *CLI) catalogImportCommand() *cobra.Command {
	var (
		style    string
		output   string
		openings []string
	)

	cmd := &cobra.Command{
		Use:   "import <catalog.csv|catalog.xlsx>",
		Short: "Merge a CSV or Excel catalog into a style",
		Long: `Merge a CSV or Excel catalog into a style.

Rows hold asset, file, width, height, side and end. Imported asset families
replace families of the same name; row order is kept as catalog order.
Use --opening usage=asset:type:cill to point a usage at an asset family.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCatalogImport(cmd.Context(), args[0], style, output, openings)
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "style to merge into (default: built-in)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output style file (default: --style, or <input>.toml)")
	cmd.Flags().StringArrayVar(&openings, "opening", nil, "usage definition usage=asset:type:cill (repeatable)")

	return cmd
}

// parseOpeningDef parses "usage=asset:type:cill".
func parseOpeningDef(s string) (string, model.OpeningDef, error) {
	usage, def, ok := strings.Cut(s, "=")
	usage = strings.TrimSpace(usage)
	if !ok || usage == "" {
		return "", model.OpeningDef{}, fmt.Errorf("opening %q: want usage=asset:type:cill", s)
	}
	parts := strings.Split(def, ":")
	if len(parts) != 3 {
		return "", model.OpeningDef{}, fmt.Errorf("opening %q: want usage=asset:type:cill", s)
	}
	cill, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return "", model.OpeningDef{}, fmt.Errorf("opening %q: invalid cill: %w", s, err)
	}
	return usage, model.OpeningDef{
		Name: strings.TrimSpace(parts[0]),
		Type: model.OpeningType(strings.ToLower(strings.TrimSpace(parts[1]))),
		Cill: cill,
	}, nil
}

func importCatalog(path string) importer.ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return importer.ImportCatalogExcel(path)
	default:
		return importer.ImportCatalogCSV(path)
	}
}

func (c *CLI) runCatalogImport(ctx context.Context, input, stylePath, output string, openings []string) error {
	logger := loggerFromContext(ctx)
	out := c.out()

	base, err := project.LoadStyle(stylePath)
	if err != nil {
		return fmt.Errorf("load style: %w", err)
	}

	result := importCatalog(input)
	for _, w := range result.Warnings {
		logger.Debug(w)
	}
	for _, e := range result.Errors {
		out.error("%s", e)
	}
	if result.EntryCount() == 0 {
		return fmt.Errorf("import %s: %w", input, model.ErrEmptyCatalog)
	}
	if len(result.Errors) > 0 {
		out.warning("%d rows skipped", len(result.Errors))
	}

	style := importer.MergeIntoStyle(base, result)
	for _, o := range openings {
		usage, def, err := parseOpeningDef(o)
		if err != nil {
			return err
		}
		style.Openings[usage] = def
	}
	if err := style.Validate(); err != nil {
		return err
	}

	if output == "" {
		output = stylePath
	}
	if output == "" {
		output = outputBase(input) + ".toml"
	}
	if err := project.SaveStyle(output, style); err != nil {
		return fmt.Errorf("write style %s: %w", output, err)
	}

	out.success("Catalog imported")
	out.file(output)
	out.stats(len(result.Order), "families", result.EntryCount(), "variants")
	return nil
}
