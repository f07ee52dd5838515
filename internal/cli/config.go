package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/fenestra/internal/project"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, back up and restore the application config",
	}
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configBackupCommand())
	cmd.AddCommand(c.configRestoreCommand())
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective application config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := c.loadConfig()
			if err != nil {
				return err
			}
			out := c.out()
			out.title("Config " + c.ConfigPath)
			out.keyValue("tolerance", fmt.Sprintf("%g m", config.DefaultTolerance))
			out.keyValue("sill step", fmt.Sprintf("%g m", config.DefaultSillStep))
			out.keyValue("max openings", fmt.Sprint(config.DefaultMaxOpenings))
			out.keyValue("max backoff", fmt.Sprint(config.DefaultMaxBackoff))
			out.keyValue("workers", fmt.Sprint(config.DefaultWorkers))
			style := config.StylePath
			if style == "" {
				style = "(built-in)"
			}
			out.keyValue("style", style)
			out.keyValue("log level", config.LogLevel)
			if len(config.RecentProjects) > 0 {
				out.keyValue("recent", strings.Join(config.RecentProjects, ", "))
			}
			return nil
		},
	}
}

func (c *CLI) configBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <backup.json>",
		Short: "Write the config and its style to a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConfigBackup(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runConfigBackup(ctx context.Context, path string) error {
	config, err := c.loadConfig()
	if err != nil {
		return err
	}
	style, err := project.LoadStyle(config.StylePath)
	if err != nil {
		return fmt.Errorf("load style: %w", err)
	}
	if err := project.ExportAllData(path, config, style); err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("backup written", "path", path, "style", style.Name)
	c.out().success("Backup written")
	c.out().file(path)
	return nil
}

func (c *CLI) configRestoreCommand() *cobra.Command {
	var styleOut string

	cmd := &cobra.Command{
		Use:   "restore <backup.json>",
		Short: "Restore the config and its style from a backup file",
		Long: `Restore the config and its style from a backup file.

The style of the backup is written to --style-out and the restored config
points at it. Without --style-out the config keeps the style path stored
in the backup.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConfigRestore(cmd.Context(), args[0], styleOut)
		},
	}
	cmd.Flags().StringVar(&styleOut, "style-out", "", "write the backed up style to this file")
	return cmd
}

func (c *CLI) runConfigRestore(ctx context.Context, path, styleOut string) error {
	backup, err := project.ImportAllData(path)
	if err != nil {
		return err
	}
	config := backup.Config
	out := c.out()

	if styleOut != "" {
		if err := project.SaveStyle(styleOut, backup.Style); err != nil {
			return fmt.Errorf("write style %s: %w", styleOut, err)
		}
		config.StylePath = styleOut
		out.file(styleOut)
	}
	if err := project.SaveAppConfig(c.ConfigPath, config); err != nil {
		return fmt.Errorf("write config %s: %w", c.ConfigPath, err)
	}
	loggerFromContext(ctx).Debug("config restored", "from", path, "created", backup.CreatedAt)
	out.success("Config restored")
	out.file(c.ConfigPath)
	return nil
}
