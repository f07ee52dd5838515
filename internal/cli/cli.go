package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/fenestra/internal/engine"
	"github.com/piwi3910/fenestra/internal/model"
	"github.com/piwi3910/fenestra/internal/project"
)

const appName = "fenestra"

// recentLimit is the number of recent projects kept in the config.
const recentLimit = 10

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	Out        io.Writer
	ConfigPath string
	Verbose    bool
}

// New creates a CLI whose logs go to w and whose results are printed to
// stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		Out:        os.Stdout,
		ConfigPath: project.DefaultConfigPath(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

func (c *CLI) out() printer {
	return printer{w: c.Out}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Fenestra lays out windows and doors along walls",
		Long: `Fenestra decides how many windows and doors each wall segment gets,
which catalog variant each one uses and where it sits, from the usage of
the spaces behind the wall and the catalogs of an architectural style.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := c.loadConfig()
			if err != nil {
				return err
			}
			level := parseLevel(config.LogLevel)
			if c.Verbose {
				level = log.DebugLevel
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&c.Verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", c.ConfigPath, "application config file")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.styleCommand())
	root.AddCommand(c.configCommand())

	return root
}

func (c *CLI) loadConfig() (model.AppConfig, error) {
	config, err := project.LoadAppConfig(c.ConfigPath)
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("load config %s: %w", c.ConfigPath, err)
	}
	return config, nil
}

// engineOptions are the flags shared by every command that runs a layout.
type engineOptions struct {
	style     string
	stylesDir string
	workers   int
}

func (o *engineOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.style, "style", "", "style file (default: project, then config, then built-in)")
	cmd.Flags().StringVar(&o.stylesDir, "styles-dir", "", "directory of named styles for walls that select one")
	cmd.Flags().IntVar(&o.workers, "workers", 0, "walls laid out concurrently (default: config)")
}

// resolveStylePath picks the first non-empty style path: flag, project, config.
func resolveStylePath(flag string, p model.Project, config model.AppConfig) string {
	for _, path := range []string{flag, p.StylePath, config.StylePath} {
		if path != "" {
			return path
		}
	}
	return ""
}

// newEngine builds an engine for p from the config and the command flags.
func (c *CLI) newEngine(ctx context.Context, p model.Project, opts engineOptions) (*engine.Engine, error) {
	logger := loggerFromContext(ctx)

	config, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	settings := model.DefaultSettings()
	config.ApplyToSettings(&settings)
	if opts.workers > 0 {
		settings.Workers = opts.workers
	}

	stylePath := resolveStylePath(opts.style, p, config)
	style, err := project.LoadStyle(stylePath)
	if err != nil {
		return nil, fmt.Errorf("load style: %w", err)
	}
	if stylePath == "" {
		logger.Debug("using built-in style")
	} else {
		logger.Debug("style loaded", "path", stylePath, "name", style.Name)
	}

	e := engine.New(settings, style)
	e.Logger = logger
	if opts.stylesDir != "" {
		styles, err := project.LoadStyles(opts.stylesDir)
		if err != nil {
			return nil, fmt.Errorf("load styles: %w", err)
		}
		e.Styles = styles
		logger.Debug("named styles loaded", "dir", opts.stylesDir, "count", len(styles))
	}
	return e, nil
}

// runProject loads a project and lays it out.
func (c *CLI) runProject(ctx context.Context, input string, opts engineOptions) (model.Project, model.LayoutResult, error) {
	logger := loggerFromContext(ctx)

	p, err := project.LoadProject(input)
	if err != nil {
		return model.Project{}, model.LayoutResult{}, fmt.Errorf("load project: %w", err)
	}
	e, err := c.newEngine(ctx, p, opts)
	if err != nil {
		return model.Project{}, model.LayoutResult{}, err
	}

	prog := newProgress(logger)
	result, err := e.LayoutProject(ctx, p)
	if err != nil {
		return model.Project{}, model.LayoutResult{}, fmt.Errorf("layout %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Laid out %d walls", len(result.Walls)))

	c.rememberProject(ctx, input)
	return p, result, nil
}

// rememberProject records input in the recent projects of the config.
// Failures are logged, not returned.
func (c *CLI) rememberProject(ctx context.Context, input string) {
	logger := loggerFromContext(ctx)
	config, err := c.loadConfig()
	if err != nil {
		logger.Warn("recent projects not updated", "err", err)
		return
	}
	if abs, err := filepath.Abs(input); err == nil {
		input = abs
	}
	config.AddRecentProject(input, recentLimit)
	if err := project.SaveAppConfig(c.ConfigPath, config); err != nil {
		logger.Warn("recent projects not updated", "err", err)
	}
}

// outputBase returns the path of input without its extension.
func outputBase(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input))
}
