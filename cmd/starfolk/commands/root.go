// Package commands implements the starfolk command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"starfolk-client/internal/app"
	"starfolk-client/internal/cache"
	"starfolk-client/internal/catalog"
	"starfolk-client/internal/config"
	"starfolk-client/internal/fetch"
	"starfolk-client/internal/logger"

	"github.com/spf13/cobra"
)

// Build information. Populated at build-time via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// CLI represents the starfolk command line.
type CLI struct {
	rootCmd *cobra.Command

	configPath string
	apiBase    string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

// New creates the command tree.
func New() *CLI {
	c := &CLI{}

	rootCmd := &cobra.Command{
		Use:           "starfolk",
		Short:         "Browse the StarFolk character catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd.ErrOrStderr())
		},
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		Commit,
		Date,
	))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to a YAML config file (default $"+config.EnvConfigPath+")")
	flags.StringVar(&c.apiBase, "api-base", "", "base URL of the catalog service (overrides config)")
	flags.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(
		c.newSearchCmd(),
		c.newShowCmd(),
		c.newFeaturedCmd(),
		c.newRouteCmd(),
		c.newBrowseCmd(),
		c.newGatewayCmd(),
		c.newStubCmd(),
		c.newVersionCmd(),
	)
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) load(stderr io.Writer) error {
	path := c.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if c.apiBase != "" {
		cfg.API.BaseURL = c.apiBase
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = logger.New(stderr, cfg.Log.Level, cfg.Log.Format)
	return nil
}

// newService builds the catalog facade over one shared request cache.
func (c *CLI) newService() *catalog.Service {
	cfg := c.cfg
	client := fetch.NewClient(cfg.API.BaseURL, fetch.WithLogger(c.logger))
	requests := cache.NewRequestCache(cache.RequestOptions{DedupeInFlight: cfg.Cache.DedupeInFlight})
	return catalog.NewService(client, requests, catalog.Options{
		Resource:        cfg.API.Resource,
		SearchTTL:       cfg.Cache.SearchTTL,
		ItemTTL:         cfg.Cache.ItemTTL,
		SearchTimeout:   cfg.Timeouts.Search,
		ItemTimeout:     cfg.Timeouts.Item,
		FeaturedTimeout: cfg.Timeouts.Featured,
		FeaturedNames:   cfg.Featured.Names,
		FeaturedCount:   cfg.Featured.Count,
	}, c.logger)
}

func (c *CLI) appOptions(initialPath string) app.Options {
	return app.Options{
		InitialPath:    initialPath,
		MinQueryLength: c.cfg.Input.MinQueryLength,
		Debounce:       c.cfg.Input.Debounce,
		Logger:         c.logger,
	}
}
