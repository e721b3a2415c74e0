package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/modelwerk/gltfkit/pkg/buildinfo"
	"github.com/modelwerk/gltfkit/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "gltfkit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the on-disk
// configuration, falling back to defaults when no config file exists.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: LoadConfigOrDefault(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "gltfkit inspects, optimizes, and converts glTF 2.0 assets",
		Long:         `gltfkit is a CLI for working with glTF 2.0 assets: inspect their contents, browse the scene graph, merge and optimize documents, validate integrity, and export reference-graph visualizations.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.vizCommand())
	root.AddCommand(c.mergeCommand())
	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newReportCache builds the validation report cache: an in-process LRU tier
// over the persistent file tier. --no-cache (or the config equivalent)
// degrades to the null backend.
func (c *CLI) newReportCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.NoCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir(c.Config)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	file, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	mem, err := cache.NewMemoryCache(64)
	if err != nil {
		return file, nil
	}
	return cache.NewTieredCache(mem, file), nil
}

// cacheDir returns the cache directory, preferring the configured path,
// then the XDG standard (~/.cache/gltfkit/).
func cacheDir(cfg Config) (string, error) {
	if cfg.CacheDir != "" {
		return cfg.CacheDir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
