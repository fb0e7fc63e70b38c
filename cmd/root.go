// Package cmd contains the longview command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/longview/internal/app"
	"github.com/zjrosen/longview/internal/config"
	"github.com/zjrosen/longview/internal/infrastructure/sqlite"
	"github.com/zjrosen/longview/internal/log"
	"github.com/zjrosen/longview/internal/paths"
	"github.com/zjrosen/longview/internal/tracing"
	"github.com/zjrosen/longview/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "longview",
	Short:   "A terminal viewer for very large record collections",
	Long:    `A terminal viewer for very large record collections. Only the visible rows are rendered, so collections with hundreds of thousands of records scroll smoothly.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/longview/config.yaml)")
	rootCmd.Flags().StringP("db", "d", "",
		"path to the records database file")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable automatic reload when the database changes")
	rootCmd.Flags().Bool("debug", false,
		"enable the debug log overlay (Ctrl+G)")

	_ = viper.BindPFlag("db_path", rootCmd.Flags().Lookup("db"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_scrollbar", defaults.UI.ShowScrollbar)
	viper.SetDefault("virt.default_item_height", defaults.Virt.DefaultItemHeight)
	viper.SetDefault("virt.buffer_size", defaults.Virt.BufferSize)
	viper.SetDefault("virt.mode", defaults.Virt.Mode)
	viper.SetDefault("virt.block_size", defaults.Virt.BlockSize)
	viper.SetDefault("virt.chunk_size", defaults.Virt.ChunkSize)
	viper.SetDefault("virt.measure_debounce_ms", defaults.Virt.MeasureDebounceMS)
	viper.SetDefault("virt.smooth_scroll", defaults.Virt.SmoothScroll)
	viper.SetDefault("cache.ttl_seconds", defaults.Cache.TTLSeconds)
	viper.SetDefault("cache.cleanup_seconds", defaults.Cache.CleanupSeconds)
	viper.SetDefault("theme.preset", defaults.Theme.Preset)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .longview/config.yaml (current directory)
		// 2. ~/.config/longview/config.yaml (user config)
		if _, err := os.Stat(".longview/config.yaml"); err == nil {
			viper.SetConfigFile(".longview/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "longview"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a commented default.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := defaultConfigPath()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// defaultConfigPath is where a fresh config file is written when none exists.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".longview/config.yaml"
	}
	return filepath.Join(home, ".config", "longview", "config.yaml")
}

func runApp(cmd *cobra.Command, args []string) error {
	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.UI.Debug = true
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Colors: cfg.Theme.Colors,
	}); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	dbPath := paths.ResolveDBPath(cfg.DBPath, config.DefaultDBPath())

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	logCleanup, err := log.Init(filepath.Join(filepath.Dir(dbPath), "longview.log"))
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logCleanup()

	tracerProvider, err := tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
		ServiceName:  "longview",
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Warn(log.CatConfig, "Tracer shutdown failed", "error", err)
		}
	}()

	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w\nRun 'longview seed' to create one with sample records", err)
	}
	defer func() { _ = db.Close() }()

	model := app.New(app.Options{
		Repo:   db.RecordRepository(),
		Config: cfg,
		DBPath: db.Path(),
		Tracer: tracerProvider.Tracer(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
