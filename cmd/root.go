// Package cmd wires the comspect command line: flag and config handling,
// the scan pipeline, and result rendering.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"comspect/internal/app"
	"comspect/internal/comscan"
	"comspect/internal/config"
	"comspect/internal/export"
	"comspect/internal/log"
	"comspect/internal/presentation"
	"comspect/internal/privilege"
	"comspect/internal/tracing"
	"comspect/internal/winreg"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config

	scan32      bool
	scan64      bool
	filterStr   string
	filterDesc  string
	filterCLSID string
	filterApps  []string
	limit       int
	verbose     bool
	jsonOut     bool
	plain       bool
	noBanner    bool
	noInput     bool
	exportPath  string
	exportFmt   string
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "comspect",
	Short: "Discover and analyze COM object registrations",
	Long: `comspect walks the CLSID subtree of the Windows classes hive in the
32-bit and 64-bit registry views, merges both views into one deduplicated
catalog, and grades each COM object's programmatic usability.

Examples:
  # Scan both views, compact listing
  comspect

  # Only the 64-bit view, detailed listing
  comspect --scan-64bit -v

  # Case-insensitive filter over ProgID, description, and CLSID
  comspect -f excel

  # First 20 office-related objects as JSON
  comspect --filter-app word,excel,outlook -l 20 --json

  # Export a snapshot
  comspect --export scan.db --format sqlite`,
	Version:       version,
	RunE:          runApp,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// SetVersion updates the version string shown by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/comspect/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write a debug log (also COMSPECT_DEBUG=1)")

	rootCmd.Flags().BoolVar(&scan32, "scan-32bit", false, "scan the 32-bit registry view")
	rootCmd.Flags().BoolVar(&scan64, "scan-64bit", false, "scan the 64-bit registry view")
	rootCmd.Flags().StringVarP(&filterStr, "filter", "f", "",
		"filter by ProgID, description, or CLSID substring (case-insensitive)")
	rootCmd.Flags().StringVar(&filterDesc, "filter-description", "",
		"filter by description substring only")
	rootCmd.Flags().StringVar(&filterCLSID, "filter-clsid", "",
		"filter by CLSID substring only")
	rootCmd.Flags().StringSliceVar(&filterApps, "filter-app", nil,
		"filter by application keywords (comma-separated)")
	rootCmd.Flags().IntVarP(&limit, "limit", "l", 0, "limit the number of results (0 = no limit)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed information for each COM object")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	rootCmd.Flags().BoolVar(&plain, "plain", false, "disable colors and glyphs")
	rootCmd.Flags().BoolVar(&noBanner, "no-banner", false, "suppress the startup banner")
	rootCmd.Flags().BoolVar(&noInput, "no-input", false, "never prompt interactively")
	rootCmd.Flags().StringVar(&exportPath, "export", "", "export results to this file")
	rootCmd.Flags().StringVar(&exportFmt, "format", "txt", "export format: txt, csv, or sqlite")

	_ = viper.BindPFlag("ui.plain", rootCmd.Flags().Lookup("plain"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("views", defaults.Views)
	viper.SetDefault("cache_ttl_seconds", defaults.CacheTTLSeconds)
	viper.SetDefault("ui.banner", defaults.UI.Banner)
	viper.SetDefault("ui.plain", defaults.UI.Plain)
	viper.SetDefault("ui.theme.highlight", defaults.UI.Theme.Highlight)
	viper.SetDefault("ui.theme.subtle", defaults.UI.Theme.Subtle)
	viper.SetDefault("ui.theme.error", defaults.UI.Theme.Error)
	viper.SetDefault("ui.theme.success", defaults.UI.Theme.Success)
	viper.SetDefault("ui.theme.warning", defaults.UI.Theme.Warning)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .comspect/config.yaml (current directory)
		// 2. ~/.config/comspect/config.yaml (user config)
		if _, err := os.Stat(".comspect/config.yaml"); err == nil {
			viper.SetConfigFile(".comspect/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "comspect"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "comspect", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file).
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if debug || os.Getenv("COMSPECT_DEBUG") != "" {
		cleanup, err := log.Init(debugLogPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open debug log: %v\n", err)
		} else {
			defer cleanup()
		}
	}

	views, err := selectViews()
	if err != nil {
		return err
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "trace shutdown failed", err)
		}
	}()

	stdoutTTY := isatty.IsTerminal(os.Stdout.Fd())
	usePlain := plain || cfg.UI.Plain || !stdoutTTY
	styles := presentation.NewStyles(cfg.UI.Theme)
	report := presentation.NewReport(os.Stdout, styles, usePlain)

	if !jsonOut {
		if cfg.UI.Banner && !noBanner && stdoutTTY {
			report.Banner()
		}
		report.ElevationNotice(privilege.Elevated())
	}

	pipeline := app.New(winreg.New(), provider.Tracer(), cfg.CacheTTL())

	filter := comscan.FilterOptions{
		Query:       filterStr,
		Description: filterDesc,
		CLSID:       filterCLSID,
		Apps:        filterApps,
		Limit:       limit,
	}

	interactive := stdoutTTY && isatty.IsTerminal(os.Stdin.Fd()) &&
		!noInput && !jsonOut && !anyFilterFlagSet(cmd)
	if interactive {
		return runInteractive(cmd.Context(), pipeline, report, views, filter)
	}

	return runOnce(cmd.Context(), pipeline, report, views, filter)
}

// selectViews resolves the requested views: either view flag solo-selects
// it, both flags (or neither) select both, and with no flags at all the
// config file's list applies. 32-bit is always requested first so merge
// tie-breaks are stable.
func selectViews() ([]comscan.View, error) {
	if !scan32 && !scan64 {
		return cfg.ParseViews()
	}
	var views []comscan.View
	if scan32 || !scan64 {
		views = append(views, comscan.View32)
	}
	if scan64 || !scan32 {
		views = append(views, comscan.View64)
	}
	return views, nil
}

func anyFilterFlagSet(cmd *cobra.Command) bool {
	for _, name := range []string{"filter", "filter-description", "filter-clsid", "filter-app"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func runOnce(ctx context.Context, pipeline *app.Pipeline, report *presentation.Report,
	views []comscan.View, filter comscan.FilterOptions) error {

	result, err := pipeline.Run(ctx, app.Options{Views: views, Filter: filter})
	if err != nil {
		return err
	}

	if jsonOut {
		formatter := presentation.NewFormatter(os.Stdout)
		if err := formatter.FormatObjects(presentation.FromObjects(result.Objects)); err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
	} else {
		renderReport(report, result)
	}

	if exportPath != "" {
		if err := exportResult(result, views); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Exported results to %s\n", exportPath)
	}
	return nil
}

// runInteractive loops the filter prompt over cached scans until the user
// quits, so refining a filter does not rescan the registry.
func runInteractive(ctx context.Context, pipeline *app.Pipeline, report *presentation.Report,
	views []comscan.View, filter comscan.FilterOptions) error {

	label := "Filter COM objects (enter to search all, esc to quit):"
	for {
		res, err := presentation.PromptFilter(label, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		if res.Quit {
			return nil
		}
		filter.Query = res.Filter

		result, err := pipeline.Run(ctx, app.Options{Views: views, Filter: filter})
		if err != nil {
			return err
		}
		renderReport(report, result)

		if exportPath != "" {
			if err := exportResult(result, views); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Exported results to %s\n", exportPath)
		}

		label = "New filter (enter to search all, esc to quit):"
	}
}

func renderReport(report *presentation.Report, result *app.Result) {
	for _, stat := range result.Stats {
		report.ViewLine(stat.View.String(), stat.Entries, stat.KeysVisited, stat.KeysFailed, stat.Err)
	}
	fmt.Println()
	report.Summary(result.Objects, result.TotalUnique)
	if len(result.Objects) == 0 {
		return
	}
	if verbose {
		report.Detailed(result.Objects)
	} else {
		report.Compact(result.Objects)
	}
}

func exportResult(result *app.Result, views []comscan.View) error {
	snap := export.Snapshot{
		ScannedAt:   time.Now(),
		TotalUnique: result.TotalUnique,
		Objects:     result.Objects,
	}
	for _, v := range views {
		snap.Views = append(snap.Views, v.String())
	}
	for _, stat := range result.Stats {
		snap.KeysVisited += stat.KeysVisited
		snap.KeysFailed += stat.KeysFailed
	}
	if err := export.WriteFile(exportPath, exportFmt, snap); err != nil {
		return fmt.Errorf("export failed: %w\nHint: if running as Administrator, writing to the default folder (System32) is restricted; try an absolute path", err)
	}
	return nil
}

func debugLogPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		path := filepath.Join(dir, "comspect")
		if err := os.MkdirAll(path, 0755); err == nil {
			return filepath.Join(path, "debug.log")
		}
	}
	return "comspect-debug.log"
}
