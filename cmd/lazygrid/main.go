package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rebeliceyang/lazygrid/internal/app"
	"github.com/rebeliceyang/lazygrid/internal/config"
	"github.com/rebeliceyang/lazygrid/internal/export"
	"github.com/rebeliceyang/lazygrid/internal/grid"
	"github.com/rebeliceyang/lazygrid/internal/logging"
	"github.com/rebeliceyang/lazygrid/internal/records"
	"github.com/rebeliceyang/lazygrid/internal/schema"
	"github.com/rebeliceyang/lazygrid/internal/viewstate"
)

var (
	// Global flags
	dataFile   string
	configFile string
	themeName  string
	logFile    string
	verbose    bool
	noMouse    bool

	// Export flags
	exportFormat string
	exportDir    string
	exportFilter string
	exportSort   []string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd starts the interactive grid
var rootCmd = &cobra.Command{
	Use:   "lazygrid",
	Short: "lazygrid - a terminal data grid for product records",
	Long: `lazygrid shows a JSON or YAML array of product records as an interactive grid.

Group, sort, hide columns and filter by category, creation date, price or a fuzzy
search across every visible column. Press s for the settings drawer and ? for help.

Run without --data to explore the bundled sample dataset.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Log.File)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runApp,
}

// exportCmd writes a view to a file without starting the UI
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to CSV or JSON",
	Long: `Export applies an optional fuzzy filter and sort to the records and writes the
visible columns with display formatting, like the x key does inside the grid.

Examples:
  lazygrid export --format json
  lazygrid --data products.yaml export --filter kitchen --sort price:desc --sort name`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataFile, "data", "d", "", "JSON or YAML file with an array of records (default: sample data)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: search user config dir, . and ./config)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme: default, catppuccin-mocha")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noMouse, "no-mouse", false, "Disable mouse support")

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format: csv or json (default: from config)")
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "Output directory (default: from config)")
	exportCmd.Flags().StringVar(&exportFilter, "filter", "", "Fuzzy filter across visible columns")
	exportCmd.Flags().StringArrayVar(&exportSort, "sort", nil, "Sort column, optionally suffixed with :desc (repeatable)")

	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		c.Data.Source = dataFile
	}
	if flags.Changed("theme") {
		c.UI.Theme = themeName
	}
	if flags.Changed("log-file") {
		c.Log.File = logFile
	}
	if noMouse {
		c.UI.MouseEnabled = false
	}
	return c, c.Validate()
}

func runApp(cmd *cobra.Command, args []string) error {
	data, loadErr := records.Load(cfg.Data.Source)
	if loadErr != nil {
		logger.Error("failed to load records", zap.String("source", cfg.Data.Source), zap.Error(loadErr))
	}

	zone.NewGlobal()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(app.New(cfg, data, loadErr, logger), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	data, err := records.Load(cfg.Data.Source)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	format := cfg.Export.Format
	if exportFormat != "" {
		format = exportFormat
	}
	dir := cfg.Export.Dir
	if exportDir != "" {
		dir = exportDir
	}

	s := schema.New(schema.Options{
		DateFormat:     cfg.Data.DateFormat,
		CurrencySymbol: cfg.Data.CurrencySymbol,
	})
	ctrl := viewstate.NewController(s, logger)
	if err := applyExportFlags(ctrl, exportFilter, exportSort); err != nil {
		return err
	}

	view := grid.Build(data, s, ctrl.State(), nil)
	path, err := export.Export(view, format, dir)
	if err != nil {
		return err
	}

	logger.Info("exported records", zap.String("path", path), zap.Int("rows", view.Matched()))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d of %d records to %s\n", view.Matched(), view.Total, path)
	return nil
}

// applyExportFlags drives the controller the same way the grid keys do
func applyExportFlags(ctrl *viewstate.Controller, filterText string, sorts []string) error {
	ctrl.SetGlobalFilter(filterText)

	for _, spec := range sorts {
		key, dir, _ := strings.Cut(spec, ":")
		if _, ok := ctrl.Schema().Column(key); !ok {
			return fmt.Errorf("unknown sort column %q", key)
		}
		if ctrl.State().Sort.Index(key) >= 0 {
			return fmt.Errorf("duplicate sort column %q", key)
		}

		switch strings.ToLower(dir) {
		case "", "asc":
			ctrl.CycleSort(key)
		case "desc":
			ctrl.CycleSort(key)
			ctrl.CycleSort(key)
		default:
			return fmt.Errorf("sort direction must be asc or desc, got %q", dir)
		}
	}
	return nil
}
