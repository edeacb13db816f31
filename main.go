package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/andareed/siftly-covid/config"
	"github.com/andareed/siftly-covid/dataset"
	"github.com/andareed/siftly-covid/logging"
	"github.com/andareed/siftly-covid/server"
	"github.com/andareed/siftly-covid/source"
)

// Version is set with -ldflags "-X main.Version=..." at release time.
var Version = "dev"

var (
	// persistent flags
	configPath string
	sourceURL  string
	sourceFile string
	debugLog   string

	// export flags
	exportContinents []string
	exportCountries  []string
	exportDays       int
	exportWhere      string
	exportOut        string
	exportCSV        string

	// serve flags
	serveAddr string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sfcovid",
	Short: "Covid-19 infographics in the terminal",
	Long: `sfcovid downloads the Our World in Data COVID-19 dataset and shows it as an
interactive dashboard: filter by continent, country and date range, browse
charts and rows, export the filtered table and the charts.

Examples:
  sfcovid
  sfcovid --file owid-covid-data.csv
  sfcovid --config sfcovid.yaml --debug debug.log`,
	Version:      Version,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runTUI,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the chart PNGs (and optionally the filtered CSV) without the UI",
	Long: `Apply the same filters as the dashboard and write one PNG per chart panel
to the output directory as <panel-id>.png.

Examples:
  sfcovid export --continent Asia --country Japan --days 365 --out charts
  sfcovid export --days 31 --csv last-month.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Serve an HTML dashboard, the filtered CSV and one PNG per chart panel.

Routes:
  GET /                    dashboard page
  GET /health              liveness
  GET /api/options         continents, countries and date ranges
  GET /api/data.csv        filtered CSV
  GET /charts/{panel}.png  chart image

All data routes take continent, country (both repeatable), days and where.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "Version:", Version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.StringVar(&sourceURL, "source", "", "dataset URL (default "+source.DefaultURL+")")
	pf.StringVar(&sourceFile, "file", "", "read the dataset from a local CSV instead of downloading it")
	pf.StringVar(&debugLog, "debug", "", "write debug logs to file")

	ef := exportCmd.Flags()
	ef.StringSliceVar(&exportContinents, "continent", nil, "continent to include, repeatable (default All)")
	ef.StringSliceVar(&exportCountries, "country", nil, "country to include, repeatable (default All)")
	ef.IntVar(&exportDays, "days", int(dataset.DefaultRange), "date range in days: 1825, 365, 183, 91, 31, 16 or 8")
	ef.StringVar(&exportWhere, "where", "", "row expression, e.g. 'new_cases > 1000'")
	ef.StringVar(&exportOut, "out", "", "directory for the PNGs (default export.dir from config)")
	ef.StringVar(&exportCSV, "csv", "", "also write the filtered CSV to this file")

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr from config, :8080)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings reads the config file and applies the source flags over it.
func loadSettings() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if sourceURL != "" {
		cfg.Source.URL = sourceURL
		cfg.Source.File = ""
	}
	if sourceFile != "" {
		cfg.Source.File = sourceFile
	}
	return cfg, nil
}

func newCache(cfg config.Config) *source.Cache {
	return source.NewCache(source.Loader{
		URL:     cfg.Source.URL,
		File:    cfg.Source.File,
		Timeout: cfg.Source.Timeout.Std(),
	})
}

// setupHeadlessLogging sends logs to the debug file when given, stderr
// otherwise.
func setupHeadlessLogging() (func(), error) {
	if debugLog != "" {
		return logging.SetupLogging(debugLog)
	}
	logging.SetupStderr(false)
	return func() {}, nil
}

func runTUI(_ *cobra.Command, _ []string) error {
	cleanup, err := logging.SetupLogging(debugLog)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer cleanup()

	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	q, err := cfg.Query()
	if err != nil {
		return err
	}
	logging.Infof("siftly-covid %s: started", Version)

	m := newModel(newCache(cfg), q, cfg.Export)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logging.Errorf("tea program error: %v", err)
		return err
	}
	return nil
}

// exportQuery overlays the export flags that were set on the config query.
func exportQuery(cmd *cobra.Command, base dataset.Query) (dataset.Query, error) {
	q := base
	flags := cmd.Flags()
	if flags.Changed("continent") {
		q.Continents = dataset.ParseSelection(exportContinents)
	}
	if flags.Changed("country") {
		q.Countries = dataset.ParseSelection(exportCountries)
	}
	if flags.Changed("days") {
		r, err := dataset.ParseRange(exportDays)
		if err != nil {
			return q, err
		}
		q.Range = r
	}
	if exportWhere != "" {
		w, err := dataset.CompileWhere(exportWhere)
		if err != nil {
			return q, fmt.Errorf("--where: %w", err)
		}
		q.Where = w
	}
	return q, nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	cleanup, err := setupHeadlessLogging()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer cleanup()

	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	base, err := cfg.Query()
	if err != nil {
		return err
	}
	q, err := exportQuery(cmd, base)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ds, err := newCache(cfg).Get(ctx)
	if err != nil {
		return err
	}
	filtered := dataset.Apply(ds, q, time.Now())

	out := exportOut
	if out == "" {
		out = cfg.Export.Dir
	}
	n, err := writeChartPNGs(out, filtered, cfg.Export.Width, cfg.Export.Height)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d charts to %s (%d rows, %s)\n", n, out, filtered.Len(), q.Range.Label())

	if exportCSV != "" {
		if err := writeFilteredCSV(exportCSV, filtered); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", exportCSV)
	}
	return nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cleanup, err := setupHeadlessLogging()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer cleanup()

	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	q, err := cfg.Query()
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := server.NewAPIServer(newCache(cfg), server.Options{
		Addr:         addr,
		ImageWidth:   cfg.Export.Width,
		ImageHeight:  cfg.Export.Height,
		DefaultRange: q.Range,
	})
	return api.Run(ctx)
}
