package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/termopark/finboard/pkg/config"
	"github.com/termopark/finboard/pkg/csv"
	"github.com/termopark/finboard/pkg/layout"
	"github.com/termopark/finboard/pkg/server"
	"github.com/termopark/finboard/pkg/service"
	"github.com/termopark/finboard/pkg/sheets"
	"github.com/termopark/finboard/pkg/workbook"
)

var (
	cliFilters filters
	cfgFile    string
)

var rootCmd = &cobra.Command{
	Use:   "finboard",
	Short: "Financial dashboard backend for the resort's ledgers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API from the Google Sheets ledgers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger(log.InfoLevel)

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		if err := cfg.ValidateServe(); err != nil {
			return err
		}

		lay, err := layout.Load(cfg.LayoutFile)
		if err != nil {
			return err
		}

		ctx := context.Background()
		client, err := sheets.NewClient(ctx, []byte(cfg.GoogleServiceAccountKey), logger)
		if err != nil {
			return err
		}

		var sources service.Sources
		if cfg.RevenueSheetID != "" {
			sources.Revenue = client.Spreadsheet(cfg.RevenueSheetID)
		}
		if cfg.ExpenseSheetID != "" {
			sources.Expense = client.Spreadsheet(cfg.ExpenseSheetID)
		}
		if cfg.BreakfastSheetID != "" {
			sources.Breakfast = client.Spreadsheet(cfg.BreakfastSheetID)
		}

		svc := service.New(logger, lay, sources, cfg.Mode())
		srv := server.New(cfg, logger, svc)
		addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
		logger.Info("starting server", "addr", addr, "mode", cfg.Mode())
		return srv.Start(addr)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate local workbook exports and print the report as CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		level := log.InfoLevel
		debug, _ := cmd.Flags().GetBool("debug")
		if debug {
			level = log.DebugLevel
		}
		logger := newLogger(level)

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		lay, err := layout.Load(cfg.LayoutFile)
		if err != nil {
			return err
		}

		revenuePath, _ := cmd.Flags().GetString("revenue")
		expensePath, _ := cmd.Flags().GetString("expenses")
		breakfastPath, _ := cmd.Flags().GetString("breakfast")
		if revenuePath == "" && expensePath == "" {
			return fmt.Errorf("at least one of --revenue or --expenses is required")
		}

		var sources service.Sources
		if sources.Revenue, err = openWorkbook(revenuePath); err != nil {
			return err
		}
		if sources.Expense, err = openWorkbook(expensePath); err != nil {
			return err
		}
		if sources.Breakfast, err = openWorkbook(breakfastPath); err != nil {
			return err
		}

		svc := service.New(logger, lay, sources, cfg.Mode())
		report, err := svc.BuildReport(context.Background(), service.Query{
			Unit:             cliFilters.unit,
			From:             cliFilters.startDate,
			To:               cliFilters.endDate,
			IncludeBreakfast: breakfastPath != "",
		})
		if err != nil {
			return err
		}

		if debug {
			pp.Println(report)
		}
		fmt.Print(string(csv.Create(report.Data, cliFilters.toFilterFunc())))
		return nil
	},
}

// openWorkbook tolerates an empty path so optional sources stay nil.
func openWorkbook(path string) (service.Source, error) {
	if path == "" {
		return nil, nil
	}
	return workbook.Open(path)
}

func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "finboard",
		Level:           level,
	})
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().String("layout", "", "Sheet layout override file")

	// Filter flags (global)
	rootCmd.PersistentFlags().StringVar(&cliFilters.startDate, "start", "", "Start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.endDate, "end", "", "End date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.unit, "unit", "", "Business unit (hotel|restaurant|spa|pool|bar)")
	rootCmd.PersistentFlags().Float64Var(&cliFilters.minProfit, "min-profit", 0, "Minimum profit")
	rootCmd.PersistentFlags().Float64Var(&cliFilters.maxProfit, "max-profit", 0, "Maximum profit")

	serveCmd.Flags().Int("port", 4000, "Server port")

	reportCmd.Flags().String("revenue", "", "Revenue workbook file (.xls or .xlsx)")
	reportCmd.Flags().String("expenses", "", "Expense workbook file (.xls or .xlsx)")
	reportCmd.Flags().String("breakfast", "", "Breakfast workbook file (.xls or .xlsx)")
	reportCmd.Flags().Bool("debug", false, "Dump the full report before the CSV")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
