package cmd

import (
	"fmt"
	"os"

	"github.com/frahmantamala/expense-bot/internal/expense"
	expensePostgres "github.com/frahmantamala/expense-bot/internal/expense/postgres"
	"github.com/frahmantamala/expense-bot/internal/report"
	"github.com/spf13/cobra"
)

var reportPDF string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the expense summary",
	Long:  `Build the same multi-window summary the bot sends for "Reporte" and print it as tables, or write it to a PDF with --pdf.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		lg := initLogger(cfg)

		if err := cfg.Database.Validate(); err != nil {
			return fmt.Errorf("database config: %w", err)
		}
		loc, err := cfg.Ledger.Location()
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		service := expense.NewService(expensePostgres.NewExpenseRepository(db), catalog, nil, lg, expense.WithLocation(loc))
		r, err := service.Report(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load expenses: %w", err)
		}

		if reportPDF == "" {
			return report.RenderTerminal(cmd.OutOrStdout(), r, catalog.Names())
		}

		f, err := os.Create(reportPDF)
		if err != nil {
			return fmt.Errorf("create %s: %w", reportPDF, err)
		}
		defer f.Close()

		if err := report.WritePDF(f, r, catalog.Names()); err != nil {
			return err
		}
		lg.Info("report written", "file", reportPDF)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportPDF, "pdf", "", "write the report to this PDF file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}
