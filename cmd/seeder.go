package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/frahmantamala/expense-bot/internal/core/common/validation"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var (
	clearData bool
	seedDays  int
	seedCount int
	seedValue int64
)

type sampleExpense struct {
	Timestamp   time.Time `db:"timestamp"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Amount      float64   `db:"amount"`
}

var sampleDescriptions = map[string][]string{
	"Comida":          {"Almuerzo", "Cafe", "Empanadas", "Sushi"},
	"Supermercado":    {"Lider", "Jumbo", "Unimarc"},
	"Transporte":      {"Metro", "Uber", "Micro"},
	"Combustible":     {"Bencina", "Copec"},
	"Compras":         {"Zapatillas", "Libro", "Polera"},
	"Salud":           {"Farmacia", "Consulta"},
	"Hogar":           {"Ampolleta", "Detergente"},
	"Servicios":       {"Luz", "Agua", "Internet"},
	"Entretenimiento": {"Cine", "Netflix"},
	"Educación":       {"Curso"},
	"Viajes":          {"Pasaje", "Hostal"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample expenses",
	Long:  `Seed the database with randomly generated expenses spread over recent days, for development and demos.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		lg := initLogger(cfg)

		if err := cfg.Database.Validate(); err != nil {
			return fmt.Errorf("database config: %w", err)
		}
		if err := validation.ValidateSeedOptions(seedDays, seedCount); err != nil {
			return fmt.Errorf("invalid seed options: %s", err.GetDetailedMessage())
		}
		loc, err := cfg.Ledger.Location()
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		db, err := sqlx.Connect("pgx", cfg.Database.Source)
		if err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		defer db.Close()

		if clearData {
			res, err := db.Exec("DELETE FROM expenses")
			if err != nil {
				return fmt.Errorf("failed to clear expenses: %w", err)
			}
			n, _ := res.RowsAffected()
			lg.Info("cleared existing expenses", "rows", n)
		}

		rows := generateSamples(catalog.Names(), time.Now().In(loc), seedDays, seedCount, rand.New(rand.NewSource(seedValue)))
		if len(rows) == 0 {
			lg.Info("nothing to seed")
			return nil
		}

		_, err = db.NamedExec(`INSERT INTO expenses ("timestamp", description, category, amount)
			VALUES (:timestamp, :description, :category, :amount)`, rows)
		if err != nil {
			return fmt.Errorf("failed to insert sample expenses: %w", err)
		}

		lg.Info("seeded sample expenses", "count", len(rows), "days", seedDays)
		return nil
	},
}

// generateSamples spreads count expenses uniformly over the days before now.
// Amounts are multiples of 500 below 50.000.
func generateSamples(categories []string, now time.Time, days, count int, rng *rand.Rand) []sampleExpense {
	if days <= 0 || count <= 0 || len(categories) == 0 {
		return nil
	}

	rows := make([]sampleExpense, 0, count)
	for i := 0; i < count; i++ {
		cat := categories[rng.Intn(len(categories))]
		desc := "Gasto"
		if options := sampleDescriptions[cat]; len(options) > 0 {
			desc = options[rng.Intn(len(options))]
		}

		offset := time.Duration(rng.Int63n(int64(days) * int64(24*time.Hour)))
		rows = append(rows, sampleExpense{
			Timestamp:   now.Add(-offset),
			Description: desc,
			Category:    cat,
			Amount:      float64(500 + rng.Intn(99)*500),
		})
	}
	return rows
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
	seedCmd.Flags().IntVar(&seedDays, "days", 60, "spread samples over this many past days")
	seedCmd.Flags().IntVar(&seedCount, "count", 120, "number of sample expenses")
	seedCmd.Flags().Int64Var(&seedValue, "seed", time.Now().UnixNano(), "random seed")
}
