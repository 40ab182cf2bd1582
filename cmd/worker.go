package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/expense-bot/internal/amqp"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start background workers that consume what the server emits.`,
}

var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Consume forwarded expense events from AMQP",
	Long:  `Bind a durable queue to the expense exchange and log every expense event that arrives.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startEventWorker(cmd.Context())
	},
}

var (
	workerQueue      string
	workerBindingKey string
)

func startEventWorker(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	lg := initLogger(cfg)

	if !cfg.AMQP.Enabled() {
		return fmt.Errorf("amqp.url is not configured")
	}
	if err := cfg.AMQP.Validate(); err != nil {
		return fmt.Errorf("amqp config: %w", err)
	}

	consumer, err := amqp.NewConsumer(cfg.AMQP.URL, cfg.AMQP.Exchange, workerQueue, workerBindingKey, lg)
	if err != nil {
		return err
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("event worker is running. Press Ctrl+C to stop.", "queue", workerQueue, "binding_key", workerBindingKey)

	return consumer.Consume(ctx, func(ctx context.Context, msg *amqp.EventMessage) error {
		lg.Info("received expense event",
			"event_id", msg.ID,
			"event_type", msg.Type,
			"occurred_at", msg.OccurredAt,
			"data", msg.Data)
		return nil
	})
}

func init() {
	eventWorkerCmd.Flags().StringVar(&workerQueue, "queue", "expense-bot.events", "queue to declare and consume")
	eventWorkerCmd.Flags().StringVar(&workerBindingKey, "binding-key", amqp.DefaultBindingKey, "routing key pattern bound to the exchange")

	workerCmd.AddCommand(eventWorkerCmd)
	rootCmd.AddCommand(workerCmd)
}
