package cmd

import (
	"fmt"
	"time"

	"github.com/frahmantamala/expense-bot/internal"
	"github.com/frahmantamala/expense-bot/internal/amqp"
	"github.com/frahmantamala/expense-bot/internal/category"
	"github.com/frahmantamala/expense-bot/internal/core/events"
	"github.com/frahmantamala/expense-bot/internal/expense"
	"github.com/frahmantamala/expense-bot/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish expense events by hand to check subscribers and the AMQP forwarder`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long: `Publish a test event to the event bus. For expense.recorded, --text is parsed like a chat message;
for expense.category_corrected it is the category hint.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: events.ExpenseEventTypes,
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishTestEvent(cmd, args[0])
	},
}

var (
	eventText   string
	eventChatID int64
)

func publishTestEvent(cmd *cobra.Command, eventType string) error {
	lg := logger.LoggerWrapper()
	catalog := category.MustCatalog(category.DefaultNames)

	cfg, err := loadConfig(configDir)
	if err == nil {
		lg = initLogger(cfg)
		if catalog, err = loadCatalog(cfg); err != nil {
			return err
		}
	}

	event, err := buildTestEvent(eventType, eventText, eventChatID, catalog, time.Now())
	if err != nil {
		return err
	}

	bus := events.NewEventBus(lg)
	bus.SubscribeAll(events.ExpenseEventTypes, events.LogHandler(lg))

	if cfg != nil && cfg.AMQP.Enabled() {
		publisher, err := amqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, lg)
		if err != nil {
			return fmt.Errorf("failed to connect to AMQP: %w", err)
		}
		defer publisher.Close()
		publisher.Subscribe(bus)
	}

	lg.Info("publishing test event", "event_type", eventType, "event_id", event.EventID())
	if err := bus.PublishSync(cmd.Context(), event); err != nil {
		return err
	}

	lg.Info("test event published successfully")
	return nil
}

func buildTestEvent(eventType, text string, chatID int64, catalog category.Catalog, at time.Time) (events.Event, error) {
	switch eventType {
	case events.EventTypeExpenseRecorded:
		parsed, err := expense.Parse(text, catalog)
		if err != nil {
			return nil, err
		}
		return events.NewExpenseRecordedEvent(0, chatID, parsed.Description, parsed.Category, parsed.Amount, at), nil
	case events.EventTypeCategoryCorrected:
		return events.NewCategoryCorrectedEvent(chatID, text, catalog.Resolve(text), at), nil
	default:
		return nil, internal.NewValidationFieldError("event-type",
			fmt.Sprintf("unknown event type %q", eventType), internal.ErrCodeValidationFailed)
	}
}

func init() {
	publishEventCmd.Flags().StringVar(&eventText, "text", "Pan Comida 1500", "message text or category hint")
	publishEventCmd.Flags().Int64Var(&eventChatID, "chat-id", 0, "chat id stamped on the event")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
