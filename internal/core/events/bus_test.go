package events_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/frahmantamala/expense-bot/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	})

	It("should deliver published events to every subscriber", func() {
		var mu sync.Mutex
		var received []string

		for _, name := range []string{"log", "amqp"} {
			name := name
			bus.Subscribe(events.EventTypeExpenseRecorded, func(ctx context.Context, event events.Event) error {
				mu.Lock()
				defer mu.Unlock()
				received = append(received, name+":"+event.EventType())
				return nil
			})
		}

		event := events.NewExpenseRecordedEvent(1, 42, "Milk", "Comida", 2500, time.Now())
		Expect(bus.Publish(context.Background(), event)).To(Succeed())
		bus.Wait()

		Expect(received).To(ConsistOf("log:expense.recorded", "amqp:expense.recorded"))
	})

	It("should keep handlers running after the publisher's context is cancelled", func() {
		done := make(chan error, 1)
		bus.Subscribe(events.EventTypeCategoryCorrected, func(ctx context.Context, event events.Event) error {
			done <- ctx.Err()
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		Expect(bus.Publish(ctx, events.NewCategoryCorrectedEvent(42, "tra", "Transporte", time.Now()))).To(Succeed())
		cancel()
		bus.Wait()

		Eventually(done).Should(Receive(BeNil()))
	})

	It("should ignore events nobody subscribed to", func() {
		Expect(bus.Publish(context.Background(), events.BaseEvent{ID: "1", Type: "nobody.cares"})).To(Succeed())
		Expect(bus.PublishSync(context.Background(), events.BaseEvent{ID: "1", Type: "nobody.cares"})).To(Succeed())
	})

	It("should stop synchronous publishing at the first failing handler", func() {
		calls := 0
		bus.Subscribe("sync.test", func(ctx context.Context, event events.Event) error {
			calls++
			return errors.New("boom")
		})
		bus.Subscribe("sync.test", func(ctx context.Context, event events.Event) error {
			calls++
			return nil
		})

		err := bus.PublishSync(context.Background(), events.BaseEvent{ID: "1", Type: "sync.test"})
		Expect(err).To(MatchError(ContainSubstring("boom")))
		Expect(calls).To(Equal(1))
	})

	It("should expose expense fields on the recorded event", func() {
		ts := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
		event := events.NewExpenseRecordedEvent(7, 42, "Milk", "Comida", 2500, ts)

		Expect(event.EventID()).NotTo(BeEmpty())
		Expect(event.OccurredAt()).To(Equal(ts))
		Expect(event.Payload()).To(HaveKeyWithValue("category", "Comida"))
		Expect(event.Payload()).To(HaveKeyWithValue("amount", 2500.0))
	})
})

var _ = Describe("LogHandler", func() {
	It("should log the event type and id", func() {
		var buf bytes.Buffer
		bus := events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
		bus.SubscribeAll(events.ExpenseEventTypes, events.LogHandler(slog.New(slog.NewTextHandler(&buf, nil))))

		event := events.NewCategoryCorrectedEvent(1, "hog", "Hogar", time.Now())
		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("event_type=" + events.EventTypeCategoryCorrected))
		Expect(buf.String()).To(ContainSubstring("event_id=" + event.EventID()))
	})
})
