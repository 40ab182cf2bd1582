package amqp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/expense-bot/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rabbitmq/amqp091-go"
)

type fakeAcknowledger struct {
	acked    int
	nacked   int
	requeued int
}

func (a *fakeAcknowledger) Ack(uint64, bool) error {
	a.acked++
	return nil
}

func (a *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked++
	if requeue {
		a.requeued++
	}
	return nil
}

func (a *fakeAcknowledger) Reject(uint64, bool) error { return nil }

type fakeSource struct {
	deliveries chan amqp091.Delivery
}

func (s *fakeSource) Consume(string, string, bool, bool, bool, bool, amqp091.Table) (<-chan amqp091.Delivery, error) {
	return s.deliveries, nil
}

var _ = Describe("Consumer", func() {
	var (
		ack      *fakeAcknowledger
		source   *fakeSource
		consumer *Consumer
	)

	deliver := func(body []byte) {
		source.deliveries <- amqp091.Delivery{Acknowledger: ack, Body: body}
	}

	BeforeEach(func() {
		ack = &fakeAcknowledger{}
		source = &fakeSource{deliveries: make(chan amqp091.Delivery, 4)}
		consumer = &Consumer{source: source, queue: "expense-events", logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	})

	It("should decode, hand over and ack messages", func() {
		body, err := NewEventMessage(events.NewExpenseRecordedEvent(1, 2, "Pan", "Comida", 100, time.Now())).ToJSON()
		Expect(err).NotTo(HaveOccurred())
		deliver(body)
		close(source.deliveries)

		var got []*EventMessage
		err = consumer.Consume(context.Background(), func(_ context.Context, m *EventMessage) error {
			got = append(got, m)
			return nil
		})

		Expect(err).To(MatchError("message channel closed"))
		Expect(got).To(HaveLen(1))
		Expect(got[0].Type).To(Equal(events.EventTypeExpenseRecorded))
		Expect(ack.acked).To(Equal(1))
	})

	It("should drop undecodable messages and requeue handler failures", func() {
		deliver([]byte("not json"))
		body, _ := NewEventMessage(events.NewCategoryCorrectedEvent(2, "hog", "Hogar", time.Now())).ToJSON()
		deliver(body)
		close(source.deliveries)

		_ = consumer.Consume(context.Background(), func(context.Context, *EventMessage) error {
			return errors.New("downstream unavailable")
		})

		Expect(ack.nacked).To(Equal(2))
		Expect(ack.requeued).To(Equal(1))
		Expect(ack.acked).To(BeZero())
	})

	It("should return when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Expect(consumer.Consume(ctx, func(context.Context, *EventMessage) error { return nil })).To(Succeed())
	})
})
