package service

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/iliyamo/hotel-back-office/internal/queue"
)

// EventPublisher publishes settlement events to the message broker.
// A connection is dialed per publish: settlements are rare enough
// that holding a channel open buys nothing, and a fresh dial makes
// the publisher immune to broker restarts.  Errors are logged and
// returned so the caller can ignore them; a lost event never fails
// the settlement that produced it.
type EventPublisher struct {
    URL string // amqp:// broker address
}

func NewEventPublisher(url string) *EventPublisher {
    if url == "" {
        return nil
    }
    return &EventPublisher{URL: url}
}

// BookingSettled publishes the event to the durable "booking.settled"
// queue, marked persistent so it survives broker restarts.
func (p *EventPublisher) BookingSettled(ctx context.Context, event q.BookingSettledEvent) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Idempotent declare; durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(q.SettledQueueName, true, false, false, false, nil); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", q.SettledQueueName, false, false, pub); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}
