// Package queue contains the background consumer that listens to the
// booking.settled queue and appends an audit line per settlement to
// logs/settlement.log.
package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "strconv"
    "strings"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// SettledQueueName is the durable queue settlement events travel on.
const SettledQueueName = "booking.settled"

// StartSettlementConsumer connects to the broker at url, declares the
// booking.settled queue (durable), and consumes it forever.  Each
// event becomes one line in logs/settlement.log.  The function runs a
// reconnect loop with capped exponential backoff and never returns in
// normal operation; processing errors are logged and the offending
// message rejected without requeue so a poison message cannot wedge
// the consumer.
func StartSettlementConsumer(url string) error {
    if url == "" {
        return errors.New("empty broker url")
    }

    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("settlement-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn); err != nil {
            log.Printf("settlement-consumer: consume loop ended: %v; reconnecting", err)
            time.Sleep(2 * time.Second)
        }
    }
}

func consumeLoop(conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("settlement-consumer: set QoS failed: %v", err)
    }

    if _, err := ch.QueueDeclare(SettledQueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(SettledQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body); err != nil {
            log.Printf("settlement-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
    var ev BookingSettledEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    fpath := filepath.Join("logs", "settlement.log")
    f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    rooms := make([]string, len(ev.RoomTypeIDs))
    for i, id := range ev.RoomTypeIDs {
        rooms[i] = strconv.FormatUint(id, 10)
    }

    line := fmt.Sprintf("[%s] Booking settled | booking_id=%d | invoice=%s | guest=\"%s\" | stay=%s..%s | final=%d cents | paid=%d cents | balance=%d cents | rooms=[%s] | by=%d\n",
        ev.SettledAt, ev.BookingID, ev.InvoiceNumber, ev.GuestName, ev.CheckIn, ev.CheckOut,
        ev.FinalAmountCents, ev.TotalPaidCents, ev.BalanceCents, strings.Join(rooms, ","), ev.SettledBy)

    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
