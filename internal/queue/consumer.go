package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/sirupsen/logrus"
)

// ViewApplier drops a cached view.  cache.ViewStore satisfies it.
type ViewApplier interface {
    InvalidateView(ctx context.Context, path string) error
}

// StartViewConsumer binds an exclusive, auto-deleted queue to the fanout
// exchange and applies every received invalidation through views.  Events
// published by this instance (same origin) are acknowledged and skipped
// since the local store was already cleared by the mutation.  It
// reconnects with exponential backoff and returns only when ctx is done.
func StartViewConsumer(ctx context.Context, url, exchange, origin string, views ViewApplier, log logrus.FieldLogger) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.WithField("error", err).Warnf("view-consumer: failed to dial broker; retrying in %s", backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = consumeLoop(ctx, conn, exchange, origin, views, log)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.WithField("error", err).Warn("view-consumer: consume loop ended; reconnecting")
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, exchange, origin string, views ViewApplier, log logrus.FieldLogger) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.WithField("error", err).Warn("view-consumer: set QoS failed")
    }
    if err := declareExchange(ch, exchange); err != nil {
        return err
    }

    q, err := ch.QueueDeclare("", false, true, true, false, nil)
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    if err := ch.QueueBind(q.Name, "", exchange, false, nil); err != nil {
        return fmt.Errorf("queue bind: %w", err)
    }

    msgs, err := ch.Consume(q.Name, "", false, true, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, open := <-msgs:
            if !open {
                return errors.New("deliveries channel closed")
            }
            if err := handleMessage(ctx, d.Body, origin, views); err != nil {
                log.WithField("error", err).Warn("view-consumer: handle message failed")
                _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
                continue
            }
            _ = d.Ack(false)
        }
    }
}

func handleMessage(ctx context.Context, body []byte, origin string, views ViewApplier) error {
    var ev ViewInvalidatedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := ev.Validate(); err != nil {
        return err
    }
    if origin != "" && ev.Origin == origin {
        return nil
    }
    if err := views.InvalidateView(ctx, ev.Path); err != nil {
        return fmt.Errorf("apply %s: %w", ev.Path, err)
    }
    return nil
}

// sleep waits for d or until ctx is done; it reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
