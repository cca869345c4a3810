package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/sirupsen/logrus"
)

// dialTimeout bounds the TCP connect plus AMQP handshake of one publish
// when the caller's context has no earlier deadline.
const dialTimeout = 3 * time.Second

// Publisher announces view invalidations on a durable fanout exchange.
// It implements service.ViewInvalidator.  Each publish dials its own
// connection; mutations are rare enough that a long-lived channel is not
// worth the reconnect logic.
type Publisher struct {
    url      string
    exchange string
    origin   string
    log      logrus.FieldLogger
}

func NewPublisher(url, exchange, origin string, log logrus.FieldLogger) *Publisher {
    return &Publisher{url: url, exchange: exchange, origin: origin, log: log}
}

// InvalidateView publishes a ViewInvalidatedEvent for path.  Errors are
// logged and returned; callers treat them as non-fatal.
func (p *Publisher) InvalidateView(ctx context.Context, path string) error {
    ev := ViewInvalidatedEvent{
        Path:          path,
        Origin:        p.origin,
        InvalidatedAt: time.Now().UTC().Format(time.RFC3339),
    }
    if err := p.publish(ctx, ev); err != nil {
        p.log.WithFields(logrus.Fields{"view": path, "error": err}).Warn("rabbitmq: publish invalidation failed")
        return err
    }
    return nil
}

func (p *Publisher) publish(ctx context.Context, ev ViewInvalidatedEvent) error {
    d, err := dialBudget(ctx)
    if err != nil {
        return fmt.Errorf("dial: %w", err)
    }
    conn, err := amqp.DialConfig(p.url, amqp.Config{
        Heartbeat: 10 * time.Second,
        Locale:    "en_US",
        Dial:      amqp.DefaultDial(d),
    })
    if err != nil {
        return fmt.Errorf("dial: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := declareExchange(ch, p.exchange); err != nil {
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }

    pub := amqp.Publishing{
        ContentType: "application/json",
        Timestamp:   time.Now().UTC(),
        Body:        body,
    }
    // Fanout exchanges ignore the routing key.
    if err := ch.PublishWithContext(ctx, p.exchange, "", false, false, pub); err != nil {
        return fmt.Errorf("publish: %w", err)
    }
    return nil
}

// dialBudget is the time left for dialing: the context's remaining time,
// capped at dialTimeout.
func dialBudget(ctx context.Context) (time.Duration, error) {
    if err := ctx.Err(); err != nil {
        return 0, err
    }
    d := dialTimeout
    if deadline, ok := ctx.Deadline(); ok {
        if left := time.Until(deadline); left < d {
            d = left
        }
    }
    if d <= 0 {
        return 0, context.DeadlineExceeded
    }
    return d, nil
}

// declareExchange makes sure the fanout exchange exists (idempotent).
func declareExchange(ch *amqp.Channel, name string) error {
    if err := ch.ExchangeDeclare(
        name,     // name
        "fanout", // kind
        true,     // durable
        false,    // autoDelete
        false,    // internal
        false,    // noWait
        nil,      // args
    ); err != nil {
        return fmt.Errorf("exchange declare: %w", err)
    }
    return nil
}
