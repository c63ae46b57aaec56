package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// CartCleaner is the slice of the cart store the reconcile consumer needs:
// the same idempotent bulk delete the settlement's second step uses.
type CartCleaner interface {
	DeleteByIDsForEmail(ctx context.Context, email string, ids []string) (int64, error)
}

// StartReconcileConsumer connects to RabbitMQ, declares the
// payment.reconcile queue (durable) and re-runs the cart deletion for each
// event.  Messages are acked only after the deletion succeeds; on failure
// the message is requeued, giving at-least-once retry until the cart store
// is consistent with the payment ledger again.  The function runs a
// reconnect loop and never returns under normal operation.
func StartReconcileConsumer(carts CartCleaner) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("reconcile-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeReconcile(conn, carts); err != nil {
			log.Printf("reconcile-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
		_ = conn.Close()
	}
}

func consumeReconcile(conn *amqp.Connection, carts CartCleaner) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		log.Printf("reconcile-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(ReconcileQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(ReconcileQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleReconcile(d.Body, carts); err != nil {
			log.Printf("reconcile-consumer: handle message failed: %v", err)
			// Requeue so the deletion is retried; it is idempotent.
			_ = d.Nack(false, true)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

// handleReconcile replays the deletion of the cart entries named by the
// payment record.  A count of zero is success: every id was already gone.
func handleReconcile(body []byte, carts CartCleaner) error {
	var ev PaymentReconcileEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal reconcile event: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := carts.DeleteByIDsForEmail(ctx, ev.Email, ev.CartItemIDs)
	if err != nil {
		return fmt.Errorf("replay cart deletion for payment %s: %w", ev.PaymentID, err)
	}
	log.Printf("reconcile-consumer: payment %s cleaned, %d stale cart entries removed", ev.PaymentID, n)
	return nil
}
