package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

type notification struct {
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaNotifier publishes notifications for a downstream mail worker.
type KafkaNotifier struct {
	writer messageWriter
}

func NewKafkaNotifier(brokersCSV, topic string) *KafkaNotifier {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return &KafkaNotifier{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

func (k *KafkaNotifier) Send(ctx context.Context, to, subject, body string) error {
	msg, err := newMessage(to, subject, body, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (k *KafkaNotifier) Close() error {
	if w, ok := k.writer.(*kafka.Writer); ok {
		return w.Close()
	}
	return nil
}

func newMessage(to, subject, body string, at time.Time) (kafka.Message, error) {
	data, err := json.Marshal(notification{To: to, Subject: subject, Body: body, SentAt: at})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal notification: %w", err)
	}
	return kafka.Message{
		Key:   []byte(to),
		Value: data,
		Time:  at,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order_notification")},
		},
	}, nil
}
