package utils

import (
	"context"
	"log"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/evently-hq/event-management-backend/config"
)

var kafkaWriter *kafka.Writer

var kafkaBrokers []string
var announceTopic string

// InitializeKafka sets up the shared writer for the announcement dispatch topic
func InitializeKafka(cfg *config.Config) {
	kafkaBrokers = strings.Split(cfg.KafkaBrokers, ",")
	announceTopic = cfg.KafkaAnnounceTopic

	kafkaWriter = &kafka.Writer{
		Addr:     kafka.TCP(kafkaBrokers...),
		Topic:    announceTopic,
		Balancer: &kafka.LeastBytes{},
	}

	log.Printf("✅ Kafka writer ready (topic=%s)", announceTopic)
}

// PublishAnnouncement enqueues one dispatch job, keyed by event so all
// announcements for an event land on the same partition in order
func PublishAnnouncement(ctx context.Context, eventKey string, payload []byte) error {
	return kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventKey),
		Value: payload,
	})
}

// NewAnnouncementReader builds a consumer for the dispatch worker
func NewAnnouncementReader() *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: kafkaBrokers,
		Topic:   announceTopic,
		GroupID: "announcement-dispatcher",
	})
}
