// Package events publishes mutation notifications to Kafka.
package events

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"example.com/exercisetracker/internal/domain"
)

const (
	userEventsTopic     = "user_events"
	exerciseEventsTopic = "exercise_events"
)

// UserCreated is emitted after a successful registration.
type UserCreated struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// ExerciseAdded is emitted after an entry is appended to a user's log.
type ExerciseAdded struct {
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	DurationMin int       `json:"duration_min"`
	Date        string    `json:"date"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// KafkaPublisher lazily manages writers per topic. Publishing is best-effort:
// broker failures are logged and never surfaced to the request path.
type KafkaPublisher struct {
	brokers []string
	timeout time.Duration
	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

// NewKafkaPublisher creates a KafkaPublisher.
func NewKafkaPublisher(brokers []string, timeout time.Duration) *KafkaPublisher {
	return &KafkaPublisher{
		brokers: brokers,
		timeout: timeout,
		writers: make(map[string]*kafka.Writer),
	}
}

// UserCreated implements domain.EventPublisher.
func (p *KafkaPublisher) UserCreated(ctx context.Context, user domain.User) {
	p.publish(ctx, userEventsTopic, user.ID, UserCreated{
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

// ExerciseAdded implements domain.EventPublisher.
func (p *KafkaPublisher) ExerciseAdded(ctx context.Context, userID string, entry domain.Entry) {
	p.publish(ctx, exerciseEventsTopic, userID, ExerciseAdded{
		UserID:      userID,
		Description: entry.Description,
		DurationMin: entry.Duration,
		Date:        entry.Date,
		OccurredAt:  time.Now().UTC(),
	})
}

func (p *KafkaPublisher) publish(ctx context.Context, topic, key string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("events: marshal %s: %v", topic, err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	writer := p.writerForTopic(topic)
	if err := writer.WriteMessages(writeCtx, kafka.Message{Key: []byte(key), Value: body}); err != nil {
		log.Printf("events: publish %s: %v", topic, err)
	}
}

func (p *KafkaPublisher) writerForTopic(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, ok := p.writers[topic]; ok {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		Async:        false,
	}
	p.writers[topic] = writer
	return writer
}

// Close releases all writers.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}
