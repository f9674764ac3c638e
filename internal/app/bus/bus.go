package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"logviewer/internal/config"
	"logviewer/internal/config/logger"
)

// MessageType represents the type of message
type MessageType string

// Event types
const (
	EventRequestStarted  MessageType = "request_started"
	EventRequestFinished MessageType = "request_finished"
	EventPhaseChanged    MessageType = "phase_changed"
	EventAlertRaised     MessageType = "alert_raised"
	EventConfigReloaded  MessageType = "config_reloaded"
	EventWatchStarted    MessageType = "watch_started"
	EventWatchStopped    MessageType = "watch_stopped"
)

// Endpoint names used in request events
const (
	EndpointUserIDs = "user_ids"
	EndpointLogs    = "logs"
)

// Message represents a bus message
type Message struct {
	Type      MessageType
	Timestamp time.Time
	Data      interface{}
	Critical  bool
}

// RequestStarted indicates a request to the log API was sent
type RequestStarted struct {
	Endpoint string
	UserID   string
}

// RequestFinished indicates a request to the log API completed or failed
type RequestFinished struct {
	Endpoint string
	UserID   string
	Status   int
	Count    int
	Duration time.Duration
	Error    error
}

// PhaseChanged indicates a session phase transition
type PhaseChanged struct {
	From string
	To   string
}

// AlertRaised carries the notification shown to the user
type AlertRaised struct {
	Text string
}

// ConfigReloaded carries the configuration read after a file change
type ConfigReloaded struct {
	Path   string
	Config *config.Config
	Error  error
}

// Payload contains a simple name identifier for events
type Payload struct {
	Name string
}

// Bus handles pub/sub messaging
type Bus interface {
	Subscribe(ctx context.Context) <-chan Message
	Publish(msg Message)
	Close()
}

// bus implements the Bus interface with pub/sub messaging
type bus struct {
	buffer      int
	subscribers []chan Message
	mu          sync.RWMutex
	closed      bool
	log         logger.Logger
}

// New creates a new Bus
func New(buffer int, log logger.Logger) Bus {
	if buffer < 1 {
		buffer = config.BusBuffer
	}

	return &bus{
		buffer:      buffer,
		subscribers: make([]chan Message, 0),
		log:         log,
	}
}

// Subscribe creates a new subscription channel
func (b *bus) Subscribe(ctx context.Context) <-chan Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Message, b.buffer)
	if b.closed {
		close(ch)
		return ch
	}

	b.subscribers = append(b.subscribers, ch)

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()

	return ch
}

// Publish sends a message to all subscribers
func (b *bus) Publish(msg Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	msg.Timestamp = time.Now()

	if b.log != nil {
		b.log.Debug().Msgf("%s %s", msg.Type, formatData(msg.Data))
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			if msg.Critical {
				go func(c chan Message, m Message) {
					defer func() { recover() }()

					c <- m
				}(ch, msg)
			}
		}
	}
}

// Close closes all subscriber channels
func (b *bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true

	for _, ch := range b.subscribers {
		close(ch)
	}

	b.subscribers = nil
}

func (b *bus) unsubscribe(ch chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)

			close(ch)

			break
		}
	}
}

func formatData(data interface{}) string {
	switch d := data.(type) {
	case RequestStarted:
		return fmt.Sprintf("{endpoint: %s, user: %s}", d.Endpoint, d.UserID)
	case RequestFinished:
		if d.Error != nil {
			return fmt.Sprintf("{endpoint: %s, status: %d, duration: %s, error: %v}", d.Endpoint, d.Status, d.Duration, d.Error)
		}

		return fmt.Sprintf("{endpoint: %s, status: %d, count: %d, duration: %s}", d.Endpoint, d.Status, d.Count, d.Duration)
	case PhaseChanged:
		return fmt.Sprintf("{from: %s, to: %s}", d.From, d.To)
	case AlertRaised:
		return fmt.Sprintf("{text: %s}", d.Text)
	case ConfigReloaded:
		return fmt.Sprintf("{path: %s, error: %v}", d.Path, d.Error)
	case Payload:
		return fmt.Sprintf("{name: %s}", d.Name)
	default:
		return fmt.Sprintf("%+v", data)
	}
}

// NoOp returns a no-op bus for when messaging is disabled
func NoOp() Bus {
	return &noOpBus{}
}

// noOpBus implements Bus interface with no-op methods for testing
type noOpBus struct{}

func (n *noOpBus) Subscribe(ctx context.Context) <-chan Message {
	ch := make(chan Message)

	go func() {
		<-ctx.Done()
		close(ch)
	}()

	return ch
}

func (n *noOpBus) Publish(msg Message) {}
func (n *noOpBus) Close()              {}
