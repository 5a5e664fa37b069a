package workers

import (
	"context"
	"log"
	"time"

	"github.com/codequest/streak-engine/internal/core/domain"
)

var _ domain.StreakEventPublisher = (*EventDispatcher)(nil)

const drainTimeout = 5 * time.Second

// EventDispatcher hands streak events to a slower publisher from a
// background goroutine. Publish never blocks; when the queue is full the
// event is dropped.
type EventDispatcher struct {
	next domain.StreakEventPublisher
	jobs chan domain.StreakEvent
	done chan struct{}
}

func NewEventDispatcher(next domain.StreakEventPublisher, queueSize int) *EventDispatcher {
	if queueSize <= 0 {
		queueSize = 100
	}

	return &EventDispatcher{
		next: next,
		jobs: make(chan domain.StreakEvent, queueSize),
		done: make(chan struct{}),
	}
}

// Start runs the delivery loop until ctx is cancelled, then flushes what is
// still queued.
func (d *EventDispatcher) Start(ctx context.Context) {
	go func() {
		defer close(d.done)

		log.Println("Event Dispatcher started in background...")
		for {
			select {
			case event := <-d.jobs:
				d.deliver(context.WithoutCancel(ctx), event)
			case <-ctx.Done():
				d.drain()
				log.Println("Event Dispatcher shutting down...")
				return
			}
		}
	}()
}

// Done is closed once the loop has exited and the queue was flushed.
func (d *EventDispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *EventDispatcher) Publish(ctx context.Context, event domain.StreakEvent) error {
	select {
	case <-d.done:
		log.Printf("[EVENTS] Dispatcher stopped! Dropping %s event for player %s", event.Outcome, event.PlayerID)
		return nil
	default:
	}

	select {
	case d.jobs <- event:
	default:
		log.Printf("[EVENTS] Dispatcher queue full! Dropping %s event for player %s", event.Outcome, event.PlayerID)
	}
	return nil
}

func (d *EventDispatcher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case event := <-d.jobs:
			d.deliver(ctx, event)
		default:
			return
		}
	}
}

func (d *EventDispatcher) deliver(ctx context.Context, event domain.StreakEvent) {
	if err := d.next.Publish(ctx, event); err != nil {
		log.Printf("[EVENTS] Failed to publish %s event for player %s: %v", event.Outcome, event.PlayerID, err)
	}
}
