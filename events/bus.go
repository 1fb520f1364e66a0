package events

import (
	"sync"
)

type Event any

type Publisher interface {
	Publish(Event)
}

type Subscriber interface {
	Subscribe(chan Event)
	Unsubscribe(chan Event)
}

var _ Publisher = (*Bus)(nil)
var _ Subscriber = (*Bus)(nil)

type nullPublisher struct{}

func (_ nullPublisher) Publish(Event) {}

var NullPublisher Publisher = nullPublisher{}

// Bus fans events out to subscribers. Publishing never blocks, a subscriber
// with a full channel misses the event.
type Bus struct {
	channels     []chan Event
	channelsLock *sync.RWMutex
}

func NewBus() *Bus {
	return &Bus{
		channelsLock: &sync.RWMutex{},
	}
}

func (b *Bus) Subscribe(ch chan Event) {
	b.channelsLock.Lock()
	defer b.channelsLock.Unlock()

	b.channels = append(b.channels, ch)
}

func (b *Bus) Unsubscribe(ch chan Event) {
	b.channelsLock.Lock()
	defer b.channelsLock.Unlock()

	for i, c := range b.channels {
		if c == ch {
			b.channels = append(b.channels[:i], b.channels[i+1:]...)
			return
		}
	}
}

func (b *Bus) Publish(e Event) {
	b.channelsLock.RLock()
	defer b.channelsLock.RUnlock()

	for _, ch := range b.channels {
		select {
		case ch <- e:
		default:
		}
	}
}

// Recorder is a Publisher which retains every event, in order.
type Recorder struct {
	lock   sync.Mutex
	events []Event
}

var _ Publisher = (*Recorder)(nil)

func (r *Recorder) Publish(e Event) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.events = append(r.events, e)
}

func (r *Recorder) Events() []Event {
	r.lock.Lock()
	defer r.lock.Unlock()

	return append([]Event(nil), r.events...)
}

// Multi publishes each event to every wrapped publisher in turn.
func Multi(publishers ...Publisher) Publisher {
	return multiPublisher(publishers)
}

type multiPublisher []Publisher

func (m multiPublisher) Publish(e Event) {
	for _, p := range m {
		p.Publish(e)
	}
}
