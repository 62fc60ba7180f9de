// Package wss maintains the process-wide push channel that delivers grading
// result updates. The channel is opened once for the life of the process and
// supervised: a failed dial or read is logged and retried with bounded
// exponential backoff. Consumers attach through Subscribe and detach with the
// returned unsubscribe function; events are dispatched to handlers in the
// order they arrive on the wire.
package wss

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/apperr"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/model"
)

// Handler receives one result update. Handlers run on the channel's read
// goroutine, so a slow handler delays later events but never reorders them.
type Handler func(model.ResultUpdateEvent)

const initialBackoff = time.Second

type Channel struct {
	url        string
	dialer     *websocket.Dialer
	backoffMax time.Duration

	mu       sync.Mutex
	handlers map[int]Handler
	nextID   int

	startOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewChannel(url string, backoffMax time.Duration) *Channel {
	if backoffMax < initialBackoff {
		backoffMax = initialBackoff
	}
	return &Channel{
		url:        url,
		dialer:     websocket.DefaultDialer,
		backoffMax: backoffMax,
		handlers:   make(map[int]Handler),
		done:       make(chan struct{}),
	}
}

// Start launches the supervising read loop. Calling Start more than once is
// a no-op.
func (c *Channel) Start() {
	c.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel
		go c.run(ctx)
	})
}

// Close tears the channel down and waits for the read loop to exit. Only
// tests and process shutdown call this; views detach via unsubscribe.
func (c *Channel) Close() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
}

// Subscribe registers a handler for incoming result updates and returns the
// function that removes it again.
func (c *Channel) Subscribe(h Handler) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.handlers[id] = h
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.handlers, id)
		c.mu.Unlock()
	}
}

func (c *Channel) dispatch(event model.ResultUpdateEvent) {
	c.mu.Lock()
	handlers := make([]Handler, 0, len(c.handlers))
	for _, h := range c.handlers {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

func (c *Channel) run(ctx context.Context) {
	defer close(c.done)

	backoff := initialBackoff
	for {
		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			cerr := &apperr.ChannelError{Err: err}
			log.Printf("[WS] dial %s failed: %v, retrying in %v", c.url, cerr, backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, c.backoffMax)
			continue
		}

		log.Printf("[WS] connected to %s", c.url)
		backoff = initialBackoff

		if err := c.readLoop(ctx, conn); err != nil {
			if ctx.Err() != nil {
				conn.Close()
				return
			}
			log.Printf("[WS] read error: %v, reconnecting", &apperr.ChannelError{Err: err})
		}
		conn.Close()
	}
}

func (c *Channel) readLoop(ctx context.Context, conn *websocket.Conn) error {
	// Unblock ReadMessage when the channel is closed.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var event model.ResultUpdateEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			log.Printf("[WS] invalid message format: %v", err)
			continue
		}
		if event.ID == "" {
			log.Printf("[WS] dropping event without id")
			continue
		}

		c.dispatch(event)
	}
}
