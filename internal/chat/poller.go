// Package chat refreshes the selected conversation on a fixed interval.
// Selecting a new partner always cancels the previous poll before the next
// one starts, so polls never accumulate across selection changes.
package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/deltapharm/pharmacy-client-golang/internal/models"
)

// DefaultInterval matches the refresh cadence of the chat screen.
const DefaultInterval = 5 * time.Second

// FetchFunc loads the conversation with a partner; the chat service's
// Conversation method in practice.
type FetchFunc func(ctx context.Context, partnerID int64) ([]models.ChatMessage, error)

// MessagesFunc receives each successful refresh.
type MessagesFunc func(partnerID int64, messages []models.ChatMessage)

type Poller struct {
	fetch      FetchFunc
	onMessages MessagesFunc
	interval   time.Duration
	log        *slog.Logger

	mu       sync.Mutex
	selected int64
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewPoller(fetch FetchFunc, onMessages MessagesFunc, interval time.Duration, log *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		fetch:      fetch,
		onMessages: onMessages,
		interval:   interval,
		log:        log,
	}
}

// Select makes partnerID the polled conversation. Any poll for a previous
// partner is cancelled first. Selecting the current partner restarts its
// poll, which forces an immediate refresh.
func (p *Poller) Select(partnerID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p.selected = partnerID
	p.cancel = cancel
	p.done = done

	go p.loop(ctx, partnerID, done)
}

// Deselect stops polling without picking a new partner.
func (p *Poller) Deselect() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.selected = 0
}

// Stop is teardown; identical to Deselect, named for the screen lifecycle.
func (p *Poller) Stop() {
	p.Deselect()
}

// Selected returns the currently polled partner id, 0 when none.
func (p *Poller) Selected() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// stopLocked cancels the running loop and waits for it to exit, so two
// loops can never overlap.
func (p *Poller) stopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
}

func (p *Poller) loop(ctx context.Context, partnerID int64, done chan struct{}) {
	defer close(done)

	// First refresh right away; the ticker covers the rest.
	p.refresh(ctx, partnerID)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx, partnerID)
		}
	}
}

// refresh is a silent poll: failures are logged and the next tick tries
// again, the user is never interrupted.
func (p *Poller) refresh(ctx context.Context, partnerID int64) {
	messages, err := p.fetch(ctx, partnerID)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Debug("conversation refresh failed", "partner", partnerID, "err", err)
		}
		return
	}
	p.onMessages(partnerID, messages)
}
