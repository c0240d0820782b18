package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Hub keeps one Page and Presenter per browser session
type Hub struct {
	toolkit Toolkit
	opts    []Option
	now     func() time.Time
	log     logrus.FieldLogger

	mu       sync.Mutex
	sessions map[string]*Presenter
}

// NewHub creates a hub whose presenters share toolkit and opts
func NewHub(toolkit Toolkit, log logrus.FieldLogger, opts ...Option) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		toolkit:  toolkit,
		opts:     opts,
		now:      time.Now,
		log:      log.WithField("component", "hub"),
		sessions: make(map[string]*Presenter),
	}
}

// Presenter returns the presenter for sessionID, creating its page on first use
func (h *Hub) Presenter(sessionID string) *Presenter {
	h.mu.Lock()
	p, ok := h.sessions[sessionID]
	if !ok {
		p = NewPresenter(NewPage(), h.toolkit, h.opts...)
		h.sessions[sessionID] = p
	}
	h.mu.Unlock()

	if page, ok := p.Document().(*Page); ok {
		page.touch(h.now())
	}
	return p
}

// Len returns the number of tracked sessions
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Sweep drops sessions idle for longer than maxIdle that have nothing on screen.
// It returns the number of sessions dropped.
func (h *Hub) Sweep(maxIdle time.Duration) int {
	cutoff := h.now().Add(-maxIdle)

	h.mu.Lock()
	defer h.mu.Unlock()
	dropped := 0
	for id, p := range h.sessions {
		page, ok := p.Document().(*Page)
		if !ok || page.idleSince().After(cutoff) || len(p.Banners()) > 0 {
			continue
		}
		delete(h.sessions, id)
		dropped++
	}
	return dropped
}

// Run sweeps every interval until ctx is done
func (h *Hub) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := h.Sweep(maxIdle); n > 0 {
				h.log.WithField("sessions", n).Debug("dropped idle sessions")
			}
		}
	}
}
