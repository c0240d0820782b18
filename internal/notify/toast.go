// Package notify renders transient toast notifications and turns request
// failures into user-facing messages.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity selects the visual treatment of a banner
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// DefaultDelay is how long a banner stays visible before hiding itself
const DefaultDelay = 3000 * time.Millisecond

// ParseSeverity maps a label to a Severity. Empty means success and unknown
// labels are shown as info.
func ParseSeverity(s string) Severity {
	switch sev := Severity(s); sev {
	case "":
		return SeveritySuccess
	case SeveritySuccess, SeverityDanger, SeverityWarning, SeverityInfo:
		return sev
	default:
		return SeverityInfo
	}
}

// Banner is a single toast. It belongs to its container until hidden.
type Banner struct {
	ID       string
	Message  string
	Severity Severity
	ShownAt  time.Time

	mu        sync.Mutex
	hidden    bool
	listeners []func()
	stop      func() bool
}

// Class returns the CSS classes for the banner element
func (b *Banner) Class() string {
	return "toast align-items-center text-white bg-" + string(b.Severity) + " border-0"
}

// OnHidden registers a one-shot listener for the hidden event. Registering on
// an already hidden banner runs fn immediately.
func (b *Banner) OnHidden(fn func()) {
	b.mu.Lock()
	if b.hidden {
		b.mu.Unlock()
		fn()
		return
	}
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}

// Dismiss hides the banner now. Only the first call has any effect.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	if b.hidden {
		b.mu.Unlock()
		return
	}
	b.hidden = true
	stop := b.stop
	listeners := b.listeners
	b.listeners = nil
	b.mu.Unlock()

	if stop != nil {
		stop()
	}
	for _, fn := range listeners {
		fn()
	}
}

// Hidden reports whether the banner has been hidden
func (b *Banner) Hidden() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hidden
}

// SetStop installs the function that cancels a pending auto-hide
func (b *Banner) SetStop(stop func() bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stop = stop
}

// ToastOptions controls how a toolkit shows a banner
type ToastOptions struct {
	AutoHide bool
	Delay    time.Duration
}

// Toolkit shows banners and hides them again, firing the banner's hidden event
type Toolkit interface {
	Show(b *Banner, opts ToastOptions)
}

// TimerToolkit auto-hides banners with time.AfterFunc
type TimerToolkit struct{}

// Show schedules the auto-hide
func (TimerToolkit) Show(b *Banner, opts ToastOptions) {
	if !opts.AutoHide {
		return
	}
	t := time.AfterFunc(opts.Delay, b.Dismiss)
	b.SetStop(t.Stop)
}

// Notifier displays a message with a severity
type Notifier interface {
	Show(message string, severity Severity) *Banner
}

// Presenter shows toasts inside the shared container of one Document
type Presenter struct {
	doc     Document
	toolkit Toolkit
	delay   time.Duration
	now     func() time.Time
	newID   func() string
}

// Option configures a Presenter
type Option func(*Presenter)

// WithDelay overrides DefaultDelay
func WithDelay(d time.Duration) Option {
	return func(p *Presenter) {
		if d > 0 {
			p.delay = d
		}
	}
}

// WithClock overrides the clock used for Banner.ShownAt
func WithClock(now func() time.Time) Option {
	return func(p *Presenter) {
		p.now = now
	}
}

// NewPresenter creates a presenter for doc
func NewPresenter(doc Document, toolkit Toolkit, opts ...Option) *Presenter {
	p := &Presenter{
		doc:     doc,
		toolkit: toolkit,
		delay:   DefaultDelay,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Document returns the document the presenter draws into
func (p *Presenter) Document() Document {
	return p.doc
}

// Container returns the shared toast container, creating and attaching it on first use
func (p *Presenter) Container() *Container {
	if c, ok := p.doc.ContainerByID(ContainerID); ok {
		return c
	}
	return p.doc.AttachContainer(NewContainer(ContainerID, ContainerClass))
}

// Show appends a new banner to the container and hands it to the toolkit.
// The banner detaches itself from the container once hidden.
func (p *Presenter) Show(message string, severity Severity) *Banner {
	container := p.Container()

	b := &Banner{
		ID:       p.newID(),
		Message:  message,
		Severity: ParseSeverity(string(severity)),
		ShownAt:  p.now(),
	}
	container.Append(b)

	// registered before Show so a short delay cannot fire ahead of it
	b.OnHidden(func() {
		container.Remove(b.ID)
	})
	p.toolkit.Show(b, ToastOptions{AutoHide: true, Delay: p.delay})
	return b
}

// Dismiss hides the banner with the given id. It reports whether the banner was visible.
func (p *Presenter) Dismiss(id string) bool {
	c, ok := p.doc.ContainerByID(ContainerID)
	if !ok {
		return false
	}
	b, ok := c.Find(id)
	if !ok {
		return false
	}
	b.Dismiss()
	return true
}

// Banners returns the banners currently visible
func (p *Presenter) Banners() []*Banner {
	c, ok := p.doc.ContainerByID(ContainerID)
	if !ok {
		return nil
	}
	return c.Banners()
}
