package notify

import (
	"sync"
	"time"
)

// ContainerID is the well-known id of the shared toast container
const ContainerID = "toast-container"

// ContainerClass anchors the container to the bottom-trailing corner
const ContainerClass = "toast-container position-fixed bottom-0 end-0 p-3"

// Document is the surface toast containers are looked up in and attached to
type Document interface {
	ContainerByID(id string) (*Container, bool)
	AttachContainer(c *Container) *Container
}

// Container holds the banners currently on screen, oldest first
type Container struct {
	ID    string
	Class string

	mu      sync.Mutex
	banners []*Banner
}

// NewContainer creates an empty container
func NewContainer(id, class string) *Container {
	return &Container{ID: id, Class: class}
}

// Append adds a banner after the existing ones
func (c *Container) Append(b *Banner) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.banners = append(c.banners, b)
}

// Remove detaches the banner with the given id. It reports whether the banner was present.
func (c *Container) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, b := range c.banners {
		if b.ID == id {
			c.banners = append(c.banners[:i], c.banners[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the banner with the given id
func (c *Container) Find(id string) (*Banner, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.banners {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Banners returns a snapshot of the visible banners
func (c *Container) Banners() []*Banner {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Banner, len(c.banners))
	copy(out, c.banners)
	return out
}

// Len returns the number of visible banners
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.banners)
}

// Page is an in-memory Document, one per browser session
type Page struct {
	mu         sync.Mutex
	containers map[string]*Container
	lastSeen   time.Time
}

// NewPage creates a page without any containers
func NewPage() *Page {
	return &Page{
		containers: make(map[string]*Container),
		lastSeen:   time.Now(),
	}
}

// ContainerByID looks up an attached container
func (p *Page) ContainerByID(id string) (*Container, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.containers[id]
	return c, ok
}

// AttachContainer attaches c unless a container with the same id is already
// attached, and returns whichever one is attached afterwards.
func (p *Page) AttachContainer(c *Container) *Container {
	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.containers[c.ID]; ok {
		return existing
	}
	p.containers[c.ID] = c
	return c
}

// ContainerCount returns the number of attached containers
func (p *Page) ContainerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.containers)
}

func (p *Page) touch(now time.Time) {
	p.mu.Lock()
	p.lastSeen = now
	p.mu.Unlock()
}

func (p *Page) idleSince() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastSeen
}
