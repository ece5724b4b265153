package session

import (
	"sort"
	"sync"
	"time"
)

// Snapshot is a read-only view of one connected player's campaign.
type Snapshot struct {
	ID         string    `json:"id"`
	User       string    `json:"user"`
	Since      time.Time `json:"since"`
	Contest    string    `json:"contest,omitempty"` // live contest, if any
	HP         int       `json:"hp"`
	Gold       int       `json:"gold"`
	Encounters int       `json:"encounters"`
	Wins       int       `json:"wins"`
	Losses     int       `json:"losses"`
}

// Live tracks campaigns being played over the network.
// Thread-safe for concurrent access: each campaign publishes its own
// snapshot and readers only ever see copies.
type Live struct {
	mu       sync.RWMutex
	sessions map[string]Snapshot
}

// NewLive creates an empty tracker.
func NewLive() *Live {
	return &Live{sessions: make(map[string]Snapshot)}
}

// Register adds a session.
func (l *Live) Register(id, user string, since time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions[id] = Snapshot{ID: id, User: user, Since: since}
}

// Unregister removes a session.
func (l *Live) Unregister(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sessions, id)
}

// Publish refreshes a registered session from its driver. Unknown ids are
// ignored so a late publish after Unregister is harmless.
func (l *Live) Publish(id string, d *Driver) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sessions[id]
	if !ok {
		return
	}
	s.Contest = ""
	if meta, ok := d.Active(); ok {
		s.Contest = meta.ID()
	}
	if c := d.Campaign(); c != nil {
		s.HP, s.Gold = c.HP, c.Gold
		s.Encounters, s.Wins, s.Losses = c.Encounters, c.Wins, c.Losses
	}
	l.sessions[id] = s
}

// List returns every session, oldest first.
func (l *Live) List() []Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Snapshot, 0, len(l.sessions))
	for _, s := range l.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Since.Equal(out[j].Since) {
			return out[i].ID < out[j].ID
		}
		return out[i].Since.Before(out[j].Since)
	})
	return out
}

// Count returns the number of sessions.
func (l *Live) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sessions)
}
