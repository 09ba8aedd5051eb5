package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/expirywatch/labelscan/internal/models"
)

// Store is the session relay contract: get-or-create by key, partial update,
// and image append. A single in-memory implementation ships today; anything
// multi-instance would swap in an externalized store behind this interface.
type Store interface {
	GetOrCreate(sessionID string) models.Session
	Apply(sessionID string, update models.SessionUpdate) models.Session
	AppendImage(sessionID string, dataURL string) models.Session
}

type entry struct {
	session    models.Session
	imageSeq   int
	lastAccess time.Time
}

// SessionStore is an in-memory Store. Sessions are created lazily on first
// reference and, when a TTL is configured, swept after going idle.
type SessionStore struct {
	sessions map[string]*entry
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
}

func New(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// StartSweeper launches the background expiry loop. It stops when ctx is
// cancelled. No-op when the store has no TTL.
func (s *SessionStore) StartSweeper(ctx context.Context) {
	if s.ttl <= 0 {
		return
	}
	interval := s.ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *SessionStore) sweep() {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.sessions {
		if e.lastAccess.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// getOrCreateLocked returns the entry for sessionID, creating the default
// zero-state session if absent. Caller must hold the write lock.
func (s *SessionStore) getOrCreateLocked(sessionID string) *entry {
	e, exists := s.sessions[sessionID]
	if !exists {
		e = &entry{
			session: models.Session{
				Images: []models.SessionImage{},
			},
		}
		s.sessions[sessionID] = e
	}
	e.lastAccess = s.now()
	return e
}

func (s *SessionStore) GetOrCreate(sessionID string) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.getOrCreateLocked(sessionID))
}

// Apply overwrites present fields of the session and appends the update's
// image when one is carried. Absent fields are untouched. An empty command
// clears the pending command.
func (s *SessionStore) Apply(sessionID string, update models.SessionUpdate) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.getOrCreateLocked(sessionID)
	if update.MobileConnected != nil {
		e.session.MobileConnected = *update.MobileConnected
	}
	if update.WebConnected != nil {
		e.session.WebConnected = *update.WebConnected
	}
	if update.Command != nil {
		if *update.Command == "" {
			e.session.PendingCommand = nil
		} else {
			e.session.PendingCommand = update.Command
		}
	}
	if update.Image != "" {
		s.appendImageLocked(e, update.Image)
	}
	return snapshot(e)
}

func (s *SessionStore) AppendImage(sessionID string, dataURL string) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.getOrCreateLocked(sessionID)
	s.appendImageLocked(e, dataURL)
	return snapshot(e)
}

func (s *SessionStore) appendImageLocked(e *entry, dataURL string) {
	e.imageSeq++
	img := models.SessionImage{
		ID:      fmt.Sprintf("img_%d_%d", s.now().UnixMilli(), e.imageSeq),
		DataURL: dataURL,
	}
	e.session.Images = append(e.session.Images, img)
}

// snapshot copies the session so callers never share the store's image slice.
func snapshot(e *entry) models.Session {
	out := e.session
	out.Images = make([]models.SessionImage, len(e.session.Images))
	copy(out.Images, e.session.Images)
	return out
}
