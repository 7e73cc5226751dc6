package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
	"github.com/secmon-lab/sirse/pkg/utils/metrics"
)

// HeatmapFactory creates the controller of a new session
type HeatmapFactory func() *Heatmap

type heatmapSession struct {
	heatmap    *Heatmap
	lastAccess time.Time
}

// HeatmapSessions keeps the heat map controllers of remote clients. Each
// client owns one session, created on open and kept until it is closed or
// has been idle for too long.
type HeatmapSessions struct {
	factory HeatmapFactory
	metrics *metrics.Recorder
	now     func() time.Time

	mu       sync.Mutex
	sessions map[types.HeatmapSessionID]*heatmapSession
}

// NewHeatmapSessions creates a session registry
func NewHeatmapSessions(factory HeatmapFactory, recorder *metrics.Recorder) *HeatmapSessions {
	return &HeatmapSessions{
		factory:  factory,
		metrics:  recorder,
		now:      time.Now,
		sessions: make(map[types.HeatmapSessionID]*heatmapSession),
	}
}

// SetClock replaces the clock used for idle tracking
func (s *HeatmapSessions) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Open creates a new, not yet mounted session
func (s *HeatmapSessions) Open() (types.HeatmapSessionID, *Heatmap) {
	id := types.NewHeatmapSessionID()
	h := s.factory()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &heatmapSession{heatmap: h, lastAccess: s.now()}
	s.metrics.SetHeatmapSessions(len(s.sessions))
	return id, h
}

// Get returns the session controller
func (s *HeatmapSessions) Get(id types.HeatmapSessionID) (*Heatmap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrHeatmapNotFound, "failed to get heatmap session", goerr.V("id", id))
	}
	session.lastAccess = s.now()
	return session.heatmap, nil
}

// Close removes a session
func (s *HeatmapSessions) Close(id types.HeatmapSessionID) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
		s.metrics.SetHeatmapSessions(len(s.sessions))
	}
	s.mu.Unlock()

	if !ok {
		return goerr.Wrap(model.ErrHeatmapNotFound, "failed to close heatmap session", goerr.V("id", id))
	}
	session.heatmap.Close()
	return nil
}

// Sweep closes sessions idle for longer than maxIdle and returns how many
// were closed
func (s *HeatmapSessions) Sweep(ctx context.Context, maxIdle time.Duration) int {
	s.mu.Lock()
	cutoff := s.now().Add(-maxIdle)
	var expired []*heatmapSession
	for id, session := range s.sessions {
		if session.lastAccess.Before(cutoff) {
			expired = append(expired, session)
			delete(s.sessions, id)
		}
	}
	s.metrics.SetHeatmapSessions(len(s.sessions))
	s.mu.Unlock()

	for _, session := range expired {
		session.heatmap.Close()
	}
	if len(expired) > 0 {
		ctxlog.From(ctx).Info("closed idle heatmap sessions", "count", len(expired))
	}
	return len(expired)
}

// Len returns the number of open sessions
func (s *HeatmapSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
