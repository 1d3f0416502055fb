package store

import (
	"context"
	"strings"
	"time"

	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/prometheus"
)

func (s *Store) logs(ctx context.Context) ([]model.LogEntry, error) {
	return load(ctx, s, KeyLogs, seedLogs, true)
}

// Logs returns the audit trail, newest first.
func (s *Store) Logs(ctx context.Context) ([]model.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logs(ctx)
}

// AddLog prepends an audit entry.
func (s *Store) AddLog(ctx context.Context, action, details string) (*model.LogEntry, error) {
	defer prometheus.TrackStoreOperation("add_log")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLog(ctx, "", action, details)
}

func (s *Store) addLog(ctx context.Context, adminID, action, details string) (*model.LogEntry, error) {
	logs, err := s.logs(ctx)
	if err != nil {
		return nil, err
	}
	entry := model.LogEntry{
		ID:        s.newID("log"),
		Action:    action,
		Details:   details,
		Timestamp: s.Now(),
		AdminID:   adminID,
	}
	if err := save(ctx, s, KeyLogs, append([]model.LogEntry{entry}, logs...)); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SearchLogs returns entries whose details contain term (case-sensitive).
func (s *Store) SearchLogs(ctx context.Context, term string) ([]model.LogEntry, error) {
	logs, err := s.Logs(ctx)
	if err != nil {
		return nil, err
	}
	return filter(logs, func(l model.LogEntry) bool {
		return strings.Contains(l.Details, term)
	}), nil
}
