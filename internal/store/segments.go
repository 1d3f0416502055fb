package store

import (
	"context"
	"time"

	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/prometheus"
)

func (s *Store) segments(ctx context.Context) ([]model.ContactSegment, error) {
	return load(ctx, s, KeySegments, seedSegments, false)
}

func (s *Store) Segments(ctx context.Context, ownerID string) ([]model.ContactSegment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	segments, err := s.segments(ctx)
	if err != nil {
		return nil, err
	}
	return filter(segments, func(seg model.ContactSegment) bool { return seg.OwnerID == ownerID }), nil
}

func (s *Store) FindSegment(ctx context.Context, id string) (*model.ContactSegment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	segments, err := s.segments(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(segments, func(seg model.ContactSegment) bool { return seg.ID == id }); i >= 0 {
		return &segments[i], nil
	}
	return nil, ErrNotFound
}

// SaveSegment appends a new segment.
func (s *Store) SaveSegment(ctx context.Context, ownerID string, in model.SegmentInput) (*model.ContactSegment, error) {
	defer prometheus.TrackStoreOperation("save_segment")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	segments, err := s.segments(ctx)
	if err != nil {
		return nil, err
	}
	seg := model.ContactSegment{
		ID:          s.newID("seg"),
		OwnerID:     ownerID,
		Name:        in.Name,
		Color:       in.Color,
		Description: in.Description,
	}
	if err := save(ctx, s, KeySegments, append(segments, seg)); err != nil {
		return nil, err
	}
	return &seg, nil
}

func (s *Store) DeleteSegment(ctx context.Context, id string) error {
	defer prometheus.TrackStoreOperation("delete_segment")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	segments, err := s.segments(ctx)
	if err != nil {
		return err
	}
	return save(ctx, s, KeySegments, filter(segments, func(seg model.ContactSegment) bool { return seg.ID != id }))
}

// SegmentMembers returns the owner's contacts whose tag equals name exactly.
// Membership is by tag string, so renaming a segment orphans its members.
func (s *Store) SegmentMembers(ctx context.Context, ownerID, name string) ([]model.Contact, error) {
	contacts, err := s.Contacts(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return filter(contacts, func(c model.Contact) bool { return c.Tag == name }), nil
}
