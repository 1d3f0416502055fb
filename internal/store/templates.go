package store

import (
	"context"
	"time"

	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/prometheus"
)

func (s *Store) templates(ctx context.Context) ([]model.MessageTemplate, error) {
	return load(ctx, s, KeyTemplates, seedTemplates, false)
}

func (s *Store) Templates(ctx context.Context, ownerID string) ([]model.MessageTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.templates(ctx)
	if err != nil {
		return nil, err
	}
	return filter(templates, func(t model.MessageTemplate) bool { return t.OwnerID == ownerID }), nil
}

func (s *Store) FindTemplate(ctx context.Context, id string) (*model.MessageTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.templates(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(templates, func(t model.MessageTemplate) bool { return t.ID == id }); i >= 0 {
		return &templates[i], nil
	}
	return nil, ErrNotFound
}

func (s *Store) SaveTemplate(ctx context.Context, ownerID string, in model.TemplateInput) (*model.MessageTemplate, error) {
	defer prometheus.TrackStoreOperation("save_template")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.templates(ctx)
	if err != nil {
		return nil, err
	}
	tm := model.MessageTemplate{
		ID:       s.newID("tm"),
		OwnerID:  ownerID,
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
	}
	if err := save(ctx, s, KeyTemplates, append(templates, tm)); err != nil {
		return nil, err
	}
	return &tm, nil
}

func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	defer prometheus.TrackStoreOperation("delete_template")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.templates(ctx)
	if err != nil {
		return err
	}
	return save(ctx, s, KeyTemplates, filter(templates, func(t model.MessageTemplate) bool { return t.ID != id }))
}
