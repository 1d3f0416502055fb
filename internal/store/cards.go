package store

import (
	"context"
	"time"

	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/prometheus"
)

func (s *Store) cards(ctx context.Context) ([]model.DigitalCard, error) {
	return load(ctx, s, KeyCards, seedCards, false)
}

// Cards returns the cards owned by userID in stored order.
func (s *Store) Cards(ctx context.Context, userID string) ([]model.DigitalCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.cards(ctx)
	if err != nil {
		return nil, err
	}
	return filter(cards, func(c model.DigitalCard) bool { return c.UserID == userID }), nil
}

func (s *Store) AllCards(ctx context.Context) ([]model.DigitalCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards(ctx)
}

func (s *Store) FindCard(ctx context.Context, id string) (*model.DigitalCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.cards(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(cards, func(c model.DigitalCard) bool { return c.ID == id }); i >= 0 {
		return &cards[i], nil
	}
	return nil, ErrNotFound
}

// SaveCard replaces the card with the same id or appends it. Last write wins.
func (s *Store) SaveCard(ctx context.Context, card model.DigitalCard) error {
	defer prometheus.TrackStoreOperation("save_card")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCard(ctx, card)
}

func (s *Store) saveCard(ctx context.Context, card model.DigitalCard) error {
	cards, err := s.cards(ctx)
	if err != nil {
		return err
	}
	if card.Fields == nil {
		card.Fields = []model.SocialField{}
	}
	if i := indexOf(cards, func(c model.DigitalCard) bool { return c.ID == card.ID }); i >= 0 {
		cards[i] = card
	} else {
		cards = append(cards, card)
	}
	return save(ctx, s, KeyCards, cards)
}

// CreateCard assigns an id, zeroes the counters and appends the card.
func (s *Store) CreateCard(ctx context.Context, userID string, in model.CardInput) (*model.DigitalCard, error) {
	defer prometheus.TrackStoreOperation("create_card")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	card := model.DigitalCard{ID: s.newID("card"), UserID: userID}
	in.Apply(&card)
	if err := s.saveCard(ctx, card); err != nil {
		return nil, err
	}
	return &card, nil
}

// UpdateCard applies in to an existing card, keeping its owner and counters.
func (s *Store) UpdateCard(ctx context.Context, id string, in model.CardInput) (*model.DigitalCard, error) {
	defer prometheus.TrackStoreOperation("update_card")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.cards(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(cards, func(c model.DigitalCard) bool { return c.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	in.Apply(&cards[i])
	card := cards[i]
	if err := save(ctx, s, KeyCards, cards); err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *Store) DeleteCard(ctx context.Context, id string) error {
	defer prometheus.TrackStoreOperation("delete_card")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.cards(ctx)
	if err != nil {
		return err
	}
	return save(ctx, s, KeyCards, filter(cards, func(c model.DigitalCard) bool { return c.ID != id }))
}

// IncrementCardViews bumps views and uniqueViews by one.
func (s *Store) IncrementCardViews(ctx context.Context, id string) (*model.DigitalCard, error) {
	return s.bumpCard(ctx, id, "increment_views", func(c *model.DigitalCard) {
		c.Views++
		c.UniqueViews++
	})
}

// IncrementCardSaves bumps the saves counter by one.
func (s *Store) IncrementCardSaves(ctx context.Context, id string) (*model.DigitalCard, error) {
	return s.bumpCard(ctx, id, "increment_saves", func(c *model.DigitalCard) {
		c.Saves++
	})
}

func (s *Store) bumpCard(ctx context.Context, id, op string, mutate func(*model.DigitalCard)) (*model.DigitalCard, error) {
	defer prometheus.TrackStoreOperation(op)(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.cards(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(cards, func(c model.DigitalCard) bool { return c.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	mutate(&cards[i])
	if err := save(ctx, s, KeyCards, cards); err != nil {
		return nil, err
	}
	card := cards[i]
	return &card, nil
}
