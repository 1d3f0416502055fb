package share

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/internal/store"
	"github.com/neethishnk/hawkcards/pkg/logger"
	"github.com/neethishnk/hawkcards/prometheus"
)

// ErrCardNotFound is the terminal outcome when neither the store nor the
// portable payload yields a card.
var ErrCardNotFound = errors.New("card not found")

// Source says where a resolved card came from.
type Source string

const (
	SourceLocal    Source = "local"
	SourcePortable Source = "portable"
)

// CardCounter is the part of the store the resolver needs.
type CardCounter interface {
	FindCard(ctx context.Context, id string) (*model.DigitalCard, error)
	IncrementCardViews(ctx context.Context, id string) (*model.DigitalCard, error)
	IncrementCardSaves(ctx context.Context, id string) (*model.DigitalCard, error)
}

type Resolution struct {
	Card   *model.DigitalCard `json:"card"`
	Source Source             `json:"source"`
}

type Resolver struct {
	cards CardCounter
}

func NewResolver(cards CardCounter) *Resolver {
	return &Resolver{cards: cards}
}

// Resolve looks the card up in the store first and counts the view. Only
// when the id is unknown is the portable payload d decoded; that path never
// touches the store.
func (r *Resolver) Resolve(ctx context.Context, cardID, d string) (*Resolution, error) {
	log := logger.Ctx(ctx).With(zap.String("card_id", cardID))

	card, err := r.cards.IncrementCardViews(ctx, cardID)
	switch {
	case err == nil:
		prometheus.RecordResolution(string(SourceLocal))
		log.Debug("Card resolved from store", zap.Int("views", card.Views))
		return &Resolution{Card: card, Source: SourceLocal}, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("resolve card %s: %w", cardID, err)
	}

	if d == "" {
		prometheus.RecordResolution("not_found")
		return nil, ErrCardNotFound
	}

	card, err = DecodePortable(d)
	if err != nil {
		log.Warn("Failed to decode portable card", zap.Error(err))
		prometheus.RecordResolution("not_found")
		return nil, ErrCardNotFound
	}

	prometheus.RecordResolution(string(SourcePortable))
	log.Debug("Card resolved from portable payload")
	return &Resolution{Card: card, Source: SourcePortable}, nil
}

// Lookup resolves like Resolve but does not count a view.
func (r *Resolver) Lookup(ctx context.Context, cardID, d string) (*Resolution, error) {
	card, err := r.cards.FindCard(ctx, cardID)
	switch {
	case err == nil:
		return &Resolution{Card: card, Source: SourceLocal}, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("lookup card %s: %w", cardID, err)
	}
	if d == "" {
		return nil, ErrCardNotFound
	}
	card, err = DecodePortable(d)
	if err != nil {
		return nil, ErrCardNotFound
	}
	return &Resolution{Card: card, Source: SourcePortable}, nil
}

// RecordSave counts a vCard download. Only cards in the store are counted;
// it reports whether a counter was updated.
func (r *Resolver) RecordSave(ctx context.Context, cardID string) (bool, error) {
	if _, err := r.cards.IncrementCardSaves(ctx, cardID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			prometheus.RecordCardSave(string(SourcePortable))
			return false, nil
		}
		return false, fmt.Errorf("record save for %s: %w", cardID, err)
	}
	prometheus.RecordCardSave(string(SourceLocal))
	return true, nil
}
