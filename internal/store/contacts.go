package store

import (
	"context"
	"strings"
	"time"

	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/prometheus"
)

func (s *Store) contacts(ctx context.Context) ([]model.Contact, error) {
	return load(ctx, s, KeyContacts, seedContacts, false)
}

// Contacts returns the owner's contacts, most recently added first.
func (s *Store) Contacts(ctx context.Context, ownerID string) ([]model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.contacts(ctx)
	if err != nil {
		return nil, err
	}
	return filter(contacts, func(c model.Contact) bool { return c.OwnerID == ownerID }), nil
}

// SearchContacts matches term against name, email and tag, ignoring case.
func (s *Store) SearchContacts(ctx context.Context, ownerID, term string) ([]model.Contact, error) {
	contacts, err := s.Contacts(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	return filter(contacts, func(c model.Contact) bool {
		return strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Email), term) ||
			(c.Tag != "" && strings.Contains(strings.ToLower(c.Tag), term))
	}), nil
}

func (s *Store) FindContact(ctx context.Context, id string) (*model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.contacts(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(contacts, func(c model.Contact) bool { return c.ID == id }); i >= 0 {
		return &contacts[i], nil
	}
	return nil, ErrNotFound
}

// AddContact stamps addedAt and prepends the contact.
func (s *Store) AddContact(ctx context.Context, ownerID string, in model.ContactInput) (*model.Contact, error) {
	defer prometheus.TrackStoreOperation("add_contact")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.contacts(ctx)
	if err != nil {
		return nil, err
	}
	contact := model.Contact{
		ID:      s.newID("c"),
		OwnerID: ownerID,
		AddedAt: s.Now(),
	}
	in.Apply(&contact)
	if err := save(ctx, s, KeyContacts, append([]model.Contact{contact}, contacts...)); err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateContact replaces the contact with the same id. Unknown ids are ignored.
func (s *Store) UpdateContact(ctx context.Context, contact model.Contact) error {
	defer prometheus.TrackStoreOperation("update_contact")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.contacts(ctx)
	if err != nil {
		return err
	}
	for i := range contacts {
		if contacts[i].ID == contact.ID {
			contacts[i] = contact
		}
	}
	return save(ctx, s, KeyContacts, contacts)
}

func (s *Store) DeleteContact(ctx context.Context, id string) error {
	defer prometheus.TrackStoreOperation("delete_contact")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.contacts(ctx)
	if err != nil {
		return err
	}
	return save(ctx, s, KeyContacts, filter(contacts, func(c model.Contact) bool { return c.ID != id }))
}
