package store

import (
	"cmp"
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/prometheus"
)

const (
	defaultPageSize = 5
	maxPageSize     = 100
)

func (s *Store) users(ctx context.Context) ([]model.User, error) {
	return load(ctx, s, KeyUsers, seedUsers, true)
}

// Users returns every user in stored order.
func (s *Store) Users(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users(ctx)
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(users, func(u model.User) bool { return u.ID == id }); i >= 0 {
		return &users[i], nil
	}
	return nil, ErrNotFound
}

// FindUserByEmail matches the whole address, ignoring case.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(users, func(u model.User) bool { return strings.EqualFold(u.Email, email) }); i >= 0 {
		return &users[i], nil
	}
	return nil, ErrNotFound
}

// AddUser creates a profile with no card issued, puts it first in the list
// and records a USER_CREATE audit entry. Emails are unique ignoring case.
func (s *Store) AddUser(ctx context.Context, in model.NewUserInput) (*model.User, error) {
	return s.AddUserAs(ctx, "", in)
}

// AddUserAs is AddUser with the acting administrator recorded on the audit
// entry.
func (s *Store) AddUserAs(ctx context.Context, adminID string, in model.NewUserInput) (*model.User, error) {
	defer prometheus.TrackStoreOperation("add_user")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}
	if indexOf(users, func(u model.User) bool { return strings.EqualFold(u.Email, in.Email) }) >= 0 {
		return nil, ErrEmailExists
	}

	user := model.User{
		ID:         s.newID("user"),
		Name:       in.Name,
		Email:      in.Email,
		Role:       in.Role,
		Position:   in.Position,
		Department: in.Department,
		Phone:      in.Phone,
		CardStatus: model.CardStatusNotIssued,
		AvatarURL:  avatarURL(in.Name),
	}
	if err := save(ctx, s, KeyUsers, append([]model.User{user}, users...)); err != nil {
		return nil, err
	}
	if _, err := s.addLog(ctx, adminID, model.ActionUserCreate, fmt.Sprintf("Admin created user profile for %s", in.Name)); err != nil {
		return nil, err
	}
	return &user, nil
}

func avatarURL(name string) string {
	name = strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return "https://ui-avatars.com/api/?name=" + name + "&background=random&color=fff"
}

// UpdateUserStatus changes a user's card status. IssuedAt is stamped only
// when the new status is ACTIVE. The full user list is returned; an unknown
// id leaves it unchanged.
func (s *Store) UpdateUserStatus(ctx context.Context, id string, status model.CardStatus) ([]model.User, error) {
	defer prometheus.TrackStoreOperation("update_user_status")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(users, func(u model.User) bool { return u.ID == id })
	if i < 0 {
		return users, nil
	}
	users[i].CardStatus = status
	if status == model.CardStatusActive {
		users[i].IssuedAt = s.Now()
	}
	if err := save(ctx, s, KeyUsers, users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserQuery drives the admin user table.
type UserQuery struct {
	Term     string
	SortBy   string // name, email or cardStatus
	Desc     bool
	Page     int // 1-based
	PageSize int
}

type UserPage struct {
	Users      []model.User `json:"users"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
}

// SearchUsers filters by name or email substring (case-insensitive), sorts
// and paginates.
func (s *Store) SearchUsers(ctx context.Context, q UserQuery) (UserPage, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return UserPage{}, err
	}

	term := strings.ToLower(q.Term)
	matched := filter(users, func(u model.User) bool {
		return strings.Contains(strings.ToLower(u.Name), term) ||
			strings.Contains(strings.ToLower(u.Email), term)
	})

	key := func(u model.User) string {
		switch q.SortBy {
		case "email":
			return u.Email
		case "cardStatus":
			return string(u.CardStatus)
		default:
			return u.Name
		}
	}
	slices.SortStableFunc(matched, func(a, b model.User) int {
		c := cmp.Compare(key(a), key(b))
		if q.Desc {
			return -c
		}
		return c
	})

	size := q.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	size = min(size, maxPageSize)
	page := max(q.Page, 1)
	total := len(matched)
	pages := (total + size - 1) / size

	// pages past the end are empty
	start := total
	if page <= pages {
		start = (page - 1) * size
	}
	end := min(start+size, total)

	return UserPage{
		Users:      matched[start:end],
		Total:      total,
		Page:       page,
		TotalPages: pages,
	}, nil
}

// UserStats counts users per card status.
type UserStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	NotIssued int `json:"notIssued"`
	Revoked   int `json:"revoked"`
}

func (s *Store) UserStats(ctx context.Context) (UserStats, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return UserStats{}, err
	}
	stats := UserStats{Total: len(users)}
	for _, u := range users {
		switch u.CardStatus {
		case model.CardStatusActive:
			stats.Active++
		case model.CardStatusNotIssued:
			stats.NotIssued++
		case model.CardStatusRevoked:
			stats.Revoked++
		}
	}
	return stats, nil
}
