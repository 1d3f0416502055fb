package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neethishnk/hawkcards/internal/model"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func sequentialIDs() IDGenerator {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s-new%d", prefix, n)
	}
}

func newTestStore(t *testing.T) (*Store, *testClock, KV) {
	t.Helper()
	clock := &testClock{t: fixedNow}
	kv := NewMemoryKV()
	return New(kv, WithClock(clock.now), WithIDGenerator(sequentialIDs())), clock, kv
}

func TestSeedsApplyOnFirstRead(t *testing.T) {
	s, _, kv := newTestStore(t)
	ctx := context.Background()

	users, err := s.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin-1", users[0].ID)

	// users are written back on first read, cards are not
	_, ok, _ := kv.Get(ctx, KeyUsers)
	assert.True(t, ok)

	cards, err := s.AllCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, 120, cards[0].Views)
	_, ok, _ = kv.Get(ctx, KeyCards)
	assert.False(t, ok)
}

func TestMalformedCollectionFallsBackToSeed(t *testing.T) {
	s, _, kv := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeyContacts, "{not json"))

	contacts, err := s.Contacts(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
}

func TestCreateCardAssignsIDAndZeroCounters(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	in := model.CardInput{Title: "Work", Theme: model.ThemeSleek, FirstName: "Ada", LastName: "Lovelace"}
	a, err := s.CreateCard(ctx, "user-9", in)
	require.NoError(t, err)
	b, err := s.CreateCard(ctx, "user-9", in)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Zero(t, a.Views)
	assert.Zero(t, a.UniqueViews)
	assert.Zero(t, a.Saves)

	all, err := s.AllCards(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "card-1", all[0].ID, "new cards are appended")
	assert.Equal(t, b.ID, all[2].ID)
}

func TestCardsAreScopedToOwner(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateCard(ctx, "user-2", model.CardInput{Title: "Other", Theme: model.ThemeFlat, FirstName: "X"})
	require.NoError(t, err)

	cards, err := s.Cards(ctx, "user-1")
	require.NoError(t, err)
	for _, c := range cards {
		assert.Equal(t, "user-1", c.UserID)
	}
	assert.Len(t, cards, 1)
}

func TestSaveCardUpserts(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	card, err := s.FindCard(ctx, "card-1")
	require.NoError(t, err)
	card.Title = "Renamed"
	require.NoError(t, s.SaveCard(ctx, *card))

	all, err := s.AllCards(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Renamed", all[0].Title)

	require.NoError(t, s.SaveCard(ctx, model.DigitalCard{ID: "card-x", UserID: "user-1"}))
	all, err = s.AllCards(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.NotNil(t, all[1].Fields)
}

func TestIncrementCardCounters(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	card, err := s.IncrementCardViews(ctx, "card-1")
	require.NoError(t, err)
	assert.Equal(t, 121, card.Views)
	assert.Equal(t, 86, card.UniqueViews)
	assert.Equal(t, 12, card.Saves)

	card, err = s.IncrementCardSaves(ctx, "card-1")
	require.NoError(t, err)
	assert.Equal(t, 13, card.Saves)
	assert.Equal(t, 121, card.Views)

	_, err = s.IncrementCardViews(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCardKeepsOwnerAndCounters(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	card, err := s.UpdateCard(ctx, "card-1", model.CardInput{
		Title:     "Conference",
		Theme:     model.ThemeFlat,
		FirstName: "Johnny",
	})
	require.NoError(t, err)
	assert.Equal(t, "Conference", card.Title)
	assert.Equal(t, "user-1", card.UserID)
	assert.Equal(t, 120, card.Views)
	assert.Equal(t, []model.SocialField{}, card.Fields)

	stored, err := s.FindCard(ctx, "card-1")
	require.NoError(t, err)
	assert.Equal(t, "Johnny", stored.FirstName)

	_, err = s.UpdateCard(ctx, "missing", model.CardInput{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCard(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteCard(ctx, "card-1"))
	_, err := s.FindCard(ctx, "card-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserStatusStampsIssuedAtOnlyWhenActive(t *testing.T) {
	s, clock, _ := newTestStore(t)
	ctx := context.Background()

	u, err := s.AddUser(ctx, model.NewUserInput{Name: "Kyle Reese", Email: "kyle@hawkforce.ai", Role: model.RoleUser})
	require.NoError(t, err)
	assert.Empty(t, u.IssuedAt)

	clock.t = fixedNow.Add(time.Hour)
	users, err := s.UpdateUserStatus(ctx, u.ID, model.CardStatusActive)
	require.NoError(t, err)
	assert.Equal(t, model.CardStatusActive, users[0].CardStatus)
	assert.Equal(t, "2025-03-14T10:26:53.000Z", users[0].IssuedAt)

	clock.t = fixedNow.Add(2 * time.Hour)
	users, err = s.UpdateUserStatus(ctx, u.ID, model.CardStatusRevoked)
	require.NoError(t, err)
	assert.Equal(t, model.CardStatusRevoked, users[0].CardStatus)
	assert.Equal(t, "2025-03-14T10:26:53.000Z", users[0].IssuedAt)

	unchanged, err := s.UpdateUserStatus(ctx, "nobody", model.CardStatusActive)
	require.NoError(t, err)
	assert.Equal(t, users, unchanged)
}

func TestAddUserPrependsAndLogs(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	u, err := s.AddUser(ctx, model.NewUserInput{Name: "Miles Dyson", Email: "miles@cyberdyne.com", Role: model.RoleUser, Department: "R&D"})
	require.NoError(t, err)
	assert.Equal(t, model.CardStatusNotIssued, u.CardStatus)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Miles%20Dyson&background=random&color=fff", u.AvatarURL)

	users, err := s.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, u.ID, users[0].ID)

	logs, err := s.Logs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.ActionUserCreate, logs[0].Action)
	assert.Equal(t, "Admin created user profile for Miles Dyson", logs[0].Details)
	assert.Equal(t, "log-1", logs[1].ID)
}

func TestAddUserRejectsDuplicateEmail(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddUser(ctx, model.NewUserInput{Name: "Mallory", Email: "ADMIN@hawkforce.ai", Role: model.RoleUser})
	assert.ErrorIs(t, err, ErrEmailExists)

	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	u, err := s.FindUserByEmail(ctx, "admin@hawkforce.ai")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", u.ID)
}

func TestAddUserAsRecordsAdmin(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddUserAs(ctx, "admin-1", model.NewUserInput{Name: "Kyle Reese", Email: "kyle@hawkforce.ai", Role: model.RoleUser})
	require.NoError(t, err)

	logs, err := s.Logs(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ActionUserCreate, logs[0].Action)
	assert.Equal(t, "admin-1", logs[0].AdminID)
}

func TestFindUserByEmailIgnoresCase(t *testing.T) {
	s, _, _ := newTestStore(t)

	u, err := s.FindUserByEmail(context.Background(), "ADMIN@HawkForce.ai")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", u.ID)

	_, err = s.FindUserByEmail(context.Background(), "admin@hawkforce")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchUsers(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	for _, name := range []string{"Zed", "Amy", "Bob", "Cat", "Dan"} {
		_, err := s.AddUser(ctx, model.NewUserInput{Name: name, Email: name + "@x.io", Role: model.RoleUser})
		require.NoError(t, err)
	}

	page, err := s.SearchUsers(ctx, UserQuery{})
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Users, 5)
	assert.Equal(t, "Amy", page.Users[0].Name)

	page, err = s.SearchUsers(ctx, UserQuery{Page: 2})
	require.NoError(t, err)
	require.Len(t, page.Users, 2)
	assert.Equal(t, "Zed", page.Users[1].Name)

	page, err = s.SearchUsers(ctx, UserQuery{Term: "HAWKFORCE", SortBy: "email", Desc: true})
	require.NoError(t, err)
	require.Len(t, page.Users, 2)
	assert.Equal(t, "john.anderson@hawkforce.ai", page.Users[0].Email)

	page, err = s.SearchUsers(ctx, UserQuery{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, page.Users)
}

func TestSearchUsersHandlesHugePaging(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	page, err := s.SearchUsers(ctx, UserQuery{Page: 2, PageSize: math.MaxInt})
	require.NoError(t, err)
	assert.Empty(t, page.Users)
	assert.Equal(t, 1, page.TotalPages)

	page, err = s.SearchUsers(ctx, UserQuery{Page: math.MaxInt, PageSize: math.MaxInt})
	require.NoError(t, err)
	assert.Empty(t, page.Users)

	page, err = s.SearchUsers(ctx, UserQuery{Page: 1, PageSize: math.MaxInt})
	require.NoError(t, err)
	assert.Len(t, page.Users, 2)
}

func TestUserStats(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	_, err := s.AddUser(ctx, model.NewUserInput{Name: "New", Email: "new@x.io", Role: model.RoleUser})
	require.NoError(t, err)
	_, err = s.UpdateUserStatus(ctx, "user-1", model.CardStatusRevoked)
	require.NoError(t, err)

	stats, err := s.UserStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, UserStats{Total: 3, Active: 1, NotIssued: 1, Revoked: 1}, stats)
}

func TestSearchLogsIsCaseSensitive(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	_, err := s.AddLog(ctx, model.ActionLogin, "User john.anderson@hawkforce.ai logged in")
	require.NoError(t, err)

	logs, err := s.SearchLogs(ctx, "john.anderson")
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	logs, err = s.SearchLogs(ctx, "JOHN")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestContactsLifecycle(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	c, err := s.AddContact(ctx, "user-1", model.ContactInput{Name: "Sam", Email: "sam@x.io", Tag: "VIP"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14T09:26:53.000Z", c.AddedAt)

	other, err := s.AddContact(ctx, "user-2", model.ContactInput{Name: "Other"})
	require.NoError(t, err)

	contacts, err := s.Contacts(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, c.ID, contacts[0].ID, "new contacts are prepended")

	c.Notes = "met at expo"
	require.NoError(t, s.UpdateContact(ctx, *c))
	got, err := s.FindContact(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "met at expo", got.Notes)

	require.NoError(t, s.DeleteContact(ctx, c.ID))
	contacts, err = s.Contacts(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
	for _, ct := range contacts {
		assert.NotEqual(t, c.ID, ct.ID)
	}

	others, err := s.Contacts(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, other.ID, others[0].ID)
}

func TestSearchContacts(t *testing.T) {
	s, _, _ := newTestStore(t)

	found, err := s.SearchContacts(context.Background(), "user-1", "vip")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Emily Watson", found[0].Name)

	found, err = s.SearchContacts(context.Background(), "user-1", "EXAMPLE.COM")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "c-1", found[0].ID)
}

func TestSegmentMembershipIsExactTagMatch(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	for _, tag := range []string{"vip", "VIP Gold", "VIP"} {
		_, err := s.AddContact(ctx, "user-1", model.ContactInput{Name: "tagged " + tag, Tag: tag})
		require.NoError(t, err)
	}
	_, err := s.AddContact(ctx, "user-2", model.ContactInput{Name: "foreign", Tag: "VIP"})
	require.NoError(t, err)

	members, err := s.SegmentMembers(ctx, "user-1", "VIP")
	require.NoError(t, err)
	require.Len(t, members, 2)
	for _, m := range members {
		assert.Equal(t, "VIP", m.Tag)
		assert.Equal(t, "user-1", m.OwnerID)
	}
}

func TestSegmentsAndTemplates(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	seg, err := s.SaveSegment(ctx, "user-1", model.SegmentInput{Name: "Leads", Color: "#10b981"})
	require.NoError(t, err)
	segs, err := s.Segments(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.Equal(t, seg.ID, segs[2].ID, "segments are appended")

	require.NoError(t, s.DeleteSegment(ctx, "seg-1"))
	segs, err = s.Segments(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, segs, 2)

	tm, err := s.SaveTemplate(ctx, "user-1", model.TemplateInput{Title: "Hi", Content: "Hello", Category: model.CategoryGreeting})
	require.NoError(t, err)
	found, err := s.FindTemplate(ctx, tm.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", found.Content)

	require.NoError(t, s.DeleteTemplate(ctx, "tm-1"))
	tms, err := s.Templates(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, tms, 2)
	assert.Equal(t, "tm-2", tms[0].ID)
}

func TestResetRestoresSeeds(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.DeleteCard(ctx, "card-1"))

	require.NoError(t, s.Reset(ctx))
	_, err := s.FindCard(ctx, "card-1")
	assert.NoError(t, err)
}

type brokenKV struct{ KV }

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func TestBackendErrorsAreReturned(t *testing.T) {
	s := New(brokenKV{})
	_, err := s.Users(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}
