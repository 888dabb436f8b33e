package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"mutual-aid/internal/domain/request"
	"mutual-aid/internal/domain/user"
	"mutual-aid/internal/proxy"
	"mutual-aid/internal/repository"
	aid_errors "mutual-aid/pkg/errors"
	"mutual-aid/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fixture struct {
	store    *repository.Store
	users    *UserService
	requests *RequestService
	chat     *ChatService
}

func newFixture(t *testing.T, strictChat bool) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	return &fixture{
		store:    store,
		users:    NewUserService(store.Users, nil, nil),
		requests: NewRequestService(store.Requests, store.Chat, store.Users, nil),
		chat:     NewChatService(store.Chat, proxy.NewAccessControl(store.Requests, strictChat), store.Users, nil),
	}
}

func (f *fixture) register(t *testing.T, name, contact, role string) user.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterInput{Name: name, ContactInfo: contact, Location: "Elm St", Role: role})
	require.NoError(t, err)
	return u
}

func (f *fixture) newRequest(t *testing.T, owner user.User) request.HelpRequest {
	t.Helper()
	hr, err := f.requests.Create(context.Background(), CreateRequestInput{
		ResidentID:   owner.ID,
		ResidentName: owner.Name,
		Title:        "Move couch",
		Category:     "Home Repair",
	})
	require.NoError(t, err)
	return hr
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	alice := f.register(t, "Alice", " Alice@Example.org ", "Resident")
	assert.Equal(t, "Alice@Example.org", alice.ContactInfo)
	assert.Equal(t, user.RoleResident, alice.Role)
	assert.NotEqual(t, uuid.Nil, alice.ID)

	_, err := f.users.Register(ctx, RegisterInput{Name: "Impostor", ContactInfo: "alice@example.org", Role: "Helper"})
	assert.ErrorIs(t, err, aid_errors.ErrDuplicateContact)

	got, err := f.users.Login(ctx, "ALICE@example.org  ")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = f.users.Login(ctx, "nobody@example.org")
	assert.ErrorIs(t, err, aid_errors.ErrNotFound)

	byID, err := f.users.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.Name)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t, false)
	cases := []RegisterInput{
		{Name: "", ContactInfo: "a@x", Role: "Resident"},
		{Name: "A", ContactInfo: "  ", Role: "Resident"},
		{Name: "A", ContactInfo: "a@x", Role: "Admin"},
	}
	for _, in := range cases {
		_, err := f.users.Register(context.Background(), in)
		assert.ErrorIs(t, err, aid_errors.ErrInvalidInput)
	}
}

type stubCache struct {
	users    map[uuid.UUID]user.User
	contacts map[string]uuid.UUID
	sets     int
}

func newStubCache() *stubCache {
	return &stubCache{users: map[uuid.UUID]user.User{}, contacts: map[string]uuid.UUID{}}
}

func (c *stubCache) GetUser(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := c.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (c *stubCache) GetUserIDByContact(_ context.Context, key string) (uuid.UUID, error) {
	return c.contacts[key], nil
}

func (c *stubCache) SetUser(_ context.Context, u user.User) error {
	c.sets++
	c.users[u.ID] = u
	c.contacts[u.ContactKey] = u.ID
	return nil
}

func TestUserServiceReadsThroughCache(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	cache := newStubCache()
	svc := NewUserService(store.Users, cache, nil)

	u, err := svc.Register(ctx, RegisterInput{Name: "Bob", ContactInfo: "bob@x.org", Role: "Helper"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	got, err := svc.Login(ctx, "BOB@x.org")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, 1, cache.sets, "cache hit must not rewrite")

	delete(cache.users, u.ID)
	got, err = svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)
	assert.Equal(t, 2, cache.sets)
}

func TestCreateRequestDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.register(t, "Alice", "alice@x.org", "Resident")

	hr, err := f.requests.Create(ctx, CreateRequestInput{ResidentID: alice.ID, Title: " Groceries ", Category: "groceries"})
	require.NoError(t, err)

	assert.Equal(t, request.StatusPending, hr.Status)
	assert.False(t, hr.HelperID.Valid)
	assert.Equal(t, request.UrgencyMedium, hr.Urgency)
	assert.Equal(t, request.CategoryGroceries, hr.Category)
	assert.Equal(t, "Groceries", hr.Title)
	assert.Equal(t, "Alice", hr.ResidentName, "blank resident name is filled from the user")
}

func TestCreateRequestValidation(t *testing.T) {
	f := newFixture(t, false)
	owner := uuid.New()
	cases := []CreateRequestInput{
		{ResidentID: uuid.Nil, Title: "x", Category: "Other"},
		{ResidentID: owner, Title: "  ", Category: "Other"},
		{ResidentID: owner, Title: "x", Category: "Plumbing"},
		{ResidentID: owner, Title: "x", Category: "Other", Urgency: "Critical"},
	}
	for _, in := range cases {
		_, err := f.requests.Create(context.Background(), in)
		assert.ErrorIs(t, err, aid_errors.ErrInvalidInput)
	}
}

func TestRequestLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	alice := f.register(t, "Alice", "alice@x.org", "Resident")
	bob := f.register(t, "Bob", "bob@x.org", "Helper")
	carol := f.register(t, "Carol", "carol@x.org", "Helper")

	hr := f.newRequest(t, alice)
	assert.Equal(t, request.StatusPending, hr.Status)

	hr, err := f.requests.UpdateStatus(ctx, hr.ID, request.StatusAccepted, Actor{ID: bob.ID, Name: bob.Name})
	require.NoError(t, err)
	assert.Equal(t, request.StatusAccepted, hr.Status)
	assert.Equal(t, bob.ID, hr.HelperID.UUID)
	assert.Equal(t, "Bob", hr.HelperName)

	_, err = f.requests.UpdateStatus(ctx, hr.ID, request.StatusAccepted, Actor{ID: carol.ID})
	assert.ErrorIs(t, err, aid_errors.ErrInvalidTransition)

	hr, err = f.requests.UpdateStatus(ctx, hr.ID, request.StatusInProgress, Actor{ID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, request.StatusInProgress, hr.Status)

	_, err = f.requests.UpdateStatus(ctx, hr.ID, request.StatusCompleted, Actor{ID: carol.ID})
	assert.ErrorIs(t, err, aid_errors.ErrUnauthorized)

	hr, err = f.requests.UpdateStatus(ctx, hr.ID, request.StatusCompleted, Actor{ID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, request.StatusCompleted, hr.Status)
	assert.Equal(t, bob.ID, hr.HelperID.UUID, "helper never changes once set")
}

func TestAcceptRequiresRegisteredHelper(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.register(t, "Alice", "alice@x.org", "Resident")
	dave := f.register(t, "Dave", "dave@x.org", "Resident")
	hr := f.newRequest(t, alice)

	_, err := f.requests.UpdateStatus(ctx, hr.ID, request.StatusAccepted, Actor{ID: dave.ID})
	assert.ErrorIs(t, err, aid_errors.ErrUnauthorized)

	_, err = f.requests.UpdateStatus(ctx, hr.ID, request.StatusAccepted, Actor{ID: uuid.New()})
	assert.ErrorIs(t, err, aid_errors.ErrUnauthorized)

	_, err = f.requests.UpdateStatus(ctx, hr.ID, request.StatusAccepted, Actor{})
	assert.ErrorIs(t, err, aid_errors.ErrUnauthorized)

	got, err := f.requests.GetByID(ctx, hr.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusPending, got.Status)
}

func TestNoSkippingOrBackwardTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.register(t, "Alice", "alice@x.org", "Resident")
	bob := f.register(t, "Bob", "bob@x.org", "Helper")
	hr := f.newRequest(t, alice)

	_, err := f.requests.UpdateStatus(ctx, hr.ID, request.StatusPending, Actor{ID: bob.ID})
	assert.ErrorIs(t, err, aid_errors.ErrInvalidTransition)

	_, err = f.requests.UpdateStatus(ctx, hr.ID, request.StatusAccepted, Actor{ID: bob.ID})
	require.NoError(t, err)

	// skipping to Completed from Accepted
	_, err = f.requests.UpdateStatus(ctx, hr.ID, request.StatusCompleted, Actor{ID: bob.ID})
	assert.ErrorIs(t, err, aid_errors.ErrInvalidTransition)

	_, err = f.requests.UpdateStatus(ctx, hr.ID, request.StatusPending, Actor{ID: bob.ID})
	assert.ErrorIs(t, err, aid_errors.ErrInvalidTransition)

	_, err = f.requests.UpdateStatus(ctx, uuid.New(), request.StatusAccepted, Actor{ID: bob.ID})
	assert.ErrorIs(t, err, aid_errors.ErrNotFound)
}

func TestConcurrentAcceptHasOneWinner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.register(t, "Alice", "alice@x.org", "Resident")
	hr := f.newRequest(t, alice)

	helpers := make([]user.User, 8)
	for i := range helpers {
		helpers[i] = f.register(t, "Helper", uuid.NewString()+"@x.org", "Helper")
	}

	var wg sync.WaitGroup
	errs := make([]error, len(helpers))
	for i, h := range helpers {
		wg.Add(1)
		go func(i int, h user.User) {
			defer wg.Done()
			_, errs[i] = f.requests.UpdateStatus(ctx, hr.ID, request.StatusAccepted, Actor{ID: h.ID})
		}(i, h)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, aid_errors.ErrInvalidTransition)
	}
	assert.Equal(t, 1, wins)
}

func TestListFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.register(t, "Alice", "alice@x.org", "Resident")
	bob := f.register(t, "Bob", "bob@x.org", "Helper")

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		f.requests.now = func() time.Time { return at }
		hr := f.newRequest(t, alice)
		ids = append(ids, hr.ID)
	}
	_, err := f.requests.UpdateStatus(ctx, ids[1], request.StatusAccepted, Actor{ID: bob.ID})
	require.NoError(t, err)

	all, err := f.requests.List(ctx, request.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{ids[2], ids[1], ids[0]}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})

	pending, err := f.requests.List(ctx, request.Filter{Status: request.StatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	mine, err := f.requests.List(ctx, request.Filter{HelperID: uuid.NullUUID{UUID: bob.ID, Valid: true}})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, ids[1], mine[0].ID)
}

func TestDeleteIsIdempotentAndPurgesChat(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.register(t, "Alice", "alice@x.org", "Resident")
	hr := f.newRequest(t, alice)

	_, err := f.chat.PostMessage(ctx, PostMessageInput{RequestID: hr.ID, SenderID: alice.ID, Text: "hello"})
	require.NoError(t, err)

	require.NoError(t, f.requests.Delete(ctx, hr.ID))
	require.NoError(t, f.requests.Delete(ctx, hr.ID))

	_, err = f.requests.GetByID(ctx, hr.ID)
	assert.ErrorIs(t, err, aid_errors.ErrNotFound)

	msgs, err := f.chat.ListMessages(ctx, hr.ID, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestChatPostAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.register(t, "Alice", "alice@x.org", "Resident")
	hr := f.newRequest(t, alice)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		at := base.Add(time.Duration(i) * time.Second)
		f.chat.now = func() time.Time { return at }
		_, err := f.chat.PostMessage(ctx, PostMessageInput{RequestID: hr.ID, SenderID: alice.ID, Text: text})
		require.NoError(t, err)
	}

	msgs, err := f.chat.ListMessages(ctx, hr.ID, time.Time{})
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Text)
	assert.Equal(t, "third", msgs[2].Text)
	assert.Equal(t, "Alice", msgs[0].SenderName, "blank sender name is filled from the user")

	newer, err := f.chat.ListMessages(ctx, hr.ID, base)
	require.NoError(t, err)
	require.Len(t, newer, 2)
	assert.Equal(t, "second", newer[0].Text)
}

func TestChatAfterWithinSameMillisecond(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.register(t, "Alice", "alice@x.org", "Resident")
	hr := f.newRequest(t, alice)

	first := time.Date(2026, 3, 1, 9, 0, 0, 123456789, time.UTC)
	f.chat.now = func() time.Time { return first }
	a, err := f.chat.PostMessage(ctx, PostMessageInput{RequestID: hr.ID, SenderID: alice.ID, Text: "a"})
	require.NoError(t, err)
	assert.Equal(t, first.Truncate(time.Millisecond), a.Timestamp, "stamp matches store precision")

	f.chat.now = func() time.Time { return first.Add(111 * time.Nanosecond) }
	b, err := f.chat.PostMessage(ctx, PostMessageInput{RequestID: hr.ID, SenderID: alice.ID, Text: "b"})
	require.NoError(t, err)
	assert.True(t, b.Timestamp.After(a.Timestamp))
	assert.Equal(t, b.Timestamp, b.Timestamp.Truncate(time.Millisecond))

	newer, err := f.chat.ListMessages(ctx, hr.ID, a.Timestamp)
	require.NoError(t, err)
	require.Len(t, newer, 1)
	assert.Equal(t, "b", newer[0].Text)

	none, err := f.chat.ListMessages(ctx, hr.ID, b.Timestamp)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestChatPostValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.register(t, "Alice", "alice@x.org", "Resident")
	hr := f.newRequest(t, alice)

	_, err := f.chat.PostMessage(ctx, PostMessageInput{RequestID: hr.ID, SenderID: alice.ID, Text: "   "})
	assert.ErrorIs(t, err, aid_errors.ErrInvalidInput)

	_, err = f.chat.PostMessage(ctx, PostMessageInput{RequestID: uuid.New(), SenderID: alice.ID, Text: "hi"})
	assert.ErrorIs(t, err, aid_errors.ErrNotFound)

	stranger := uuid.New()
	m, err := f.chat.PostMessage(ctx, PostMessageInput{RequestID: hr.ID, SenderID: stranger, Text: "hi"})
	require.NoError(t, err, "open mode accepts any sender")
	assert.Equal(t, defaultSenderName, m.SenderName)
}

func TestStrictChatAccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	alice := f.register(t, "Alice", "alice@x.org", "Resident")
	bob := f.register(t, "Bob", "bob@x.org", "Helper")
	carol := f.register(t, "Carol", "carol@x.org", "Helper")
	hr := f.newRequest(t, alice)

	_, err := f.chat.PostMessage(ctx, PostMessageInput{RequestID: hr.ID, SenderID: alice.ID, Text: "anyone?"})
	assert.ErrorIs(t, err, aid_errors.ErrUnauthorized, "pending requests have no conversation")

	_, err = f.requests.UpdateStatus(ctx, hr.ID, request.StatusAccepted, Actor{ID: bob.ID})
	require.NoError(t, err)

	_, err = f.chat.PostMessage(ctx, PostMessageInput{RequestID: hr.ID, SenderID: alice.ID, Text: "thanks"})
	assert.NoError(t, err)
	_, err = f.chat.PostMessage(ctx, PostMessageInput{RequestID: hr.ID, SenderID: bob.ID, Text: "on my way"})
	assert.NoError(t, err)
	_, err = f.chat.PostMessage(ctx, PostMessageInput{RequestID: hr.ID, SenderID: carol.ID, Text: "me too"})
	assert.ErrorIs(t, err, aid_errors.ErrUnauthorized)
}

func TestChatAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.register(t, "Alice", "alice@x.org", "Resident")
	bob := f.register(t, "Bob", "bob@x.org", "Helper")
	carol := f.register(t, "Carol", "carol@x.org", "Helper")
	hr := f.newRequest(t, alice)

	open, err := f.chat.Availability(ctx, hr.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, open)

	_, err = f.requests.UpdateStatus(ctx, hr.ID, request.StatusAccepted, Actor{ID: bob.ID})
	require.NoError(t, err)

	for viewer, want := range map[uuid.UUID]bool{alice.ID: true, bob.ID: true, carol.ID: false} {
		open, err := f.chat.Availability(ctx, hr.ID, viewer)
		require.NoError(t, err)
		assert.Equal(t, want, open)
	}

	_, err = f.chat.Availability(ctx, uuid.New(), alice.ID)
	assert.ErrorIs(t, err, aid_errors.ErrNotFound)
}

type stubPresigner struct {
	keys []string
}

func (p *stubPresigner) PresignPut(_ context.Context, key, contentType string, _ int64) (string, map[string]string, error) {
	p.keys = append(p.keys, key)
	return "https://upload.example/" + key, map[string]string{"Content-Type": contentType}, nil
}

func (p *stubPresigner) FileURL(key string) string {
	return "https://files.example/" + key
}

func TestAttachmentUpload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.register(t, "Alice", "alice@x.org", "Resident")
	hr := f.newRequest(t, alice)

	presigner := &stubPresigner{}
	core, logs := observer.New(zap.InfoLevel)
	svc := NewAttachmentService(f.store.Requests, presigner, &logger.Logger{Logger: zap.New(core)})

	res, err := svc.CreatePresignedUpload(ctx, PresignInput{RequestID: hr.ID, FileName: "Couch.JPG", ContentType: "image/jpeg", FileSize: 2048})
	require.NoError(t, err)
	assert.Contains(t, res.UploadKey, "requests/"+hr.ID.String()+"/")
	assert.Contains(t, res.UploadKey, ".jpg")
	assert.Equal(t, "https://files.example/"+res.UploadKey, res.FileURL)
	assert.Equal(t, "image/jpeg", res.Headers["Content-Type"])

	got, err := f.requests.GetByID(ctx, hr.ID)
	require.NoError(t, err)
	assert.Equal(t, res.FileURL, got.Attachments)

	entries := logs.FilterMessage("attachment presigned").All()
	require.Len(t, entries, 1)
	assert.Equal(t, res.UploadKey, entries[0].ContextMap()["key"])

	_, err = svc.CreatePresignedUpload(ctx, PresignInput{RequestID: hr.ID, FileName: "big.bin", ContentType: "application/octet-stream", FileSize: maxAttachmentBytes + 1})
	assert.ErrorIs(t, err, aid_errors.ErrInvalidInput)

	_, err = svc.CreatePresignedUpload(ctx, PresignInput{RequestID: uuid.New(), FileName: "a.png", ContentType: "image/png", FileSize: 1})
	assert.ErrorIs(t, err, aid_errors.ErrNotFound)
	assert.Len(t, presigner.keys, 1)
}

func TestAttachmentUploadNotConfigured(t *testing.T) {
	svc := NewAttachmentService(repository.NewMemoryStore().Requests, nil, nil)
	_, err := svc.CreatePresignedUpload(context.Background(), PresignInput{RequestID: uuid.New()})
	assert.ErrorIs(t, err, aid_errors.ErrNotConfigured)
}
