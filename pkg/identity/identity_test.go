package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb/badgerstore"
)

var fixedNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

// fakeClerk implements the slice of the Clerk backend API the client uses.
type fakeClerk struct {
	mu      sync.Mutex
	users   map[string]*ClerkUser
	calls   []string
	nextID  int
	failAll bool
}

func newFakeClerk(t *testing.T) (*fakeClerk, *httptest.Server) {
	f := &fakeClerk{users: map[string]*ClerkUser{}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func writeClerkError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"errors": []map[string]string{{"message": msg, "long_message": msg, "code": "error"}},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeClerk) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, r.Method+" "+r.URL.Path)

	if r.Header.Get("Authorization") != "Bearer sk_test" {
		writeClerkError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if f.failAll {
		writeClerkError(w, http.StatusBadGateway, "clerk is having a bad day")
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.Method == http.MethodPost && len(parts) == 1 && parts[0] == "users":
		var params CreateUserParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeClerkError(w, http.StatusBadRequest, err.Error())
			return
		}
		if params.Password == "weak" {
			writeClerkError(w, http.StatusUnprocessableEntity, "Password has been found in an online data breach.")
			return
		}
		f.nextID++
		u := &ClerkUser{
			ID:                    fmt.Sprintf("user_%d", f.nextID),
			FirstName:             params.FirstName,
			LastName:              params.LastName,
			Username:              params.Username,
			PrimaryEmailAddressID: "idn_1",
			EmailAddresses:        []ClerkEmailAddress{{ID: "idn_1", EmailAddress: params.EmailAddress[0]}},
			PublicMetadata:        params.PublicMetadata,
			CreatedAt:             1741944600000,
			UpdatedAt:             1741944600000,
		}
		f.users[u.ID] = u
		writeJSON(w, u)
	case r.Method == http.MethodGet && len(parts) == 1 && parts[0] == "users":
		out := []ClerkUser{}
		for i := 1; i <= f.nextID; i++ {
			if u, ok := f.users[fmt.Sprintf("user_%d", i)]; ok {
				out = append(out, *u)
			}
		}
		writeJSON(w, out)
	case len(parts) >= 2 && parts[0] == "users":
		u, ok := f.users[parts[1]]
		if !ok {
			writeClerkError(w, http.StatusNotFound, "User not found")
			return
		}
		switch {
		case r.Method == http.MethodGet && len(parts) == 2:
			writeJSON(w, u)
		case r.Method == http.MethodDelete && len(parts) == 2:
			delete(f.users, u.ID)
			writeJSON(w, map[string]any{"object": "user", "id": u.ID, "deleted": true})
		case r.Method == http.MethodPost && len(parts) == 3 && parts[2] == "ban":
			u.Banned = true
			writeJSON(w, u)
		case r.Method == http.MethodPost && len(parts) == 3 && parts[2] == "unban":
			u.Banned = false
			writeJSON(w, u)
		default:
			writeClerkError(w, http.StatusMethodNotAllowed, "unsupported")
		}
	default:
		writeClerkError(w, http.StatusNotFound, "unknown route")
	}
}

func (f *fakeClerk) user(id string) *ClerkUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id]
}

// flakyStore fails the next n writes.
type flakyStore struct {
	rtdb.Store
	mu       sync.Mutex
	failures int
}

var errStoreDown = errors.New("store unavailable")

func (s *flakyStore) fail() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return true
	}
	return false
}

func (s *flakyStore) Set(ctx context.Context, path string, v any) error {
	if s.fail() {
		return errStoreDown
	}
	return s.Store.Set(ctx, path, v)
}

func (s *flakyStore) Update(ctx context.Context, path string, fields map[string]any) error {
	if s.fail() {
		return errStoreDown
	}
	return s.Store.Update(ctx, path, fields)
}

func newTestService(t *testing.T) (*Service, *fakeClerk, *flakyStore) {
	common.SetTestLoggerNop()

	clerk, srv := newFakeClerk(t)
	store, err := badgerstore.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	flaky := &flakyStore{Store: store}
	svc := NewService(NewClerkClient(srv.URL, "sk_test"), flaky)
	svc.Clock = func() time.Time { return fixedNow }
	svc.RetryBackoff = time.Millisecond
	return svc, clerk, flaky
}

func TestCreateAndGetUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	profile, err := svc.CreateUser(ctx, &CreateUserInput{
		EmailAddress: "tendai@mine.example",
		Password:     "correct-horse",
		FirstName:    "Tendai",
		LastName:     "Moyo",
		Role:         "supervisor",
	})
	require.NoError(t, err)
	assert.Equal(t, "user_1", profile.ClerkID)
	assert.Equal(t, "tendai@mine.example", profile.EmailAddress)
	assert.Equal(t, models.UserStatusActive, profile.Status)
	assert.Equal(t, "supervisor", profile.Role)
	assert.Equal(t, models.Timestamp(fixedNow.UnixMilli()), profile.CreatedAt)

	var mirrored models.UserProfile
	found, err := rtdb.GetInto(ctx, svc.Store, "users/user_1", &mirrored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, *profile, mirrored)

	got, err := svc.GetUser(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "Tendai", got.FirstName)
	assert.Equal(t, "supervisor", got.Role)

	users, err := svc.ListUsers(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)

	_, err = svc.GetUser(ctx, "user_404")
	assert.True(t, common.IsKind(err, common.ErrorKindNotFound))
}

func TestCreateUser_Validation(t *testing.T) {
	svc, clerk, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &CreateUserInput{EmailAddress: "a@b.c"})
	require.Error(t, err)
	appErr := common.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, common.ErrorKindValidation, appErr.Kind)
	assert.Equal(t, []string{"password"}, appErr.Details)
	assert.Empty(t, clerk.calls)

	// provider validation failures pass the provider message through
	_, err = svc.CreateUser(ctx, &CreateUserInput{EmailAddress: "a@b.c", Password: "weak"})
	appErr = common.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, common.ErrorKindUpstream, appErr.Kind)
	assert.Equal(t, "Password has been found in an online data breach.", appErr.Message)
}

func TestCreateUser_MirrorRetriesThenSucceeds(t *testing.T) {
	svc, clerk, flaky := newTestService(t)
	ctx := context.Background()

	flaky.failures = DefaultMirrorAttempts - 1

	profile, err := svc.CreateUser(ctx, &CreateUserInput{EmailAddress: "a@b.c", Password: "pw-123456"})
	require.NoError(t, err)
	assert.NotNil(t, clerk.user(profile.ClerkID))
}

func TestCreateUser_MirrorFailureDeletesProviderUser(t *testing.T) {
	svc, clerk, flaky := newTestService(t)
	ctx := context.Background()

	flaky.failures = DefaultMirrorAttempts

	_, err := svc.CreateUser(ctx, &CreateUserInput{EmailAddress: "a@b.c", Password: "pw-123456"})
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.ErrorKindUpstream))
	assert.ErrorIs(t, err, errStoreDown)

	assert.Nil(t, clerk.user("user_1"))
	assert.Contains(t, clerk.calls, "DELETE /users/user_1")
}

func TestBanAndUnbanUser(t *testing.T) {
	svc, clerk, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &CreateUserInput{EmailAddress: "a@b.c", Password: "pw-123456"})
	require.NoError(t, err)

	banned, err := svc.BanUser(ctx, created.ClerkID, "tailgating")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusBanned, banned.Status)
	assert.Equal(t, "tailgating", banned.BanReason)
	assert.True(t, clerk.user(created.ClerkID).Banned)

	var mirrored models.UserProfile
	_, err = rtdb.GetInto(ctx, svc.Store, "users/"+created.ClerkID, &mirrored)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusBanned, mirrored.Status)
	assert.Equal(t, models.Timestamp(fixedNow.UnixMilli()), mirrored.BannedAt)
	assert.Equal(t, created.EmailAddress, mirrored.EmailAddress)

	unbanned, err := svc.UnbanUser(ctx, created.ClerkID, "appeal accepted")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, unbanned.Status)
	assert.Equal(t, "appeal accepted", unbanned.UnbanReason)
	assert.False(t, clerk.user(created.ClerkID).Banned)

	_, err = svc.BanUser(ctx, "user_404", "")
	assert.True(t, common.IsKind(err, common.ErrorKindNotFound))
}

func TestBanUser_MirrorFailureUnbans(t *testing.T) {
	svc, clerk, flaky := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &CreateUserInput{EmailAddress: "a@b.c", Password: "pw-123456"})
	require.NoError(t, err)

	flaky.failures = DefaultMirrorAttempts
	_, err = svc.BanUser(ctx, created.ClerkID, "")
	assert.True(t, common.IsKind(err, common.ErrorKindUpstream))
	assert.False(t, clerk.user(created.ClerkID).Banned)
	assert.Contains(t, clerk.calls, "POST /users/"+created.ClerkID+"/unban")
}

func TestBanUser_WithoutMirrorProfile(t *testing.T) {
	svc, clerk, _ := newTestService(t)
	ctx := context.Background()

	clerk.users["user_legacy"] = &ClerkUser{ID: "user_legacy"}

	profile, err := svc.BanUser(ctx, "user_legacy", "")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusBanned, profile.Status)

	v, err := svc.Store.Get(ctx, "users/user_legacy")
	require.NoError(t, err)
	assert.False(t, v.Exists())
}

func TestDeleteUser(t *testing.T) {
	svc, clerk, flaky := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &CreateUserInput{EmailAddress: "a@b.c", Password: "pw-123456"})
	require.NoError(t, err)
	_, err = svc.RecordLogin(ctx, created.ClerkID, &models.LoginRecord{IPAddress: "10.0.0.1"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, created.ClerkID))
	assert.Nil(t, clerk.user(created.ClerkID))

	v, err := svc.Store.Get(ctx, "users/"+created.ClerkID)
	require.NoError(t, err)
	assert.False(t, v.Exists())
	history, err := svc.GetLoginHistory(ctx, created.ClerkID, 0, "")
	require.NoError(t, err)
	assert.Empty(t, history)

	err = svc.DeleteUser(ctx, created.ClerkID)
	assert.True(t, common.IsKind(err, common.ErrorKindNotFound))

	// deletes cannot be undone, the mirror failure is reported
	second, err := svc.CreateUser(ctx, &CreateUserInput{EmailAddress: "x@y.z", Password: "pw-123456"})
	require.NoError(t, err)
	flaky.failures = DefaultMirrorAttempts
	err = svc.DeleteUser(ctx, second.ClerkID)
	assert.True(t, common.IsKind(err, common.ErrorKindUpstream))
	assert.Nil(t, clerk.user(second.ClerkID))
}

func TestLoginHistory(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecordLogin(ctx, "", &models.LoginRecord{})
	assert.True(t, common.IsKind(err, common.ErrorKindValidation))

	var keys []string
	for i := 0; i < 5; i++ {
		rec, err := svc.RecordLogin(ctx, "user_1", &models.LoginRecord{
			Timestamp: models.Timestamp(1741944600000 + int64(i)),
			IPAddress: fmt.Sprintf("10.0.0.%d", i),
			UserAgent: "helmet-dashboard",
		})
		require.NoError(t, err)
		assert.Equal(t, DefaultLoginMethod, rec.LoginMethod)
		keys = append(keys, rec.Key)
	}

	page, err := svc.GetLoginHistory(ctx, "user_1", 2, "")
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "10.0.0.4", page[0].IPAddress)
	assert.Equal(t, "10.0.0.3", page[1].IPAddress)
	assert.Equal(t, keys[3], page[1].Key)

	page, err = svc.GetLoginHistory(ctx, "user_1", 2, page[1].Key)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "10.0.0.2", page[0].IPAddress)
	assert.Equal(t, "10.0.0.1", page[1].IPAddress)

	page, err = svc.GetLoginHistory(ctx, "user_1", 0, "")
	require.NoError(t, err)
	assert.Len(t, page, 5)
}

func TestClerkClient_UpstreamFailure(t *testing.T) {
	common.SetTestLoggerNop()

	clerk, srv := newFakeClerk(t)
	clerk.failAll = true

	client := NewClerkClient(srv.URL, "sk_test")
	_, err := client.ListUsers(context.Background(), 10, 0)
	appErr := common.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, common.ErrorKindUpstream, appErr.Kind)
	assert.Equal(t, "clerk is having a bad day", appErr.Message)

	unauthorized := NewClerkClient(srv.URL, "sk_wrong")
	_, err = unauthorized.GetUser(context.Background(), "user_1")
	assert.True(t, common.IsKind(err, common.ErrorKindUpstream))
}
