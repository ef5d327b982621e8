// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/storage"
	"github.com/omnicore/restaurant-service/internal/tracing"
	"github.com/omnicore/restaurant-service/internal/types"
	"github.com/omnicore/restaurant-service/pkg/authentication"
)

type fakeStorage struct {
	usersByID    map[string]*types.User
	usersByEmail map[string]*types.User
	memberships  map[string][]*types.Membership
	tenants      map[string][]*types.Tenant
	nextID       int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		usersByID:    make(map[string]*types.User),
		usersByEmail: make(map[string]*types.User),
		memberships:  make(map[string][]*types.Membership),
		tenants:      make(map[string][]*types.Tenant),
	}
}

func (f *fakeStorage) CreateUser(_ context.Context, u *types.User) (*types.User, error) {
	if _, ok := f.usersByEmail[u.Email]; ok {
		return nil, storage.ErrDuplicateKey
	}
	f.nextID++
	created := *u
	created.ID = "user-" + string(rune('0'+f.nextID))
	created.CreatedAt = time.Now()
	f.usersByID[created.ID] = &created
	f.usersByEmail[created.Email] = &created
	return &created, nil
}

func (f *fakeStorage) GetUserByID(_ context.Context, id string) (*types.User, error) {
	u, ok := f.usersByID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeStorage) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	u, ok := f.usersByEmail[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeStorage) ListActiveMembershipsByUserID(_ context.Context, userID string) ([]*types.Membership, error) {
	return f.memberships[userID], nil
}

func (f *fakeStorage) ListActiveTenantsByUserID(_ context.Context, userID string) ([]*types.Tenant, error) {
	return f.tenants[userID], nil
}

type memoryDenylist struct {
	revoked map[string]bool
}

func (m *memoryDenylist) RevokeToken(_ context.Context, jti, _ string, _ time.Time) error {
	if m.revoked == nil {
		m.revoked = make(map[string]bool)
	}
	m.revoked[jti] = true
	return nil
}

func (m *memoryDenylist) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	return m.revoked[jti], nil
}

func newTestService(store StorageInterface) (*Service, *memoryDenylist) {
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor()
	logger := logging.NewNoopLogger()
	denylist := &memoryDenylist{}
	issuer := authentication.NewTokenIssuer("secret", "restaurant-service", 15*time.Minute, time.Hour, tracer, monitor, logger)
	verifier := authentication.NewJWTVerifier("secret", "restaurant-service", denylist, tracer, monitor, logger)
	return NewService(store, issuer, verifier, denylist, tracer, monitor, logger), denylist
}

func seedUser(t *testing.T, store *fakeStorage, email, password string, active bool) *types.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	u, err := store.CreateUser(context.Background(), &types.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test User",
		Active:       active,
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	u.Active = active
	return u
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	store := newFakeStorage()
	service, _ := newTestService(store)

	session, err := service.Register(ctx, "Owner@Example.com ", "secret-password", "Restaurant Owner")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if session.User.Email != "owner@example.com" {
		t.Errorf("email = %q, want normalized owner@example.com", session.User.Email)
	}
	if session.Tokens == nil || session.Tokens.AccessToken == "" {
		t.Fatal("no tokens issued")
	}
	if session.User.PasswordHash == "secret-password" {
		t.Fatal("password stored in clear")
	}

	_, err = service.Register(ctx, "owner@example.com", "other-password", "Someone Else")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := newFakeStorage()
	user := seedUser(t, store, "owner@example.com", "correct-password", true)
	seedUser(t, store, "gone@example.com", "whatever", false)
	store.tenants[user.ID] = []*types.Tenant{{ID: "tenant-a", Name: "Bistro", Slug: "bistro", Active: true}}

	service, _ := newTestService(store)

	t.Run("success", func(t *testing.T) {
		session, err := service.Login(ctx, "owner@example.com", "correct-password")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if session.User.ID != user.ID {
			t.Errorf("user = %s, want %s", session.User.ID, user.ID)
		}
		if len(session.Tenants) != 1 || session.Tenants[0].ID != "tenant-a" {
			t.Errorf("tenants = %+v, want tenant-a", session.Tenants)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, "owner@example.com", "wrong")
		if !errors.Is(err, ErrInvalidLogin) {
			t.Errorf("Login() error = %v, want ErrInvalidLogin", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(ctx, "nobody@example.com", "whatever")
		if !errors.Is(err, ErrInvalidLogin) {
			t.Errorf("Login() error = %v, want ErrInvalidLogin", err)
		}
	})

	t.Run("suspended account", func(t *testing.T) {
		_, err := service.Login(ctx, "gone@example.com", "whatever")
		if !errors.Is(err, ErrInvalidLogin) {
			t.Errorf("Login() error = %v, want ErrInvalidLogin", err)
		}
	})
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	store := newFakeStorage()
	seedUser(t, store, "owner@example.com", "correct-password", true)
	service, _ := newTestService(store)

	session, err := service.Login(ctx, "owner@example.com", "correct-password")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	rotated, err := service.Refresh(ctx, session.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if rotated.AccessToken == session.Tokens.AccessToken {
		t.Error("rotation returned the same access token")
	}

	// The consumed refresh token is revoked.
	_, err = service.Refresh(ctx, session.Tokens.RefreshToken)
	if !errors.Is(err, authentication.ErrRevokedCredential) {
		t.Errorf("replayed Refresh() error = %v, want ErrRevokedCredential", err)
	}

	// An access token is not a refresh token.
	_, err = service.Refresh(ctx, rotated.AccessToken)
	if !errors.Is(err, authentication.ErrInvalidCredential) {
		t.Errorf("Refresh(access) error = %v, want ErrInvalidCredential", err)
	}
}

func TestLogoutRevokesTokens(t *testing.T) {
	ctx := context.Background()
	store := newFakeStorage()
	seedUser(t, store, "owner@example.com", "correct-password", true)
	service, _ := newTestService(store)

	session, err := service.Login(ctx, "owner@example.com", "correct-password")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	accessClaims, err := service.verifier.VerifyToken(ctx, session.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}

	if err := service.Logout(ctx, accessClaims, session.Tokens.RefreshToken); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	// Both tokens are unusable on the very next request.
	if _, err := service.verifier.VerifyToken(ctx, session.Tokens.AccessToken); !errors.Is(err, authentication.ErrRevokedCredential) {
		t.Errorf("access token after logout: error = %v, want ErrRevokedCredential", err)
	}
	if _, err := service.Refresh(ctx, session.Tokens.RefreshToken); !errors.Is(err, authentication.ErrRevokedCredential) {
		t.Errorf("refresh token after logout: error = %v, want ErrRevokedCredential", err)
	}
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	store := newFakeStorage()
	user := seedUser(t, store, "owner@example.com", "correct-password", true)
	store.memberships[user.ID] = []*types.Membership{
		{ID: "m-1", TenantID: "tenant-a", UserID: user.ID, Role: "owner", Active: true},
	}
	store.tenants[user.ID] = []*types.Tenant{{ID: "tenant-a", Name: "Bistro", Slug: "bistro", Active: true}}

	service, _ := newTestService(store)

	profile, err := service.Profile(ctx, user.ID)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if profile.User.ID != user.ID {
		t.Errorf("user = %s, want %s", profile.User.ID, user.ID)
	}
	if len(profile.Memberships) != 1 || profile.Memberships[0].Role != "owner" {
		t.Errorf("memberships = %+v, want the owner membership", profile.Memberships)
	}

	if _, err := service.Profile(ctx, "user-99"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Profile(unknown) error = %v, want ErrNotFound", err)
	}
}
