package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/firmanbudi/otpgate/internal/auth/entity"
	"github.com/firmanbudi/otpgate/internal/pkg/goerror"
	"github.com/firmanbudi/otpgate/internal/pkg/hash"
	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
	"github.com/firmanbudi/otpgate/internal/pkg/jwt"
	"github.com/firmanbudi/otpgate/internal/pkg/validator"
	"github.com/firmanbudi/otpgate/internal/shared/event"
)

type fakeUsers struct {
	byEmail  map[string]*entity.User
	findErr  error
	saveErr  error
	clearErr error

	savedID    int64
	saved      *entity.Challenge
	clearCalls int
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return user, nil
}

func (f *fakeUsers) SaveChallenge(_ context.Context, userID int64, ch entity.Challenge) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedID = userID
	f.saved = &ch
	for _, user := range f.byEmail {
		if user.ID == userID {
			user.Challenge = &ch
		}
	}
	return nil
}

func (f *fakeUsers) ClearChallenge(_ context.Context, userID int64, code string) (bool, error) {
	f.clearCalls++
	if f.clearErr != nil {
		return false, f.clearErr
	}
	for _, user := range f.byEmail {
		if user.ID == userID && user.Challenge != nil && user.Challenge.Code == code {
			user.Challenge = nil
			return true, nil
		}
	}
	return false, nil
}

type fakePublisher struct {
	err    error
	events []event.LoginChallengeIssued
}

func (f *fakePublisher) ChallengeIssued(_ context.Context, ev event.LoginChallengeIssued) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type fixedCodes struct {
	code string
	err  error
}

func (f *fixedCodes) Generate() (string, error) { return f.code, f.err }

type staticID struct{ id string }

func (s *staticID) Generate() string { return s.id }

const (
	testEmail    = "jane@example.com"
	testPassword = "correct-horse-9"
)

var testNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	uc        *UseCase
	users     *fakeUsers
	publisher *fakePublisher
	clock     *fixedClock
	codes     *fixedCodes
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithHash(t, hash.NewBcrypt(4, ""))
}

func newTestEnvWithHash(t *testing.T, hasher hash.Hash) *testEnv {
	t.Helper()

	v10, err := validator.NewV10()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	clk := &fixedClock{now: testNow}
	ids := &staticID{id: "evt-0001"}

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:    "otpgate-test",
		Audiences: []string{"otpgate"},
		TTL:       15 * time.Minute,
		Clock:     clk,
		TokenID:   ids,
	})
	if err != nil {
		t.Fatalf("new jwt: %v", err)
	}

	hashed, err := hasher.Hash(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	users := &fakeUsers{byEmail: map[string]*entity.User{
		testEmail: {
			ID:           42,
			Email:        testEmail,
			FullName:     "Jane Roe",
			PasswordHash: string(hashed),
		},
	}}
	publisher := &fakePublisher{}
	codes := &fixedCodes{code: "654321"}

	uc := New(Dependency{
		Validator: v10,
		Users:     users,
		Publisher: publisher,
		Hash:      hasher,
		Codes:     codes,
		JWT:       signer,
		Clock:     clk,
		EventID:   ids,
		Telemetry: instrument.NewNoop(),
	})

	return &testEnv{uc: uc, users: users, publisher: publisher, clock: clk, codes: codes}
}

func (e *testEnv) user() *entity.User {
	return e.users.byEmail[testEmail]
}
