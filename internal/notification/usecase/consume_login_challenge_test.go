package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/firmanbudi/otpgate/internal/notification/entity"
	"github.com/firmanbudi/otpgate/internal/pkg/config"
	"github.com/firmanbudi/otpgate/internal/pkg/idempotency"
	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
	"github.com/firmanbudi/otpgate/internal/pkg/mail"
	"github.com/firmanbudi/otpgate/internal/pkg/validator"
)

type fakeRepo struct {
	created []entity.CreateDeliveryLog
	updated []entity.UpdateDeliveryLog
	err     error
}

func (f *fakeRepo) CreateDeliveryLog(_ context.Context, data entity.CreateDeliveryLog) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, data)
	return data.ID, nil
}

func (f *fakeRepo) UpdateDeliveryLogStatus(_ context.Context, u entity.UpdateDeliveryLog) error {
	f.updated = append(f.updated, u)
	return nil
}

type fakeMail struct {
	sent     []mail.Message
	failures int
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("smtp: connection refused")
	}
	f.sent = append(f.sent, msg)
	return nil
}

type seqID struct{ next int64 }

func (s *seqID) Generate() int64 {
	s.next++
	return s.next
}

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

const testConfigYAML = `
modules:
  notification:
    retry_after: 2
    max_send_attempts: 2
`

type testEnv struct {
	uc    *Usecase
	repo  *fakeRepo
	mail  *fakeMail
	clock *stubClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	t.Cleanup(func() { cfg.Close() })

	v10, err := validator.NewV10()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := &fakeRepo{}
	mailer := &fakeMail{}
	clk := &stubClock{now: time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)}

	uc := NewNotification(Dependency{
		RepoDB:      repo,
		RepoMail:    mailer,
		Idempotency: idempotency.New(client),
		Config:      cfg,
		UID:         &seqID{},
		Clock:       clk,
		Validator:   v10,
		Instrument:  instrument.NewNoop(),
	})

	return &testEnv{uc: uc, repo: repo, mail: mailer, clock: clk}
}

func validInput(clk *stubClock) ConsumeLoginChallengeInput {
	return ConsumeLoginChallengeInput{
		EventID:   "evt-1001",
		UserID:    42,
		Email:     "jane@example.com",
		Name:      "Jane Roe",
		Code:      "654321",
		ExpiresAt: clk.now.Add(10 * time.Minute),
	}
}

func TestConsumeLoginChallengeSendsEmail(t *testing.T) {

	// Arrange
	env := newTestEnv(t)
	in := validInput(env.clock)

	// Act
	err := env.uc.ConsumeLoginChallenge(context.Background(), in)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.mail.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(env.mail.sent))
	}
	msg := env.mail.sent[0]
	if msg.To[0] != in.Email {
		t.Fatalf("unexpected recipient: %v", msg.To)
	}
	if !strings.Contains(msg.TextBody, in.Code) || !strings.Contains(msg.HTMLBody, in.Code) {
		t.Fatal("expected the code in both bodies")
	}
	if len(env.repo.created) != 1 || env.repo.created[0].Status != entity.DeliveryStatusQueued {
		t.Fatalf("expected queued delivery log, got %+v", env.repo.created)
	}
	if len(env.repo.updated) != 1 || env.repo.updated[0].Status != entity.DeliveryStatusSent {
		t.Fatalf("expected sent delivery log, got %+v", env.repo.updated)
	}
}

func TestConsumeLoginChallengeSkipsDuplicate(t *testing.T) {

	// Arrange
	env := newTestEnv(t)
	in := validInput(env.clock)
	if err := env.uc.ConsumeLoginChallenge(context.Background(), in); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}

	// Act
	err := env.uc.ConsumeLoginChallenge(context.Background(), in)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error on replay: %v", err)
	}
	if len(env.mail.sent) != 1 {
		t.Fatalf("expected replay to be skipped, got %d emails", len(env.mail.sent))
	}
}

func TestConsumeLoginChallengeRetriesSend(t *testing.T) {

	// Arrange
	env := newTestEnv(t)
	env.mail.failures = 1

	// Act
	err := env.uc.ConsumeLoginChallenge(context.Background(), validInput(env.clock))

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.mail.sent) != 1 {
		t.Fatalf("expected retry to deliver, got %d emails", len(env.mail.sent))
	}
	if env.repo.updated[0].Status != entity.DeliveryStatusSent {
		t.Fatalf("expected sent status after retry, got %v", env.repo.updated[0].Status)
	}
}

func TestConsumeLoginChallengeMarksFailure(t *testing.T) {

	// Arrange
	env := newTestEnv(t)
	env.mail.failures = 100

	// Act
	err := env.uc.ConsumeLoginChallenge(context.Background(), validInput(env.clock))

	// Assert
	if err == nil {
		t.Fatal("expected error when every attempt fails")
	}
	if len(env.repo.updated) != 1 || env.repo.updated[0].Status != entity.DeliveryStatusFailed {
		t.Fatalf("expected failed delivery log, got %+v", env.repo.updated)
	}
	if env.repo.updated[0].NextRetryAt == nil {
		t.Fatal("expected a retry timestamp on failure")
	}
	wantRetry := env.clock.now.Add(2 * time.Minute)
	if !env.repo.updated[0].NextRetryAt.Equal(wantRetry) {
		t.Fatalf("expected retry at %v, got %v", wantRetry, *env.repo.updated[0].NextRetryAt)
	}
}

func TestConsumeLoginChallengeDropsInvalidPayload(t *testing.T) {

	// Arrange
	env := newTestEnv(t)
	in := validInput(env.clock)
	in.Code = "not-a-code"

	// Act
	err := env.uc.ConsumeLoginChallenge(context.Background(), in)

	// Assert: bad payloads are dropped, not retried.
	if err != nil {
		t.Fatalf("expected nil for invalid payload, got %v", err)
	}
	if len(env.mail.sent) != 0 || len(env.repo.created) != 0 {
		t.Fatal("expected no delivery for invalid payload")
	}
}
