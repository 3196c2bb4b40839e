package service_test

import (
	"context"
	"testing"
	"time"

	"nexuscore-backend/internal/flow/flowtest"
	"nexuscore-backend/internal/seed"
	"nexuscore-backend/internal/session"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

const testSessionID = "sess-svc"

func newController(t *testing.T) (*session.Controller, *clockwork.FakeClock) {
	t.Helper()
	clock := flowtest.NewClock(time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC))
	return session.New(testSessionID, seed.Load(clock.Now()), clock), clock
}

// repoFor returns a mock repository that serves ctrl for every Get.
func repoFor(ctrl *session.Controller) *MockSessionRepo {
	repo := new(MockSessionRepo)
	repo.On("Get", context.Background(), testSessionID).Return(ctrl, nil)
	return repo
}

func signIn(t *testing.T, c *session.Controller, email string) {
	t.Helper()
	m, ok := c.FindMemberByEmail(email)
	require.True(t, ok, "seed member %s", email)
	c.Authenticate(m)
}
