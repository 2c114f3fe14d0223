package applications_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"flux-backend/src/models"
	"flux-backend/src/services/applications"
	"flux-backend/src/services/applications/apptest"
	"flux-backend/src/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ApplicationReceived(ctx context.Context, app *models.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func newInput(phone, email string) models.ApplicationInput {
	return models.ApplicationInput{
		Name:       "Asha Verma",
		Branch:     "IoT",
		Year:       "1st Year",
		Phone:      phone,
		Email:      email,
		WhyJoin:    "I like building robots.",
		SoftSkills: models.SingleSkills("Leadership, Teamwork"),
	}
}

func newService(repo applications.Repository, opts ...applications.Option) *applications.Service {
	return applications.NewService(repo, validation.New(), zap.NewNop(), opts...)
}

func TestCreateStoresNormalizedRecord(t *testing.T) {
	repo := apptest.NewMemoryRepository()
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newService(repo, applications.WithClock(func() time.Time { return fixed }))

	app, err := svc.Create(context.Background(), newInput(" 12345678 ", "Asha@X.com"))
	require.NoError(t, err)

	assert.False(t, app.ID.IsZero())
	assert.Equal(t, "asha@x.com", app.Email)
	assert.Equal(t, "12345678", app.Phone)
	assert.Equal(t, []string{"Leadership", "Teamwork"}, app.SoftSkills)
	assert.Equal(t, []string{}, app.HardSkills)
	assert.Equal(t, fixed, app.CreatedAt)
	assert.Equal(t, fixed, app.UpdatedAt)
	assert.Equal(t, 1, repo.Len())
}

func TestCreateTimestampsHaveStorePrecision(t *testing.T) {
	repo := apptest.NewMemoryRepository()
	precise := time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.UTC)
	svc := newService(repo, applications.WithClock(func() time.Time { return precise }))

	app, err := svc.Create(context.Background(), newInput("12345678", "a@x.com"))
	require.NoError(t, err)

	want := time.Date(2026, 3, 1, 10, 0, 0, 123000000, time.UTC)
	assert.Equal(t, want, app.CreatedAt)
	assert.Equal(t, want, app.UpdatedAt)
}

func TestCreateValidationFailsBeforeStore(t *testing.T) {
	repo := apptest.NewMemoryRepository()
	svc := newService(repo)

	_, err := svc.Create(context.Background(), models.ApplicationInput{Email: "bad"})

	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Messages, `"name" is required`)
	assert.Contains(t, verrs.Messages, `"email" must be a valid email`)
	assert.Equal(t, 0, repo.Len())
}

func TestCreateDuplicateFields(t *testing.T) {
	svc := newService(apptest.NewMemoryRepository())
	_, err := svc.Create(context.Background(), newInput("12345678", "a@x.com"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), newInput("87654321", "A@x.com"))
	var dup *applications.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)
	assert.Equal(t, "email already exists", dup.Error())

	_, err = svc.Create(context.Background(), newInput("12345678", "b@x.com"))
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "phone", dup.Field)
}

func TestCreateStoreFailureIsGeneric(t *testing.T) {
	repo := apptest.NewMemoryRepository()
	repo.InsertErr = errors.New("connection reset by peer")
	svc := newService(repo)

	_, err := svc.Create(context.Background(), newInput("12345678", "a@x.com"))
	assert.ErrorIs(t, err, applications.ErrSaveFailed)
	assert.NotContains(t, err.Error(), "connection reset")
}

func TestCreateNotifiesAndIgnoresNotifierFailure(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("ApplicationReceived", mock.Anything, mock.MatchedBy(func(a *models.Application) bool {
		return a.Email == "a@x.com"
	})).Return(errors.New("redis down"))

	svc := newService(apptest.NewMemoryRepository(), applications.WithNotifier(notifier))
	app, err := svc.Create(context.Background(), newInput("12345678", "a@x.com"))

	require.NoError(t, err)
	assert.NotNil(t, app)
	notifier.AssertExpectations(t)
}

func TestCreateDoesNotNotifyOnRejection(t *testing.T) {
	notifier := new(MockNotifier)
	svc := newService(apptest.NewMemoryRepository(), applications.WithNotifier(notifier))

	_, err := svc.Create(context.Background(), models.ApplicationInput{})
	require.Error(t, err)
	notifier.AssertNotCalled(t, "ApplicationReceived", mock.Anything, mock.Anything)
}

func TestConcurrentDuplicateEmailOnlyOneWins(t *testing.T) {
	svc := newService(apptest.NewMemoryRepository())

	const clients = 8
	var wg sync.WaitGroup
	errs := make([]error, clients)
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), newInput(phoneFor(i), "same@x.com"))
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, err := range errs {
		var dup *applications.DuplicateError
		switch {
		case err == nil:
			created++
		case errors.As(err, &dup):
			conflicts++
			assert.Equal(t, "email", dup.Field)
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, clients-1, conflicts)
}

func phoneFor(i int) string { return fmt.Sprintf("9%07d", i) }

func emailFor(i int) string { return fmt.Sprintf("applicant%d@x.com", i) }

func TestListNewestFirstCapped(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	svc := newService(apptest.NewMemoryRepository(), applications.WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}))

	var last *models.Application
	for i := 0; i < applications.MaxListSize+1; i++ {
		app, err := svc.Create(context.Background(), newInput(phoneFor(i), emailFor(i)))
		require.NoError(t, err)
		last = app
	}

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, applications.MaxListSize)
	assert.Equal(t, last.ID, list[0].ID)
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].CreatedAt.After(list[i].CreatedAt))
	}
	assert.Equal(t, emailFor(1), list[len(list)-1].Email)
}

func TestListStoreFailure(t *testing.T) {
	repo := apptest.NewMemoryRepository()
	repo.ListErr = errors.New("boom")

	_, err := newService(repo).List(context.Background())
	assert.ErrorIs(t, err, applications.ErrFetchFailed)
}

func TestPing(t *testing.T) {
	repo := apptest.NewMemoryRepository()
	svc := newService(repo)
	assert.NoError(t, svc.Ping(context.Background()))

	repo.PingErr = errors.New("down")
	assert.Error(t, svc.Ping(context.Background()))
}
