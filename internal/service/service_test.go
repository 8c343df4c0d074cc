package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Shivanand-hulikatti/activity-signup/internal/model"
	"github.com/Shivanand-hulikatti/activity-signup/internal/repository"
	"github.com/Shivanand-hulikatti/activity-signup/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnvironment struct {
	ctx   context.Context
	store *repository.MemoryStore
	svc   *service.ActivityService
}

func setup(opts service.Options) testEnvironment {
	store := repository.NewMemoryStore(model.Catalog{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 2,
			Participants:    []string{},
		},
	})
	return testEnvironment{
		ctx:   context.Background(),
		store: store,
		svc:   service.NewActivityService(store, opts),
	}
}

func participants(t *testing.T, e testEnvironment, name string) []string {
	t.Helper()
	catalog, err := e.svc.ListActivities(e.ctx)
	require.NoError(t, err)
	return catalog[name].Participants
}

func TestSignupSuccess(t *testing.T) {
	e := setup(service.Options{})

	resp, err := e.svc.Signup(e.ctx, model.SignupRequest{ActivityName: "Chess Club", Email: "a@b.edu"})
	require.NoError(t, err)
	assert.Equal(t, "Signed up a@b.edu for Chess Club", resp.Message)
	assert.Equal(t, []string{"a@b.edu"}, participants(t, e, "Chess Club"))
}

func TestSignupTrimsEmail(t *testing.T) {
	e := setup(service.Options{})

	_, err := e.svc.Signup(e.ctx, model.SignupRequest{ActivityName: "Chess Club", Email: "  a@b.edu "})
	require.NoError(t, err)

	_, err = e.svc.Signup(e.ctx, model.SignupRequest{ActivityName: "Chess Club", Email: "a@b.edu"})
	assert.ErrorIs(t, err, repository.ErrAlreadySignedUp)
}

func TestSignupRejectsEmptyEmail(t *testing.T) {
	e := setup(service.Options{})

	_, err := e.svc.Signup(e.ctx, model.SignupRequest{ActivityName: "Chess Club", Email: "   "})
	require.Error(t, err)

	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email is required", verr.Msg)
	assert.Empty(t, participants(t, e, "Chess Club"))
}

func TestSignupUnknownActivity(t *testing.T) {
	e := setup(service.Options{})

	_, err := e.svc.Signup(e.ctx, model.SignupRequest{ActivityName: "chess club", Email: "a@b.edu"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSignupIgnoresCapacityByDefault(t *testing.T) {
	e := setup(service.Options{})

	for _, email := range []string{"a@b.edu", "b@b.edu", "c@b.edu"} {
		_, err := e.svc.Signup(e.ctx, model.SignupRequest{ActivityName: "Chess Club", Email: email})
		require.NoError(t, err)
	}
	assert.Len(t, participants(t, e, "Chess Club"), 3)
}

func TestSignupEnforcesCapacityWhenEnabled(t *testing.T) {
	e := setup(service.Options{EnforceCapacity: true})

	for _, email := range []string{"a@b.edu", "b@b.edu"} {
		_, err := e.svc.Signup(e.ctx, model.SignupRequest{ActivityName: "Chess Club", Email: email})
		require.NoError(t, err)
	}

	_, err := e.svc.Signup(e.ctx, model.SignupRequest{ActivityName: "Chess Club", Email: "c@b.edu"})
	assert.ErrorIs(t, err, repository.ErrActivityFull)
	assert.Len(t, participants(t, e, "Chess Club"), 2)
}

func TestUnregisterSuccess(t *testing.T) {
	e := setup(service.Options{})
	_, err := e.svc.Signup(e.ctx, model.SignupRequest{ActivityName: "Chess Club", Email: "a@b.edu"})
	require.NoError(t, err)

	resp, err := e.svc.Unregister(e.ctx, model.SignupRequest{ActivityName: "Chess Club", Email: "a@b.edu"})
	require.NoError(t, err)
	assert.Equal(t, "Unregistered a@b.edu from Chess Club", resp.Message)
	assert.Empty(t, participants(t, e, "Chess Club"))
}

func TestUnregisterNotRegistered(t *testing.T) {
	e := setup(service.Options{})

	_, err := e.svc.Unregister(e.ctx, model.SignupRequest{ActivityName: "Chess Club", Email: "a@b.edu"})
	assert.ErrorIs(t, err, repository.ErrNotRegistered)
}

func TestUnregisterUnknownActivity(t *testing.T) {
	e := setup(service.Options{})

	_, err := e.svc.Unregister(e.ctx, model.SignupRequest{ActivityName: "nonexistent", Email: "a@b.edu"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

type failingStore struct{ err error }

func (f failingStore) List(context.Context) (model.Catalog, error) { return nil, f.err }
func (f failingStore) AddParticipant(context.Context, string, string, bool) error {
	return f.err
}
func (f failingStore) RemoveParticipant(context.Context, string, string) error { return f.err }

func TestStoreFailuresAreWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	svc := service.NewActivityService(failingStore{err: boom}, service.Options{})
	ctx := context.Background()
	req := model.SignupRequest{ActivityName: "Chess Club", Email: "a@b.edu"}

	_, err := svc.ListActivities(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = svc.Signup(ctx, req)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "sign up for activity")

	_, err = svc.Unregister(ctx, req)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "unregister from activity")
}
