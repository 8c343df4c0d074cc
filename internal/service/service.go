// Package service implements input normalisation, validation, and
// orchestration between HTTP handlers and the activity store.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/activity-signup/internal/model"
	"github.com/Shivanand-hulikatti/activity-signup/internal/repository"
)

// ValidationError reports a request that was rejected before touching the store.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Options tune ActivityService behaviour.
type Options struct {
	// EnforceCapacity rejects signups once an activity's roster has
	// max_participants entries. Off by default.
	EnforceCapacity bool
}

// ActivityService orchestrates activity roster operations.
type ActivityService struct {
	store repository.ActivityStore
	opts  Options
}

// NewActivityService constructs an ActivityService with its dependencies.
func NewActivityService(store repository.ActivityStore, opts Options) *ActivityService {
	return &ActivityService{store: store, opts: opts}
}

// ListActivities returns every activity keyed by name.
func (s *ActivityService) ListActivities(ctx context.Context) (model.Catalog, error) {
	catalog, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return catalog, nil
}

// Signup adds the email to the activity's roster.
func (s *ActivityService) Signup(ctx context.Context, req model.SignupRequest) (*model.MessageResponse, error) {
	req, err := normalise(req)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddParticipant(ctx, req.ActivityName, req.Email, s.opts.EnforceCapacity); err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("sign up for activity: %w", err)
	}
	return &model.MessageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", req.Email, req.ActivityName),
	}, nil
}

// Unregister removes the email from the activity's roster.
func (s *ActivityService) Unregister(ctx context.Context, req model.SignupRequest) (*model.MessageResponse, error) {
	req, err := normalise(req)
	if err != nil {
		return nil, err
	}

	if err := s.store.RemoveParticipant(ctx, req.ActivityName, req.Email); err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("unregister from activity: %w", err)
	}
	return &model.MessageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", req.Email, req.ActivityName),
	}, nil
}

// normalise trims the email. Email format is not checked; the activity name
// is matched exactly.
func normalise(req model.SignupRequest) (model.SignupRequest, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return req, &ValidationError{Msg: "email is required"}
	}
	if req.ActivityName == "" {
		return req, &ValidationError{Msg: "activity name is required"}
	}
	return req, nil
}

func isDomainError(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrAlreadySignedUp) ||
		errors.Is(err, repository.ErrNotRegistered) ||
		errors.Is(err, repository.ErrActivityFull)
}
