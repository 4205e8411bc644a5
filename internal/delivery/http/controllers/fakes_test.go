package controllers

import (
	"context"
	"io"
	"log/slog"

	"experano/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	user *domain.User
	err  error
}

func (f *fakeUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

// fakeRecommendationService implements domain.RecommendationService for handler tests.
type fakeRecommendationService struct {
	rec *domain.Recommendation
	err error
}

func (f *fakeRecommendationService) GetMatchingEvents(ctx context.Context, email string) (*domain.Recommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rec, nil
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	page      *domain.EventPage
	listErr   error
	createErr error
	created   []*domain.Event

	importCreated int
	importUpdated int
	importErr     error
	imported      []*domain.Event

	rsvp      []domain.RSVPEntry
	rsvpCount int
	toggleErr error
}

func (f *fakeEventService) ListEvents(ctx context.Context, filter domain.EventFilter, page, limit int) (*domain.EventPage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.page, nil
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = int64(len(f.created) + 1)
	f.created = append(f.created, event)
	return nil
}

func (f *fakeEventService) ImportEvents(ctx context.Context, events []*domain.Event) (int, int, error) {
	if f.importErr != nil {
		return 0, 0, f.importErr
	}
	f.imported = events
	return f.importCreated, f.importUpdated, nil
}

func (f *fakeEventService) ToggleGoing(ctx context.Context, eventID int64, userID string) ([]domain.RSVPEntry, int, error) {
	if f.toggleErr != nil {
		return nil, 0, f.toggleErr
	}
	return f.rsvp, f.rsvpCount, nil
}

// fakeOnboardingService implements domain.OnboardingService for handler tests.
type fakeOnboardingService struct {
	reply    string
	err      error
	lastConv []domain.Message
}

func (f *fakeOnboardingService) Converse(ctx context.Context, identity domain.Identity, conversation []domain.Message) (string, error) {
	f.lastConv = conversation
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeUploader implements domain.MediaUploader for handler tests.
type fakeUploader struct {
	result       *domain.UploadResult
	err          error
	lastFilename string
	lastBytes    []byte
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, file io.Reader) (*domain.UploadResult, error) {
	f.lastFilename = filename
	f.lastBytes, _ = io.ReadAll(file)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
