package services

import (
	"context"
	"time"

	"experano/internal/domain"
)

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byEmail   map[string]*domain.User
	getErr    error
	upsertErr error
	upserts   []struct{ Email, Preferences string }
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UpsertPreferences(ctx context.Context, email, preferences string) (*domain.User, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upserts = append(f.upserts, struct{ Email, Preferences string }{email, preferences})
	u, ok := f.byEmail[email]
	if !ok {
		u = &domain.User{Email: email, CreatedAt: time.Now()}
		f.byEmail[email] = u
	}
	u.Preferences = preferences
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

// fakeEventRepo implements domain.EventRepository for tests.
type fakeEventRepo struct {
	events     []*domain.Event
	listErr    error
	toggleErr  error
	windowArgs []int // records offset, limit pairs
	created    []*domain.Event
	updated    []*domain.Event
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	e.ID = int64(len(f.events) + len(f.created) + 1)
	f.created = append(f.created, e)
	return nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	f.updated = append(f.updated, e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) FindByTitleDateLocation(ctx context.Context, title string, dateTime time.Time, location string) (*domain.Event, error) {
	for _, e := range f.events {
		if e.Title == title && e.DateTime.Equal(dateTime) && e.Location == location {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter, limit, offset int) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if offset >= len(f.events) {
		return []*domain.Event{}, nil
	}
	end := offset + limit
	if end > len(f.events) {
		end = len(f.events)
	}
	return f.events[offset:end], nil
}

func (f *fakeEventRepo) Count(ctx context.Context, filter domain.EventFilter) (int, error) {
	return len(f.events), nil
}

func (f *fakeEventRepo) DistinctLocations(ctx context.Context) ([]string, error) {
	return []string{"Berlin", "Lisbon"}, nil
}

func (f *fakeEventRepo) DistinctEventTypes(ctx context.Context) ([]string, error) {
	return []string{"concert", "workshop"}, nil
}

func (f *fakeEventRepo) ListByPopularity(ctx context.Context, limit int) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit > len(f.events) {
		limit = len(f.events)
	}
	return f.events[:limit], nil
}

func (f *fakeEventRepo) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0, len(ids))
	for _, e := range f.events {
		for _, id := range ids {
			if e.ID == id {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListWindow(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	f.windowArgs = append(f.windowArgs, offset, limit)
	if offset >= len(f.events) {
		return []*domain.Event{}, nil
	}
	end := offset + limit
	if end > len(f.events) {
		end = len(f.events)
	}
	return f.events[offset:end], nil
}

func (f *fakeEventRepo) ToggleRSVP(ctx context.Context, eventID int64, userID string) ([]domain.RSVPEntry, int, error) {
	if f.toggleErr != nil {
		return nil, 0, f.toggleErr
	}
	e, err := f.GetByID(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}
	toggled := make([]domain.RSVPEntry, 0, len(e.RSVP)+1)
	found := false
	for _, entry := range e.RSVP {
		if entry.UserID == userID {
			found = true
			continue
		}
		toggled = append(toggled, entry)
	}
	if !found {
		toggled = append(toggled, domain.RSVPEntry{UserID: userID})
	}
	e.RSVP = toggled
	e.RSVPCount = len(toggled)
	return toggled, len(toggled), nil
}

// fakeInference implements domain.InferenceClient returning scripted replies.
type fakeInference struct {
	replies []string
	errs    []error
	calls   int
	lastMsg []domain.ChatMessage
}

func (f *fakeInference) ChatCompletion(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	f.lastMsg = messages
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	if len(f.replies) > 0 {
		return f.replies[len(f.replies)-1], nil
	}
	return "", domain.ErrNoReply
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	sent []*domain.PreferencesSavedEmailData
	err  error
}

func (f *fakeEmailService) SendPreferencesSaved(ctx context.Context, data *domain.PreferencesSavedEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
