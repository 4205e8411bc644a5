package domain

import (
	"context"
	"time"
)

// RSVPEntry is one participant reference in an event's RSVP list.
// swagger:model RSVPEntry
type RSVPEntry struct {
	UserID string `json:"userId"`
}

// Event represents a catalog event. Keywords are stored normalized
// (lowercase, trimmed) as a text array; RSVP is a JSON list whose length
// must always equal RSVPCount.
// swagger:model Event
type Event struct {
	ID                int64       `json:"id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Location          string      `json:"location"`
	DateTime          time.Time   `json:"dateTime"`
	Image             string      `json:"image"`
	Keywords          []string    `json:"keywords"`
	EventType         string      `json:"eventType"`
	EventLocationType string      `json:"eventLocationType"`
	Organizer         string      `json:"organizer"`
	OrganizerID       string      `json:"organizerId"`
	ExternalLink      string      `json:"externalLink"`
	RSVP              []RSVPEntry `json:"rsvp"`
	RSVPCount         int         `json:"rsvpCount"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// EventFilter narrows event listings. Zero values mean "no constraint".
type EventFilter struct {
	Query     string
	Location  string
	EventType string
}

// EventPage is one page of the event catalog plus the filter vocabulary.
// swagger:model EventPage
type EventPage struct {
	Page        int      `json:"page"`
	Limit       int      `json:"limit"`
	TotalEvents int      `json:"totalEvents"`
	TotalPages  int      `json:"totalPages"`
	Events      []*Event `json:"events"`
	Locations   []string `json:"locations"`
	EventTypes  []string `json:"eventTypes"`
}

// Recommendation is the outcome of the matching pipeline. IsRandom marks the
// random-fallback path where personalization produced nothing.
// swagger:model Recommendation
type Recommendation struct {
	Events   []*Event `json:"recommended_events"`
	IsRandom bool     `json:"is_random"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	// FindByTitleDateLocation is the import-dedup lookup.
	FindByTitleDateLocation(ctx context.Context, title string, dateTime time.Time, location string) (*Event, error)
	List(ctx context.Context, filter EventFilter, limit, offset int) ([]*Event, error)
	Count(ctx context.Context, filter EventFilter) (int, error)
	DistinctLocations(ctx context.Context) ([]string, error)
	DistinctEventTypes(ctx context.Context) ([]string, error)
	// ListByPopularity returns up to limit events ordered by descending RSVP count.
	ListByPopularity(ctx context.Context, limit int) ([]*Event, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*Event, error)
	// ListWindow returns up to limit events ordered by id starting at offset;
	// used by the random-fallback path.
	ListWindow(ctx context.Context, offset, limit int) ([]*Event, error)
	// ToggleRSVP atomically adds or removes the user from the event's RSVP
	// list and returns the updated list and count.
	ToggleRSVP(ctx context.Context, eventID int64, userID string) ([]RSVPEntry, int, error)
}

// EventService defines the business logic for the event catalog.
type EventService interface {
	ListEvents(ctx context.Context, filter EventFilter, page, limit int) (*EventPage, error)
	CreateEvent(ctx context.Context, event *Event) error
	// ImportEvents upserts a batch keyed by (title, dateTime, location) and
	// returns how many events were created and updated.
	ImportEvents(ctx context.Context, events []*Event) (created, updated int, err error)
	ToggleGoing(ctx context.Context, eventID int64, userID string) ([]RSVPEntry, int, error)
}

// RecommendationService runs the preference-to-event matching pipeline.
type RecommendationService interface {
	GetMatchingEvents(ctx context.Context, email string) (*Recommendation, error)
}
