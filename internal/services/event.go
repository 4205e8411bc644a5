package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"experano/internal/domain"
	"experano/internal/matching"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter, page, limit int) (*domain.EventPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	total, err := s.eventRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	events, err := s.eventRepo.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	locations, err := s.eventRepo.DistinctLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	eventTypes, err := s.eventRepo.DistinctEventTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}

	totalPages := 1
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &domain.EventPage{
		Page:        page,
		Limit:       limit,
		TotalEvents: total,
		TotalPages:  totalPages,
		Events:      events,
		Locations:   locations,
		EventTypes:  eventTypes,
	}, nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.Title == "" {
		return fmt.Errorf("event title is required")
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	// Keywords normalize once at the storage boundary, not at every read site.
	event.Keywords = matching.NormalizeKeywordList(event.Keywords)
	if event.RSVP == nil {
		event.RSVP = []domain.RSVPEntry{}
	}
	event.RSVPCount = len(event.RSVP)

	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) ImportEvents(ctx context.Context, events []*domain.Event) (created, updated int, err error) {
	for _, incoming := range events {
		incoming.Keywords = matching.NormalizeKeywordList(incoming.Keywords)
		if incoming.RSVP == nil {
			incoming.RSVP = []domain.RSVPEntry{}
		}
		incoming.RSVPCount = len(incoming.RSVP)
		if incoming.DateTime.IsZero() {
			incoming.DateTime = time.Now()
		}

		existing, err := s.eventRepo.FindByTitleDateLocation(ctx, incoming.Title, incoming.DateTime, incoming.Location)
		switch {
		case err == nil:
			incoming.ID = existing.ID
			incoming.CreatedAt = existing.CreatedAt
			incoming.UpdatedAt = time.Now()
			if err := s.eventRepo.Update(ctx, incoming); err != nil {
				return created, updated, fmt.Errorf("update event %q: %w", incoming.Title, err)
			}
			updated++
		case errors.Is(err, domain.ErrNotFound):
			now := time.Now()
			incoming.CreatedAt = now
			incoming.UpdatedAt = now
			if err := s.eventRepo.Create(ctx, incoming); err != nil {
				return created, updated, fmt.Errorf("create event %q: %w", incoming.Title, err)
			}
			created++
		default:
			return created, updated, fmt.Errorf("lookup event %q: %w", incoming.Title, err)
		}
	}
	return created, updated, nil
}

func (s *eventService) ToggleGoing(ctx context.Context, eventID int64, userID string) ([]domain.RSVPEntry, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rsvp, count, err := s.eventRepo.ToggleRSVP(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("toggle rsvp: %w", err)
	}
	return rsvp, count, nil
}
