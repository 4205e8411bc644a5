package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"experano/internal/domain"
)

const eventColumns = `id, title, description, location, date_time, image, keywords,
		event_type, event_location_type, organizer, organizer_id, external_link,
		rsvp, rsvp_count, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	rsvp, err := marshalRSVP(e.RSVP)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO events (title, description, location, date_time, image, keywords,
			event_type, event_location_type, organizer, organizer_id, external_link,
			rsvp, rsvp_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Location, e.DateTime, e.Image, pq.Array(e.Keywords),
		e.EventType, e.EventLocationType, e.Organizer, e.OrganizerID, e.ExternalLink,
		rsvp, e.RSVPCount, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	rsvp, err := marshalRSVP(e.RSVP)
	if err != nil {
		return err
	}
	query := `
		UPDATE events
		SET title = $1, description = $2, location = $3, date_time = $4, image = $5,
			keywords = $6, event_type = $7, event_location_type = $8, organizer = $9,
			organizer_id = $10, external_link = $11, rsvp = $12, rsvp_count = $13,
			updated_at = $14
		WHERE id = $15
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Title, e.Description, e.Location, e.DateTime, e.Image,
		pq.Array(e.Keywords), e.EventType, e.EventLocationType, e.Organizer,
		e.OrganizerID, e.ExternalLink, rsvp, e.RSVPCount, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) FindByTitleDateLocation(ctx context.Context, title string, dateTime time.Time, location string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE title = $1 AND date_time = $2 AND location = $3 LIMIT 1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, title, dateTime, location))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// filterClause builds the WHERE clause for catalog listings. The free-text
// query searches title and description case-insensitively.
func filterClause(f domain.EventFilter, args []any) (string, []any) {
	var conds []string
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		conds = append(conds, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if f.EventType != "" {
		args = append(args, "%"+f.EventType+"%")
		conds = append(conds, fmt.Sprintf("event_type ILIKE $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, limit, offset int) ([]*domain.Event, error) {
	where, args := filterClause(filter, nil)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+eventColumns+` FROM events%s ORDER BY date_time ASC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	return r.queryEvents(ctx, query, args...)
}

func (r *eventRepository) Count(ctx context.Context, filter domain.EventFilter) (int, error) {
	where, args := filterClause(filter, nil)
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`+where, args...).Scan(&count)
	return count, err
}

func (r *eventRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	return r.distinctValues(ctx, `SELECT DISTINCT location FROM events WHERE location <> '' ORDER BY location`)
}

func (r *eventRepository) DistinctEventTypes(ctx context.Context) ([]string, error) {
	return r.distinctValues(ctx, `SELECT DISTINCT event_type FROM events WHERE event_type <> '' ORDER BY event_type`)
}

func (r *eventRepository) distinctValues(ctx context.Context, query string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (r *eventRepository) ListByPopularity(ctx context.Context, limit int) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY rsvp_count DESC, id ASC LIMIT $1`
	return r.queryEvents(ctx, query, limit)
}

func (r *eventRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Event, error) {
	if len(ids) == 0 {
		return []*domain.Event{}, nil
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ANY($1) ORDER BY id ASC`
	return r.queryEvents(ctx, query, pq.Array(ids))
}

func (r *eventRepository) ListWindow(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY id ASC OFFSET $1 LIMIT $2`
	return r.queryEvents(ctx, query, offset, limit)
}

// ToggleRSVP flips the user's presence in the event's RSVP list inside a
// single transaction, locking the row so concurrent toggles cannot break the
// rsvp_count == len(rsvp) invariant.
func (r *eventRepository) ToggleRSVP(ctx context.Context, eventID int64, userID string) ([]domain.RSVPEntry, int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var raw []byte
	err = tx.QueryRowContext(ctx, `SELECT rsvp FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, err
	}

	entries := unmarshalRSVP(raw)
	toggled := make([]domain.RSVPEntry, 0, len(entries)+1)
	found := false
	for _, entry := range entries {
		if entry.UserID == userID {
			found = true
			continue
		}
		toggled = append(toggled, entry)
	}
	if !found {
		toggled = append(toggled, domain.RSVPEntry{UserID: userID})
	}

	rsvp, err := marshalRSVP(toggled)
	if err != nil {
		return nil, 0, err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE events SET rsvp = $1, rsvp_count = $2, updated_at = $3 WHERE id = $4`,
		rsvp, len(toggled), time.Now(), eventID,
	)
	if err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return toggled, len(toggled), nil
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var keywords pq.StringArray
	var rsvp []byte
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Location, &e.DateTime, &e.Image, &keywords,
		&e.EventType, &e.EventLocationType, &e.Organizer, &e.OrganizerID, &e.ExternalLink,
		&rsvp, &e.RSVPCount, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Keywords = keywords
	e.RSVP = unmarshalRSVP(rsvp)
	return e, nil
}

func marshalRSVP(entries []domain.RSVPEntry) ([]byte, error) {
	if entries == nil {
		entries = []domain.RSVPEntry{}
	}
	return json.Marshal(entries)
}

// unmarshalRSVP tolerates null or malformed stored values and treats them as
// an empty list.
func unmarshalRSVP(raw []byte) []domain.RSVPEntry {
	entries := make([]domain.RSVPEntry, 0)
	if len(raw) == 0 {
		return entries
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return make([]domain.RSVPEntry, 0)
	}
	if entries == nil {
		entries = make([]domain.RSVPEntry, 0)
	}
	return entries
}
