package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/safedep/dry/log"
	"github.com/safedep/presence/core/events"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DefaultSessionTimeoutMinutes is used when neither the settings table nor
// the caller provide a timeout.
const DefaultSessionTimeoutMinutes = 15

// SQLiteStore implements Store using SQLite with ent's SQL builder.
type SQLiteStore struct {
	drv            *entsql.Driver
	path           string
	defaultTimeout int
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithDefaultSessionTimeout sets the timeout returned when none is stored.
func WithDefaultSessionTimeout(minutes int) Option {
	return func(s *SQLiteStore) {
		if minutes > 0 {
			s.defaultTimeout = minutes
		}
	}
}

// NewSQLiteStore creates a new SQLite store at the given path.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite",
		fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{
		drv:            entsql.OpenDB(dialect.SQLite, db),
		path:           path,
		defaultTimeout: DefaultSessionTimeoutMinutes,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Init initializes the database schema.
func (s *SQLiteStore) Init(ctx context.Context) error {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}

	for _, stmt := range schema {
		if err := tx.Exec(ctx, stmt, []any{}, nil); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	log.Debugf("storage: schema ready at %s", s.path)
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.drv.Close()
}

func (s *SQLiteStore) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// SaveUser persists a new user.
func (s *SQLiteStore) SaveUser(ctx context.Context, user *events.User) error {
	var deletedAt any
	if user.DeletedAt != nil {
		deletedAt = user.DeletedAt.UnixMilli()
	}

	query, args := s.builder().Insert(tableUsers).
		Columns(userColumns...).
		Values(user.ID.String(), user.Name, user.Email, string(user.Role),
			user.IsActive, user.CreatedAt.UnixMilli(), deletedAt).
		Query()

	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY) {
			return fmt.Errorf("%w: user %s", ErrConflict, user.Email)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id uuid.UUID) (*events.User, error) {
	users, err := s.queryUsers(ctx, entsql.EQ("id", id.String()), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return first(users), nil
}

// GetUserByEmail retrieves a user by email. Emails compare case-insensitively.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*events.User, error) {
	users, err := s.queryUsers(ctx, entsql.EQ("email", strings.TrimSpace(email)), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return first(users), nil
}

// FindUser resolves a user by ID, email, exact name or ID prefix, in that
// order. Returns nil if nothing matches.
func (s *SQLiteStore) FindUser(ctx context.Context, ref string) (*events.User, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}

	if id, err := uuid.Parse(ref); err == nil {
		return s.GetUser(ctx, id)
	}

	if strings.Contains(ref, "@") {
		return s.GetUserByEmail(ctx, ref)
	}

	for _, p := range []*entsql.Predicate{
		entsql.EQ("name", ref),
		entsql.Like("id", strings.ToLower(ref)+"%"),
	} {
		users, err := s.queryUsers(ctx, p, 2)
		if err != nil {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		switch len(users) {
		case 0:
			continue
		case 1:
			return users[0], nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
		}
	}

	return nil, nil
}

// ListUsers retrieves users matching the filter ordered by name.
func (s *SQLiteStore) ListUsers(ctx context.Context, filter *events.UserFilter) ([]*events.User, error) {
	if filter == nil {
		filter = events.NewUserFilter()
	}

	var preds []*entsql.Predicate
	if filter.Role != "" {
		preds = append(preds, entsql.EQ("role", string(filter.Role)))
	}
	if filter.ActiveOnly {
		preds = append(preds, entsql.EQ("is_active", true))
	}
	if !filter.IncludeDeleted {
		preds = append(preds, entsql.IsNull("deleted_at"))
	}

	var where *entsql.Predicate
	if len(preds) > 0 {
		where = entsql.And(preds...)
	}

	users, err := s.queryUsers(ctx, where, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetUserActive activates or deactivates a user.
func (s *SQLiteStore) SetUserActive(ctx context.Context, id uuid.UUID, active bool) error {
	query, args := s.builder().Update(tableUsers).
		Set("is_active", active).
		Where(entsql.EQ("id", id.String())).
		Query()

	return s.execOne(ctx, query, args, "user "+id.String())
}

// SoftDeleteUser marks a user as deleted and inactive.
func (s *SQLiteStore) SoftDeleteUser(ctx context.Context, id uuid.UUID, at time.Time) error {
	query, args := s.builder().Update(tableUsers).
		Set("deleted_at", at.UnixMilli()).
		Set("is_active", false).
		Where(entsql.And(entsql.EQ("id", id.String()), entsql.IsNull("deleted_at"))).
		Query()

	return s.execOne(ctx, query, args, "user "+id.String())
}

// SaveEvent persists a new presence event.
func (s *SQLiteStore) SaveEvent(ctx context.Context, event *events.Event) error {
	if !event.Status.IsValid() {
		return fmt.Errorf("invalid event status %q", event.Status)
	}

	query, args := s.builder().Insert(tableEvents).
		Columns(eventColumns...).
		Values(event.ID.String(), event.UserID.String(), event.Timestamp.UnixMilli(), string(event.Status)).
		Query()

	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) {
			return fmt.Errorf("%w: user %s", ErrNotFound, event.UserID)
		}
		if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY) {
			return fmt.Errorf("%w: event %s", ErrConflict, event.ID)
		}
		return fmt.Errorf("failed to save event: %w", err)
	}

	return nil
}

// EventsForUser returns the events of one user with from <= ts <= to.
func (s *SQLiteStore) EventsForUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*events.Event, error) {
	byUser, err := s.EventsForUsers(ctx, []uuid.UUID{userID}, from, to)
	if err != nil {
		return nil, err
	}
	return byUser[userID], nil
}

// EventsForUsers returns the events of several users with from <= ts <= to.
// Every requested user has an entry in the result, possibly empty.
func (s *SQLiteStore) EventsForUsers(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID][]*events.Event, error) {
	result := make(map[uuid.UUID][]*events.Event, len(userIDs))
	for _, id := range userIDs {
		result[id] = []*events.Event{}
	}

	for lo := 0; lo < len(userIDs); lo += maxInArgs {
		batch := userIDs[lo:min(lo+maxInArgs, len(userIDs))]

		ids := make([]any, len(batch))
		for i, id := range batch {
			ids[i] = id.String()
		}

		evts, err := s.queryEvents(ctx, entsql.And(
			entsql.In("user_id", ids...),
			entsql.GTE("timestamp_ms", from.UnixMilli()),
			entsql.LTE("timestamp_ms", to.UnixMilli()),
		), false, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to query events: %w", err)
		}

		for _, e := range evts {
			result[e.UserID] = append(result[e.UserID], e)
		}
	}

	return result, nil
}

// EventsSince returns up to limit events with ts >= since, oldest first.
func (s *SQLiteStore) EventsSince(ctx context.Context, since time.Time, limit int) ([]*events.Event, error) {
	evts, err := s.queryEvents(ctx, entsql.GTE("timestamp_ms", since.UnixMilli()), false, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	return evts, nil
}

// RecentEvents returns the newest limit events with ts >= since, oldest
// first.
func (s *SQLiteStore) RecentEvents(ctx context.Context, since time.Time, limit int) ([]*events.Event, error) {
	evts, err := s.queryEvents(ctx, entsql.GTE("timestamp_ms", since.UnixMilli()), true, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	slices.Reverse(evts)
	return evts, nil
}

// CountEvents returns the count of events matching the given filter.
func (s *SQLiteStore) CountEvents(ctx context.Context, filter *EventFilter) (int, error) {
	var preds []*entsql.Predicate
	if filter != nil {
		if filter.UserID != nil {
			preds = append(preds, entsql.EQ("user_id", filter.UserID.String()))
		}
		if filter.Since != nil {
			preds = append(preds, entsql.GTE("timestamp_ms", filter.Since.UnixMilli()))
		}
		if filter.Until != nil {
			preds = append(preds, entsql.LTE("timestamp_ms", filter.Until.UnixMilli()))
		}
	}

	var where *entsql.Predicate
	if len(preds) > 0 {
		where = entsql.And(preds...)
	}

	count, err := s.count(ctx, tableEvents, where)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// LastEvent returns the most recent event of a user.
func (s *SQLiteStore) LastEvent(ctx context.Context, userID uuid.UUID) (*events.Event, error) {
	evts, err := s.queryEvents(ctx, entsql.EQ("user_id", userID.String()), true, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to get last event: %w", err)
	}
	if len(evts) == 0 {
		return nil, nil
	}
	return evts[0], nil
}

// DeleteEventsBefore deletes events older than the given time.
func (s *SQLiteStore) DeleteEventsBefore(ctx context.Context, before time.Time) (int, error) {
	query, args := s.builder().Delete(tableEvents).
		Where(entsql.LT("timestamp_ms", before.UnixMilli())).
		Query()

	var res sql.Result
	if err := s.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("failed to delete events: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted events: %w", err)
	}

	log.Debugf("storage: deleted %d events before %s", deleted, before.Format(time.RFC3339))
	return int(deleted), nil
}

// CountEventsBefore returns the count of events older than the given time.
func (s *SQLiteStore) CountEventsBefore(ctx context.Context, before time.Time) (int, error) {
	count, err := s.count(ctx, tableEvents, entsql.LT("timestamp_ms", before.UnixMilli()))
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// SessionTimeoutMinutes returns the stored inactivity timeout.
func (s *SQLiteStore) SessionTimeoutMinutes(ctx context.Context) (int, error) {
	query, args := s.builder().Select("value").
		From(s.builder().Table(tableSettings)).
		Where(entsql.EQ("key", settingSessionTimeout)).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("failed to read settings: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("failed to read settings: %w", err)
		}
		return s.defaultTimeout, nil
	}

	var value string
	if err := rows.Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to scan setting: %w", err)
	}

	minutes, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid stored session timeout %q: %w", value, err)
	}
	return minutes, nil
}

// SetSessionTimeoutMinutes stores the inactivity timeout.
func (s *SQLiteStore) SetSessionTimeoutMinutes(ctx context.Context, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("session timeout must be positive, got %d minutes", minutes)
	}

	query, args := s.builder().Insert(tableSettings).
		Columns("key", "value").
		Values(settingSessionTimeout, strconv.Itoa(minutes)).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()

	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("failed to save session timeout: %w", err)
	}
	return nil
}

// Info returns information about the database.
func (s *SQLiteStore) Info(ctx context.Context) (*DatabaseInfo, error) {
	info := &DatabaseInfo{
		Path: s.path,
	}

	if stat, err := os.Stat(s.path); err == nil {
		info.SizeBytes = stat.Size()
	}

	userCount, err := s.count(ctx, tableUsers, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	info.UserCount = userCount

	eventCount, err := s.count(ctx, tableEvents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	info.EventCount = eventCount

	if eventCount == 0 {
		return info, nil
	}

	query, args := s.builder().
		Select(entsql.Min("timestamp_ms"), entsql.Max("timestamp_ms")).
		From(s.builder().Table(tableEvents)).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("failed to read event range: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		var oldest, newest sql.NullInt64
		if err := rows.Scan(&oldest, &newest); err != nil {
			return nil, fmt.Errorf("failed to scan event range: %w", err)
		}
		if oldest.Valid {
			info.OldestEvent = fromMillis(oldest.Int64)
		}
		if newest.Valid {
			info.NewestEvent = fromMillis(newest.Int64)
		}
	}

	return info, rows.Err()
}

func (s *SQLiteStore) queryUsers(ctx context.Context, where *entsql.Predicate, limit int) ([]*events.User, error) {
	sel := s.builder().Select(userColumns...).
		From(s.builder().Table(tableUsers)).
		OrderBy(entsql.Asc("name"), entsql.Asc("id"))
	if where != nil {
		sel.Where(where)
	}
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*events.User
	for rows.Next() {
		u, err := scanUser(&rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (s *SQLiteStore) queryEvents(ctx context.Context, where *entsql.Predicate, newestFirst bool, limit int) ([]*events.Event, error) {
	order := []string{entsql.Asc("timestamp_ms"), entsql.Asc("id")}
	if newestFirst {
		order = []string{entsql.Desc("timestamp_ms"), entsql.Desc("id")}
	}

	sel := s.builder().Select(eventColumns...).
		From(s.builder().Table(tableEvents)).
		Where(where).
		OrderBy(order...)
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var evts []*events.Event
	for rows.Next() {
		e, err := scanEvent(&rows)
		if err != nil {
			return nil, err
		}
		evts = append(evts, e)
	}

	return evts, rows.Err()
}

func (s *SQLiteStore) count(ctx context.Context, table string, where *entsql.Predicate) (int, error) {
	sel := s.builder().Select().From(s.builder().Table(table)).Count()
	if where != nil {
		sel.Where(where)
	}

	query, args := sel.Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, err
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	return n, rows.Err()
}

// execOne runs a statement that must affect exactly one row.
func (s *SQLiteStore) execOne(ctx context.Context, query string, args []any, what string) error {
	var res sql.Result
	if err := s.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("failed to update %s: %w", what, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return nil
}

// Helper functions for mapping between rows and domain types

func scanUser(rows *entsql.Rows) (*events.User, error) {
	var (
		id, name, email, role string
		active                bool
		createdAt             int64
		deletedAt             sql.NullInt64
	)
	if err := rows.Scan(&id, &name, &email, &role, &active, &createdAt, &deletedAt); err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}

	user := &events.User{
		ID:        uid,
		Name:      name,
		Email:     email,
		Role:      events.Role(role),
		IsActive:  active,
		CreatedAt: fromMillis(createdAt),
	}
	if deletedAt.Valid {
		t := fromMillis(deletedAt.Int64)
		user.DeletedAt = &t
	}

	return user, nil
}

func scanEvent(rows *entsql.Rows) (*events.Event, error) {
	var (
		id, userID, status string
		ts                 int64
	)
	if err := rows.Scan(&id, &userID, &ts, &status); err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	eid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event id %q: %w", id, err)
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	return &events.Event{
		ID:        eid,
		UserID:    uid,
		Timestamp: fromMillis(ts),
		Status:    events.Status(status),
	}, nil
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func first(users []*events.User) *events.User {
	if len(users) == 0 {
		return nil
	}
	return users[0]
}

// isConstraint reports whether err is a SQLite constraint violation with one
// of the given extended codes.
func isConstraint(err error, codes ...int) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	for _, c := range codes {
		if se.Code() == c {
			return true
		}
	}
	return false
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
