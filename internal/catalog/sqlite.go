package catalog

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

//go:embed migrations/*.sql
var migrations embed.FS

// insertNext allocates max(id)+1 within the record's kind.
const insertNext = `INSERT INTO records (kind, id, fields, created_at, updated_at)
	SELECT ?, COALESCE(MAX(id), 0) + 1, ?, ?, ? FROM records WHERE kind = ?
	RETURNING id`

// SQLiteStore implements Store on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates an unopened store.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// NewSQLiteStoreFromDB wraps an already opened database.
func NewSQLiteStoreFromDB(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	s := NewSQLiteStore(logger)
	s.db = db
	return s
}

// Open connects to dsn. Use MemoryDSN for a database that lives as long as the
// process.
func (s *SQLiteStore) Open(dsn string) error {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if dsn == MemoryDSN {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.logger.Debug("catalog database opened", "dsn", dsn)
	return nil
}

// Migrate applies all pending migrations.
func (s *SQLiteStore) Migrate() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// List returns the records of kind ordered by id.
func (s *SQLiteStore) List(ctx context.Context, kind Kind) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, fields, created_at, updated_at FROM records WHERE kind = ? ORDER BY id`,
		string(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", kind, err)
	}
	defer func() { _ = rows.Close() }()

	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", kind, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", kind, err)
	}
	return recs, nil
}

// Get returns a single record.
func (s *SQLiteStore) Get(ctx context.Context, kind Kind, id int64) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, fields, created_at, updated_at FROM records WHERE kind = ? AND id = ?`,
		string(kind), id,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to get %s %d: %w", kind, id, err)
	}
	return rec, nil
}

// Create inserts rec with the next free id of its kind and sets its ID and
// timestamps.
func (s *SQLiteStore) Create(ctx context.Context, rec *Record) error {
	fields, err := json.Marshal(rec.Values)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", rec.Kind, err)
	}

	now := time.Now().UTC()
	var id int64
	if err := s.db.QueryRowContext(ctx, insertNext,
		string(rec.Kind), string(fields), now.Unix(), now.Unix(), string(rec.Kind),
	).Scan(&id); err != nil {
		return fmt.Errorf("failed to create %s: %w", rec.Kind, err)
	}

	rec.ID = id
	rec.CreatedAt = now.Truncate(time.Second)
	rec.UpdatedAt = rec.CreatedAt
	return nil
}

// Update replaces the values of an existing record.
func (s *SQLiteStore) Update(ctx context.Context, rec *Record) error {
	fields, err := json.Marshal(rec.Values)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", rec.Kind, err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE records SET fields = ?, updated_at = ? WHERE kind = ? AND id = ?`,
		string(fields), now.Unix(), string(rec.Kind), rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s %d: %w", rec.Kind, rec.ID, err)
	}
	if err := expectOne(res, rec.Kind, rec.ID); err != nil {
		return err
	}

	rec.UpdatedAt = now.Truncate(time.Second)
	return nil
}

// Delete removes a record.
func (s *SQLiteStore) Delete(ctx context.Context, kind Kind, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE kind = ? AND id = ?`, string(kind), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", kind, id, err)
	}
	return expectOne(res, kind, id)
}

// Count returns the number of records of kind.
func (s *SQLiteStore) Count(ctx context.Context, kind Kind) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE kind = ?`, string(kind)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", kind, err)
	}
	return n, nil
}

// Replace discards every record and inserts recs in a single transaction.
// Records with a non-zero ID keep it; the rest are numbered after the highest
// id of their kind.
func (s *SQLiteStore) Replace(ctx context.Context, recs []Record) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	now := time.Now().UTC().Unix()

	// Explicit ids go in first so generated ones never take them.
	var numbered, unnumbered []Record
	for _, rec := range recs {
		if rec.ID != 0 {
			numbered = append(numbered, rec)
		} else {
			unnumbered = append(unnumbered, rec)
		}
	}

	for _, rec := range numbered {
		fields, mErr := json.Marshal(rec.Values)
		if mErr != nil {
			err = fmt.Errorf("failed to encode %s: %w", rec.Kind, mErr)
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO records (kind, id, fields, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			string(rec.Kind), rec.ID, string(fields), now, now,
		); err != nil {
			return fmt.Errorf("failed to insert %s %d: %w", rec.Kind, rec.ID, err)
		}
	}

	for _, rec := range unnumbered {
		fields, mErr := json.Marshal(rec.Values)
		if mErr != nil {
			err = fmt.Errorf("failed to encode %s: %w", rec.Kind, mErr)
			return err
		}
		var id int64
		if err = tx.QueryRowContext(ctx, insertNext,
			string(rec.Kind), string(fields), now, now, string(rec.Kind),
		).Scan(&id); err != nil {
			return fmt.Errorf("failed to insert %s: %w", rec.Kind, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	s.logger.Debug("catalog replaced", "records", len(recs))
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec              Record
		kind, fields     string
		created, updated int64
	)
	if err := sc.Scan(&rec.ID, &kind, &fields, &created, &updated); err != nil {
		return Record{}, err
	}
	rec.Kind = Kind(kind)
	rec.CreatedAt = time.Unix(created, 0).UTC()
	rec.UpdatedAt = time.Unix(updated, 0).UTC()
	if err := json.Unmarshal([]byte(fields), &rec.Values); err != nil {
		return Record{}, fmt.Errorf("failed to decode fields: %w", err)
	}
	if rec.Values == nil {
		rec.Values = map[string]string{}
	}
	return rec, nil
}

func expectOne(res sql.Result, kind Kind, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}
