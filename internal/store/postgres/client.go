package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/golfcompete/golf-server/internal/store"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Client implements the store.Client interface using PostgreSQL
type Client struct {
	dsn string
	db  *pgxpool.Pool
}

var _ store.Client = (*Client)(nil)

// New creates a new empty PostgreSQL store client.
// Use Initialize to migrate the database and open the connection pool.
func New(dsn string) *Client {
	return &Client{
		dsn: dsn,
	}
}

// Initialize migrates the database and opens the connection pool
func (client *Client) Initialize(ctx context.Context) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, client.dsn)
	if err != nil {
		return err
	}
	defer migrator.Close()
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	pool, err := pgxpool.Connect(ctx, client.dsn)
	if err != nil {
		return err
	}
	client.db = pool
	return nil
}

// Select retrieves the records matching the given selection together with the exact total amount
// of records matching its conditions (ignoring the offset & limit window)
func (client *Client) Select(ctx context.Context, table string, selection store.Selection) ([]store.Record, uint64, error) {
	predicates, err := buildPredicates(selection.Conditions)
	if err != nil {
		return nil, 0, err
	}

	countQuery := squirrel.Select("COUNT(*)").From(table)
	for _, predicate := range predicates {
		countQuery = countQuery.Where(predicate)
	}
	countSQL, countVals, err := countQuery.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := client.db.QueryRow(ctx, countSQL, countVals...).Scan(&total); err != nil {
		return nil, 0, wrapError(err)
	}
	if total == 0 {
		return []store.Record{}, 0, nil
	}

	query := squirrel.Select("*").From(table)
	for _, predicate := range predicates {
		query = query.Where(predicate)
	}
	if selection.Order != nil {
		direction := "ASC"
		if selection.Order.Descending {
			direction = "DESC"
		}
		query = query.OrderBy(selection.Order.Column + " " + direction)
	}
	if selection.Offset > 0 {
		query = query.Offset(selection.Offset)
	}
	if selection.Limit > 0 {
		query = query.Limit(selection.Limit)
	}
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := client.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []store.Record{}, total, nil
		}
		return nil, 0, wrapError(err)
	}
	records, err := rowsToRecords(rows)
	if err != nil {
		return nil, 0, wrapError(err)
	}
	return records, total, nil
}

// Insert inserts the given records inside a single transaction and returns them as stored
func (client *Client) Insert(ctx context.Context, table string, records []store.Record) ([]store.Record, error) {
	txn, err := client.db.Begin(ctx)
	if err != nil {
		return nil, wrapError(err)
	}
	defer txn.Rollback(ctx)

	out := make([]store.Record, 0, len(records))
	for _, record := range records {
		sql, vals, err := squirrel.Insert(table).
			SetMap(record).
			Suffix("RETURNING *").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return nil, err
		}

		rows, err := txn.Query(ctx, sql, vals...)
		if err != nil {
			return nil, wrapError(err)
		}
		inserted, err := rowsToRecords(rows)
		if err != nil {
			return nil, wrapError(err)
		}
		out = append(out, inserted...)
	}

	if err := txn.Commit(ctx); err != nil {
		return nil, wrapError(err)
	}
	return out, nil
}

// Update applies the given changes to all records matching the conditions and returns the updated records
func (client *Client) Update(ctx context.Context, table string, conditions []store.Condition, changes store.Record) ([]store.Record, error) {
	predicates, err := buildPredicates(conditions)
	if err != nil {
		return nil, err
	}

	query := squirrel.Update(table).SetMap(changes).Suffix("RETURNING *")
	for _, predicate := range predicates {
		query = query.Where(predicate)
	}
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := client.db.Query(ctx, sql, vals...)
	if err != nil {
		return nil, wrapError(err)
	}
	records, err := rowsToRecords(rows)
	if err != nil {
		return nil, wrapError(err)
	}
	return records, nil
}

// Delete deletes all records matching the given conditions
func (client *Client) Delete(ctx context.Context, table string, conditions []store.Condition) error {
	predicates, err := buildPredicates(conditions)
	if err != nil {
		return err
	}

	query := squirrel.Delete(table)
	for _, predicate := range predicates {
		query = query.Where(predicate)
	}
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	if _, err := client.db.Exec(ctx, sql, vals...); err != nil {
		return wrapError(err)
	}
	return nil
}

// Count returns the exact amount of records matching the given conditions without transferring
// any row payload
func (client *Client) Count(ctx context.Context, table string, conditions []store.Condition) (uint64, error) {
	predicates, err := buildPredicates(conditions)
	if err != nil {
		return 0, err
	}

	query := squirrel.Select("COUNT(*)").From(table)
	for _, predicate := range predicates {
		query = query.Where(predicate)
	}
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return 0, err
	}

	var total uint64
	if err := client.db.QueryRow(ctx, sql, vals...).Scan(&total); err != nil {
		return 0, wrapError(err)
	}
	return total, nil
}

// Call executes a store-side SQL function by name with positional parameters
func (client *Client) Call(ctx context.Context, procedure string, args ...any) ([]store.Record, error) {
	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	sql := fmt.Sprintf("SELECT * FROM %s(%s)", procedure, strings.Join(placeholders, ", "))

	rows, err := client.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapError(err)
	}
	records, err := rowsToRecords(rows)
	if err != nil {
		return nil, wrapError(err)
	}
	return records, nil
}

// Close closes the database connection pool
func (client *Client) Close() {
	client.db.Close()
	client.db = nil
}

func rowsToRecords(rows pgx.Rows) ([]store.Record, error) {
	defer rows.Close()

	records := []store.Record{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		fields := rows.FieldDescriptions()
		record := make(store.Record, len(fields))
		for i, field := range fields {
			record[string(field.Name)] = values[i]
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// wrapError maps constraint violations (SQLSTATE class 23) to store.ConstraintError
func wrapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return &store.ConstraintError{
			Constraint: pgErr.ConstraintName,
			Wrapping:   err,
		}
	}
	return err
}
