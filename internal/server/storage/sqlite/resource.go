package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/salafuz/admin-panel/internal/models"
	"github.com/salafuz/admin-panel/internal/server/storage"
)

// sortColumns - колонки, по которым разрешена сортировка
var sortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"title":      "name",
	"status":     "status",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

const recordColumns = `id, kind, name, status, attributes, created_at, updated_at, deleted_at`

// CreateRecord inserts a new record
func (s *Storage) CreateRecord(ctx context.Context, rec *models.Record) error {
	query := `
		INSERT INTO resources (kind, name, status, attributes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC().Truncate(time.Millisecond)
	rec.CreatedAt = now
	rec.UpdatedAt = now
	rec.DeletedAt = nil
	if len(rec.Attributes) == 0 {
		rec.Attributes = []byte("{}")
	}

	result, err := s.db.ExecContext(ctx, query,
		rec.Kind,
		rec.Name,
		rec.Status,
		string(rec.Attributes),
		toMillis(rec.CreatedAt),
		toMillis(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", rec.Kind, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get %s id: %w", rec.Kind, err)
	}
	rec.ID = id

	return nil
}

// GetRecord retrieves record by kind and id
func (s *Storage) GetRecord(ctx context.Context, kind string, id int64) (*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM resources WHERE kind = ? AND id = ?`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, kind, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get %s %d: %w", kind, id, err)
	}
	return rec, nil
}

// FindRecordByName retrieves live record by exact name
func (s *Storage) FindRecordByName(ctx context.Context, kind, name string) (*models.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM resources
		WHERE kind = ? AND name = ? AND deleted_at IS NULL
		ORDER BY id
		LIMIT 1
	`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, kind, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find %s by name: %w", kind, err)
	}
	return rec, nil
}

// ListRecords returns one page of records plus the total count
func (s *Storage) ListRecords(ctx context.Context, filter models.ListFilter) ([]*models.Record, int, error) {
	// 1. Условия выборки
	conds := []string{"kind = ?"}
	args := []any{filter.Kind}

	if filter.Deleted {
		conds = append(conds, "deleted_at IS NOT NULL")
	} else {
		conds = append(conds, "deleted_at IS NULL")
	}
	if filter.Search != "" {
		conds = append(conds, `name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	where := strings.Join(conds, " AND ")

	// 2. Общее количество
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", filter.Kind, err)
	}

	// 3. Страница
	query := `SELECT ` + recordColumns + ` FROM resources WHERE ` + where +
		` ORDER BY ` + orderBy(filter.Sort, filter.Direction) + ` LIMIT ? OFFSET ?`

	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, query, append(args, limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query %s: %w", filter.Kind, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*models.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan %s: %w", filter.Kind, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, total, nil
}

// UpdateRecord stores mutable columns of a live record
func (s *Storage) UpdateRecord(ctx context.Context, rec *models.Record) error {
	query := `
		UPDATE resources
		SET name = ?, status = ?, attributes = ?, updated_at = ?
		WHERE kind = ? AND id = ? AND deleted_at IS NULL
	`

	updatedAt := time.Now().UTC().Truncate(time.Millisecond)
	if err := s.execOne(ctx, query,
		rec.Name,
		rec.Status,
		string(rec.Attributes),
		toMillis(updatedAt),
		rec.Kind,
		rec.ID,
	); err != nil {
		return fmt.Errorf("update %s %d: %w", rec.Kind, rec.ID, err)
	}

	rec.UpdatedAt = updatedAt
	return nil
}

// SoftDeleteRecord marks live record as deleted
func (s *Storage) SoftDeleteRecord(ctx context.Context, kind string, id int64, at time.Time) error {
	query := `
		UPDATE resources
		SET deleted_at = ?, updated_at = ?
		WHERE kind = ? AND id = ? AND deleted_at IS NULL
	`
	if err := s.execOne(ctx, query, toMillis(at), toMillis(at), kind, id); err != nil {
		return fmt.Errorf("remove %s %d: %w", kind, id, err)
	}
	return nil
}

// RestoreRecord clears deleted_at of a deleted record
func (s *Storage) RestoreRecord(ctx context.Context, kind string, id int64) error {
	query := `
		UPDATE resources
		SET deleted_at = NULL, updated_at = ?
		WHERE kind = ? AND id = ? AND deleted_at IS NOT NULL
	`
	if err := s.execOne(ctx, query, toMillis(time.Now()), kind, id); err != nil {
		return fmt.Errorf("restore %s %d: %w", kind, id, err)
	}
	return nil
}

// ForceDeleteRecord removes record permanently
func (s *Storage) ForceDeleteRecord(ctx context.Context, kind string, id int64) error {
	query := `DELETE FROM resources WHERE kind = ? AND id = ?`
	if err := s.execOne(ctx, query, kind, id); err != nil {
		return fmt.Errorf("delete %s %d: %w", kind, id, err)
	}
	return nil
}

// execOne выполняет запрос и ожидает ровно одну затронутую строку
func (s *Storage) execOne(ctx context.Context, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRecordNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.Record, error) {
	rec := &models.Record{}
	var (
		attributes           string
		createdAt, updatedAt int64
		deletedAt            sql.NullInt64
	)

	if err := row.Scan(
		&rec.ID,
		&rec.Kind,
		&rec.Name,
		&rec.Status,
		&attributes,
		&createdAt,
		&updatedAt,
		&deletedAt,
	); err != nil {
		return nil, err
	}

	rec.Attributes = []byte(attributes)
	rec.CreatedAt = fromMillis(createdAt)
	rec.UpdatedAt = fromMillis(updatedAt)
	rec.DeletedAt = fromNullMillis(deletedAt)

	return rec, nil
}

// orderBy собирает ORDER BY только из разрешенных колонок.
// Без sort - новые записи первыми.
func orderBy(sort, direction string) string {
	col, ok := sortColumns[sort]
	if !ok {
		return "id DESC"
	}

	dir := "ASC"
	if strings.EqualFold(direction, "desc") {
		dir = "DESC"
	}
	return col + " " + dir + ", id " + dir
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
