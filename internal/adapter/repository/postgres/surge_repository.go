package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/guzoride/guzo/internal/core/domain"
)

type SurgeRepository struct {
	db *sql.DB
}

func NewSurgeRepository(db *sql.DB) *SurgeRepository {
	return &SurgeRepository{db: db}
}

const surgeColumns = `
	id, route_key, multiplier, reason, description, start_time, end_time,
	is_active, is_recurring, recurring_days, recurring_start_hour,
	recurring_end_hour, created_by, created_at
`

func (r *SurgeRepository) Create(ctx context.Context, s *domain.SurgeMultiplier) error {
	query := `
	INSERT INTO surge_multipliers (` + surgeColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.RouteKey,
		s.Multiplier,
		s.Reason,
		s.Description,
		s.StartTime,
		s.EndTime,
		s.IsActive,
		s.IsRecurring,
		pq.Array(s.RecurringDays),
		nullInt(s.RecurringStartHour),
		nullInt(s.RecurringEndHour),
		nullUUID(s.CreatedBy),
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert surge: %w", err)
	}

	return nil
}

func (r *SurgeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SurgeMultiplier, error) {
	query := `SELECT ` + surgeColumns + ` FROM surge_multipliers WHERE id = $1`

	surge, err := scanSurge(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return surge, nil
}

func (r *SurgeRepository) ActiveForRoute(ctx context.Context, routeKey string, at time.Time) ([]domain.SurgeMultiplier, error) {
	query := `
	SELECT ` + surgeColumns + `
	FROM surge_multipliers
	WHERE is_active = TRUE
	  AND start_time <= $2
	  AND end_time >= $2
	  AND route_key IN ($1, '*')
	ORDER BY multiplier DESC
	`

	return r.list(ctx, query, routeKey, at)
}

func (r *SurgeRepository) All(ctx context.Context, activeOnly bool) ([]domain.SurgeMultiplier, error) {
	query := `
	SELECT ` + surgeColumns + `
	FROM surge_multipliers
	WHERE ($1 = FALSE OR (is_active = TRUE AND end_time >= NOW()))
	ORDER BY created_at DESC
	`

	return r.list(ctx, query, activeOnly)
}

func (r *SurgeRepository) Update(ctx context.Context, s *domain.SurgeMultiplier) error {
	query := `
	UPDATE surge_multipliers
	SET multiplier = $1,
		reason = $2,
		description = $3,
		start_time = $4,
		end_time = $5,
		is_active = $6
	WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		s.Multiplier,
		s.Reason,
		s.Description,
		s.StartTime,
		s.EndTime,
		s.IsActive,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("update surge: %w", err)
	}

	return requireRow(result)
}

func (r *SurgeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM surge_multipliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete surge: %w", err)
	}

	return requireRow(result)
}

func (r *SurgeRepository) list(ctx context.Context, query string, args ...any) ([]domain.SurgeMultiplier, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list surges: %w", err)
	}
	defer rows.Close()

	var surges []domain.SurgeMultiplier
	for rows.Next() {
		s, err := scanSurge(rows)
		if err != nil {
			return nil, err
		}
		surges = append(surges, *s)
	}
	return surges, rows.Err()
}

func scanSurge(row rowScanner) (*domain.SurgeMultiplier, error) {
	var s domain.SurgeMultiplier
	var days []int64
	var startHour, endHour sql.NullInt64
	var createdBy sql.NullString

	err := row.Scan(
		&s.ID,
		&s.RouteKey,
		&s.Multiplier,
		&s.Reason,
		&s.Description,
		&s.StartTime,
		&s.EndTime,
		&s.IsActive,
		&s.IsRecurring,
		pq.Array(&days),
		&startHour,
		&endHour,
		&createdBy,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, d := range days {
		s.RecurringDays = append(s.RecurringDays, int(d))
	}
	if startHour.Valid {
		h := int(startHour.Int64)
		s.RecurringStartHour = &h
	}
	if endHour.Valid {
		h := int(endHour.Int64)
		s.RecurringEndHour = &h
	}
	if s.CreatedBy, err = parseNullUUID(createdBy); err != nil {
		return nil, err
	}

	return &s, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
