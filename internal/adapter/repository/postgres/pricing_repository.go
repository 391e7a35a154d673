package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
)

type PricingRuleRepository struct {
	db *sql.DB
}

func NewPricingRuleRepository(db *sql.DB) *PricingRuleRepository {
	return &PricingRuleRepository{db: db}
}

const ruleColumns = `
	id, origin, destination, base_fare, per_km_rate, estimated_distance_km,
	is_active, created_at, updated_at
`

func (r *PricingRuleRepository) Create(ctx context.Context, rule *domain.PricingRule) error {
	query := `
	INSERT INTO pricing_rules (` + ruleColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		rule.ID,
		rule.Origin,
		rule.Destination,
		rule.BaseFare,
		rule.PerKmRate,
		rule.EstimatedDistanceKm,
		rule.IsActive,
		rule.CreatedAt,
		rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pricing rule: %w", err)
	}

	return nil
}

func (r *PricingRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PricingRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM pricing_rules WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *PricingRuleRepository) ActiveByRoute(ctx context.Context, origin, destination string) (*domain.PricingRule, error) {
	query := `
	SELECT ` + ruleColumns + `
	FROM pricing_rules
	WHERE origin = $1 AND destination = $2 AND is_active = TRUE
	ORDER BY updated_at DESC
	LIMIT 1
	`
	return r.getOne(ctx, query, origin, destination)
}

func (r *PricingRuleRepository) All(ctx context.Context) ([]domain.PricingRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM pricing_rules ORDER BY origin, destination`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pricing rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.PricingRule
	for rows.Next() {
		var rule domain.PricingRule
		if err := scanRule(rows, &rule); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *PricingRuleRepository) Update(ctx context.Context, rule *domain.PricingRule) error {
	query := `
	UPDATE pricing_rules
	SET base_fare = $1,
		per_km_rate = $2,
		estimated_distance_km = $3,
		is_active = $4,
		updated_at = $5
	WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		rule.BaseFare,
		rule.PerKmRate,
		rule.EstimatedDistanceKm,
		rule.IsActive,
		rule.UpdatedAt,
		rule.ID,
	)
	if err != nil {
		return fmt.Errorf("update pricing rule: %w", err)
	}

	return requireRow(result)
}

func (r *PricingRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pricing_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pricing rule: %w", err)
	}

	return requireRow(result)
}

func (r *PricingRuleRepository) getOne(ctx context.Context, query string, args ...any) (*domain.PricingRule, error) {
	var rule domain.PricingRule
	err := scanRule(r.db.QueryRowContext(ctx, query, args...), &rule)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

func scanRule(row rowScanner, rule *domain.PricingRule) error {
	return row.Scan(
		&rule.ID,
		&rule.Origin,
		&rule.Destination,
		&rule.BaseFare,
		&rule.PerKmRate,
		&rule.EstimatedDistanceKm,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
}
