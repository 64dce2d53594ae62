package repository

import (
	"context"
	"errors"

	"legalbridge-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContributorRepository reads the contributor directory
type ContributorRepository interface {
	// List returns every contributor in seed order
	List(ctx context.Context) ([]models.Contributor, error)

	// GetByID returns ErrNotFound for an unknown id
	GetByID(ctx context.Context, id string) (*models.Contributor, error)
}

// StaticContributorRepository serves a fixed, in-process directory
type StaticContributorRepository struct {
	contributors []models.Contributor
}

// NewStaticContributorRepository creates a repository over contributors
func NewStaticContributorRepository(contributors []models.Contributor) *StaticContributorRepository {
	return &StaticContributorRepository{contributors: contributors}
}

// List returns a copy of the directory
func (r *StaticContributorRepository) List(ctx context.Context) ([]models.Contributor, error) {
	out := make([]models.Contributor, len(r.contributors))
	copy(out, r.contributors)
	return out, nil
}

// GetByID retrieves a contributor by ID
func (r *StaticContributorRepository) GetByID(ctx context.Context, id string) (*models.Contributor, error) {
	for _, c := range r.contributors {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// PostgresContributorRepository reads the directory seeded by cmd/create-schema
type PostgresContributorRepository struct {
	db *pgxpool.Pool
}

// NewPostgresContributorRepository creates a new contributor repository
func NewPostgresContributorRepository(db *pgxpool.Pool) *PostgresContributorRepository {
	return &PostgresContributorRepository{db: db}
}

const contributorColumns = `
		id, name, role, experience_years, interests, city, region,
		availability, can_assist_with, bio, cases_handled, rating`

// List returns every contributor in seed order
func (r *PostgresContributorRepository) List(ctx context.Context) ([]models.Contributor, error) {
	query := `SELECT` + contributorColumns + `
		FROM contributors
		ORDER BY seed_order`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contributors []models.Contributor
	for rows.Next() {
		c, err := scanContributor(rows)
		if err != nil {
			return nil, err
		}
		contributors = append(contributors, *c)
	}

	return contributors, rows.Err()
}

// GetByID retrieves a contributor by ID
func (r *PostgresContributorRepository) GetByID(ctx context.Context, id string) (*models.Contributor, error) {
	query := `SELECT` + contributorColumns + `
		FROM contributors
		WHERE id = $1`

	c, err := scanContributor(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func scanContributor(row pgx.Row) (*models.Contributor, error) {
	c := &models.Contributor{}
	var capabilities []string
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Role,
		&c.ExperienceYears,
		&c.Interests,
		&c.City,
		&c.Region,
		&c.Availability,
		&capabilities,
		&c.Bio,
		&c.CasesHandled,
		&c.Rating,
	)
	if err != nil {
		return nil, err
	}

	c.CanAssistWith = make([]models.Capability, 0, len(capabilities))
	for _, capability := range capabilities {
		c.CanAssistWith = append(c.CanAssistWith, models.Capability(capability))
	}
	return c, nil
}
