package postgresql

import (
	"context"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/auditor"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/database"
)

type auditorRepositoryImpl struct {
	db *database.DB
}

func NewAuditorRepository(db *database.DB) auditor.AuditorRepository {
	return &auditorRepositoryImpl{db: db}
}

// Create implements auditor.AuditorRepository.
func (r *auditorRepositoryImpl) Create(ctx context.Context, newAuditor auditor.Auditor) (auditor.Auditor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO auditors (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, password_hash, created_at, updated_at
	`

	var created auditor.Auditor
	err := q.QueryRow(ctx, query,
		newAuditor.Email,
		newAuditor.Name,
		newAuditor.PasswordHash,
	).Scan(
		&created.ID,
		&created.Email,
		&created.Name,
		&created.PasswordHash,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return auditor.Auditor{}, err
	}

	return created, nil
}

// GetByEmail implements auditor.AuditorRepository.
func (r *auditorRepositoryImpl) GetByEmail(ctx context.Context, email string) (auditor.Auditor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM auditors
		WHERE email = $1
	`

	var found auditor.Auditor
	err := q.QueryRow(ctx, query, email).Scan(
		&found.ID,
		&found.Email,
		&found.Name,
		&found.PasswordHash,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		return auditor.Auditor{}, err
	}

	return found, nil
}

// GetByID implements auditor.AuditorRepository.
func (r *auditorRepositoryImpl) GetByID(ctx context.Context, id string) (auditor.Auditor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM auditors
		WHERE id = $1
	`

	var found auditor.Auditor
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Email,
		&found.Name,
		&found.PasswordHash,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		return auditor.Auditor{}, err
	}

	return found, nil
}
