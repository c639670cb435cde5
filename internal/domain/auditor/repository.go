package auditor

import (
	"context"
)

type AuditorRepository interface {
	GetByEmail(ctx context.Context, email string) (Auditor, error)
	GetByID(ctx context.Context, id string) (Auditor, error)
	Create(ctx context.Context, newAuditor Auditor) (Auditor, error)
}
