package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/histcollect/histcollect/internal/domain"
)

// HDCAManager manages history dataset collection associations. Access,
// ownership, deletion, tagging and annotation come from the embedded
// capability providers.
type HDCAManager struct {
	Accessible
	Ownable
	Purgable
	Taggable
	Annotatable

	repo HDCARepository
}

// NewHDCAManager creates a new HDCA manager
func NewHDCAManager(repo HDCARepository, logger *zap.Logger) *HDCAManager {
	return &HDCAManager{
		Accessible:  Accessible{repo: repo},
		Ownable:     Ownable{repo: repo},
		Purgable:    Purgable{repo: repo, logger: logger.Named("hdca")},
		Taggable:    Taggable{repo: repo},
		Annotatable: Annotatable{repo: repo},
		repo:        repo,
	}
}

// GetByID loads an HDCA without any access check
func (m *HDCAManager) GetByID(ctx context.Context, id int64) (*domain.HDCA, error) {
	return m.repo.GetByID(ctx, id)
}
