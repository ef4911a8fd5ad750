package repository

import (
	"context"

	"gorm.io/gorm"
	"p9e.in/assettrack/models"
)

type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// First returns the oldest proposal row.
func (r *ProposalRepository) First(ctx context.Context) (*models.Proposal, error) {
	var p models.Proposal
	if err := r.db.WithContext(ctx).Order("created_at").First(&p).Error; err != nil {
		return nil, translate("proposals.First", err)
	}
	return &p, nil
}
