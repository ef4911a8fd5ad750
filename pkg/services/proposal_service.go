package services

import (
	"context"

	"p9e.in/assettrack/models"
)

type ProposalService struct {
	repo ProposalRepository
}

func NewProposalService(repo ProposalRepository) *ProposalService {
	return &ProposalService{repo: repo}
}

// Current returns the first stored proposal.
func (s *ProposalService) Current(ctx context.Context) (*models.Proposal, error) {
	return s.repo.First(ctx)
}
