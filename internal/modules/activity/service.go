package activity

import (
	"context"
	"log"

	"atithi/internal/domain"
	"atithi/internal/repository"
)

// Service keeps the append-only audit trail. Recording is best-effort:
// a failed audit write is logged but never fails the action it
// describes.
type Service struct {
	repo *repository.ActivityRepository
}

func NewService(repo *repository.ActivityRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(ctx context.Context, action, details string, actorID int64) {
	entry := &domain.ActivityLog{
		Action:  action,
		Details: details,
		ActorID: actorID,
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		log.Printf("activity_log_failed action=%s error=%q", action, err)
	}
}

func (s *Service) Recent(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	return s.repo.ListRecent(ctx, limit)
}
