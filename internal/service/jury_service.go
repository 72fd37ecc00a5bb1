package service

import (
	"context"
	"fmt"

	"hackboard/internal/domain"
	"hackboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultJuryService manages the jury roster. Roster membership is
// independent of voting identity: removing an entry never deletes votes.
type DefaultJuryService struct {
	juryRepo repository.JuryRepository
	cache    *CacheService
	logger   *zap.Logger
}

func NewJuryService(juryRepo repository.JuryRepository, cache *CacheService, logger *zap.Logger) *DefaultJuryService {
	return &DefaultJuryService{
		juryRepo: juryRepo,
		cache:    cache,
		logger:   logger,
	}
}

// AddMember adds a jury roster entry
func (s *DefaultJuryService) AddMember(ctx context.Context, eventID, addedBy string, req *domain.JuryMemberRequest) (*domain.JuryMember, error) {
	member := &domain.JuryMember{
		ID:      uuid.NewString(),
		EventID: eventID,
		Name:    req.Name,
		Role:    req.Role,
		Icon:    req.Icon,
		AddedBy: addedBy,
	}

	if err := s.juryRepo.Add(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add jury member: %w", err)
	}

	s.cache.InvalidateJuryList(ctx, eventID)

	s.logger.Info("Jury member added",
		zap.String("event_id", eventID),
		zap.String("jury_id", member.ID),
		zap.String("added_by", addedBy))

	return member, nil
}

// RemoveMember removes a roster entry
func (s *DefaultJuryService) RemoveMember(ctx context.Context, juryID string) error {
	if err := s.juryRepo.Remove(ctx, juryID); err != nil {
		return err
	}

	// The roster cache is per event and we only have the jury ID here;
	// the list TTL handles eventual consistency.
	s.logger.Info("Jury member removed", zap.String("jury_id", juryID))
	return nil
}

// ListMembers gets the roster for an event
func (s *DefaultJuryService) ListMembers(ctx context.Context, eventID string) ([]domain.JuryMember, error) {
	if cached := s.cache.GetJuryList(ctx, eventID); cached != nil {
		return cached, nil
	}

	members, err := s.juryRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jury members: %w", err)
	}

	s.cache.SetJuryList(ctx, eventID, members)
	return members, nil
}
