package services

import (
	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/internal/repositories"
	"github.com/sparkdate/spark-server/pkg/errors"
	"github.com/sparkdate/spark-server/pkg/logger"
)

// BlockService manages user blocks. Blocked users disappear from each
// other's discovery feeds in both directions.
type BlockService struct {
	blocks *repositories.BlockRepository
	users  *repositories.UserRepository
}

func NewBlockService(blocks *repositories.BlockRepository, users *repositories.UserRepository) *BlockService {
	return &BlockService{blocks: blocks, users: users}
}

// BlockUser records a block against targetID.
func (s *BlockService) BlockUser(actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return errors.New(errors.ErrCodeValidation, "cannot block yourself")
	}

	if _, err := s.users.GetByID(targetID); err != nil {
		return err
	}

	block := &models.Block{
		BlockerID: actorID,
		TargetID:  targetID,
	}
	if err := s.blocks.Create(block); err != nil {
		return err
	}

	logger.Info("User blocked", "blocker_id", actorID, "target_id", targetID)
	return nil
}

// UnblockUser removes a block the actor previously created.
func (s *BlockService) UnblockUser(actorID, targetID uuid.UUID) error {
	return s.blocks.Delete(actorID, targetID)
}
