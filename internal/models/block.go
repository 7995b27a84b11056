package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Block struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BlockerID uuid.UUID `gorm:"type:uuid;not null;index:idx_block_pair,unique"`
	TargetID  uuid.UUID `gorm:"type:uuid;not null;index:idx_block_pair,unique"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (b *Block) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (Block) TableName() string {
	return "blocks"
}
