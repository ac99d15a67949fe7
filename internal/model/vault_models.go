package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Note struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string
	Content   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt *time.Time
}

func (Note) TableName() string {
	return "notes"
}

type Link struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_links_owner_url,priority:1"`
	Url       string    `gorm:"not null;uniqueIndex:idx_links_owner_url,priority:2"`
	Title     string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Link) TableName() string {
	return "links"
}

type Action struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	IsRecurring bool      `gorm:"default:false"`
	IsCompleted bool      `gorm:"default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   *time.Time
}

func (Action) TableName() string {
	return "actions"
}

type Attachment struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"not null"`
	ContentType  string    `gorm:"type:varchar(16);default:'text'"`
	Content      string    `gorm:"type:text"`
	OriginalSize int64
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (Attachment) TableName() string {
	return "attachments"
}
