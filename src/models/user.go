package models

import (
	"fastivalle/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"index" json:"email,omitempty"`
	Phone        string    `gorm:"index" json:"phone,omitempty"`
	Name         string    `json:"name,omitempty"`
	Provider     string    `json:"provider,omitempty"`
	ProviderUID  string    `gorm:"index" json:"-"`
	ProfileImage string    `json:"profileImage,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`

	types.Timestamps
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
