package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Course struct {
	Id             uuid.UUID                  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string                     `gorm:"type:varchar(255);not null"`
	Objectives     datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Duration       string                     `gorm:"type:varchar(50)"`
	Summary        string                     `gorm:"type:text"`
	Status         string                     `gorm:"type:varchar(20);not null;default:'temp'"`
	OrganizationId uuid.UUID                  `gorm:"type:uuid;index"`
	CreatedAt      time.Time                  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time                  `gorm:"autoUpdateTime"`
}

func (Course) TableName() string {
	return "courses"
}
