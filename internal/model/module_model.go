package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Module struct {
	Id        uuid.UUID                  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string                     `gorm:"type:varchar(255);not null"`
	Duration  string                     `gorm:"type:varchar(50)"`
	Subtopics datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Features  datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Content   string                     `gorm:"type:text"`
	Order     int                        `gorm:"column:module_order;not null;index:idx_modules_course_order"`
	CourseId  uuid.UUID                  `gorm:"type:uuid;not null;index:idx_modules_course_order"`
	CreatedAt time.Time                  `gorm:"autoCreateTime"`
	UpdatedAt time.Time                  `gorm:"autoUpdateTime"`
}

func (Module) TableName() string {
	return "modules"
}
