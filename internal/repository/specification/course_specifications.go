package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByCourseID filters modules belonging to one course
type ByCourseID struct {
	CourseID uuid.UUID
}

func (s ByCourseID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("course_id = ?", s.CourseID)
}

// ByStatus filters courses by lifecycle status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// OrderByModuleOrder orders modules by their sequence position
type OrderByModuleOrder struct{}

func (s OrderByModuleOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("module_order ASC")
}

// OwnedByOrganization filters courses by owning organization
type OwnedByOrganization struct {
	OrganizationID uuid.UUID
}

func (s OwnedByOrganization) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("organization_id = ?", s.OrganizationID)
}
