package persistence

import (
	"context"
	"errors"

	"github.com/salonops/backend/internal/domain/catalog"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCourseRepository implements CourseRepository using GORM
type GormCourseRepository struct {
	db *gorm.DB
}

// NewGormCourseRepository creates a new GormCourseRepository
func NewGormCourseRepository(db *gorm.DB) *GormCourseRepository {
	return &GormCourseRepository{db: db}
}

// FindByID finds a course by its ID
func (r *GormCourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Course, error) {
	var course catalog.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// FindActiveByID finds a course that is still attachable to documents
func (r *GormCourseRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*catalog.Course, error) {
	var course catalog.Course
	if err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, catalog.ItemableStatusActive).
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// FindAll finds all courses matching the filter
func (r *GormCourseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Course, error) {
	var courses []catalog.Course
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.Course{}), filter, "name", "code")

	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// Save creates or updates a course
func (r *GormCourseRepository) Save(ctx context.Context, course *catalog.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// Ensure GormCourseRepository implements CourseRepository
var _ catalog.CourseRepository = (*GormCourseRepository)(nil)
