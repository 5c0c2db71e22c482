package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/birdielabs/caddie-api/internal/domain/course"
	"github.com/birdielabs/caddie-api/internal/platform/cache"
)

// CourseCatalog is the third-party golf-course directory. Search results
// carry tee and hole layouts used by shot preview.
type CourseCatalog interface {
	Search(ctx context.Context, query string) ([]course.Course, error)
	GetByID(ctx context.Context, id string) (course.Course, bool, error)
}

type CourseService struct {
	catalog      CourseCatalog
	catalogCache *cache.Store
}

func NewCourseService(catalog CourseCatalog, catalogCache *cache.Store) *CourseService {
	return &CourseService{
		catalog:      catalog,
		catalogCache: catalogCache,
	}
}

func (s *CourseService) SearchCourses(ctx context.Context, query string) ([]course.Course, error) {
	ctx, span := startUsecaseSpan(ctx, "CourseService.SearchCourses")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}

	key := "course:search:" + strings.ToLower(query)
	value, err := s.catalogCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := s.catalog.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		return append([]course.Course(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, ok := value.([]course.Course)
	if !ok {
		return nil, fmt.Errorf("unexpected catalog cache value %T", value)
	}
	return append([]course.Course(nil), items...), nil
}

func (s *CourseService) GetCourse(ctx context.Context, id string) (course.Course, error) {
	ctx, span := startUsecaseSpan(ctx, "CourseService.GetCourse")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return course.Course{}, fmt.Errorf("%w: course id is required", ErrInvalidInput)
	}

	item, exists, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return course.Course{}, fmt.Errorf("get course: %w", err)
	}
	if !exists {
		return course.Course{}, fmt.Errorf("%w: course %s", ErrNotFound, id)
	}
	return item, nil
}
