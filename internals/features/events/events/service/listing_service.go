package service

import (
	"context"
	"fmt"
	"time"

	"campus_events_backend/internals/features/events/events/dto"
	"campus_events_backend/internals/features/events/events/repository"
	"campus_events_backend/internals/helpers/dbtime"
)

const (
	DefaultPageSize = 6
	MaxPageSize     = 50
)

// List returns one page of upcoming public events plus the filtered total.
// "today" is the caller's calendar day in loc. An unknown category name matches nothing.
func (s *EventService) List(ctx context.Context, q dto.ListQuery, loc *time.Location) ([]dto.EventListItem, int64, error) {
	if q.PerPage < 1 {
		q.PerPage = DefaultPageSize
	}
	if q.PerPage > MaxPageSize {
		q.PerPage = MaxPageSize
	}
	q.Normalize()

	now := s.Now()
	f := repository.ListFilter{
		Search:   q.Search,
		Sort:     q.Sort,
		Now:      now,
		Offset:   (q.Page - 1) * q.PerPage,
		Limit:    q.PerPage,
	}
	if q.Category != "" {
		cat, ok, err := s.Categories.FindByName(ctx, q.Category)
		if err != nil {
			return nil, 0, fmt.Errorf("resolve category: %w", err)
		}
		if !ok {
			return []dto.EventListItem{}, 0, nil
		}
		f.CategoryID = &cat.ID
	}
	if q.Date == dto.DateToday {
		start, end := dbtime.DayBounds(now, loc)
		f.DayStart, f.DayEnd = &start, &end
	}
	return repository.ListPublicEvents(ctx, s.DB, f)
}
