package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/yeshua-high/school-site-api/internal/models"
)

// HomePayload bundles everything the public landing page renders in one
// request.
type HomePayload struct {
	News           []models.NewsMessage  `json:"news"`
	UpcomingEvents []models.Event        `json:"upcomingEvents"`
	Teachers       []models.Teacher      `json:"teachers"`
	Gallery        []models.GalleryImage `json:"gallery"`
}

// SiteService aggregates content for the public landing page.
type SiteService struct {
	news     *NewsService
	events   *EventService
	teachers *TeacherService
	gallery  *GalleryService
	logger   *zap.Logger
}

// NewSiteService constructs a SiteService.
func NewSiteService(news *NewsService, events *EventService, teachers *TeacherService, gallery *GalleryService, logger *zap.Logger) *SiteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SiteService{news: news, events: events, teachers: teachers, gallery: gallery, logger: logger}
}

// Home assembles the landing page payload: the active ticker, the next
// three events, the staff roster, and the most recent gallery photos.
func (s *SiteService) Home(ctx context.Context) (*HomePayload, error) {
	news, err := s.news.List(ctx, models.ListFilter{})
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListUpcoming(ctx, 3)
	if err != nil {
		return nil, err
	}
	teachers, err := s.teachers.List(ctx, models.ListFilter{})
	if err != nil {
		return nil, err
	}
	gallery, err := s.gallery.List(ctx, models.ListFilter{Limit: 8})
	if err != nil {
		return nil, err
	}
	return &HomePayload{
		News:           news,
		UpcomingEvents: events,
		Teachers:       teachers,
		Gallery:        gallery,
	}, nil
}
