package services

import (
	"github.com/google/uuid"
	"github.com/learnhub/backend/internal/models"
	"github.com/learnhub/backend/pkg/logger"
	"gorm.io/gorm"
)

// ActivityEntry is what callers hand to the activity service; the
// service turns it into a feed row off the request path.
type ActivityEntry struct {
	UserID       uuid.UUID
	ActorID      uuid.UUID
	Action       string
	ResourceType string
	ResourceID   *uuid.UUID
	ResourceName string
	Message      string
}

// ActivityService writes feed rows through a buffered channel so
// request handlers never block on the insert. A full queue drops the
// row with a warning rather than stalling the request.
type ActivityService struct {
	DB    *gorm.DB
	queue chan models.Activity
}

func NewActivityService(db *gorm.DB) *ActivityService {
	s := &ActivityService{
		DB:    db,
		queue: make(chan models.Activity, 1000),
	}
	go s.processQueue()
	return s
}

func (s *ActivityService) RecordAsync(entry ActivityEntry) {
	row := models.Activity{
		UserID:       entry.UserID,
		ActorID:      entry.ActorID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		ResourceName: entry.ResourceName,
		Message:      entry.Message,
	}

	select {
	case s.queue <- row:
	default:
		logger.Warn("activity_queue_full", map[string]interface{}{
			"action":  entry.Action,
			"user_id": entry.UserID.String(),
		})
	}
}

func (s *ActivityService) processQueue() {
	for row := range s.queue {
		if err := s.DB.Create(&row).Error; err != nil {
			logger.Error("activity_insert_failed", err, map[string]interface{}{
				"action":  row.Action,
				"user_id": row.UserID.String(),
			})
		}
	}
}
