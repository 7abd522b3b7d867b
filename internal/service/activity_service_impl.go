package service

import (
	"context"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxActivities = 100

type ActivityServiceImpl struct {
	activityRepo repository.ActivityRepository
	now          Clock
}

func CreateNewActivityService(activityRepo repository.ActivityRepository, now Clock) ActivityService {
	return &ActivityServiceImpl{activityRepo: activityRepo, now: now}
}

// LogActivity records an entry in the activity feed. Failures are only logged.
func (s *ActivityServiceImpl) LogActivity(ctx context.Context, userID primitive.ObjectID, action string, category string) {
	_, err := s.activityRepo.AddActivity(ctx, domain.Activity{
		UserID:     userID,
		Action:     action,
		Category:   category,
		OccurredAt: s.now().UTC(),
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "LogActivity").Str("action", action).Msg("")
	}
}

func (s *ActivityServiceImpl) GetRecentActivities(ctx context.Context, limit int64) (activities []domain.Activity, err error) {
	if limit <= 0 || limit > maxActivities {
		limit = maxActivities
	}

	activities, err = s.activityRepo.GetRecentActivities(ctx, limit)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []domain.Activity{}
	}

	return activities, nil
}
