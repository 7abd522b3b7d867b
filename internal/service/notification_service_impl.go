package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// publishTimeout caps how long Notify waits on the broker before it falls back
// to storing the notification itself.
const publishTimeout = 2 * time.Second

type NotificationServiceImpl struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	publisher        EventPublisher
	reader           EventReader
	now              Clock
	publishTimeout   time.Duration
}

// CreateNewNotificationService stores notifications directly when publisher is
// nil. reader is only needed by ConsumeEvent.
func CreateNewNotificationService(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository, publisher EventPublisher, reader EventReader, now Clock) NotificationService {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		publisher:        publisher,
		reader:           reader,
		now:              now,
		publishTimeout:   publishTimeout,
	}
}

func (s *NotificationServiceImpl) Notify(ctx context.Context, event dto.NotificationEvent) (err error) {
	if event.Type == "" {
		event.Type = domain.NotificationInfo
	}

	if s.publisher == nil {
		return s.StoreNotification(ctx, event)
	}

	eventID, err := ulid.New(ulid.Timestamp(s.now()), rand.Reader)
	if err != nil {
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	err = s.publisher.Publish(publishCtx, event.UserID, dto.KafkaMessage{
		EventType: dto.EventNotificationRequested,
		EventID:   eventID.String(),
		Data:      event,
	})
	if err == nil {
		return nil
	}

	log.Ctx(ctx).Warn().Err(err).Str("component", "Notify").Msg("publish failed, storing notification directly")
	return s.StoreNotification(ctx, event)
}

func (s *NotificationServiceImpl) NotifyAdmins(ctx context.Context, title string, message string, kind string) (err error) {
	admins, err := s.userRepo.GetUsersByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}

	var failed []error
	for _, admin := range admins {
		err = s.Notify(ctx, dto.NotificationEvent{
			UserID:  admin.ID.Hex(),
			Title:   title,
			Message: message,
			Type:    kind,
		})
		if err != nil {
			failed = append(failed, err)
		}
	}

	return errors.Join(failed...)
}

func (s *NotificationServiceImpl) StoreNotification(ctx context.Context, event dto.NotificationEvent) (err error) {
	userID, err := parseObjectID(event.UserID, "userId")
	if err != nil {
		return err
	}

	kind := event.Type
	if kind == "" {
		kind = domain.NotificationInfo
	}

	_, err = s.notificationRepo.AddNotification(ctx, domain.Notification{
		UserID:    userID,
		Title:     event.Title,
		Message:   event.Message,
		Type:      kind,
		CreatedAt: s.now().UTC(),
	})
	return err
}

func (s *NotificationServiceImpl) GetNotifications(ctx context.Context, userID primitive.ObjectID, param pkgdto.Filter) (notifications []domain.Notification, err error) {
	notifications, err = s.notificationRepo.GetNotifications(ctx, userID, param)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}

	return notifications, nil
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, userID primitive.ObjectID, id string) (err error) {
	notificationID, err := parseObjectID(id, "id")
	if err != nil {
		return err
	}

	return s.notificationRepo.MarkNotificationRead(ctx, notificationID, userID)
}

func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, userID primitive.ObjectID) (updated int64, err error) {
	return s.notificationRepo.MarkAllNotificationsRead(ctx, userID)
}

// ConsumeEvent reads the notification topic until ctx is cancelled or the
// reader is closed.
func (s *NotificationServiceImpl) ConsumeEvent(ctx context.Context) {
	if s.reader == nil {
		return
	}

	for {
		msg, err := s.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return
			}
			log.Ctx(ctx).Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		var receivedMsg dto.KafkaMessage
		if err := json.Unmarshal(msg.Value, &receivedMsg); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		switch receivedMsg.EventType {
		case dto.EventNotificationRequested:
			var event dto.NotificationEvent
			dataBytes, err := json.Marshal(receivedMsg.Data)
			if err != nil {
				log.Ctx(ctx).Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}
			if err := json.Unmarshal(dataBytes, &event); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}

			if err = s.StoreNotification(ctx, event); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("component", "ConsumeEvent").Str("event_id", receivedMsg.EventID).Msg("")
				continue
			}
		default:
			log.Ctx(ctx).Warn().Str("component", "ConsumeEvent").Str("event_type", receivedMsg.EventType).Msg("unknown event type")
		}
	}
}
