package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *ServiceTestSuite) Test_NotifyPublishesEvent() {
	publisher := &recordingPublisher{}
	notifications := CreateNewNotificationService(s.notificationRepo, s.userRepo, publisher, nil, s.clock)
	userID := primitive.NewObjectID()

	err := notifications.Notify(s.ctx, dto.NotificationEvent{UserID: userID.Hex(), Title: "Hi", Message: "Hello"})
	s.Require().NoError(err)

	s.Require().Len(publisher.messages, 1)
	s.Equal(userID.Hex(), publisher.keys[0])
	s.Equal(dto.EventNotificationRequested, publisher.messages[0].EventType)
	s.NotEmpty(publisher.messages[0].EventID)

	// Delivery is left to the consumer.
	inbox, err := s.notificationRepo.GetNotifications(s.ctx, userID, pkgFilterAll)
	s.Require().NoError(err)
	s.Empty(inbox)
}

func (s *ServiceTestSuite) Test_NotifyFallsBackWhenPublishFails() {
	publisher := &recordingPublisher{err: errors.New("broker unavailable")}
	notifications := CreateNewNotificationService(s.notificationRepo, s.userRepo, publisher, nil, s.clock)
	userID := primitive.NewObjectID()

	err := notifications.Notify(s.ctx, dto.NotificationEvent{UserID: userID.Hex(), Title: "Hi", Message: "Hello"})
	s.Require().NoError(err)

	inbox, err := s.notificationRepo.GetNotifications(s.ctx, userID, pkgFilterAll)
	s.Require().NoError(err)
	s.Require().Len(inbox, 1)
	s.Equal(domain.NotificationInfo, inbox[0].Type)
}

func (s *ServiceTestSuite) Test_NotifyDoesNotWaitOnStalledBroker() {
	notifications := CreateNewNotificationService(s.notificationRepo, s.userRepo, blockingPublisher{}, nil, s.clock)
	notifications.(*NotificationServiceImpl).publishTimeout = 20 * time.Millisecond
	userID := primitive.NewObjectID()

	start := time.Now()
	err := notifications.Notify(s.ctx, dto.NotificationEvent{UserID: userID.Hex(), Title: "Hi", Message: "Hello"})
	s.Require().NoError(err)
	s.Less(time.Since(start), time.Second)

	inbox, err := s.notificationRepo.GetNotifications(s.ctx, userID, pkgFilterAll)
	s.Require().NoError(err)
	s.Len(inbox, 1)
}

func (s *ServiceTestSuite) Test_ConsumeEvent() {
	reader := &fakeReader{messages: make(chan kafka.Message, 3)}
	notifications := CreateNewNotificationService(s.notificationRepo, s.userRepo, nil, reader, s.clock)
	userID := primitive.NewObjectID()

	event, err := json.Marshal(dto.KafkaMessage{
		EventType: dto.EventNotificationRequested,
		EventID:   "01HX",
		Data:      dto.NotificationEvent{UserID: userID.Hex(), Title: "Queued", Message: "From the broker", Type: domain.NotificationWarning},
	})
	s.Require().NoError(err)

	unknown, err := json.Marshal(dto.KafkaMessage{EventType: "something_else"})
	s.Require().NoError(err)

	reader.messages <- kafka.Message{Value: []byte("not json")}
	reader.messages <- kafka.Message{Value: unknown}
	reader.messages <- kafka.Message{Value: event}

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		notifications.ConsumeEvent(ctx)
		close(done)
	}()

	s.Eventually(func() bool {
		inbox, err := s.notificationRepo.GetNotifications(s.ctx, userID, pkgFilterAll)
		return err == nil && len(inbox) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("consumer did not stop after cancellation")
	}

	inbox, err := s.notificationRepo.GetNotifications(s.ctx, userID, pkgFilterAll)
	s.Require().NoError(err)
	s.Equal(domain.NotificationWarning, inbox[0].Type)
}

func (s *ServiceTestSuite) Test_MarkNotificationsRead() {
	owner := s.employeeUser("owner@example.com")
	stranger := s.employeeUser("stranger@example.com")

	for i := 0; i < 3; i++ {
		s.Require().NoError(s.notifications.Notify(s.ctx, dto.NotificationEvent{UserID: owner.ID.Hex(), Title: "Hi"}))
	}

	inbox, err := s.notifications.GetNotifications(s.ctx, owner.ID, pkgFilterAll)
	s.Require().NoError(err)
	s.Require().Len(inbox, 3)

	s.ErrorIs(s.notifications.MarkRead(s.ctx, stranger.ID, inbox[0].ID.Hex()), errs.ErrNotFound)
	s.NoError(s.notifications.MarkRead(s.ctx, owner.ID, inbox[0].ID.Hex()))

	updated, err := s.notifications.MarkAllRead(s.ctx, owner.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), updated)
}
