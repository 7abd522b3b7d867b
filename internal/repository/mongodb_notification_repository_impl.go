package repository

import (
	"context"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoDBNotificationRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBNotificationRepository(db *mongo.Database) NotificationRepository {
	return &MongoDBNotificationRepositoryImpl{db: db}
}

func (r *MongoDBNotificationRepositoryImpl) AddNotification(ctx context.Context, data domain.Notification) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(notificationsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddNotification").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBNotificationRepositoryImpl) GetNotifications(ctx context.Context, userID primitive.ObjectID, param pkgdto.Filter) (data []domain.Notification, err error) {
	cursor, err := r.db.Collection(notificationsCollection).Find(ctx, bson.D{{Key: "user", Value: userID}}, findOptions(param))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetNotifications").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetNotifications").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBNotificationRepositoryImpl) MarkNotificationRead(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: id}, {Key: "user", Value: userID}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "read", Value: true}}}}

	result, err := r.db.Collection(notificationsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "MarkNotificationRead").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.NotFound("Notification")
	}

	return nil
}

func (r *MongoDBNotificationRepositoryImpl) MarkAllNotificationsRead(ctx context.Context, userID primitive.ObjectID) (updated int64, err error) {
	filter := bson.D{{Key: "user", Value: userID}, {Key: "read", Value: false}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "read", Value: true}}}}

	result, err := r.db.Collection(notificationsCollection).UpdateMany(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "MarkAllNotificationsRead").Msg("")
		return
	}

	return result.ModifiedCount, nil
}
