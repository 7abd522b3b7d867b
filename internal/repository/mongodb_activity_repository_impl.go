package repository

import (
	"context"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBActivityRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBActivityRepository(db *mongo.Database) ActivityRepository {
	return &MongoDBActivityRepositoryImpl{db: db}
}

func (r *MongoDBActivityRepositoryImpl) AddActivity(ctx context.Context, data domain.Activity) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(activitiesCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddActivity").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBActivityRepositoryImpl) GetRecentActivities(ctx context.Context, limit int64) (data []domain.Activity, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurredAt", Value: -1}}).SetLimit(limit)

	cursor, err := r.db.Collection(activitiesCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetRecentActivities").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetRecentActivities").Msg("")
		return
	}

	return data, nil
}
