package repository

import (
	"context"
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoDBAnnouncementRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBAnnouncementRepository(db *mongo.Database) AnnouncementRepository {
	return &MongoDBAnnouncementRepositoryImpl{db: db}
}

func (r *MongoDBAnnouncementRepositoryImpl) AddAnnouncement(ctx context.Context, data domain.Announcement) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(announcementsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddAnnouncement").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBAnnouncementRepositoryImpl) GetAnnouncementByID(ctx context.Context, id primitive.ObjectID) (announcement domain.Announcement, err error) {
	err = r.db.Collection(announcementsCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&announcement)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("component", "GetAnnouncementByID").Msg("")
		return announcement, notFound(err, "Announcement")
	}

	return announcement, nil
}

func (r *MongoDBAnnouncementRepositoryImpl) GetAnnouncements(ctx context.Context, activeOnly bool, param pkgdto.Filter) (data []domain.Announcement, err error) {
	query := bson.D{}
	if activeOnly {
		query = append(query, bson.E{Key: "isActive", Value: true})
	}

	cursor, err := r.db.Collection(announcementsCollection).Find(ctx, query, findOptions(param))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetAnnouncements").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetAnnouncements").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBAnnouncementRepositoryImpl) UpdateAnnouncement(ctx context.Context, data domain.Announcement) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: data.Title},
		{Key: "message", Value: data.Message},
		{Key: "priority", Value: data.Priority},
		{Key: "isActive", Value: data.IsActive},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	result, err := r.db.Collection(announcementsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateAnnouncement").Msg("Failed to update announcement")
		return
	}

	if result.MatchedCount == 0 {
		return errs.NotFound("Announcement")
	}

	return nil
}

func (r *MongoDBAnnouncementRepositoryImpl) DeleteAnnouncement(ctx context.Context, id primitive.ObjectID) (err error) {
	result, err := r.db.Collection(announcementsCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteAnnouncement").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.NotFound("Announcement")
	}

	return nil
}
