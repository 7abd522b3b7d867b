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

type MongoDBTaskRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBTaskRepository(db *mongo.Database) TaskRepository {
	return &MongoDBTaskRepositoryImpl{db: db}
}

func (r *MongoDBTaskRepositoryImpl) AddTask(ctx context.Context, data domain.Task) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(tasksCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddTask").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBTaskRepositoryImpl) GetTaskByID(ctx context.Context, id primitive.ObjectID) (task domain.Task, err error) {
	err = r.db.Collection(tasksCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&task)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("component", "GetTaskByID").Msg("")
		return task, notFound(err, "Task")
	}

	return task, nil
}

func (r *MongoDBTaskRepositoryImpl) GetTasks(ctx context.Context, filter domain.TaskFilter, param pkgdto.Filter) (data []domain.Task, err error) {
	query := bson.D{}
	if !filter.AssignedTo.IsZero() {
		query = append(query, bson.E{Key: "assignedTo", Value: filter.AssignedTo})
	}
	if filter.Completed != nil {
		query = append(query, bson.E{Key: "completed", Value: *filter.Completed})
	}

	cursor, err := r.db.Collection(tasksCollection).Find(ctx, query, findOptions(param))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetTasks").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetTasks").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBTaskRepositoryImpl) UpdateTask(ctx context.Context, data domain.Task) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	set := bson.D{
		{Key: "title", Value: data.Title},
		{Key: "description", Value: data.Description},
		{Key: "priority", Value: data.Priority},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}
	unset := bson.D{}

	if data.AssignedTo.IsZero() {
		unset = append(unset, bson.E{Key: "assignedTo", Value: ""})
	} else {
		set = append(set, bson.E{Key: "assignedTo", Value: data.AssignedTo})
	}
	if data.DueDate == nil {
		unset = append(unset, bson.E{Key: "dueDate", Value: ""})
	} else {
		set = append(set, bson.E{Key: "dueDate", Value: *data.DueDate})
	}

	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}

	result, err := r.db.Collection(tasksCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateTask").Msg("Failed to update task")
		return
	}

	if result.MatchedCount == 0 {
		return errs.NotFound("Task")
	}

	return nil
}

func (r *MongoDBTaskRepositoryImpl) SetTaskCompleted(ctx context.Context, id primitive.ObjectID, completed bool) (transitioned bool, err error) {
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "completed", Value: completed},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	if completed {
		flip := bson.D{{Key: "_id", Value: id}, {Key: "completed", Value: false}}
		result, err := r.db.Collection(tasksCollection).UpdateOne(ctx, flip, update)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "SetTaskCompleted").Msg("")
			return false, err
		}
		if result.MatchedCount == 1 {
			return true, nil
		}
	}

	result, err := r.db.Collection(tasksCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SetTaskCompleted").Msg("")
		return false, err
	}

	if result.MatchedCount == 0 {
		return false, errs.NotFound("Task")
	}

	return false, nil
}

func (r *MongoDBTaskRepositoryImpl) DeleteTask(ctx context.Context, id primitive.ObjectID) (err error) {
	result, err := r.db.Collection(tasksCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteTask").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.NotFound("Task")
	}

	return nil
}
