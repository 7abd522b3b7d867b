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
	"go.mongodb.org/mongo-driver/mongo/options"
)

var departmentConflicts = map[string]error{
	"name": errs.ErrDepartmentExists,
}

type MongoDBDepartmentRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBDepartmentRepository(db *mongo.Database) DepartmentRepository {
	return &MongoDBDepartmentRepositoryImpl{db: db}
}

func (r *MongoDBDepartmentRepositoryImpl) AddDepartment(ctx context.Context, data domain.Department) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(departmentsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddDepartment").Msg("")
		return id, duplicateKey(err, departmentConflicts)
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBDepartmentRepositoryImpl) GetDepartmentByID(ctx context.Context, id primitive.ObjectID) (department domain.Department, err error) {
	err = r.db.Collection(departmentsCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&department)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("component", "GetDepartmentByID").Msg("")
		return department, notFound(err, "Department")
	}

	return department, nil
}

func (r *MongoDBDepartmentRepositoryImpl) GetDepartmentByName(ctx context.Context, name string) (department domain.Department, err error) {
	err = r.db.Collection(departmentsCollection).FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&department)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("component", "GetDepartmentByName").Msg("")
		return department, notFound(err, "Department")
	}

	return department, nil
}

func (r *MongoDBDepartmentRepositoryImpl) GetDepartments(ctx context.Context, param pkgdto.Filter) (data []domain.Department, err error) {
	opts := findOptions(param).SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.db.Collection(departmentsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetDepartments").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetDepartments").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBDepartmentRepositoryImpl) GetDepartmentsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Department, err error) {
	if len(ids) == 0 {
		return nil, nil
	}

	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}

	cursor, err := r.db.Collection(departmentsCollection).Find(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetDepartmentsByIDs").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetDepartmentsByIDs").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBDepartmentRepositoryImpl) UpdateDepartment(ctx context.Context, data domain.Department) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "head", Value: data.Head},
		{Key: "description", Value: data.Description},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	result, err := r.db.Collection(departmentsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateDepartment").Msg("Failed to update department")
		return duplicateKey(err, departmentConflicts)
	}

	if result.MatchedCount == 0 {
		return errs.NotFound("Department")
	}

	return nil
}

func (r *MongoDBDepartmentRepositoryImpl) DeleteEmptyDepartment(ctx context.Context, id primitive.ObjectID) (err error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "employeeCount", Value: bson.D{{Key: "$lte", Value: 0}}},
	}

	result, err := r.db.Collection(departmentsCollection).DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteEmptyDepartment").Msg("")
		return
	}

	if result.DeletedCount == 1 {
		return nil
	}

	if _, err = r.GetDepartmentByID(ctx, id); err != nil {
		return err
	}

	return errs.ErrDepartmentHasStaff
}

func (r *MongoDBDepartmentRepositoryImpl) IncrementEmployeeCount(ctx context.Context, id primitive.ObjectID, delta int64) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "employeeCount", Value: delta}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
	}

	result, err := r.db.Collection(departmentsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "IncrementEmployeeCount").Msg("Failed to update department")
		return
	}

	if result.MatchedCount == 0 {
		log.Ctx(ctx).Error().Str("component", "IncrementEmployeeCount").Str("department", id.Hex()).Msg("Department not found")
		return errs.NotFound("Department")
	}

	return nil
}

func (r *MongoDBDepartmentRepositoryImpl) CorrectEmployeeCount(ctx context.Context, id primitive.ObjectID, expected int64, actual int64) (corrected bool, err error) {
	filter := bson.D{{Key: "_id", Value: id}, {Key: "employeeCount", Value: expected}}

	update := bson.D{{Key: "$set", Value: bson.D{{Key: "employeeCount", Value: actual}}}}

	result, err := r.db.Collection(departmentsCollection).UpdateOne(ctx, filter, update, options.Update())
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CorrectEmployeeCount").Msg("")
		return
	}

	return result.MatchedCount == 1, nil
}
