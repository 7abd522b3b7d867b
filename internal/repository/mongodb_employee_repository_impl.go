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

type MongoDBEmployeeRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBEmployeeRepository(db *mongo.Database) EmployeeRepository {
	return &MongoDBEmployeeRepositoryImpl{db: db}
}

func (r *MongoDBEmployeeRepositoryImpl) AddEmployee(ctx context.Context, data domain.Employee) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(employeesCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddEmployee").Msg("")
		return id, duplicateKey(err, nil)
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBEmployeeRepositoryImpl) GetEmployeeByID(ctx context.Context, id primitive.ObjectID) (employee domain.Employee, err error) {
	err = r.db.Collection(employeesCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&employee)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("component", "GetEmployeeByID").Msg("")
		return employee, notFound(err, "Employee")
	}

	return employee, nil
}

func (r *MongoDBEmployeeRepositoryImpl) GetEmployeeByUserID(ctx context.Context, userID primitive.ObjectID) (employee domain.Employee, err error) {
	err = r.db.Collection(employeesCollection).FindOne(ctx, bson.D{{Key: "user", Value: userID}}).Decode(&employee)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("component", "GetEmployeeByUserID").Msg("")
		return employee, notFound(err, "Employee")
	}

	return employee, nil
}

func (r *MongoDBEmployeeRepositoryImpl) GetEmployees(ctx context.Context, filter domain.EmployeeFilter, param pkgdto.Filter) (data []domain.Employee, err error) {
	query := bson.D{}
	if !filter.Department.IsZero() {
		query = append(query, bson.E{Key: "department", Value: filter.Department})
	}
	if filter.Status != "" {
		query = append(query, bson.E{Key: "status", Value: filter.Status})
	}

	cursor, err := r.db.Collection(employeesCollection).Find(ctx, query, findOptions(param))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetEmployees").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetEmployees").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBEmployeeRepositoryImpl) UpdateEmployee(ctx context.Context, data domain.Employee) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	set := bson.D{
		{Key: "jobTitle", Value: data.JobTitle},
		{Key: "salary", Value: data.Salary},
		{Key: "status", Value: data.Status},
		{Key: "joinDate", Value: data.JoinDate},
		{Key: "avatar", Value: data.Avatar},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}

	update := bson.D{}
	if data.HasDepartment() {
		set = append(set, bson.E{Key: "department", Value: data.Department})
	} else {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "department", Value: ""}}})
	}
	update = append(update, bson.E{Key: "$set", Value: set})

	result, err := r.db.Collection(employeesCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateEmployee").Msg("Failed to update employee")
		return
	}

	if result.MatchedCount == 0 {
		return errs.NotFound("Employee")
	}

	return nil
}

func (r *MongoDBEmployeeRepositoryImpl) DeleteEmployee(ctx context.Context, id primitive.ObjectID) (err error) {
	result, err := r.db.Collection(employeesCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteEmployee").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.NotFound("Employee")
	}

	return nil
}

func (r *MongoDBEmployeeRepositoryImpl) CountEmployeesByDepartment(ctx context.Context) (data []domain.DepartmentHeadcount, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "department", Value: bson.D{{Key: "$exists", Value: true}, {Key: "$ne", Value: nil}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$department"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.db.Collection(employeesCollection).Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountEmployeesByDepartment").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountEmployeesByDepartment").Msg("")
		return
	}

	return data, nil
}
