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

var userConflicts = map[string]error{
	"email":        errs.ErrEmailAlreadyUsed,
	"employeeCode": errs.ErrCodeAlreadyUsed,
}

type MongoDBUserRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBUserRepository(db *mongo.Database) UserRepository {
	return &MongoDBUserRepositoryImpl{db: db}
}

func (r *MongoDBUserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(usersCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		return id, duplicateKey(err, userConflicts)
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBUserRepositoryImpl) GetUserByID(ctx context.Context, id primitive.ObjectID) (user domain.User, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("component", "GetUserByID").Msg("")
		return user, notFound(err, "User")
	}

	return user, nil
}

func (r *MongoDBUserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (user domain.User, err error) {
	filter := bson.D{{Key: "email", Value: email}}

	err = r.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("component", "GetUserByEmail").Msg("")
		return user, notFound(err, "User")
	}

	return user, nil
}

func (r *MongoDBUserRepositoryImpl) GetUsers(ctx context.Context, param pkgdto.Filter) (data []domain.User, err error) {
	cursor, err := r.db.Collection(usersCollection).Find(ctx, bson.D{}, findOptions(param))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUsers").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUsers").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBUserRepositoryImpl) GetUsersByRole(ctx context.Context, role string) (data []domain.User, err error) {
	cursor, err := r.db.Collection(usersCollection).Find(ctx, bson.D{{Key: "role", Value: role}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUsersByRole").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUsersByRole").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBUserRepositoryImpl) CountUsers(ctx context.Context) (count int64, err error) {
	count, err = r.db.Collection(usersCollection).CountDocuments(ctx, bson.D{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountUsers").Msg("")
	}
	return
}

func (r *MongoDBUserRepositoryImpl) UpdateUser(ctx context.Context, data domain.User) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "fatherName", Value: data.FatherName},
		{Key: "email", Value: data.Email},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	result, err := r.db.Collection(usersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateUser").Msg("Failed to update user")
		return duplicateKey(err, userConflicts)
	}

	if result.MatchedCount == 0 {
		return errs.NotFound("User")
	}

	return nil
}

func (r *MongoDBUserRepositoryImpl) SetRefreshToken(ctx context.Context, id primitive.ObjectID, digest string) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	update := bson.D{{Key: "$set", Value: bson.D{{Key: "refreshToken", Value: digest}}}}
	if digest == "" {
		update = bson.D{{Key: "$unset", Value: bson.D{{Key: "refreshToken", Value: ""}}}}
	}

	result, err := r.db.Collection(usersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SetRefreshToken").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.NotFound("User")
	}

	return nil
}

func (r *MongoDBUserRepositoryImpl) ReplaceRefreshToken(ctx context.Context, id primitive.ObjectID, oldDigest string, newDigest string) (swapped bool, err error) {
	if oldDigest == "" {
		return false, nil
	}

	filter := bson.D{{Key: "_id", Value: id}, {Key: "refreshToken", Value: oldDigest}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "refreshToken", Value: newDigest}}}}

	result, err := r.db.Collection(usersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ReplaceRefreshToken").Msg("")
		return
	}

	return result.MatchedCount == 1, nil
}

func (r *MongoDBUserRepositoryImpl) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "password", Value: hash}, {Key: "updatedAt", Value: time.Now().UTC()}}},
		{Key: "$unset", Value: bson.D{{Key: "refreshToken", Value: ""}}},
	}

	result, err := r.db.Collection(usersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdatePassword").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.NotFound("User")
	}

	return nil
}

func (r *MongoDBUserRepositoryImpl) DeleteUser(ctx context.Context, id primitive.ObjectID) (err error) {
	result, err := r.db.Collection(usersCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteUser").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.NotFound("User")
	}

	return nil
}
