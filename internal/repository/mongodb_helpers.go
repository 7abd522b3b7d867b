package repository

import (
	"context"
	"errors"
	"strings"

	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection         = "users"
	departmentsCollection   = "departments"
	employeesCollection     = "employees"
	tasksCollection         = "tasks"
	announcementsCollection = "announcements"
	notificationsCollection = "notifications"
	activitiesCollection    = "activities"
)

func findOptions(param pkgdto.Filter) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if param.Paginated() {
		opts.SetSkip(param.Skip()).SetLimit(int64(param.Limit))
	}
	return opts
}

func notFound(err error, entity string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.NotFound(entity)
	}
	return err
}

// duplicateKey maps a unique index violation to the conflict registered for
// the index whose key appears in the server message.
func duplicateKey(err error, conflicts map[string]error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	for key, conflict := range conflicts {
		if strings.Contains(err.Error(), key) {
			return conflict
		}
	}
	return errs.Conflict(errs.ErrConflict.Error())
}

// EnsureIndexes creates the unique indexes the services rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
			{Keys: bson.D{{Key: "employeeCode", Value: 1}}, Options: options.Index().SetUnique(true).SetName("employeeCode_unique")},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		departmentsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("name_unique")},
		},
		employeesCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true).SetName("user_unique")},
			{Keys: bson.D{{Key: "department", Value: 1}}},
		},
		tasksCollection: {
			{Keys: bson.D{{Key: "assignedTo", Value: 1}}},
		},
		notificationsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		activitiesCollection: {
			{Keys: bson.D{{Key: "occurredAt", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}

	return nil
}
