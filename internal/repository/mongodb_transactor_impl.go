package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoDBTransactorImpl struct {
	db      *mongo.Database
	enabled bool
}

// CreateNewMongoDBTransactor returns a Transactor that opens multi-document
// transactions when enabled. Transactions need a replica set.
func CreateNewMongoDBTransactor(db *mongo.Database, enabled bool) Transactor {
	return &MongoDBTransactorImpl{db: db, enabled: enabled}
}

func (r *MongoDBTransactorImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	if !r.enabled {
		return fn(ctx)
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
		return err
	}

	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		err := fn(sc)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("aborting transaction")
		}
		return nil, err
	})

	return err
}
