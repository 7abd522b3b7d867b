package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ActivityEmployee   = "employee"
	ActivityDepartment = "department"
)

type Activity struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user,omitempty" json:"userId,omitempty"`
	Action     string             `bson:"action" json:"action"`
	Category   string             `bson:"category" json:"category"`
	OccurredAt time.Time          `bson:"occurredAt" json:"occurredAt"`
}
