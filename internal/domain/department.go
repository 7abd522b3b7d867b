package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Department struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Head          string             `bson:"head" json:"head"`
	Description   string             `bson:"description" json:"description"`
	EmployeeCount int64              `bson:"employeeCount" json:"employeeCount"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DepartmentHeadcount is the observed number of employees referencing a department.
type DepartmentHeadcount struct {
	DepartmentID primitive.ObjectID `bson:"_id"`
	Count        int64              `bson:"count"`
}
