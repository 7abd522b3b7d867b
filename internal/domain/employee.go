package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EmployeeStatusActive     = "active"
	EmployeeStatusOnLeave    = "on_leave"
	EmployeeStatusTerminated = "terminated"
)

type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user" json:"userId"`
	Department primitive.ObjectID `bson:"department,omitempty" json:"departmentId,omitempty"`
	JobTitle   string             `bson:"jobTitle" json:"jobTitle"`
	Salary     float64            `bson:"salary" json:"salary"`
	Status     string             `bson:"status" json:"status"`
	JoinDate   time.Time          `bson:"joinDate" json:"joinDate"`
	Avatar     string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (e Employee) HasDepartment() bool {
	return !e.Department.IsZero()
}

type EmployeeFilter struct {
	Department primitive.ObjectID
	Status     string
}
