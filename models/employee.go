package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Employee struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EmployeeName string             `json:"employeeName" bson:"employeeName"`
	Email        string             `json:"email" bson:"email"`
	Department   string             `json:"department" bson:"department"`
	Status       string             `json:"status" bson:"status"`
	Deleted      bool               `json:"deleted" bson:"deleted"`
}

func (e Employee) IsActive() bool {
	return !e.Deleted && e.Status == "active"
}
