package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Client struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name"`
	Status  string             `json:"status" bson:"status"`
	Deleted bool               `json:"deleted" bson:"deleted"`
}

// IsActive - klijent je aktivan samo ako nije obrisan i status mu je "active".
func (c Client) IsActive() bool {
	return !c.Deleted && c.Status == "active"
}
