package store

import "time"

type CustomerStatus string

const (
	CustomerActive    CustomerStatus = "active"
	CustomerInactive  CustomerStatus = "inactive"
	CustomerPotential CustomerStatus = "potential"
	CustomerBlocked   CustomerStatus = "blocked"
)

type Customer struct {
	ID        string         `bson:"id" json:"id"`
	UserID    string         `bson:"user_id" json:"user_id"`
	Name      string         `bson:"name" json:"name"`
	Email     string         `bson:"email" json:"email"`
	Status    CustomerStatus `bson:"status" json:"status"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
}
