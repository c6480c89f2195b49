package queue

import "go.mongodb.org/mongo-driver/bson/primitive"

// Routing keys under the trips.events exchange.
const (
	KeyUserRegistered = "user.registered"
	KeyUserLoggedIn   = "user.loggedin"
	KeyPlanCreated    = "plan.created"
)

type UserRegistered struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
}

type UserLoggedIn struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
}

type PlanCreated struct {
	PlanID      primitive.ObjectID `json:"plan_id"`
	Destination string             `json:"destination"`
}
