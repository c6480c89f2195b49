package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan carries no owner field on purpose: every authenticated user may
// list all plans. The claim is still attached to the request context, so
// owner scoping can be added without touching the gate.
type Plan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Destination string             `bson:"destination" json:"destination"`
	Budget      *float64           `bson:"budget,omitempty" json:"budget,omitempty"`
	Weather     string             `bson:"weather,omitempty" json:"weather,omitempty"`
	Itinerary   string             `bson:"itinerary,omitempty" json:"itinerary,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
