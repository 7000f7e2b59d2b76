package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RevalidationRecord is the MongoDB log entry of a dispatched page
// revalidation.
type RevalidationRecord struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Reason     string             `json:"reason" bson:"reason"`
	ActorID    string             `json:"actor_id" bson:"actor_id"`
	Paths      []string           `json:"paths" bson:"paths"`
	ProfileIDs []string           `json:"profile_ids" bson:"profile_ids"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}
