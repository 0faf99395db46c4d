// internal/domain/models/refdata.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultSiteName is the portal name shown when no override is configured.
const DefaultSiteName = "Capstone Portal"

// RefItem is one entry of the static reference lists (departments, domains)
// offered during profile setup.
type RefItem struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}
