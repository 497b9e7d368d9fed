package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Tip is a maintenance tip shown on the garage home page. Kind is empty for
// general tips and holds a vehicle kind for kind-specific ones.
type Tip struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind Kind               `bson:"kind,omitempty" json:"kind,omitempty"`
	Text string             `bson:"text" json:"text"`
}

// FeaturedVehicle is a showcase entry on the garage home page.
type FeaturedVehicle struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Model     string             `bson:"model" json:"model"`
	Year      int                `bson:"year" json:"year"`
	Highlight string             `bson:"highlight" json:"highlight"`
	ImageURL  string             `bson:"image_url" json:"image_url"`
}

// OfferedService is a workshop service advertised by the garage.
type OfferedService struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	EstimatedPrice string             `bson:"estimated_price" json:"estimated_price"`
}
