package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Question is one entry in the trivia catalog. Rooms reference
// questions by their index in the catalog's stable ordering, not by id.
type Question struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Prompt  string             `json:"prompt" bson:"prompt"`
	Answer  string             `json:"answer" bson:"answer"`
	Choices []string           `json:"choices,omitempty" bson:"choices,omitempty"`
}
