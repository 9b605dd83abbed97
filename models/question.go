package models

import "time"

// Question is one interview question a user can practice against.
type Question struct {
	ID         string    `json:"id" bson:"_id"`
	Question   string    `json:"question" bson:"question"`
	Category   string    `json:"category" bson:"category"`
	Difficulty string    `json:"difficulty" bson:"difficulty"`
	Company    string    `json:"company,omitempty" bson:"company,omitempty"`
	JobRole    string    `json:"job_role,omitempty" bson:"jobRole,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"createdAt"`
}

// QuestionFilter narrows a question listing. Zero values mean no filtering on
// that field.
type QuestionFilter struct {
	Category   string
	Difficulty string
	Company    string
	ExcludeIDs []string
}
