package model

import "time"

// Review is an entry in the flat review log. It has no foreign-key link to
// a room; the log is read newest-first by timeStamp.
type Review struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	ReviewID  string    `json:"reviewId,omitempty" bson:"reviewId,omitempty"`
	Content   string    `json:"content" bson:"content" validate:"required,min=1,max=2000"`
	Author    string    `json:"author,omitempty" bson:"author,omitempty" validate:"omitempty,max=120"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Rating    *int      `json:"rating,omitempty" bson:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	TimeStamp time.Time `json:"timeStamp" bson:"timeStamp"`
}
