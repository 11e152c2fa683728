package model

// Room is a rentable unit in the catalog. Booking state lives directly on
// the document: bookedUser and bookedDate are present iff a booking is
// active, and are always set and cleared together. Reviews are opaque
// guest-supplied payloads kept in arrival order.
type Room struct {
	ID          string `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string `json:"name,omitempty" bson:"name,omitempty"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
	Image       string `json:"image,omitempty" bson:"image,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Price       int64  `json:"price" bson:"price"`

	Available  bool   `json:"available" bson:"available"`
	BookedUser string `json:"bookedUser,omitempty" bson:"bookedUser,omitempty"`
	BookedDate any    `json:"bookedDate,omitempty" bson:"bookedDate,omitempty"`

	Reviews []map[string]any `json:"reviews,omitempty" bson:"reviews,omitempty"`
}
