package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post keeps a snapshot of the author's name and avatar taken when it was
// created. The snapshot is not refreshed when the user changes later.
type Post struct {
	Id        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Text      string             `json:"text" bson:"text"`
	Name      string             `json:"name" bson:"name"`
	Avatar    string             `json:"avatar" bson:"avatar"`
	Likes     []Like             `json:"likes" bson:"likes"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	CreatedAt time.Time          `json:"date" bson:"date"`
}

type Like struct {
	Id   primitive.ObjectID `json:"_id" bson:"_id"`
	User primitive.ObjectID `json:"user" bson:"user"`
}

type Comment struct {
	Id        primitive.ObjectID `json:"_id" bson:"_id"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Text      string             `json:"text" bson:"text"`
	Name      string             `json:"name" bson:"name"`
	Avatar    string             `json:"avatar" bson:"avatar"`
	CreatedAt time.Time          `json:"date" bson:"date"`
}

// LikedBy reports whether userID is already in the like set
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, like := range p.Likes {
		if like.User == userID {
			return true
		}
	}
	return false
}
