package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Profile struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User           primitive.ObjectID `json:"user" bson:"user"`
	Company        string             `json:"company,omitempty" bson:"company,omitempty"`
	Website        string             `json:"website,omitempty" bson:"website,omitempty"`
	Location       string             `json:"location,omitempty" bson:"location,omitempty"`
	Status         string             `json:"status" bson:"status"`
	Skills         []string           `json:"skills" bson:"skills"`
	Bio            string             `json:"bio,omitempty" bson:"bio,omitempty"`
	GithubUsername string             `json:"githubusername,omitempty" bson:"githubusername,omitempty"`
	Experience     []Experience       `json:"experience" bson:"experience"`
	Education      []Education        `json:"education" bson:"education"`
	Social         Social             `json:"social" bson:"social"`
	CreatedAt      time.Time          `json:"date" bson:"date"`
}

type Social struct {
	Youtube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

type Experience struct {
	Id          primitive.ObjectID `json:"_id" bson:"_id"`
	Title       string             `json:"title" bson:"title"`
	Company     string             `json:"company" bson:"company"`
	Location    string             `json:"location,omitempty" bson:"location,omitempty"`
	From        time.Time          `json:"from" bson:"from"`
	To          *time.Time         `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool               `json:"current" bson:"current"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
}

type Education struct {
	Id           primitive.ObjectID `json:"_id" bson:"_id"`
	School       string             `json:"school" bson:"school"`
	Degree       string             `json:"degree" bson:"degree"`
	FieldOfStudy string             `json:"fieldofstudy" bson:"fieldofstudy"`
	From         time.Time          `json:"from" bson:"from"`
	To           *time.Time         `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool               `json:"current" bson:"current"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
}

// ProfileFields is a sparse set of profile keys to $set. Keys use the stored
// (bson) names, social links are addressed as "social.<network>".
type ProfileFields map[string]interface{}

// ProfileDto is a profile with its owning user populated
type ProfileDto struct {
	Profile
	User UserDto `json:"user"`
}

func NewProfileDto(profile Profile, user UserDto) ProfileDto {
	return ProfileDto{
		Profile: profile,
		User:    user,
	}
}
