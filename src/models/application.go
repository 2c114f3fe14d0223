package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application is one stored membership application.
type Application struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Branch     string             `bson:"branch" json:"branch"`
	Year       string             `bson:"year" json:"year"`
	Phone      string             `bson:"phone" json:"phone"`
	Email      string             `bson:"email" json:"email"`
	WhyJoin    string             `bson:"whyJoin" json:"whyJoin"`
	SoftSkills []string           `bson:"softSkills" json:"softSkills"`
	HardSkills []string           `bson:"hardSkills" json:"hardSkills"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ApplicationInput is the request body of POST /api/applications.
type ApplicationInput struct {
	Name       string      `json:"name" validate:"required,min=1,max=200" example:"Asha Verma"`
	Branch     string      `json:"branch" validate:"required,min=1,max=200" example:"Computer Science Engineering"`
	Year       string      `json:"year" validate:"required,min=1,max=20" example:"2nd Year"`
	Phone      string      `json:"phone" validate:"required,phone" example:"+91 98765 43210"`
	Email      string      `json:"email" validate:"required,email" example:"asha@example.com"`
	WhyJoin    string      `json:"whyJoin" validate:"required,min=1,max=2000"`
	SoftSkills SkillsInput `json:"softSkills" swaggertype:"array,string"`
	HardSkills SkillsInput `json:"hardSkills" swaggertype:"array,string"`
}

// Normalize trims the scalar fields and lower-cases the email.
// whyJoin is free text and is kept as submitted.
func (in *ApplicationInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Branch = strings.TrimSpace(in.Branch)
	in.Year = strings.TrimSpace(in.Year)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// ToApplication builds the record to persist. ID and timestamps are left to the caller.
func (in *ApplicationInput) ToApplication() *Application {
	return &Application{
		Name:       in.Name,
		Branch:     in.Branch,
		Year:       in.Year,
		Phone:      in.Phone,
		Email:      in.Email,
		WhyJoin:    in.WhyJoin,
		SoftSkills: in.SoftSkills.Resolve(),
		HardSkills: in.HardSkills.Resolve(),
	}
}
