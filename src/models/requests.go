package models

// Request bodies. The msg tag is the client-facing message used when the
// field fails validation.

type RegisterRequest struct {
	Name     string `json:"name" validate:"required" msg:"Name is required."`
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email."`
	Password string `json:"password" validate:"min=6" msg:"Please enter a password with 6 or more characters."`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email."`
	Password string `json:"password" validate:"required" msg:"Password is required."`
}

type ProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status" validate:"required" msg:"Status is required."`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" validate:"required" msg:"Skills are required."`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type ExperienceRequest struct {
	Title       string `json:"title" validate:"required" msg:"Title is required."`
	Company     string `json:"company" validate:"required" msg:"Company is required."`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required,date" msg:"Start date is required."`
	To          string `json:"to" validate:"omitempty,date" msg:"End date is not a valid date."`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationRequest struct {
	School       string `json:"school" validate:"required" msg:"School is required."`
	Degree       string `json:"degree" validate:"required" msg:"Degree is required."`
	FieldOfStudy string `json:"fieldofstudy" validate:"required" msg:"Field of study date is required."`
	From         string `json:"from" validate:"required,date" msg:"Start date is required."`
	To           string `json:"to" validate:"omitempty,date" msg:"End date is not a valid date."`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// TextRequest is the body of post and comment creation
type TextRequest struct {
	Text string `json:"text" validate:"required" msg:"Text is required."`
}
