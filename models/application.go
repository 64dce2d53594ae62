package models

// ContributorApplication is the "join as a contributor" form
type ContributorApplication struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	ContributorType string   `json:"contributor_type"`
	Specialization  string   `json:"specialization"`
	Experience      string   `json:"experience"`
	Education       string   `json:"education"`
	BarLicense      string   `json:"bar_license"`
	Languages       []string `json:"languages"`
	Bio             string   `json:"bio"`
	Availability    string   `json:"availability"`
	TermsAccepted   bool     `json:"terms_accepted"`
}

// ApplicantTypes are the accepted contributor_type values
var ApplicantTypes = []string{"lawyer", "paralegal", "intern", "student"}

// Specializations lists the practice areas an applicant can pick
var Specializations = []string{
	"Criminal Law", "Civil Law", "Family Law", "Corporate Law", "Constitutional Law",
	"Environmental Law", "Human Rights Law", "Intellectual Property", "Tax Law", "Immigration Law", "Other",
}

// ExperienceLevels are the accepted experience values
var ExperienceLevels = []string{"0-2", "3-5", "6-10", "10+"}

// Languages lists the languages an applicant can select
var Languages = []string{
	"English", "Hindi", "Bengali", "Telugu", "Marathi", "Tamil", "Urdu", "Gujarati",
	"Kannada", "Odia", "Punjabi", "Malayalam", "Assamese", "Maithili", "Other",
}

// ApplicantAvailability are the accepted availability values
var ApplicantAvailability = []string{"full-time", "part-time", "occasional", "flexible"}

// SignInRequest is the email sign-in form
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Notification is the toast a caller renders for an action's outcome
type Notification struct {
	Success     bool   `json:"success"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}
