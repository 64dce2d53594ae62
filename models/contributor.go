package models

// ContributorRole represents the kind of volunteer a contributor is
type ContributorRole string

const (
	RoleIntern    ContributorRole = "intern"
	RoleParalegal ContributorRole = "paralegal"
	RoleLawyer    ContributorRole = "lawyer"
)

// ContributorRoles lists the roles in tab order
var ContributorRoles = []ContributorRole{RoleIntern, RoleParalegal, RoleLawyer}

// Valid reports whether r is a known role
func (r ContributorRole) Valid() bool {
	_, ok := roleBadges[r]
	return ok
}

// Availability represents whether a contributor is taking cases
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityLimited     Availability = "limited"
	AvailabilityUnavailable Availability = "unavailable"
)

// Capability is a kind of help a contributor can offer
type Capability string

const (
	CapabilityDrafting    Capability = "drafting"
	CapabilityGuidance    Capability = "guidance"
	CapabilitySupervision Capability = "supervision"
)

// Badge is the display label and style token for a tagged value
type Badge struct {
	Label string `json:"label"`
	Style string `json:"style"`
}

var roleBadges = map[ContributorRole]Badge{
	RoleIntern:    {Label: "Law Intern", Style: "info"},
	RoleParalegal: {Label: "Paralegal", Style: "success"},
	RoleLawyer:    {Label: "Pro Bono Lawyer", Style: "accent"},
}

var availabilityBadges = map[Availability]Badge{
	AvailabilityAvailable:   {Label: "Available", Style: "success"},
	AvailabilityLimited:     {Label: "Limited", Style: "warning"},
	AvailabilityUnavailable: {Label: "Unavailable", Style: "muted"},
}

// Badge returns the role's display badge
func (r ContributorRole) Badge() Badge {
	return roleBadges[r]
}

// Badge returns the availability's display badge
func (a Availability) Badge() Badge {
	return availabilityBadges[a]
}

// Contributor represents an intern, paralegal or pro-bono lawyer listed in the directory
type Contributor struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Role            ContributorRole `json:"role"`
	ExperienceYears int             `json:"experience_years"`
	Interests       []string        `json:"interests"`
	City            string          `json:"city"`
	Region          string          `json:"region"`
	Availability    Availability    `json:"availability"`
	CanAssistWith   []Capability    `json:"can_assist_with"`
	Bio             string          `json:"bio"`
	CasesHandled    int             `json:"cases_handled"`
	Rating          *float64        `json:"rating,omitempty"` // 0..5 when present
}

// CanConnect reports whether a seeker may request a connection
func (c Contributor) CanConnect() bool {
	return c.Availability != AvailabilityUnavailable
}

func rating(v float64) *float64 { return &v }

// SeedContributors is the fixed directory, in display order
var SeedContributors = []Contributor{
	{
		ID:              "1",
		Name:            "Priya Sharma",
		Role:            RoleIntern,
		ExperienceYears: 1,
		Interests:       []string{"Consumer Protection", "Cyber Crime", "RTI"},
		City:            "Mumbai",
		Region:          "Maharashtra",
		Availability:    AvailabilityAvailable,
		CanAssistWith:   []Capability{CapabilityDrafting, CapabilityGuidance},
		Bio:             "Final year law student from NLU Mumbai. Passionate about consumer rights and digital privacy law.",
		CasesHandled:    12,
		Rating:          rating(4.8),
	},
	{
		ID:              "2",
		Name:            "Rahul Verma",
		Role:            RoleParalegal,
		ExperienceYears: 3,
		Interests:       []string{"Property Disputes", "Family Law", "Documentation"},
		City:            "Delhi",
		Region:          "Delhi",
		Availability:    AvailabilityAvailable,
		CanAssistWith:   []Capability{CapabilityDrafting, CapabilityGuidance},
		Bio:             "Experienced paralegal specializing in property documentation and family law matters.",
		CasesHandled:    45,
		Rating:          rating(4.9),
	},
	{
		ID:              "3",
		Name:            "Adv. Meera Krishnan",
		Role:            RoleLawyer,
		ExperienceYears: 8,
		Interests:       []string{"Employment Law", "Labor Disputes", "Contract Law"},
		City:            "Bangalore",
		Region:          "Karnataka",
		Availability:    AvailabilityLimited,
		CanAssistWith:   []Capability{CapabilityDrafting, CapabilityGuidance, CapabilitySupervision},
		Bio:             "Pro bono advocate with 8+ years experience in employment and labor law. Available for case supervision.",
		CasesHandled:    120,
		Rating:          rating(4.95),
	},
	{
		ID:              "4",
		Name:            "Amit Patel",
		Role:            RoleIntern,
		ExperienceYears: 0,
		Interests:       []string{"Criminal Law", "FIR Assistance", "Police Matters"},
		City:            "Ahmedabad",
		Region:          "Gujarat",
		Availability:    AvailabilityAvailable,
		CanAssistWith:   []Capability{CapabilityDrafting, CapabilityGuidance},
		Bio:             "LLB graduate interested in criminal law procedures and police-related legal matters.",
		CasesHandled:    5,
		Rating:          rating(4.5),
	},
	{
		ID:              "5",
		Name:            "Sunita Reddy",
		Role:            RoleParalegal,
		ExperienceYears: 5,
		Interests:       []string{"Government Services", "Pension", "Documentation"},
		City:            "Hyderabad",
		Region:          "Telangana",
		Availability:    AvailabilityAvailable,
		CanAssistWith:   []Capability{CapabilityDrafting, CapabilityGuidance},
		Bio:             "Specialized in government service matters, pension claims, and official documentation.",
		CasesHandled:    78,
		Rating:          rating(4.85),
	},
	{
		ID:              "6",
		Name:            "Adv. Vikram Singh",
		Role:            RoleLawyer,
		ExperienceYears: 12,
		Interests:       []string{"Property Law", "Land Disputes", "Real Estate"},
		City:            "Jaipur",
		Region:          "Rajasthan",
		Availability:    AvailabilityAvailable,
		CanAssistWith:   []Capability{CapabilityDrafting, CapabilityGuidance, CapabilitySupervision},
		Bio:             "Senior advocate specializing in property and land disputes. Offers pro bono supervision for complex cases.",
		CasesHandled:    200,
		Rating:          rating(4.92),
	},
}
