package models

// CaseCategory represents one entry of the fixed case catalog
type CaseCategory struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	Description   string   `json:"description"`
	Subcategories []string `json:"subcategories"`
}

// HasSubcategory reports whether name is one of the category's subcategories
func (c CaseCategory) HasSubcategory(name string) bool {
	for _, sub := range c.Subcategories {
		if sub == name {
			return true
		}
	}
	return false
}

// CaseCategories is the catalog shown on the first wizard step
var CaseCategories = []CaseCategory{
	{
		ID:            "rent",
		Name:          "Rent & Housing Disputes",
		Icon:          "🏠",
		Description:   "Landlord issues, eviction, deposit disputes",
		Subcategories: []string{"Eviction Notice", "Security Deposit", "Rent Agreement", "Maintenance Issues", "Illegal Occupation"},
	},
	{
		ID:            "employment",
		Name:          "Employment & Labor",
		Icon:          "💼",
		Description:   "Job scams, unpaid wages, wrongful termination",
		Subcategories: []string{"Unpaid Salary", "Wrongful Termination", "Workplace Harassment", "Job Scam", "Contract Dispute"},
	},
	{
		ID:            "consumer",
		Name:          "Consumer Protection",
		Icon:          "🛒",
		Description:   "Defective products, service complaints",
		Subcategories: []string{"Defective Product", "Service Deficiency", "Online Fraud", "Warranty Issues", "Unfair Trade Practice"},
	},
	{
		ID:            "family",
		Name:          "Family & Matrimonial",
		Icon:          "👨‍👩‍👧",
		Description:   "Divorce, custody, domestic issues",
		Subcategories: []string{"Divorce Proceedings", "Child Custody", "Domestic Violence", "Maintenance/Alimony", "Property Settlement"},
	},
	{
		ID:            "cyber",
		Name:          "Cyber Crime",
		Icon:          "💻",
		Description:   "Online fraud, identity theft, harassment",
		Subcategories: []string{"Online Fraud", "Identity Theft", "Cyber Harassment", "Data Privacy", "Hacking/Phishing"},
	},
	{
		ID:            "police",
		Name:          "Police & FIR Matters",
		Icon:          "🚔",
		Description:   "FIR assistance, police complaints",
		Subcategories: []string{"File FIR", "Police Inaction", "False FIR", "Station Complaint", "Investigation Follow-up"},
	},
	{
		ID:            "property",
		Name:          "Property & Land",
		Icon:          "🏗️",
		Description:   "Property disputes, land grabbing, documentation",
		Subcategories: []string{"Property Dispute", "Land Grabbing", "Title Verification", "Registration Issues", "Encroachment"},
	},
	{
		ID:            "government",
		Name:          "Government Services",
		Icon:          "🏛️",
		Description:   "RTI, government benefits, document issues",
		Subcategories: []string{"RTI Application", "Pension Issues", "Document Correction", "Scheme Benefits", "License/Permit"},
	},
}

// FindCategory looks a category up by id
func FindCategory(id string) (CaseCategory, bool) {
	for _, c := range CaseCategories {
		if c.ID == id {
			return c, true
		}
	}
	return CaseCategory{}, false
}

// Regions lists the states and union territories a case can be filed from
var Regions = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya", "Mizoram",
	"Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim", "Tamil Nadu",
	"Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand", "West Bengal",
	"Delhi", "Jammu & Kashmir", "Ladakh", "Puducherry", "Chandigarh",
}

// GuideStep is one entry of the how-it-works walkthrough
type GuideStep struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HowItWorks is the seeker walkthrough
var HowItWorks = []GuideStep{
	{Step: 1, Title: "Select Your Case Type", Description: "Choose from categories like rent disputes, consumer issues, cyber crime, and more. Select a subcategory and indicate urgency."},
	{Step: 2, Title: "Describe Your Situation", Description: "Answer guided questions about what happened, when it started, and what outcome you're seeking. Upload any supporting documents."},
	{Step: 3, Title: "Find a Contributor", Description: "Browse matched law interns, paralegals, or pro-bono lawyers. View their expertise and availability before connecting."},
	{Step: 4, Title: "Accept Ethics Terms", Description: "Both you and the contributor must agree to platform ethics and acknowledge this is not legal representation."},
	{Step: 5, Title: "Collaborate Safely", Description: "Work together on case preparation, document drafting, and procedural guidance. Your identity remains protected."},
	{Step: 6, Title: "Get Prepared", Description: "Receive a prepared case summary. Complex cases can be escalated to professional lawyers if needed."},
}
