package seed

import (
	"log"

	"github.com/schemegenie/schemegenie-backend/internal/models"
	"github.com/schemegenie/schemegenie-backend/internal/storage"
)

// Schemes inserts a starter catalog when the store is empty. Safe to call
// on every boot.
func Schemes(store storage.Store) error {
	count, err := store.CountSchemes()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding scheme catalog...")

	for _, scheme := range starterSchemes {
		s := scheme
		if _, err := store.CreateScheme(&s); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d schemes", len(starterSchemes))
	return nil
}

var starterSchemes = []models.Scheme{
	{
		Name:        "PM Scholarship Scheme",
		Category:    "Education",
		Description: "Financial assistance for higher education of meritorious students from economically weaker families.",
		Eligibility: models.Eligibility{
			MinAge: 17,
			MaxAge: 25,
			Income: "Below 2 LPA",
			Caste:  models.StringList{"General", "SC", "ST", "OBC"},
			Gender: "All",
		},
		Benefits:           models.StringList{"Rs. 25,000 per year", "Book allowance", "Hostel fee waiver"},
		Documents:          models.StringList{"Aadhaar Card", "Income Proof", "Education", "Photo"},
		ApplicationProcess: "Apply online with marksheets and income certificate. Selection is merit based.",
		OfficialWebsite:    "https://scholarships.gov.in",
	},
	{
		Name:        "Ayushman Health Cover",
		Category:    "Healthcare",
		Description: "Cashless health insurance cover of Rs. 5 lakh per family per year for secondary and tertiary care.",
		Eligibility: models.Eligibility{
			Income: "Below 2 LPA",
			Gender: "All",
		},
		Benefits:           models.StringList{"Rs. 5 lakh annual cover", "Cashless treatment", "Pre and post hospitalization expenses"},
		Documents:          models.StringList{"Aadhaar Card", "Ration Card", "Income Proof"},
		ApplicationProcess: "Verify eligibility at an empanelled hospital or common service centre.",
		OfficialWebsite:    "https://pmjay.gov.in",
	},
	{
		Name:        "Kisan Credit Support",
		Category:    "Agriculture",
		Description: "Income support for land-holding farmer families, paid in three equal installments.",
		Eligibility: models.Eligibility{
			MinAge:     18,
			Employment: "Farmer",
			Gender:     "All",
		},
		Benefits:           models.StringList{"Rs. 6,000 per year", "Direct bank transfer"},
		Documents:          models.StringList{"Aadhaar Card", "Banking", "Property"},
		ApplicationProcess: "Register through the local agriculture office with land records.",
		OfficialWebsite:    "https://pmkisan.gov.in",
	},
	{
		Name:        "Women Entrepreneurship Loan",
		Category:    "Financial",
		Description: "Collateral-free credit for women starting micro and small enterprises.",
		Eligibility: models.Eligibility{
			MinAge: 18,
			Gender: "Female",
		},
		Benefits:           models.StringList{"Loans up to Rs. 10 lakh", "Subsidized interest rates", "No collateral"},
		Documents:          models.StringList{"Aadhaar Card", "PAN Card", "Business", "Banking"},
		ApplicationProcess: "Apply through any scheduled commercial bank with a business plan.",
		OfficialWebsite:    "https://www.mudra.org.in",
	},
	{
		Name:        "Senior Citizen Pension",
		Category:    "Pension",
		Description: "Monthly pension for senior citizens below the poverty line.",
		Eligibility: models.Eligibility{
			MinAge: 60,
			Income: "Below 1 LPA",
			Gender: "All",
		},
		Benefits:           models.StringList{"Rs. 1,000 monthly pension", "Direct bank transfer"},
		Documents:          models.StringList{"Aadhaar Card", "Ration Card", "Banking", "Photo"},
		ApplicationProcess: "Submit the pension form at the block development office.",
		OfficialWebsite:    "https://nsap.nic.in",
	},
	{
		Name:        "Rural Housing Assistance",
		Category:    "Housing",
		Description: "Financial assistance for construction of pucca houses for houseless rural families.",
		Eligibility: models.Eligibility{
			MinAge: 18,
			Income: "Below 2 LPA",
			Gender: "All",
		},
		Benefits:           models.StringList{"Rs. 1.2 lakh construction assistance", "90 days of wage employment"},
		Documents:          models.StringList{"Aadhaar Card", "Income Proof", "Residence Certificate", "Banking"},
		ApplicationProcess: "Apply through the gram panchayat; beneficiaries are selected from the housing deprivation list.",
		OfficialWebsite:    "https://pmayg.nic.in",
	},
}
