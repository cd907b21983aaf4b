package services

import (
	"fmt"
	"strings"

	"github.com/schemegenie/schemegenie-backend/internal/models"
	"github.com/schemegenie/schemegenie-backend/internal/storage"
)

// ChatbotService answers citizen questions with keyword-matched canned
// responses over the scheme catalog. Stateless per request.
type ChatbotService struct {
	store storage.Store
}

// NewChatbotService creates a chatbot service
func NewChatbotService(store storage.Store) *ChatbotService {
	return &ChatbotService{store: store}
}

// FallbackReply is returned when the catalog cannot be reached
const FallbackReply = "Sorry, I couldn't connect to the scheme database right now. Please try again later."

// Reply produces a canned response for the message. The scheme name is
// matched first, then the question intent within it.
func (s *ChatbotService) Reply(message string) (string, error) {
	msg := strings.ToLower(strings.TrimSpace(message))

	schemes, err := s.store.GetActiveSchemes()
	if err != nil {
		return "", err
	}

	var matched *models.Scheme
	for _, scheme := range schemes {
		if scheme.Name != "" && strings.Contains(msg, strings.ToLower(scheme.Name)) {
			matched = scheme
			break
		}
	}

	if matched != nil {
		switch {
		case strings.Contains(msg, "document") || strings.Contains(msg, "required"):
			return fmt.Sprintf("For the %s, the required documents are: %s.",
				matched.Name, strings.Join(matched.Documents, ", ")), nil
		case strings.Contains(msg, "benefit") || strings.Contains(msg, "amount"):
			return fmt.Sprintf("The %s provides benefits like %s.",
				matched.Name, strings.Join(matched.Benefits, ", ")), nil
		case strings.Contains(msg, "eligibility") || strings.Contains(msg, "criteria"):
			return fmt.Sprintf("Eligibility for %s: %s.", matched.Name, describeEligibility(matched.Eligibility)), nil
		case strings.Contains(msg, "apply") || strings.Contains(msg, "register"):
			site := matched.OfficialWebsite
			if site == "" {
				site = "the official scheme website"
			}
			return fmt.Sprintf("You can apply for %s at %s or directly through Scheme Genie.", matched.Name, site), nil
		case strings.Contains(msg, "how long") || strings.Contains(msg, "days") || strings.Contains(msg, "time"):
			return fmt.Sprintf("It usually takes around %d days to get benefits under %s.",
				matched.EstimatedApprovalDays(), matched.Name), nil
		default:
			return fmt.Sprintf("Here's what I found about %s:\nEligibility: %s\nDocuments: %s\nBenefits: %s",
				matched.Name, describeEligibility(matched.Eligibility),
				strings.Join(matched.Documents, ", "), strings.Join(matched.Benefits, ", ")), nil
		}
	}

	switch {
	case strings.Contains(msg, "best scheme") || strings.Contains(msg, "top scheme") || strings.Contains(msg, "popular scheme"):
		names := schemeNames(schemes, 3)
		if len(names) == 0 {
			break
		}
		return fmt.Sprintf("The most popular schemes right now are: %s. Which one would you like to know more about?",
			strings.Join(names, ", ")), nil
	case strings.Contains(msg, "scheme"):
		names := schemeNames(schemes, 0)
		if len(names) == 0 {
			break
		}
		return fmt.Sprintf("We have several schemes you might be interested in: %s.\nPlease type the name of the scheme for more details.",
			strings.Join(names, ", ")), nil
	}

	return "I'm not sure about that. Could you please specify which scheme you're referring to?", nil
}

func schemeNames(schemes []*models.Scheme, limit int) []string {
	var names []string
	for _, s := range schemes {
		names = append(names, s.Name)
		if limit > 0 && len(names) == limit {
			break
		}
	}
	return names
}

func describeEligibility(e models.Eligibility) string {
	var parts []string
	if e.MinAge > 0 || e.MaxAge > 0 {
		switch {
		case e.MinAge > 0 && e.MaxAge > 0:
			parts = append(parts, fmt.Sprintf("age %d-%d", e.MinAge, e.MaxAge))
		case e.MinAge > 0:
			parts = append(parts, fmt.Sprintf("age %d and above", e.MinAge))
		default:
			parts = append(parts, fmt.Sprintf("age up to %d", e.MaxAge))
		}
	}
	if e.Income != "" {
		parts = append(parts, "income "+e.Income)
	}
	if len(e.Caste) > 0 {
		parts = append(parts, "categories "+strings.Join(e.Caste, "/"))
	}
	if e.Gender != "" && !strings.EqualFold(e.Gender, "All") {
		parts = append(parts, e.Gender+" applicants")
	}
	if e.Education != "" {
		parts = append(parts, "education "+e.Education)
	}
	if len(parts) == 0 {
		return "open to all applicants"
	}
	return strings.Join(parts, ", ")
}
