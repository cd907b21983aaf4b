package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/schemegenie/schemegenie-backend/internal/models"
	"github.com/schemegenie/schemegenie-backend/internal/storage"
)

// SchemeHandler handles scheme catalog requests
type SchemeHandler struct {
	store storage.Store
}

// NewSchemeHandler creates a new scheme handler
func NewSchemeHandler(store storage.Store) *SchemeHandler {
	return &SchemeHandler{store: store}
}

// ListSchemes returns active schemes, optionally filtered by ?search= or
// ?category=. Results are newest-first; there is no computed relevance score.
func (h *SchemeHandler) ListSchemes(c *fiber.Ctx) error {
	var (
		schemes []*models.Scheme
		err     error
	)

	switch {
	case c.Query("search") != "":
		schemes, err = h.store.SearchSchemes(c.Query("search"))
	case c.Query("category") != "":
		schemes, err = h.store.GetSchemesByCategory(c.Query("category"))
	default:
		schemes, err = h.store.GetActiveSchemes()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve schemes",
		})
	}

	return c.JSON(fiber.Map{
		"schemes": schemes,
		"count":   len(schemes),
	})
}

// GetScheme retrieves a single scheme by ID
func (h *SchemeHandler) GetScheme(c *fiber.Ctx) error {
	scheme, err := h.store.GetScheme(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Scheme not found",
		})
	}

	return c.JSON(scheme)
}

// GetSchemesByCategory lists active schemes in one category
func (h *SchemeHandler) GetSchemesByCategory(c *fiber.Ctx) error {
	schemes, err := h.store.GetSchemesByCategory(c.Params("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve schemes",
		})
	}

	return c.JSON(fiber.Map{
		"schemes": schemes,
		"count":   len(schemes),
	})
}

// SearchSchemes free-text searches name, description, and category
func (h *SchemeHandler) SearchSchemes(c *fiber.Ctx) error {
	schemes, err := h.store.SearchSchemes(c.Params("query"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search schemes",
		})
	}

	return c.JSON(fiber.Map{
		"schemes": schemes,
		"count":   len(schemes),
	})
}

// Recommendations returns active schemes whose eligibility criteria match
// the submitted citizen profile. When nothing matches, the full active
// catalog is returned so the client always has schemes to show.
func (h *SchemeHandler) Recommendations(c *fiber.Ctx) error {
	var profile models.RecommendationCriteria
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	schemes, err := h.store.GetActiveSchemes()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve schemes",
		})
	}

	matched := make([]*models.Scheme, 0, len(schemes))
	for _, scheme := range schemes {
		if scheme.Eligibility.Matches(profile) {
			matched = append(matched, scheme)
		}
	}
	if len(matched) == 0 {
		matched = schemes
	}

	return c.JSON(fiber.Map{
		"recommendations": matched,
		"count":           len(matched),
	})
}

// CreateScheme adds a scheme to the catalog (admin)
func (h *SchemeHandler) CreateScheme(c *fiber.Ctx) error {
	var scheme models.Scheme

	if err := c.BodyParser(&scheme); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if scheme.Name == "" || scheme.Category == "" || scheme.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name, category, and description are required",
		})
	}

	created, err := h.store.CreateScheme(&scheme)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create scheme",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Scheme created successfully",
		"scheme":  created,
	})
}

// UpdateScheme edits a catalog entry (admin)
func (h *SchemeHandler) UpdateScheme(c *fiber.Ctx) error {
	scheme, err := h.store.GetScheme(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Scheme not found",
		})
	}

	var req struct {
		Name               string              `json:"name"`
		Category           string              `json:"category"`
		Description        string              `json:"description"`
		Eligibility        *models.Eligibility `json:"eligibility"`
		Benefits           models.StringList   `json:"benefits"`
		Documents          models.StringList   `json:"documents"`
		ApplicationProcess string              `json:"application_process"`
		OfficialWebsite    string              `json:"official_website"`
		Deadline           *time.Time          `json:"deadline"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name != "" {
		scheme.Name = req.Name
	}
	if req.Category != "" {
		scheme.Category = req.Category
	}
	if req.Description != "" {
		scheme.Description = req.Description
	}
	if req.Benefits != nil {
		scheme.Benefits = req.Benefits
	}
	if req.Documents != nil {
		scheme.Documents = req.Documents
	}
	if req.ApplicationProcess != "" {
		scheme.ApplicationProcess = req.ApplicationProcess
	}
	if req.OfficialWebsite != "" {
		scheme.OfficialWebsite = req.OfficialWebsite
	}
	if req.Deadline != nil {
		scheme.Deadline = req.Deadline
	}
	// The criteria block is replaced wholesale when present
	if req.Eligibility != nil {
		scheme.Eligibility = *req.Eligibility
	}

	if err := h.store.UpdateScheme(scheme); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update scheme",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Scheme updated successfully",
		"scheme":  scheme,
	})
}

// DeleteScheme removes a catalog entry (admin)
func (h *SchemeHandler) DeleteScheme(c *fiber.Ctx) error {
	if err := h.store.DeleteScheme(c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Scheme not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Scheme deleted successfully",
	})
}
