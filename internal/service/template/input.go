package template

import (
	"strings"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// CreateTemplateInput holds the parameters for a new template.
type CreateTemplateInput struct {
	Name  string
	Items []domain.TemplateItem
}

func validateTenant(tenantID string) error {
	if strings.TrimSpace(tenantID) == "" {
		return domain.NewValidationError("tenant_id", "required")
	}
	return nil
}
