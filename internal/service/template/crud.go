package template

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// Create validates and stores a new template.
func (s *Service) Create(ctx context.Context, tenantID string, in CreateTemplateInput) (domain.MealTemplate, error) {
	if err := validateTenant(tenantID); err != nil {
		return domain.MealTemplate{}, err
	}

	items := slices.Clone(in.Items)
	for i := range items {
		items[i].ProductID = strings.TrimSpace(items[i].ProductID)
		if items[i].Note != nil {
			items[i].Note = domain.OptionalString(*items[i].Note)
		}
	}

	t := domain.MealTemplate{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      strings.TrimSpace(in.Name),
		Items:     items,
		CreatedAt: s.now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return domain.MealTemplate{}, err
	}

	if err := s.templates.Save(ctx, t); err != nil {
		return domain.MealTemplate{}, fmt.Errorf("save template: %w", err)
	}

	s.log.InfoContext(ctx, "template created",
		slog.String("tenant_id", tenantID),
		slog.String("template_id", t.ID.String()),
		slog.Int("items", len(t.Items)),
	)
	return t, nil
}

// List returns the tenant's templates, oldest first.
func (s *Service) List(ctx context.Context, tenantID string) ([]domain.MealTemplate, error) {
	if err := validateTenant(tenantID); err != nil {
		return nil, err
	}
	return s.templates.FindAll(ctx, tenantID)
}

// Delete removes a template and reports whether it existed.
func (s *Service) Delete(ctx context.Context, tenantID string, id uuid.UUID) (bool, error) {
	if err := validateTenant(tenantID); err != nil {
		return false, err
	}
	deleted, err := s.templates.Delete(ctx, tenantID, id)
	if err != nil {
		return false, fmt.Errorf("delete template: %w", err)
	}
	return deleted, nil
}
