package product

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// CreateManual stores a hand-entered product under a fresh UUID. A liquid
// without an explicit volume gets the default of 100 ml per 100 g.
func (s *Service) CreateManual(ctx context.Context, in ManualProductInput) (domain.Product, error) {
	volume := in.VolumeMLPer100g
	if in.IsLiquid && !volume.Valid {
		volume = decimal.NewNullDecimal(domain.LiquidVolumePer100g)
	}

	micros := in.Micros
	if micros != nil && micros.IsEmpty() {
		micros = nil
	}

	p, err := domain.NewProduct(domain.Product{
		ID:              s.newID(),
		Source:          domain.SourceManual,
		Name:            strings.TrimSpace(in.Name),
		Brand:           trimOrNil(in.Brand),
		Barcode:         trimOrNil(in.Barcode),
		Macros:          in.Macros,
		Micros:          micros,
		IsLiquid:        in.IsLiquid,
		VolumeMLPer100g: volume,
	})
	if err != nil {
		return domain.Product{}, err
	}

	if err := s.store.Save(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("save manual product: %w", err)
	}

	s.log.InfoContext(ctx, "manual product created",
		slog.String("product_id", p.ID),
		slog.String("name", p.Name),
	)
	return p, nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	return domain.OptionalString(*s)
}
