package rest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// ----- products -----

type macrosDTO struct {
	CaloriesKcal   decimal.Decimal     `json:"calories_kcal"   validate:"gte=0"`
	ProteinG       decimal.Decimal     `json:"protein_g"       validate:"gte=0"`
	CarbohydratesG decimal.Decimal     `json:"carbohydrates_g" validate:"gte=0"`
	FatG           decimal.Decimal     `json:"fat_g"           validate:"gte=0"`
	FiberG         decimal.NullDecimal `json:"fiber_g"`
	SugarG         decimal.NullDecimal `json:"sugar_g"`
}

type microsDTO struct {
	SodiumMg    decimal.NullDecimal `json:"sodium_mg"`
	PotassiumMg decimal.NullDecimal `json:"potassium_mg"`
	CalciumMg   decimal.NullDecimal `json:"calcium_mg"`
	IronMg      decimal.NullDecimal `json:"iron_mg"`
	VitaminCMg  decimal.NullDecimal `json:"vitamin_c_mg"`
	VitaminDUg  decimal.NullDecimal `json:"vitamin_d_ug"`
}

type productResponse struct {
	ID              string              `json:"id"`
	Source          domain.Source       `json:"source"`
	Name            string              `json:"name"`
	Brand           *string             `json:"brand"`
	Barcode         *string             `json:"barcode"`
	Macronutrients  macrosDTO           `json:"macronutrients"`
	Micronutrients  *microsDTO          `json:"micronutrients"`
	IsLiquid        bool                `json:"is_liquid"`
	VolumeMLPer100g decimal.NullDecimal `json:"volume_ml_per_100g"`
}

type createProductRequest struct {
	Name            string              `json:"name"    validate:"required,max=512"`
	Brand           *string             `json:"brand"   validate:"omitempty,max=256"`
	Barcode         *string             `json:"barcode" validate:"omitempty,max=64"`
	Macronutrients  macrosDTO           `json:"macronutrients"`
	Micronutrients  *microsDTO          `json:"micronutrients"`
	IsLiquid        bool                `json:"is_liquid"`
	VolumeMLPer100g decimal.NullDecimal `json:"volume_ml_per_100g"`
}

func toMacrosDTO(m domain.Macronutrients) macrosDTO {
	return macrosDTO{
		CaloriesKcal:   m.CaloriesKcal,
		ProteinG:       m.ProteinG,
		CarbohydratesG: m.CarbohydratesG,
		FatG:           m.FatG,
		FiberG:         m.FiberG,
		SugarG:         m.SugarG,
	}
}

func (m macrosDTO) toDomain() domain.Macronutrients {
	return domain.Macronutrients{
		CaloriesKcal:   m.CaloriesKcal,
		ProteinG:       m.ProteinG,
		CarbohydratesG: m.CarbohydratesG,
		FatG:           m.FatG,
		FiberG:         m.FiberG,
		SugarG:         m.SugarG,
	}
}

func toMicrosDTO(m *domain.Micronutrients) *microsDTO {
	if m == nil {
		return nil
	}
	return &microsDTO{
		SodiumMg:    m.SodiumMg,
		PotassiumMg: m.PotassiumMg,
		CalciumMg:   m.CalciumMg,
		IronMg:      m.IronMg,
		VitaminCMg:  m.VitaminCMg,
		VitaminDUg:  m.VitaminDUg,
	}
}

func (m *microsDTO) toDomain() *domain.Micronutrients {
	if m == nil {
		return nil
	}
	return &domain.Micronutrients{
		SodiumMg:    m.SodiumMg,
		PotassiumMg: m.PotassiumMg,
		CalciumMg:   m.CalciumMg,
		IronMg:      m.IronMg,
		VitaminCMg:  m.VitaminCMg,
		VitaminDUg:  m.VitaminDUg,
	}
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:              p.ID,
		Source:          p.Source,
		Name:            p.Name,
		Brand:           p.Brand,
		Barcode:         p.Barcode,
		Macronutrients:  toMacrosDTO(p.Macros),
		Micronutrients:  toMicrosDTO(p.Micros),
		IsLiquid:        p.IsLiquid,
		VolumeMLPer100g: p.VolumeMLPer100g,
	}
}

func toProductList(ps []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductResponse(p))
	}
	return out
}

// ----- log entries -----

type createEntryRequest struct {
	Source    string          `json:"source"     validate:"required,source"`
	ProductID string          `json:"product_id" validate:"required,max=128"`
	QuantityG decimal.Decimal `json:"quantity_g" validate:"gt=0"`
	LogDate   *string         `json:"log_date"   validate:"omitempty,datetime=2006-01-02"`
	Note      *string         `json:"note"       validate:"omitempty,max=1024"`
}

type updateEntryRequest struct {
	QuantityG *decimal.Decimal `json:"quantity_g" validate:"omitempty,gt=0"`
	Note      *string          `json:"note"       validate:"omitempty,max=1024"`
}

type entryResponse struct {
	ID               uuid.UUID           `json:"id"`
	LogDate          string              `json:"log_date"`
	Product          productResponse     `json:"product"`
	QuantityG        decimal.Decimal     `json:"quantity_g"`
	ConsumedAt       time.Time           `json:"consumed_at"`
	Note             *string             `json:"note"`
	ScaledMacros     macrosDTO           `json:"scaled_macronutrients"`
	ConsumedVolumeML decimal.NullDecimal `json:"consumed_volume_ml"`
}

func toEntryResponse(e domain.LogEntry) entryResponse {
	return entryResponse{
		ID:               e.ID,
		LogDate:          domain.FormatDate(e.LogDate),
		Product:          toProductResponse(e.Product),
		QuantityG:        e.QuantityG,
		ConsumedAt:       e.ConsumedAt.UTC(),
		Note:             e.Note,
		ScaledMacros:     toMacrosDTO(e.ScaledMacros()),
		ConsumedVolumeML: e.ConsumedVolumeML(),
	}
}

func toEntryList(es []domain.LogEntry) []entryResponse {
	out := make([]entryResponse, 0, len(es))
	for _, e := range es {
		out = append(out, toEntryResponse(e))
	}
	return out
}

// ----- summaries -----

type totalsDTO struct {
	CaloriesKcal   decimal.Decimal `json:"calories_kcal"`
	ProteinG       decimal.Decimal `json:"protein_g"`
	CarbohydratesG decimal.Decimal `json:"carbohydrates_g"`
	FatG           decimal.Decimal `json:"fat_g"`
	FiberG         decimal.Decimal `json:"fiber_g"`
	SugarG         decimal.Decimal `json:"sugar_g"`
}

type nutritionSummaryResponse struct {
	Date       string    `json:"date"`
	EntryCount int       `json:"entry_count"`
	Totals     totalsDTO `json:"totals"`
}

type hydrationSummaryResponse struct {
	Date                string          `json:"date"`
	TotalVolumeML       decimal.Decimal `json:"total_volume_ml"`
	ContributingEntries int             `json:"contributing_entries"`
}

func toNutritionSummary(s domain.DailyNutritionSummary) nutritionSummaryResponse {
	t := s.Totals
	return nutritionSummaryResponse{
		Date:       domain.FormatDate(s.Date),
		EntryCount: s.EntryCount,
		Totals: totalsDTO{
			CaloriesKcal:   t.CaloriesKcal,
			ProteinG:       t.ProteinG,
			CarbohydratesG: t.CarbohydratesG,
			FatG:           t.FatG,
			FiberG:         t.FiberG,
			SugarG:         t.SugarG,
		},
	}
}

func toHydrationSummary(s domain.DailyHydrationSummary) hydrationSummaryResponse {
	return hydrationSummaryResponse{
		Date:                domain.FormatDate(s.Date),
		TotalVolumeML:       s.TotalVolumeML,
		ContributingEntries: s.ContributingEntries,
	}
}

// ----- goals -----

type goalsDTO struct {
	CaloriesKcal   decimal.NullDecimal `json:"calories_kcal"`
	ProteinG       decimal.NullDecimal `json:"protein_g"`
	CarbohydratesG decimal.NullDecimal `json:"carbohydrates_g"`
	FatG           decimal.NullDecimal `json:"fat_g"`
	WaterML        decimal.NullDecimal `json:"water_ml"`
}

func toGoalsDTO(g domain.DailyGoals) goalsDTO {
	return goalsDTO{
		CaloriesKcal:   g.CaloriesKcal,
		ProteinG:       g.ProteinG,
		CarbohydratesG: g.CarbohydratesG,
		FatG:           g.FatG,
		WaterML:        g.WaterML,
	}
}

func (g goalsDTO) toDomain() domain.DailyGoals {
	return domain.DailyGoals{
		CaloriesKcal:   g.CaloriesKcal,
		ProteinG:       g.ProteinG,
		CarbohydratesG: g.CarbohydratesG,
		FatG:           g.FatG,
		WaterML:        g.WaterML,
	}
}

type goalProgressDTO struct {
	Target          decimal.Decimal `json:"target"`
	Actual          decimal.Decimal `json:"actual"`
	Remaining       decimal.Decimal `json:"remaining"`
	PercentAchieved decimal.Decimal `json:"percent_achieved"`
}

type goalsProgressResponse struct {
	Date          string           `json:"date"`
	Calories      *goalProgressDTO `json:"calories"`
	Protein       *goalProgressDTO `json:"protein"`
	Carbohydrates *goalProgressDTO `json:"carbohydrates"`
	Fat           *goalProgressDTO `json:"fat"`
	Water         *goalProgressDTO `json:"water"`
}

func toProgressDTO(p *domain.GoalProgress) *goalProgressDTO {
	if p == nil {
		return nil
	}
	return &goalProgressDTO{
		Target:          p.Target,
		Actual:          p.Actual,
		Remaining:       p.Remaining,
		PercentAchieved: p.PercentAchieved,
	}
}

func toGoalsProgress(p domain.DailyGoalsProgress) goalsProgressResponse {
	return goalsProgressResponse{
		Date:          domain.FormatDate(p.Date),
		Calories:      toProgressDTO(p.Calories),
		Protein:       toProgressDTO(p.Protein),
		Carbohydrates: toProgressDTO(p.Carbohydrates),
		Fat:           toProgressDTO(p.Fat),
		Water:         toProgressDTO(p.Water),
	}
}

// ----- templates -----

type templateItemDTO struct {
	Source    string          `json:"source"     validate:"required,source"`
	ProductID string          `json:"product_id" validate:"required,max=128"`
	QuantityG decimal.Decimal `json:"quantity_g" validate:"gt=0"`
	Note      *string         `json:"note"       validate:"omitempty,max=1024"`
}

type createTemplateRequest struct {
	Name  string            `json:"name"  validate:"required,max=128"`
	Items []templateItemDTO `json:"items" validate:"required,min=1,max=50,dive"`
}

type templateResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Items     []templateItemDTO `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
}

func (r createTemplateRequest) items() []domain.TemplateItem {
	items := make([]domain.TemplateItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.TemplateItem{
			Source:    domain.Source(it.Source),
			ProductID: it.ProductID,
			QuantityG: it.QuantityG,
			Note:      it.Note,
		})
	}
	return items
}

func toTemplateResponse(t domain.MealTemplate) templateResponse {
	items := make([]templateItemDTO, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, templateItemDTO{
			Source:    string(it.Source),
			ProductID: it.ProductID,
			QuantityG: it.QuantityG,
			Note:      it.Note,
		})
	}
	return templateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Items:     items,
		CreatedAt: t.CreatedAt.UTC(),
	}
}
