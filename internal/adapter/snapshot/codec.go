// Package snapshot serializes product snapshots and log entries for the SQL
// stores. Decimals are stored as JSON strings so no precision is lost.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

type macrosDoc struct {
	CaloriesKcal   decimal.Decimal     `json:"calories_kcal"`
	ProteinG       decimal.Decimal     `json:"protein_g"`
	CarbohydratesG decimal.Decimal     `json:"carbohydrates_g"`
	FatG           decimal.Decimal     `json:"fat_g"`
	FiberG         decimal.NullDecimal `json:"fiber_g"`
	SugarG         decimal.NullDecimal `json:"sugar_g"`
}

type microsDoc struct {
	SodiumMg    decimal.NullDecimal `json:"sodium_mg"`
	PotassiumMg decimal.NullDecimal `json:"potassium_mg"`
	CalciumMg   decimal.NullDecimal `json:"calcium_mg"`
	IronMg      decimal.NullDecimal `json:"iron_mg"`
	VitaminCMg  decimal.NullDecimal `json:"vitamin_c_mg"`
	VitaminDUg  decimal.NullDecimal `json:"vitamin_d_ug"`
}

type productDoc struct {
	ID              string              `json:"id"`
	Source          domain.Source       `json:"source"`
	Name            string              `json:"name"`
	Brand           *string             `json:"brand,omitempty"`
	Barcode         *string             `json:"barcode,omitempty"`
	Macros          macrosDoc           `json:"macronutrients"`
	Micros          *microsDoc          `json:"micronutrients,omitempty"`
	IsLiquid        bool                `json:"is_liquid"`
	VolumeMLPer100g decimal.NullDecimal `json:"volume_ml_per_100g"`
}

type entryDoc struct {
	ID         uuid.UUID       `json:"id"`
	TenantID   string          `json:"tenant_id"`
	LogDate    string          `json:"log_date"`
	Product    productDoc      `json:"product"`
	QuantityG  decimal.Decimal `json:"quantity_g"`
	ConsumedAt time.Time       `json:"consumed_at"`
	Note       *string         `json:"note,omitempty"`
}

// EncodeProduct renders a product snapshot as JSON.
func EncodeProduct(p domain.Product) ([]byte, error) {
	return json.Marshal(toProductDoc(p))
}

// DecodeProduct parses a stored snapshot and checks the product invariants.
func DecodeProduct(data []byte) (domain.Product, error) {
	var doc productDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Product{}, fmt.Errorf("decode product snapshot: %w", err)
	}
	p, err := domain.NewProduct(fromProductDoc(doc))
	if err != nil {
		return domain.Product{}, fmt.Errorf("decode product snapshot: %w", err)
	}
	return p, nil
}

// EncodeEntry renders a whole log entry as JSON.
func EncodeEntry(e domain.LogEntry) ([]byte, error) {
	return json.Marshal(entryDoc{
		ID:         e.ID,
		TenantID:   e.TenantID,
		LogDate:    domain.FormatDate(e.LogDate),
		Product:    toProductDoc(e.Product),
		QuantityG:  e.QuantityG,
		ConsumedAt: e.ConsumedAt.UTC(),
		Note:       e.Note,
	})
}

// DecodeEntry parses an entry written by EncodeEntry.
func DecodeEntry(data []byte) (domain.LogEntry, error) {
	var doc entryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.LogEntry{}, fmt.Errorf("decode log entry: %w", err)
	}
	date, err := domain.ParseDate(doc.LogDate)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("decode log entry: %w", err)
	}
	p, err := domain.NewProduct(fromProductDoc(doc.Product))
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("decode log entry: %w", err)
	}
	return domain.LogEntry{
		ID:         doc.ID,
		TenantID:   doc.TenantID,
		LogDate:    date,
		Product:    p,
		QuantityG:  doc.QuantityG,
		ConsumedAt: doc.ConsumedAt.UTC(),
		Note:       doc.Note,
	}, nil
}

func toProductDoc(p domain.Product) productDoc {
	doc := productDoc{
		ID:      p.ID,
		Source:  p.Source,
		Name:    p.Name,
		Brand:   p.Brand,
		Barcode: p.Barcode,
		Macros: macrosDoc{
			CaloriesKcal:   p.Macros.CaloriesKcal,
			ProteinG:       p.Macros.ProteinG,
			CarbohydratesG: p.Macros.CarbohydratesG,
			FatG:           p.Macros.FatG,
			FiberG:         p.Macros.FiberG,
			SugarG:         p.Macros.SugarG,
		},
		IsLiquid:        p.IsLiquid,
		VolumeMLPer100g: p.VolumeMLPer100g,
	}
	if m := p.Micros; m != nil {
		doc.Micros = &microsDoc{
			SodiumMg:    m.SodiumMg,
			PotassiumMg: m.PotassiumMg,
			CalciumMg:   m.CalciumMg,
			IronMg:      m.IronMg,
			VitaminCMg:  m.VitaminCMg,
			VitaminDUg:  m.VitaminDUg,
		}
	}
	return doc
}

func fromProductDoc(doc productDoc) domain.Product {
	p := domain.Product{
		ID:      doc.ID,
		Source:  doc.Source,
		Name:    doc.Name,
		Brand:   doc.Brand,
		Barcode: doc.Barcode,
		Macros: domain.Macronutrients{
			CaloriesKcal:   doc.Macros.CaloriesKcal,
			ProteinG:       doc.Macros.ProteinG,
			CarbohydratesG: doc.Macros.CarbohydratesG,
			FatG:           doc.Macros.FatG,
			FiberG:         doc.Macros.FiberG,
			SugarG:         doc.Macros.SugarG,
		},
		IsLiquid:        doc.IsLiquid,
		VolumeMLPer100g: doc.VolumeMLPer100g,
	}
	if m := doc.Micros; m != nil {
		p.Micros = &domain.Micronutrients{
			SodiumMg:    m.SodiumMg,
			PotassiumMg: m.PotassiumMg,
			CalciumMg:   m.CalciumMg,
			IronMg:      m.IronMg,
			VitaminCMg:  m.VitaminCMg,
			VitaminDUg:  m.VitaminDUg,
		}
	}
	return p
}
