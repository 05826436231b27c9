package usda

import (
	"encoding/json"

	"github.com/heartmarshall/nutrition-backend/internal/adapter/provider/upstream"
)

// apiFood covers both the /food/{fdcId} detail and the /foods/search row
// shapes, which differ in how nutrients and categories are encoded.
type apiFood struct {
	FdcID               int64             `json:"fdcId"`
	Description         string            `json:"description"`
	BrandOwner          string            `json:"brandOwner"`
	GtinUpc             string            `json:"gtinUpc"`
	FoodCategory        apiCategory       `json:"foodCategory"`
	BrandedFoodCategory string            `json:"brandedFoodCategory"`
	FoodNutrients       []apiFoodNutrient `json:"foodNutrients"`
}

// apiFoodNutrient is {"nutrient": {"id": ...}, "amount": ...} in detail
// responses and {"nutrientId": ..., "value": ...} in search rows.
type apiFoodNutrient struct {
	Nutrient   *apiNutrient    `json:"nutrient"`
	Amount     upstream.Number `json:"amount"`
	NutrientID int             `json:"nutrientId"`
	Value      upstream.Number `json:"value"`
}

type apiNutrient struct {
	ID int `json:"id"`
}

func (n apiFoodNutrient) id() int {
	if n.Nutrient != nil && n.Nutrient.ID != 0 {
		return n.Nutrient.ID
	}
	return n.NutrientID
}

func (n apiFoodNutrient) amount() upstream.Number {
	if n.Amount.Present() {
		return n.Amount
	}
	return n.Value
}

// apiCategory accepts either a plain string or {"description": "..."}.
type apiCategory string

func (c *apiCategory) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = apiCategory(s)
		return nil
	}
	var obj struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*c = apiCategory(obj.Description)
	return nil
}

type searchResponse struct {
	Foods []json.RawMessage `json:"foods"`
}
