package openfoodfacts

import (
	"encoding/json"

	"github.com/heartmarshall/nutrition-backend/internal/adapter/provider/upstream"
)

// productResponse is the body of /api/v0/product/{code}.json.
// Status is 1 when the product exists and 0 otherwise.
type productResponse struct {
	Status  int         `json:"status"`
	Product *apiProduct `json:"product"`
}

// searchResponse is the body of /cgi/search.pl. Products are decoded one by
// one so that a single malformed row does not fail the whole search.
type searchResponse struct {
	Products []json.RawMessage `json:"products"`
}

type apiProduct struct {
	Code        string        `json:"code"`
	ProductName string        `json:"product_name"`
	Brands      string        `json:"brands"`
	Nutriments  apiNutriments `json:"nutriments"`
	PnnsGroups1 string        `json:"pnns_groups_1"`
	ProductType string        `json:"product_type"`
}

// apiNutriments holds per-100 g values. Minerals and vitamins are in grams.
type apiNutriments struct {
	EnergyKcal    upstream.Number `json:"energy-kcal_100g"`
	Proteins      upstream.Number `json:"proteins_100g"`
	Carbohydrates upstream.Number `json:"carbohydrates_100g"`
	Fat           upstream.Number `json:"fat_100g"`
	Fiber         upstream.Number `json:"fiber_100g"`
	Sugars        upstream.Number `json:"sugars_100g"`
	Sodium        upstream.Number `json:"sodium_100g"`
	Potassium     upstream.Number `json:"potassium_100g"`
	Calcium       upstream.Number `json:"calcium_100g"`
	Iron          upstream.Number `json:"iron_100g"`
	VitaminC      upstream.Number `json:"vitamin-c_100g"`
	VitaminD      upstream.Number `json:"vitamin-d_100g"`
}
