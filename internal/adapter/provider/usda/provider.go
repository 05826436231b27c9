package usda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/nutrition-backend/internal/adapter/provider/upstream"
	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/internal/provider"
)

const (
	defaultBaseURL = "https://api.nal.usda.gov/fdc/v1"
	DefaultAPIKey  = "DEMO_KEY"
)

// FoodData Central nutrient IDs. All values arrive in the target unit.
const (
	nutrientEnergyKcal    = 1008
	nutrientProtein       = 1003
	nutrientCarbohydrates = 1005
	nutrientFat           = 1004
	nutrientFiber         = 1079
	nutrientSugars        = 2000
	nutrientSodium        = 1093
	nutrientPotassium     = 1092
	nutrientCalcium       = 1087
	nutrientIron          = 1089
	nutrientVitaminC      = 1162
	nutrientVitaminD      = 1110
)

var liquidCategories = map[string]bool{
	"Beverages":                  true,
	"Soups, Sauces, and Gravies": true,
}

// Config tunes the provider. Zero values fall back to defaults.
type Config struct {
	BaseURL       string
	APIKey        string
	FetchTimeout  time.Duration
	SearchTimeout time.Duration
	Limiter       *rate.Limiter
	Recorder      upstream.Recorder
}

// Provider fetches and normalizes foods from USDA FoodData Central.
type Provider struct {
	baseURL       string
	apiKey        string
	fetchTimeout  time.Duration
	searchTimeout time.Duration
	client        *upstream.Client
	log           *slog.Logger
}

// NewProvider creates a Provider.
func NewProvider(cfg Config, doer provider.HTTPDoer, logger *slog.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.APIKey == "" {
		cfg.APIKey = DefaultAPIKey
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = provider.DefaultFetchTimeout
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = provider.DefaultSearchTimeout
	}
	log := logger.With("adapter", "usda")
	return &Provider{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		fetchTimeout:  cfg.FetchTimeout,
		searchTimeout: cfg.SearchTimeout,
		client:        upstream.NewClient(domain.SourceUSDA, doer, cfg.Limiter, cfg.Recorder, log),
		log:           log,
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	return NewProvider(Config{BaseURL: baseURL}, nil, logger)
}

// FetchByID looks a food up by its FDC ID. Non-numeric IDs cannot exist in
// FoodData Central and are reported as not found without a request.
func (p *Provider) FetchByID(ctx context.Context, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	notFound := &domain.ProductNotFoundError{ProductID: id, Source: domain.SourceUSDA}
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return domain.Product{}, notFound
	}

	params := url.Values{}
	params.Set("api_key", p.apiKey)
	reqURL := p.baseURL + "/food/" + url.PathEscape(id) + "?" + params.Encode()

	var food apiFood
	if err := p.client.GetJSON(ctx, reqURL, p.fetchTimeout, &food); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return domain.Product{}, notFound
		}
		return domain.Product{}, err
	}
	if food.FdcID == 0 {
		food.FdcID, _ = strconv.ParseInt(id, 10, 64)
	}

	product, err := normalize(food)
	if err != nil {
		return domain.Product{}, domain.NewExternalError(domain.SourceUSDA, "invalid food data", err)
	}
	return product, nil
}

// Search runs a FoodData Central search.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	limit = provider.ClampSearchLimit(limit)

	params := url.Values{}
	params.Set("api_key", p.apiKey)
	params.Set("query", query)
	params.Set("pageSize", strconv.Itoa(limit))

	var resp searchResponse
	if err := p.client.GetJSON(ctx, p.baseURL+"/foods/search?"+params.Encode(), p.searchTimeout, &resp); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return nil, domain.NewExternalError(domain.SourceUSDA, "search endpoint not found", err)
		}
		return nil, err
	}

	products := make([]domain.Product, 0, len(resp.Foods))
	for i, raw := range resp.Foods {
		if len(products) == limit {
			break
		}
		var food apiFood
		if err := json.Unmarshal(raw, &food); err != nil {
			p.log.WarnContext(ctx, "skipping malformed search row", slog.Int("row", i), slog.String("error", err.Error()))
			continue
		}
		if food.FdcID <= 0 {
			continue
		}
		product, err := normalize(food)
		if err != nil {
			p.log.WarnContext(ctx, "skipping malformed search row", slog.Int("row", i), slog.String("error", err.Error()))
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func normalize(food apiFood) (domain.Product, error) {
	values := extractNutrients(food.FoodNutrients)
	required := func(id int) decimal.Decimal {
		if v, ok := values[id]; ok {
			return v
		}
		return decimal.Zero
	}
	optional := func(id int) decimal.NullDecimal {
		if v, ok := values[id]; ok {
			return domain.Dec(v)
		}
		return decimal.NullDecimal{}
	}

	category := string(food.FoodCategory)
	if category == "" {
		category = food.BrandedFoodCategory
	}

	product := domain.Product{
		ID:      strconv.FormatInt(food.FdcID, 10),
		Source:  domain.SourceUSDA,
		Name:    domain.TruncateName(food.Description),
		Brand:   domain.OptionalString(food.BrandOwner),
		Barcode: domain.OptionalString(food.GtinUpc),
		Macros: domain.Macronutrients{
			CaloriesKcal:   required(nutrientEnergyKcal),
			ProteinG:       required(nutrientProtein),
			CarbohydratesG: required(nutrientCarbohydrates),
			FatG:           required(nutrientFat),
			FiberG:         optional(nutrientFiber),
			SugarG:         optional(nutrientSugars),
		},
		IsLiquid: liquidCategories[category],
	}

	micros := domain.Micronutrients{
		SodiumMg:    optional(nutrientSodium),
		PotassiumMg: optional(nutrientPotassium),
		CalciumMg:   optional(nutrientCalcium),
		IronMg:      optional(nutrientIron),
		VitaminCMg:  optional(nutrientVitaminC),
		VitaminDUg:  optional(nutrientVitaminD),
	}
	if !micros.IsEmpty() {
		product.Micros = &micros
	}

	if product.IsLiquid {
		product.VolumeMLPer100g = domain.Dec(domain.LiquidVolumePer100g)
	}

	p, err := domain.NewProduct(product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("fdc %d: %w", food.FdcID, err)
	}
	return p, nil
}

// extractNutrients indexes amounts by nutrient ID. Entries without an amount
// are ignored so that they stay absent rather than zero.
func extractNutrients(nutrients []apiFoodNutrient) map[int]decimal.Decimal {
	values := make(map[int]decimal.Decimal, len(nutrients))
	for _, n := range nutrients {
		amount := n.amount()
		if !amount.Present() {
			continue
		}
		values[n.id()] = amount.Or(decimal.Zero)
	}
	return values
}
