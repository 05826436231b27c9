package openfoodfacts

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
	defaultBaseURL = "https://world.openfoodfacts.org"
	searchFields   = "code,product_name,brands,nutriments,pnns_groups_1,product_type"
)

var (
	liquidPnnsGroups   = map[string]bool{"Beverages": true}
	liquidProductTypes = map[string]bool{"beverages": true}

	gramsToMg = decimal.NewFromInt(1_000)
	gramsToUg = decimal.NewFromInt(1_000_000)
)

// Config tunes the provider. Zero values fall back to defaults.
type Config struct {
	BaseURL       string
	FetchTimeout  time.Duration
	SearchTimeout time.Duration
	Limiter       *rate.Limiter
	Recorder      upstream.Recorder
}

// Provider fetches and normalizes products from Open Food Facts.
type Provider struct {
	baseURL       string
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
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = provider.DefaultFetchTimeout
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = provider.DefaultSearchTimeout
	}
	log := logger.With("adapter", "openfoodfacts")
	return &Provider{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		fetchTimeout:  cfg.FetchTimeout,
		searchTimeout: cfg.SearchTimeout,
		client:        upstream.NewClient(domain.SourceOpenFoodFacts, doer, cfg.Limiter, cfg.Recorder, log),
		log:           log,
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	return NewProvider(Config{BaseURL: baseURL}, nil, logger)
}

// FetchByID looks a product up by barcode.
func (p *Provider) FetchByID(ctx context.Context, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	notFound := &domain.ProductNotFoundError{ProductID: id, Source: domain.SourceOpenFoodFacts}
	if id == "" {
		return domain.Product{}, notFound
	}

	reqURL := p.baseURL + "/api/v0/product/" + url.PathEscape(id) + ".json"

	var resp productResponse
	if err := p.client.GetJSON(ctx, reqURL, p.fetchTimeout, &resp); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return domain.Product{}, notFound
		}
		return domain.Product{}, err
	}
	if resp.Status == 0 || resp.Product == nil {
		return domain.Product{}, notFound
	}

	product, err := normalize(id, *resp.Product)
	if err != nil {
		return domain.Product{}, domain.NewExternalError(domain.SourceOpenFoodFacts, "invalid product data", err)
	}
	return product, nil
}

// Search runs a full-text product search.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	limit = provider.ClampSearchLimit(limit)

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", strconv.Itoa(limit))
	params.Set("fields", searchFields)

	var resp searchResponse
	if err := p.client.GetJSON(ctx, p.baseURL+"/cgi/search.pl?"+params.Encode(), p.searchTimeout, &resp); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return nil, domain.NewExternalError(domain.SourceOpenFoodFacts, "search endpoint not found", err)
		}
		return nil, err
	}

	products := make([]domain.Product, 0, len(resp.Products))
	for i, raw := range resp.Products {
		if len(products) == limit {
			break
		}
		product, err := p.normalizeRow(raw)
		if err != nil {
			p.log.WarnContext(ctx, "skipping malformed search row",
				slog.Int("row", i),
				slog.String("error", err.Error()),
			)
			continue
		}
		if product != nil {
			products = append(products, *product)
		}
	}

	p.log.DebugContext(ctx, "search finished",
		slog.String("query", query),
		slog.Int("rows", len(resp.Products)),
		slog.Int("products", len(products)),
	)
	return products, nil
}

// normalizeRow returns nil, nil for rows without a usable code.
func (p *Provider) normalizeRow(raw json.RawMessage) (*domain.Product, error) {
	var row apiProduct
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	code := strings.TrimSpace(row.Code)
	if !isNumeric(code) {
		return nil, nil
	}
	product, err := normalize(code, row)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func normalize(id string, raw apiProduct) (domain.Product, error) {
	n := raw.Nutriments

	name := domain.TruncateName(raw.ProductName)
	if name == "" {
		name = domain.UnknownProductName
	}

	product := domain.Product{
		ID:      id,
		Source:  domain.SourceOpenFoodFacts,
		Name:    name,
		Brand:   domain.OptionalString(raw.Brands),
		Barcode: domain.OptionalString(id),
		Macros: domain.Macronutrients{
			CaloriesKcal:   n.EnergyKcal.Or(decimal.Zero),
			ProteinG:       n.Proteins.Or(decimal.Zero),
			CarbohydratesG: n.Carbohydrates.Or(decimal.Zero),
			FatG:           n.Fat.Or(decimal.Zero),
			FiberG:         n.Fiber.Null(),
			SugarG:         n.Sugars.Null(),
		},
		IsLiquid: isLiquid(raw),
	}

	micros := domain.Micronutrients{
		SodiumMg:    n.Sodium.Scaled(gramsToMg),
		PotassiumMg: n.Potassium.Scaled(gramsToMg),
		CalciumMg:   n.Calcium.Scaled(gramsToMg),
		IronMg:      n.Iron.Scaled(gramsToMg),
		VitaminCMg:  n.VitaminC.Scaled(gramsToMg),
		VitaminDUg:  n.VitaminD.Scaled(gramsToUg),
	}
	if !micros.IsEmpty() {
		product.Micros = &micros
	}

	if product.IsLiquid {
		product.VolumeMLPer100g = domain.Dec(domain.LiquidVolumePer100g)
	}

	return domain.NewProduct(product)
}

func isLiquid(raw apiProduct) bool {
	return liquidPnnsGroups[raw.PnnsGroups1] || liquidProductTypes[strings.ToLower(raw.ProductType)]
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
