package domain

// Source identifies a product data provider.
type Source string

const (
	SourceOpenFoodFacts Source = "open_food_facts"
	SourceUSDA          Source = "usda_fooddata"
	SourceManual        Source = "manual"
)

func (s Source) String() string { return string(s) }

func (s Source) IsValid() bool {
	switch s {
	case SourceOpenFoodFacts, SourceUSDA, SourceManual:
		return true
	}
	return false
}

// AllSources returns every known source in declaration order.
func AllSources() []Source {
	return []Source{SourceOpenFoodFacts, SourceUSDA, SourceManual}
}

// ParseSource converts a raw tag into a Source.
func ParseSource(raw string) (Source, bool) {
	s := Source(raw)
	return s, s.IsValid()
}
