package catalog

import "testing"

func TestClassifier(t *testing.T) {
	c := NewClassifier([]string{"Abattage"})

	if got := c.Classify("abattage"); got != CategorySlaughterhouse {
		t.Errorf("abattage: got %s, want slaughterhouse", got)
	}
	if got := c.Classify("ABATTAGE "); got != CategorySlaughterhouse {
		t.Errorf("classification should ignore case and whitespace, got %s", got)
	}
	if got := c.Classify("mbao"); got != CategoryOrdinary {
		t.Errorf("mbao: got %s, want ordinary", got)
	}
	// Unknown sites default to ordinary, the catalog is advisory.
	if got := c.Classify("brand-new-site"); got != CategoryOrdinary {
		t.Errorf("unknown site: got %s, want ordinary", got)
	}
}

func TestPriceCatalog_Resolve(t *testing.T) {
	c := NewPriceCatalog(
		map[string]float64{"boeuf": 3600, "agneau": 4500},
		map[string]map[string]float64{
			"mbao": {"boeuf": 3700},
		},
	)

	if got := c.Resolve("boeuf", ""); got != 3600 {
		t.Errorf("default price: got %v, want 3600", got)
	}
	if got := c.Resolve("boeuf", "mbao"); got != 3700 {
		t.Errorf("site override must win: got %v, want 3700", got)
	}
	if got := c.Resolve("boeuf", "foire"); got != 3600 {
		t.Errorf("no override for site: got %v, want 3600", got)
	}
	if got := c.Resolve("autruche", "mbao"); got != 0 {
		t.Errorf("unknown product: got %v, want 0", got)
	}
}

func TestPriceCatalog_Known(t *testing.T) {
	c := NewPriceCatalog(
		map[string]float64{"boeuf": 0},
		map[string]map[string]float64{"mbao": {"veau": 3800}},
	)

	// Priced at 0 is still a recognized product.
	if !c.Known("boeuf") {
		t.Error("boeuf should be known even with 0 price")
	}
	// Override-only products are recognized too.
	if !c.Known("veau") {
		t.Error("veau should be known via site override")
	}
	if c.Known("autruche") {
		t.Error("autruche should not be known")
	}
}

func TestPriceCatalog_Immutable(t *testing.T) {
	defaults := map[string]float64{"boeuf": 3600}
	c := NewPriceCatalog(defaults, nil)

	defaults["boeuf"] = 1
	if got := c.Resolve("boeuf", ""); got != 3600 {
		t.Errorf("catalog must copy its tables: got %v, want 3600", got)
	}
}
