package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const jsonLDPage = `<!doctype html>
<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": ["Recipe", "NewsArticle"],
  "name": "Lemon Garlic Pasta",
  "description": "Bright weeknight pasta.",
  "image": ["https://example.com/img/pasta.jpg", "https://example.com/img/alt.jpg"],
  "recipeYield": "4 servings",
  "prepTime": "PT10M",
  "cookTime": "PT1H10M",
  "recipeCategory": "Dinner",
  "recipeCuisine": "Italian",
  "recipeIngredient": ["200 g spaghetti", "2 lemons", " ", "3 cloves garlic"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Boil the pasta."},
    {"@type": "HowToStep", "text": "Toss with lemon and garlic."}
  ]
}
</script>
</head><body><h1>Lemon Garlic Pasta</h1></body></html>`

const graphPage = `<!doctype html>
<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "WebPage", "name": "Some Page"},
    {
      "@type": "Recipe",
      "name": "Shakshuka",
      "recipeYield": 2,
      "recipeIngredient": ["6 eggs"],
      "recipeInstructions": "Simmer the sauce.\nCrack in the eggs.\n"
    }
  ]
}
</script>
</head><body></body></html>`

const microdataPage = `<!doctype html>
<html><body>
<div itemscope itemtype="https://schema.org/Recipe">
  <h1 itemprop="name">Classic Pancakes</h1>
  <p itemprop="description">Fluffy and fast.</p>
  <img itemprop="image" src="https://example.com/pancakes.jpg">
  <meta itemprop="prepTime" datetime="PT5M">
  <meta itemprop="cookTime" datetime="PT15M">
  <span itemprop="recipeYield">makes 8</span>
  <li itemprop="recipeIngredient">1 cup flour</li>
  <li itemprop="recipeIngredient">1 egg</li>
  <div itemprop="recipeInstructions">
    <span itemprop="itemListElement">Whisk everything.</span>
    <span itemprop="itemListElement">Fry in batches.</span>
  </div>
</div>
</body></html>`

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestImport_JSONLD(t *testing.T) {
	t.Parallel()

	server := serve(t, jsonLDPage)
	imp := New(server.Client(), nil)

	r, err := imp.Import(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Import error: %v", err)
	}

	if r.Title != "Lemon Garlic Pasta" {
		t.Errorf("title = %q", r.Title)
	}
	if r.Description != "Bright weeknight pasta." {
		t.Errorf("description = %q", r.Description)
	}
	if r.ImageURL != "https://example.com/img/pasta.jpg" {
		t.Errorf("image = %q, want the first array entry", r.ImageURL)
	}
	if r.SourceURL != server.URL {
		t.Errorf("source = %q, want the page URL", r.SourceURL)
	}
	if r.Category != "Dinner" || r.Cuisine != "Italian" {
		t.Errorf("category/cuisine = %q/%q", r.Category, r.Cuisine)
	}
	if r.Servings != 4 {
		t.Errorf("servings = %d, want 4", r.Servings)
	}
	if r.PrepMinutes != 10 || r.CookMinutes != 70 {
		t.Errorf("times = %d/%d, want 10/70", r.PrepMinutes, r.CookMinutes)
	}

	// Blank ingredient lines are dropped; the rest stay free-text in Name
	if len(r.Ingredients) != 3 {
		t.Fatalf("ingredient count = %d, want 3", len(r.Ingredients))
	}
	if r.Ingredients[0].Name != "200 g spaghetti" || r.Ingredients[0].Quantity != "" {
		t.Errorf("ingredient[0] = %+v, want free text in Name", r.Ingredients[0])
	}

	if len(r.Steps) != 2 {
		t.Fatalf("step count = %d, want 2", len(r.Steps))
	}
	if r.Steps[1].Instruction != "Toss with lemon and garlic." {
		t.Errorf("step[1] = %q", r.Steps[1].Instruction)
	}

	if r.Mine || r.ID != 0 {
		t.Error("imported recipes start unsaved, without an ID")
	}
}

func TestImport_GraphAndStringInstructions(t *testing.T) {
	t.Parallel()

	server := serve(t, graphPage)
	imp := New(server.Client(), nil)

	r, err := imp.Import(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Import error: %v", err)
	}

	if r.Title != "Shakshuka" {
		t.Errorf("title = %q, want the @graph recipe", r.Title)
	}
	if r.Servings != 2 {
		t.Errorf("servings = %d, want numeric yield accepted", r.Servings)
	}
	if len(r.Steps) != 2 {
		t.Fatalf("steps = %d, want instruction blob split on newlines", len(r.Steps))
	}
	if r.Steps[0].Instruction != "Simmer the sauce." {
		t.Errorf("step[0] = %q", r.Steps[0].Instruction)
	}
}

func TestImport_MicrodataFallback(t *testing.T) {
	t.Parallel()

	server := serve(t, microdataPage)
	imp := New(server.Client(), nil)

	r, err := imp.Import(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Import error: %v", err)
	}

	if r.Title != "Classic Pancakes" {
		t.Errorf("title = %q", r.Title)
	}
	if r.ImageURL != "https://example.com/pancakes.jpg" {
		t.Errorf("image = %q", r.ImageURL)
	}
	if r.PrepMinutes != 5 || r.CookMinutes != 15 {
		t.Errorf("times = %d/%d, want 5/15", r.PrepMinutes, r.CookMinutes)
	}
	if r.Servings != 8 {
		t.Errorf("servings = %d, want 8", r.Servings)
	}
	if len(r.Ingredients) != 2 {
		t.Errorf("ingredients = %d, want 2", len(r.Ingredients))
	}
	if len(r.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(r.Steps))
	}
	if r.Steps[0].Instruction != "Whisk everything." {
		t.Errorf("step[0] = %q", r.Steps[0].Instruction)
	}
}

func TestImport_NoRecipeMarkup(t *testing.T) {
	t.Parallel()

	server := serve(t, `<html><body><h1>Just a blog post</h1></body></html>`)
	imp := New(server.Client(), nil)

	_, err := imp.Import(context.Background(), server.URL)
	if !errors.Is(err, ErrNoRecipe) {
		t.Errorf("Import = %v, want ErrNoRecipe", err)
	}
}

func TestImport_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	imp := New(server.Client(), nil)
	_, err := imp.Import(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Import should fail on a 404")
	}
}

func TestParseISODuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"PT30M", 30},
		{"PT1H", 60},
		{"PT1H30M", 90},
		{"P1D", 1440},
		{"P1DT2H", 1560},
		{"PT45S", 0},
		{"pt20m", 20},
		{"", 0},
		{"twenty minutes", 0},
	}

	for _, tt := range tests {
		if got := parseISODuration(tt.in); got != tt.want {
			t.Errorf("parseISODuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseServings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"4 servings", 4},
		{"Serves 6", 6},
		{"4-6 portions", 4},
		{"makes 12", 12},
		{"", 0},
		{"a crowd", 0},
	}

	for _, tt := range tests {
		if got := parseServings(tt.in); got != tt.want {
			t.Errorf("parseServings(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
