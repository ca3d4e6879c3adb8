// Package importer pulls recipes out of web pages. It prefers schema.org
// JSON-LD blocks and falls back to microdata markup, which between them
// cover most recipe sites.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mmcdole/sous/internal/domain"
)

// ErrNoRecipe means the page had no recognizable recipe markup
var ErrNoRecipe = errors.New("no recipe data found on page")

var durationExpr = regexp.MustCompile(`(?i)^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:[\d.]+S)?)?$`)

// Importer fetches and parses recipe pages
type Importer struct {
	client *http.Client
	logger *slog.Logger
}

// New wires an HTTP client; a nil client gets a 20 second timeout default.
func New(client *http.Client, logger *slog.Logger) *Importer {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{client: client, logger: logger}
}

// Import fetches a page and extracts the recipe on it
func (imp *Importer) Import(ctx context.Context, pageURL string) (*domain.Recipe, error) {
	doc, err := imp.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	if ld, ok := extractJSONLD(doc); ok {
		imp.logger.Debug("recipe extracted from json-ld", "url", pageURL, "title", ld.Name)
		return mapRecipe(ld, pageURL), nil
	}

	if ld, ok := extractMicrodata(doc); ok {
		imp.logger.Debug("recipe extracted from microdata", "url", pageURL, "title", ld.Name)
		return mapRecipe(ld, pageURL), nil
	}

	imp.logger.Warn("no recipe markup found", "url", pageURL)
	return nil, ErrNoRecipe
}

func (imp *Importer) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "sous/1.0")

	resp, err := imp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return doc, nil
}

// ldRecipe is the subset of schema.org/Recipe the importer keeps.
// Field shapes vary wildly across sites, hence the flex types.
type ldRecipe struct {
	Type         flexStrings `json:"@type"`
	Graph        []ldRecipe  `json:"@graph"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Image        flexImage   `json:"image"`
	Ingredients  []string    `json:"recipeIngredient"`
	Instructions flexSteps   `json:"recipeInstructions"`
	Yield        flexString  `json:"recipeYield"`
	PrepTime     string      `json:"prepTime"`
	CookTime     string      `json:"cookTime"`
	Category     flexString  `json:"recipeCategory"`
	Cuisine      flexString  `json:"recipeCuisine"`
}

func (r *ldRecipe) isRecipe() bool {
	for _, t := range r.Type {
		if strings.EqualFold(t, "Recipe") {
			return true
		}
	}
	return false
}

// flexStrings accepts "Recipe" and ["Recipe", "NewsArticle"]
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*f = []string{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*f = many
		return nil
	}
	*f = nil
	return nil
}

// flexString accepts a string, a number, or an array (keeps the first entry)
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*f = flexString(one)
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexString(strconv.Itoa(int(num)))
		return nil
	}
	var many []flexString
	if err := json.Unmarshal(data, &many); err == nil && len(many) > 0 {
		*f = many[0]
		return nil
	}
	*f = ""
	return nil
}

// flexImage accepts "url", ["url", ...] and {"url": "..."}
type flexImage string

func (f *flexImage) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*f = flexImage(one)
		return nil
	}
	var many []flexImage
	if err := json.Unmarshal(data, &many); err == nil && len(many) > 0 {
		*f = many[0]
		return nil
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*f = flexImage(obj.URL)
		return nil
	}
	*f = ""
	return nil
}

// flexSteps accepts "do it all", ["step", ...] and HowToStep objects
type flexSteps []string

func (f *flexSteps) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*f = splitInstructionText(one)
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*f = nil
		return nil
	}

	var steps []string
	for _, item := range raw {
		var text string
		if err := json.Unmarshal(item, &text); err == nil {
			steps = append(steps, strings.TrimSpace(text))
			continue
		}
		var obj struct {
			Text string     `json:"text"`
			Name string     `json:"name"`
			List []flexSteps `json:"itemListElement"` // HowToSection nesting
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		switch {
		case obj.Text != "":
			steps = append(steps, strings.TrimSpace(obj.Text))
		case len(obj.List) > 0:
			for _, inner := range obj.List {
				steps = append(steps, inner...)
			}
		case obj.Name != "":
			steps = append(steps, strings.TrimSpace(obj.Name))
		}
	}
	*f = steps
	return nil
}

// splitInstructionText breaks a single instruction blob into steps
func splitInstructionText(text string) []string {
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// extractJSONLD scans script[type="application/ld+json"] blocks for a Recipe
func extractJSONLD(doc *goquery.Document) (*ldRecipe, bool) {
	var found *ldRecipe

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		data := []byte(sel.Text())

		// Top-level object, possibly with an @graph list
		var obj ldRecipe
		if err := json.Unmarshal(data, &obj); err == nil {
			if r := pickRecipe(&obj); r != nil {
				found = r
				return false
			}
		}

		// Top-level array
		var list []ldRecipe
		if err := json.Unmarshal(data, &list); err == nil {
			for i := range list {
				if r := pickRecipe(&list[i]); r != nil {
					found = r
					return false
				}
			}
		}

		return true
	})

	return found, found != nil
}

// pickRecipe returns the node itself or its first Recipe @graph entry
func pickRecipe(node *ldRecipe) *ldRecipe {
	if node.isRecipe() && node.Name != "" {
		return node
	}
	for i := range node.Graph {
		if node.Graph[i].isRecipe() && node.Graph[i].Name != "" {
			return &node.Graph[i]
		}
	}
	return nil
}

// extractMicrodata reads itemprop markup as a fallback for older sites
func extractMicrodata(doc *goquery.Document) (*ldRecipe, bool) {
	scope := doc.Find(`[itemtype*="schema.org/Recipe"]`).First()
	if scope.Length() == 0 {
		return nil, false
	}

	ld := &ldRecipe{Type: flexStrings{"Recipe"}}
	ld.Name = strings.TrimSpace(scope.Find(`[itemprop="name"]`).First().Text())
	ld.Description = strings.TrimSpace(scope.Find(`[itemprop="description"]`).First().Text())

	if img, ok := scope.Find(`[itemprop="image"]`).First().Attr("src"); ok {
		ld.Image = flexImage(img)
	}

	scope.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`).Each(func(i int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			ld.Ingredients = append(ld.Ingredients, text)
		}
	})

	steps := scope.Find(`[itemprop="recipeInstructions"] [itemprop="itemListElement"]`)
	if steps.Length() == 0 {
		steps = scope.Find(`[itemprop="recipeInstructions"]`)
	}
	steps.Each(func(i int, sel *goquery.Selection) {
		ld.Instructions = append(ld.Instructions, splitInstructionText(sel.Text())...)
	})

	ld.PrepTime, _ = scope.Find(`[itemprop="prepTime"]`).First().Attr("datetime")
	ld.CookTime, _ = scope.Find(`[itemprop="cookTime"]`).First().Attr("datetime")
	ld.Yield = flexString(strings.TrimSpace(scope.Find(`[itemprop="recipeYield"]`).First().Text()))
	ld.Category = flexString(strings.TrimSpace(scope.Find(`[itemprop="recipeCategory"]`).First().Text()))

	if ld.Name == "" {
		return nil, false
	}
	return ld, true
}

// mapRecipe converts parsed markup into a domain recipe
func mapRecipe(ld *ldRecipe, pageURL string) *domain.Recipe {
	r := &domain.Recipe{
		Title:       strings.TrimSpace(ld.Name),
		Description: strings.TrimSpace(ld.Description),
		ImageURL:    string(ld.Image),
		SourceURL:   pageURL,
		Category:    string(ld.Category),
		Cuisine:     string(ld.Cuisine),
		Servings:    parseServings(string(ld.Yield)),
		PrepMinutes: parseISODuration(ld.PrepTime),
		CookMinutes: parseISODuration(ld.CookTime),
	}

	for _, line := range ld.Ingredients {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Free-text lines keep everything in the name; quantity parsing
		// is not worth the breakage across sites
		r.Ingredients = append(r.Ingredients, domain.Ingredient{Name: line})
	}

	for _, step := range ld.Instructions {
		if step == "" {
			continue
		}
		r.Steps = append(r.Steps, domain.Step{Instruction: step})
	}

	return r
}

// parseISODuration converts ISO-8601 durations like PT1H30M to minutes
func parseISODuration(s string) int {
	m := durationExpr.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}
	days, _ := strconv.Atoi(m[1])
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	return days*24*60 + hours*60 + minutes
}

// parseServings pulls the first number out of yields like "4 servings"
func parseServings(s string) int {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if len(fields) == 0 {
		return 0
	}
	n, _ := strconv.Atoi(fields[0])
	return n
}
