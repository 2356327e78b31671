// internal/service/ingest/categorize.go

package ingest

import (
	"strings"
)

// Categories assigned to incoming posts
const (
	CategoryPolitics   = "Politics"
	CategoryEconomy    = "Economy"
	CategorySecurity   = "Security"
	CategoryTechnology = "Technology"
	CategoryDisaster   = "Disaster"
	CategoryHealth     = "Health"
	CategorySocial     = "Social"
)

// categoryKeywords maps each category to the content keywords that select
// it. Order matters: the first category with a hit wins.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{CategoryPolitics, []string{"election", "parliament", "president", "politic", "campaign"}},
	{CategoryEconomy, []string{"stock", "market", "econom", "price", "tax", "inflation"}},
	{CategorySecurity, []string{"military", "police", "conflict", "attack", "troops"}},
	{CategoryTechnology, []string{"computer", "internet", " ai ", "smartphone", "software", "startup"}},
	{CategoryDisaster, []string{"flood", "earthquake", "disaster", "wildfire", "hurricane"}},
	{CategoryHealth, []string{"virus", "vaccine", "hospital", "disease", "health"}},
}

// Categorize assigns a post to one of the fixed categories by keyword.
// Content with no keyword hits lands in Social.
func Categorize(content string) string {
	lower := strings.ToLower(content)

	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category
			}
		}
	}

	return CategorySocial
}
