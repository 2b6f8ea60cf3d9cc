package search

import (
	"strings"

	"github.com/pharmaseek/pharmaseek-backend/pkg/db/models"
	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
)

// Query parameterizes one pass of the filter pipeline. Zero-valued
// dimensions are skipped; all matching is case-insensitive.
type Query struct {
	Text      string
	Category  string
	Strengths []string
	Forms     []string
	Mode      enums.BrandMode
}

// Filter runs the predicate chain over the catalog in order: text,
// category, strength, dosage form, brand mode. Input order is preserved
// and no ranking is applied.
func Filter(medicines []models.Medicine, q Query) []models.Medicine {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	category := strings.ToLower(strings.TrimSpace(q.Category))
	strengths := lowerAll(q.Strengths)
	forms := lowerSet(q.Forms)

	matched := make([]models.Medicine, 0, len(medicines))
	for _, m := range medicines {
		if !matchesText(m, text) {
			continue
		}
		if category != "" && strings.ToLower(m.Category) != category {
			continue
		}
		if !matchesStrength(m, strengths) {
			continue
		}
		if len(forms) > 0 {
			if _, ok := forms[strings.ToLower(m.DosageForm)]; !ok {
				continue
			}
		}
		if !matchesMode(m, q.Mode) {
			continue
		}
		matched = append(matched, m)
	}
	return matched
}

func matchesText(m models.Medicine, text string) bool {
	if text == "" {
		return true
	}
	if strings.Contains(strings.ToLower(m.Name), text) {
		return true
	}
	if m.GenericName != nil && strings.Contains(strings.ToLower(*m.GenericName), text) {
		return true
	}
	return false
}

func matchesStrength(m models.Medicine, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	strength := strings.ToLower(m.Strength)
	for _, token := range selected {
		if strings.Contains(strength, token) {
			return true
		}
		for _, candidate := range m.Strengths {
			if strings.ToLower(candidate) == token {
				return true
			}
		}
	}
	return false
}

func matchesMode(m models.Medicine, mode enums.BrandMode) bool {
	switch mode {
	case enums.BrandModeBrand:
		return !m.IsGeneric()
	case enums.BrandModeGeneric:
		return m.IsGeneric()
	default:
		return true
	}
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.ToLower(strings.TrimSpace(v)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func lowerSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		if trimmed := strings.ToLower(strings.TrimSpace(v)); trimmed != "" {
			out[trimmed] = struct{}{}
		}
	}
	return out
}
