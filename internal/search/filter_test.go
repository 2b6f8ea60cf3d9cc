package search

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pharmaseek/pharmaseek-backend/pkg/db/models"
	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
)

func ptr(v string) *string { return &v }

func fixtureCatalog() []models.Medicine {
	return []models.Medicine{
		{
			ID:          uuid.New(),
			Name:        "Panadol",
			GenericName: ptr("Paracetamol"),
			DosageForm:  "tablet",
			Strength:    "500mg",
			Strengths:   models.StringList{"500mg", "650mg"},
			Category:    "pain-relief",
		},
		{
			ID:          uuid.New(),
			Name:        "Paracetamol",
			GenericName: ptr("Paracetamol"),
			DosageForm:  "tablet",
			Strength:    "500mg",
			Strengths:   models.StringList{"500mg"},
			Category:    "pain-relief",
		},
		{
			ID:          uuid.New(),
			Name:        "Amoxicillin",
			GenericName: ptr("Amoxicillin"),
			DosageForm:  "suspension",
			Strength:    "250mg/5ml",
			Strengths:   models.StringList{"125mg/5ml", "250mg/5ml"},
			Category:    "antibiotics",
		},
		{
			ID:         uuid.New(),
			Name:       "Vitamin D3",
			DosageForm: "drops",
			Strength:   "400IU/ml",
			Strengths:  models.StringList{"400IU/ml"},
			Category:   "vitamins",
		},
	}
}

func names(medicines []models.Medicine) []string {
	out := make([]string, 0, len(medicines))
	for _, m := range medicines {
		out = append(out, m.Name)
	}
	return out
}

func TestFilterMatchesNameOrGenericName(t *testing.T) {
	got := Filter(fixtureCatalog(), Query{Text: "paracetamol"})
	require.Equal(t, []string{"Panadol", "Paracetamol"}, names(got))
}

func TestFilterByCategory(t *testing.T) {
	got := Filter(fixtureCatalog(), Query{Category: "Antibiotics"})
	require.Equal(t, []string{"Amoxicillin"}, names(got))
}

func TestFilterByStrengthTokenSubstringOrList(t *testing.T) {
	got := Filter(fixtureCatalog(), Query{Strengths: []string{"650mg"}})
	require.Equal(t, []string{"Panadol"}, names(got))

	got = Filter(fixtureCatalog(), Query{Strengths: []string{"250mg"}})
	require.Equal(t, []string{"Amoxicillin"}, names(got))
}

func TestFilterByDosageForm(t *testing.T) {
	got := Filter(fixtureCatalog(), Query{Forms: []string{"drops", "suspension"}})
	require.Equal(t, []string{"Amoxicillin", "Vitamin D3"}, names(got))
}

func TestFilterBrandMode(t *testing.T) {
	brand := Filter(fixtureCatalog(), Query{Mode: enums.BrandModeBrand})
	require.Equal(t, []string{"Panadol"}, names(brand))

	generic := Filter(fixtureCatalog(), Query{Mode: enums.BrandModeGeneric})
	require.Equal(t, []string{"Paracetamol", "Amoxicillin", "Vitamin D3"}, names(generic))

	both := Filter(fixtureCatalog(), Query{Mode: enums.BrandModeBoth})
	require.Len(t, both, 4)
}

func TestFilterPreservesInputOrder(t *testing.T) {
	got := Filter(fixtureCatalog(), Query{})
	require.Equal(t, []string{"Panadol", "Paracetamol", "Amoxicillin", "Vitamin D3"}, names(got))
}

func TestFilterChainsPredicates(t *testing.T) {
	got := Filter(fixtureCatalog(), Query{
		Text:      "para",
		Category:  "pain-relief",
		Strengths: []string{"500mg"},
		Forms:     []string{"tablet"},
		Mode:      enums.BrandModeGeneric,
	})
	require.Equal(t, []string{"Paracetamol"}, names(got))
}
