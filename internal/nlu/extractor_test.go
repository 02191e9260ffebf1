package nlu_test

import (
	"testing"

	"github.com/aretw0/concierge/internal/nlu"
	"github.com/aretw0/concierge/pkg/catalog"
	"github.com/aretw0/concierge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractor(t *testing.T) *nlu.Extractor {
	t.Helper()
	return nlu.NewExtractor(catalog.Default(), nil)
}

func TestExtract_Intent(t *testing.T) {
	e := newExtractor(t)

	tests := []struct {
		message string
		want    domain.IntentKind
	}{
		{"buchen", domain.IntentBook},
		{"Ich möchte gerne RESERVIEREN", domain.IntentBook},
		{"empfehlen", domain.IntentRecommend},
		{"bitte abbrechen", domain.IntentCancel},
		{"Hotel Adler", domain.IntentUnknown},
		{"", domain.IntentUnknown},
		{"buchenswert", domain.IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			intent, _ := e.Extract(tt.message, domain.Entities{})
			assert.Equal(t, tt.want, intent.Kind)
		})
	}

	t.Run("Unknown Carries Apology", func(t *testing.T) {
		intent, _ := e.Extract("hallo", domain.Entities{})
		assert.Equal(t, domain.UnknownIntent(), intent)
	})
}

func TestExtract_KeywordPrecedenceFollowsCatalogOrder(t *testing.T) {
	e := newExtractor(t)

	// "abbrechen" is the last rule, "buchen" the first.
	intent, _ := e.Extract("abbrechen buchen", domain.Entities{})
	assert.Equal(t, domain.IntentBook, intent.Kind)

	intent, _ = e.Extract("empfehlen oder abbrechen", domain.Entities{})
	assert.Equal(t, domain.IntentRecommend, intent.Kind)

	reordered, err := catalog.New("", nil, []domain.IntentRule{
		{Name: "abbrechen", Keywords: []string{"abbrechen"}},
		{Name: "buchen", Keywords: []string{"buchen"}},
	}, nil)
	require.NoError(t, err)

	intent, _ = nlu.NewExtractor(reordered, nil).Extract("abbrechen buchen", domain.Entities{})
	assert.Equal(t, domain.IntentCancel, intent.Kind)
}

func TestExtract_Accommodation(t *testing.T) {
	e := newExtractor(t)

	_, ent := e.Extract("  hotel ADLER ", domain.Entities{})
	require.NotNil(t, ent.Accommodation)
	assert.Equal(t, "Hotel Adler", ent.Accommodation.Name)

	// Only an exact match of the whole message counts.
	_, ent = e.Extract("ich nehme Hotel Adler", domain.Entities{})
	assert.Nil(t, ent.Accommodation)
}

func TestExtract_LocationAndPeople(t *testing.T) {
	e := newExtractor(t)

	_, ent := e.Extract("Berlin in Deutschland für 3 oder 4 Personen", domain.Entities{})
	assert.Equal(t, "deutschland", ent.Country)
	assert.Equal(t, "berlin", ent.City)
	require.NotNil(t, ent.People)
	assert.Equal(t, 3, *ent.People)

	_, ent = e.Extract("zwei personen, 2x", domain.Entities{})
	assert.Nil(t, ent.People, "only all-digit tokens count")

	_, ent = e.Extract("99999999999999999999999", domain.Entities{})
	assert.Nil(t, ent.People, "overflowing numbers are ignored")
}

func TestExtract_CarryForward(t *testing.T) {
	e := newExtractor(t)
	adler, _ := catalog.Default().Accommodation("hotel adler")
	people := 2
	prior := domain.Entities{Accommodation: adler, Country: "deutschland", City: "berlin", People: &people}

	_, ent := e.Extract("wifi", prior)
	assert.Same(t, adler, ent.Accommodation)
	assert.Equal(t, "deutschland", ent.Country)
	assert.Equal(t, "berlin", ent.City)
	assert.Equal(t, &people, ent.People)
	assert.Equal(t, []string{"wifi"}, ent.Services)

	_, ent = e.Extract("wien", prior)
	assert.Equal(t, "wien", ent.City, "a supplied value replaces the prior one")
	assert.Equal(t, "deutschland", ent.Country)
}

func TestExtract_ServicesAndConfirm(t *testing.T) {
	e := newExtractor(t)

	_, ent := e.Extract("wifi, frühstück", domain.Entities{})
	assert.Equal(t, []string{"wifi", "frühstück"}, ent.Services)
	assert.False(t, ent.Confirm)

	_, ent = e.Extract("service für room bitte", domain.Entities{})
	assert.Equal(t, []string{"room service"}, ent.Services, "loose multi-word matching")

	strict := nlu.NewExtractor(catalog.Default(), nlu.Phrase)
	_, ent = strict.Extract("service für room bitte", domain.Entities{})
	assert.Empty(t, ent.Services)

	_, ent = e.Extract("Bestätigen", domain.Entities{})
	assert.True(t, ent.Confirm)
}
