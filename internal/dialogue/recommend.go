package dialogue

import (
	"fmt"
	"strings"

	"github.com/aretw0/concierge/pkg/domain"
)

// recommend is a read-only query over the catalog; it only records the known country/city.
func (m *Machine) recommend(ent domain.Entities, prior domain.SessionState) Outcome {
	switch {
	case ent.Country != "" && ent.City == "":
		next := prior.Clone()
		next.Country = ent.Country
		return Outcome{
			Response: fmt.Sprintf("Dies sind alle unsere Unterkunftsmöglichkeiten in %s: %s. Bitte wählen Sie eine Stadt aus.",
				capitalize(ent.Country), strings.Join(m.catalog.CitiesIn(ent.Country), ", ")),
			Next: next,
		}

	case ent.City != "":
		// With a known country the city must belong to it; otherwise the city alone decides.
		var names []string
		for _, a := range m.catalog.InCity(ent.City, ent.Country) {
			names = append(names, a.Name)
		}
		next := prior.WithStep(domain.StepSelectHotel)
		next.City = ent.City
		next.Country = ent.Country
		return Outcome{
			Response: fmt.Sprintf("Dies sind alle unsere Unterkunftsmöglichkeiten für %s: %s. Bitte wählen Sie ein Hotel aus.",
				capitalize(ent.City), strings.Join(names, ", ")),
			Next: next,
		}
	}

	return Outcome{Response: domain.TextAskCountry, Next: prior.Clone()}
}
