package dialogue

import (
	"fmt"
	"strings"

	"github.com/aretw0/concierge/pkg/domain"
)

func (m *Machine) book(ent domain.Entities, prior domain.SessionState) Outcome {
	switch prior.Step {
	case domain.StepSelectHotel:
		return m.selectHotel(ent, prior)
	case domain.StepSelectServices:
		return m.selectServices(ent, prior)
	case domain.StepSelectPeople:
		return m.selectPeople(ent, prior)
	case domain.StepConfirmBooking:
		return m.confirm(ent, prior)
	}
	return apology(prior)
}

func (m *Machine) selectHotel(ent domain.Entities, prior domain.SessionState) Outcome {
	a := ent.Accommodation
	if a == nil {
		return Outcome{Response: domain.TextSelectHotel, Next: prior.WithStep(domain.StepSelectHotel)}
	}

	next := prior.WithStep(domain.StepSelectServices)
	next.Accommodation = a
	next.Country = a.Country
	next.City = a.City

	return Outcome{
		Response: fmt.Sprintf("Sie haben %s in %s, %s ausgewählt. Dieses Hotel bietet die folgenden Dienstleistungen an: %s. Bitte wählen Sie die für Sie passenden aus.",
			a.Name, capitalize(a.City), capitalize(a.Country), strings.Join(a.Services, ", ")),
		Next: next,
	}
}

func (m *Machine) selectServices(ent domain.Entities, prior domain.SessionState) Outcome {
	a := prior.Accommodation
	if a == nil {
		// A session cannot reach this step without a hotel; send it back to the hotel choice.
		return Outcome{Response: domain.TextSelectHotel, Next: prior.WithStep(domain.StepSelectHotel)}
	}

	offered := a.NormalizedServices()
	var matched []string
	for _, s := range ent.Services {
		if contains(offered, s) {
			matched = append(matched, s)
		}
	}

	next := prior.Clone()
	for _, s := range matched {
		if !contains(next.Services, s) {
			next.Services = append(next.Services, s)
		}
	}

	if len(matched) == 0 {
		return Outcome{
			Response: fmt.Sprintf("Keine der ausgewählten Dienstleistungen sind in %s verfügbar. Bitte wählen Sie aus den verfügbaren Dienstleistungen: %s.",
				a.Name, strings.Join(offered, ", ")),
			Next: next,
		}
	}

	next.Step = domain.StepSelectPeople
	return Outcome{
		Response: fmt.Sprintf("Sie haben gewählt: %s. Wenn Sie mit der Buchung fortfahren möchten, geben Sie die Anzahl der mitreisenden Personen ein.",
			strings.Join(next.Services, ", ")),
		Next: next,
	}
}

func (m *Machine) selectPeople(ent domain.Entities, prior domain.SessionState) Outcome {
	if ent.People == nil {
		return Outcome{Response: domain.TextAskPeople, Next: prior.Clone()}
	}
	a := prior.Accommodation
	if a == nil {
		return Outcome{Response: domain.TextSelectHotel, Next: prior.WithStep(domain.StepSelectHotel)}
	}

	people := *ent.People
	total := domain.TotalPrice(a.Price, people, len(prior.Services))

	next := prior.WithStep(domain.StepConfirmBooking)
	next.People = &people
	next.TotalPrice = &total

	return Outcome{
		Response: fmt.Sprintf("Der Gesamtpreis für Ihren Aufenthalt in %s beträgt %s. Bitte geben Sie '%s' ein, um die Buchung abzuschließen.",
			a.Name, m.price(total), domain.ConfirmToken),
		Next: next,
	}
}

func (m *Machine) confirm(ent domain.Entities, prior domain.SessionState) Outcome {
	if !ent.Confirm {
		return Outcome{Response: domain.TextAskConfirm, Next: prior.Clone()}
	}
	a := prior.Accommodation
	if a == nil {
		return Outcome{Response: domain.TextSelectHotel, Next: prior.WithStep(domain.StepSelectHotel)}
	}
	if prior.People == nil || prior.TotalPrice == nil {
		return Outcome{Response: domain.TextAskPeople, Next: prior.WithStep(domain.StepSelectPeople)}
	}

	record := domain.BookingRecord{
		HotelName:  a.Name,
		Country:    prior.Country,
		City:       prior.City,
		Services:   append([]string{}, prior.Services...),
		People:     *prior.People,
		TotalPrice: *prior.TotalPrice,
	}

	next := prior.WithStep(domain.StepBookingCompleted)
	next.BookingSuccess = true
	snapshot := record
	next.Booking = &snapshot

	return Outcome{
		Response: fmt.Sprintf("Buchung bestätigt. Hotel: %s, Land: %s, Stadt: %s, Dienstleistungen: %s, Personen: %d, Gesamtpreis: %s. Wir freuen uns, dass Sie sich für uns entschieden haben. Gute Reise!",
			a.Name, a.Country, a.City, strings.Join(record.Services, ", "), record.People, m.price(record.TotalPrice)),
		Next:    next,
		Booking: &record,
	}
}
