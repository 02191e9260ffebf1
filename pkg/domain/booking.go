package domain

import "time"

// ServiceFee is the flat price added per selected service.
const ServiceFee = 20

// BookingRecord is the snapshot captured when a booking is confirmed.
// It is delivered to the transport as a distinct confirmation event.
type BookingRecord struct {
	Reference   string    `json:"reference,omitempty"`
	HotelName   string    `json:"hotelName"`
	Country     string    `json:"country"`
	City        string    `json:"city"`
	Services    []string  `json:"services"`
	People      int       `json:"people"`
	TotalPrice  float64   `json:"totalPrice"`
	ConfirmedAt time.Time `json:"confirmedAt,omitzero"`
}

// TotalPrice computes price × people + ServiceFee × services.
func TotalPrice(pricePerNight float64, people, services int) float64 {
	return pricePerNight*float64(people) + float64(ServiceFee*services)
}
