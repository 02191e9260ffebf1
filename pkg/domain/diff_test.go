package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	adler := &Accommodation{Name: "Hotel Adler", Country: "Deutschland", City: "Berlin", Price: 100}
	two := 2
	price := 240.0

	selectServices := StepSelectServices
	confirm := StepConfirmBooking
	initial := StepInitial
	name := "Hotel Adler"
	country := "Deutschland"
	city := "Berlin"

	tests := []struct {
		name     string
		old      *SessionState
		new      *SessionState
		wantDiff *StateDiff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new: &SessionState{
				Step:          StepSelectServices,
				Accommodation: adler,
				Country:       "Deutschland",
				City:          "Berlin",
			},
			wantDiff: &StateDiff{
				UserID:        "user-1",
				Step:          &selectServices,
				Accommodation: &name,
				Country:       &country,
				City:          &city,
			},
		},
		{
			name:     "No Changes",
			old:      &SessionState{Step: StepSelectHotel},
			new:      &SessionState{Step: StepSelectHotel},
			wantDiff: nil,
		},
		{
			name: "Price Computed",
			old: &SessionState{
				Step:          StepSelectPeople,
				Accommodation: adler,
				Services:      []string{"wifi", "frühstück"},
			},
			new: &SessionState{
				Step:          StepConfirmBooking,
				Accommodation: adler,
				Services:      []string{"wifi", "frühstück"},
				People:        &two,
				TotalPrice:    &price,
			},
			wantDiff: &StateDiff{
				UserID:     "user-1",
				Step:       &confirm,
				People:     &two,
				TotalPrice: &price,
			},
		},
		{
			name: "Reset Clears Fields",
			old: &SessionState{
				Step:          StepConfirmBooking,
				Accommodation: adler,
				Country:       "Deutschland",
				City:          "Berlin",
				Services:      []string{"wifi"},
				People:        &two,
				TotalPrice:    &price,
			},
			new: &SessionState{Step: StepInitial},
			wantDiff: &StateDiff{
				UserID:  "user-1",
				Step:    &initial,
				Cleared: []string{"accommodation", "country", "city", "people", "total_price", "services"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff("user-1", tt.old, tt.new)
			assert.Equal(t, tt.wantDiff, got)
		})
	}
}

func TestDiff_ServicesAccumulate(t *testing.T) {
	old := &SessionState{Step: StepSelectServices, Services: []string{"wifi"}}
	updated := &SessionState{Step: StepSelectServices, Services: []string{"wifi", "spa"}}

	diff := Diff("user-1", old, updated)
	require.NotNil(t, diff)
	assert.Nil(t, diff.Step)
	assert.Equal(t, []string{"wifi", "spa"}, diff.Services)
}

func TestDiff_JSONOmitsUnchanged(t *testing.T) {
	step := StepSelectHotel
	diff := &StateDiff{UserID: "user-1", Step: &step}

	data, err := json.Marshal(diff)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":"user-1","step":"select_hotel"}`, string(data))
}
