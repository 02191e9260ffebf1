package domain

import "slices"

// StateDiff represents the changes between two session states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// UserID is always present to identify the target.
	UserID string `json:"user_id"`

	Step          *Step    `json:"step,omitempty"`
	Accommodation *string  `json:"accommodation,omitempty"`
	Country       *string  `json:"country,omitempty"`
	City          *string  `json:"city,omitempty"`
	People        *int     `json:"people,omitempty"`
	TotalPrice    *float64 `json:"total_price,omitempty"`

	// Services is the full service list whenever it changed.
	Services []string `json:"services,omitempty"`

	// Cleared lists fields that went from set to empty.
	Cleared []string `json:"cleared,omitempty"`
}

// Diff calculates the difference between oldState and newState for a user.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(userID string, oldState, newState *SessionState) *StateDiff {
	if newState == nil {
		return nil
	}
	if oldState == nil {
		oldState = &SessionState{}
	}

	diff := &StateDiff{UserID: userID}

	if oldState.Step != newState.Step {
		step := newState.Step
		diff.Step = &step
	}

	oldName, newName := accommodationName(oldState), accommodationName(newState)
	diffString(diff, "accommodation", oldName, newName, &diff.Accommodation)
	diffString(diff, "country", oldState.Country, newState.Country, &diff.Country)
	diffString(diff, "city", oldState.City, newState.City, &diff.City)

	switch {
	case newState.People != nil && (oldState.People == nil || *oldState.People != *newState.People):
		people := *newState.People
		diff.People = &people
	case newState.People == nil && oldState.People != nil:
		diff.Cleared = append(diff.Cleared, "people")
	}

	switch {
	case newState.TotalPrice != nil && (oldState.TotalPrice == nil || *oldState.TotalPrice != *newState.TotalPrice):
		price := *newState.TotalPrice
		diff.TotalPrice = &price
	case newState.TotalPrice == nil && oldState.TotalPrice != nil:
		diff.Cleared = append(diff.Cleared, "total_price")
	}

	if !slices.Equal(oldState.Services, newState.Services) {
		if len(newState.Services) == 0 {
			diff.Cleared = append(diff.Cleared, "services")
		} else {
			diff.Services = append([]string(nil), newState.Services...)
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffString(diff *StateDiff, field, oldVal, newVal string, target **string) {
	if oldVal == newVal {
		return
	}
	if newVal == "" {
		diff.Cleared = append(diff.Cleared, field)
		return
	}
	v := newVal
	*target = &v
}

func accommodationName(s *SessionState) string {
	if s.Accommodation == nil {
		return ""
	}
	return s.Accommodation.Name
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Step == nil &&
		d.Accommodation == nil &&
		d.Country == nil &&
		d.City == nil &&
		d.People == nil &&
		d.TotalPrice == nil &&
		len(d.Services) == 0 &&
		len(d.Cleared) == 0
}
