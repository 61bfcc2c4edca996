package domain

import "github.com/google/uuid"

// Guide is the travel advice attached 1:1 to a Destination. It is keyed by
// the destination id.
type Guide struct {
	DestinationID       uuid.UUID `db:"destination_id" json:"destination_id"`
	HowToTravel         string    `db:"how_to_travel" json:"how_to_travel"`
	PlacesToSee         []string  `db:"places_to_see" json:"places_to_see"`
	RulesAndRegulations string    `db:"rules_and_regulations" json:"rules_and_regulations"`
	BestTimeToVisit     string    `db:"best_time_to_visit" json:"best_time_to_visit"`
}
