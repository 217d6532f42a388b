package models

// ScreenType is one installable security screen product.
type ScreenType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ScreenTypeList is the paginated shape returned by GET /screentypes/.
type ScreenTypeList struct {
	Results []ScreenType `json:"results"`
}

// DefaultScreenTypes mirrors the backend's screen type choices. Used as a
// local fallback when the remote catalog is unreachable.
func DefaultScreenTypes() []ScreenType {
	return []ScreenType{
		{ID: "window_fixed", Name: "Fixed Security Window", Description: "Surface Mount"},
		{ID: "door_single", Name: "Hinged Security Door", Description: "Single"},
		{ID: "door_sliding", Name: "Sliding Security Door", Description: "Heavy Duty"},
		{ID: "door_french", Name: "French Security Doors", Description: "Double"},
		{ID: "door_accordion", Name: "Accordion/Bi-Fold Security Door", Description: "Stacking"},
		{ID: "patio_enclosure", Name: "Patio Enclosure", Description: "Stand Alone"},
	}
}
