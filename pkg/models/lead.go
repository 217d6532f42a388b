package models

// Lead is the quote-request contact payload for POST /leads/.
type Lead struct {
	VisualizationID int    `json:"visualization_id" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=10"`
	AddressStreet   string `json:"address_street" validate:"required"`
	AddressCity     string `json:"address_city" validate:"required"`
	AddressState    string `json:"address_state" validate:"required,len=2"`
	AddressZip      string `json:"address_zip" validate:"required,min=5"`
}

// LeadResponse is returned after lead creation. PDFURL points at the
// generated quote document when the backend produced one.
type LeadResponse struct {
	ID     int    `json:"id"`
	PDFURL string `json:"pdf_url,omitempty"`
}
