package types

// Location carries the delivery address collected at order submission.
// It travels with the submit request and is never persisted.
type Location struct {
	Region       string `json:"region"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Note         string `json:"note"`
}
