package models

// Status is the discriminator carried by every result envelope returned to
// the platform. Callers branch on it instead of handling errors.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)
