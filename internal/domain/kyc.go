package domain

// KYCLocation is a physical location attached to a KYC submission. All
// locations of one submission are written in the same batch as the record.
type KYCLocation struct {
	ID        string
	OwnerID   string
	Label     string
	Address   string
	City      string
	Latitude  float64
	Longitude float64
}

// KYCSubmission bundles the documents written atomically when a merchant
// submits KYC: the record itself (a Resource keyed by the owner id), the
// location rows, and the business status flip to submitted.
type KYCSubmission struct {
	Record    *Resource
	Locations []KYCLocation
}
