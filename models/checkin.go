package models

// CheckinRecord is one vehicle inspection event
type CheckinRecord struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"`
	ClientName   string   `json:"clientName"`
	Phone        string   `json:"phone"`
	VehicleModel string   `json:"vehicleModel"`
	Plate        string   `json:"plate"`
	Service      string   `json:"service"`
	PhotoURLs    []string `json:"photoUrls"`
	Signature    string   `json:"signature,omitempty"`
}

// Normalize makes PhotoURLs serialize as an empty array instead of null
func (r *CheckinRecord) Normalize() {
	if r.PhotoURLs == nil {
		r.PhotoURLs = []string{}
	}
}

// Clone returns a deep copy of r
func (r CheckinRecord) Clone() CheckinRecord {
	out := r
	out.PhotoURLs = append([]string{}, r.PhotoURLs...)
	return out
}
