package referral

// DoctorRecord is a candidate doctor row read from one of the record
// sources. The core only reads these; ownership stays with the store.
type DoctorRecord struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	Specialty  string  `json:"specialty"`
	ClinicName string  `json:"clinic_name"`
	City       string  `json:"city"`
	Country    string  `json:"country"`
	WebsiteURL *string `json:"website_url,omitempty"`
	BookingURL *string `json:"booking_url,omitempty"`
}
