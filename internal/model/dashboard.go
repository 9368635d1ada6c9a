package model

// PractitionerStats carries the derived counts shown on the practitioner
// dashboard.
type PractitionerStats struct {
	UpcomingCount  int `json:"upcoming_count"`
	PatientCount   int `json:"patient_count"`
	TreatmentCount int `json:"treatment_count"`
	ResourceCount  int `json:"resource_count"`
}

// PractitionerDashboard is the read-only aggregate for a practitioner.
type PractitionerDashboard struct {
	Practitioner *PublicProfile       `json:"practitioner"`
	Stats        PractitionerStats    `json:"stats"`
	Upcoming     []*AppointmentDetail `json:"upcoming_appointments"`
	Patients     []*PublicProfile     `json:"patients"`
	Treatments   []Treatment          `json:"treatments"`
	Resources    []*Resource          `json:"resources"`
}

type PatientStats struct {
	TotalAppointments int `json:"total_appointments"`
	UpcomingCount     int `json:"upcoming_count"`
}

// PatientDashboard is the read-only aggregate for a patient. Practitioner
// is nil while the patient is unassigned.
type PatientDashboard struct {
	Patient       *PublicProfile       `json:"patient"`
	Practitioner  *PublicProfile       `json:"practitioner"`
	Stats         PatientStats         `json:"stats"`
	Upcoming      []*AppointmentDetail `json:"upcoming_appointments"`
	Recent        []*AppointmentDetail `json:"recent_appointments"`
	Treatments    []Treatment          `json:"treatments"`
	Resources     []*Resource          `json:"resources"`
	Practitioners []*PublicProfile     `json:"practitioners"`
}
