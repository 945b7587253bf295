package backend

// Gender values accepted by the backend for patients.
const (
	GenderMale           = "male"
	GenderFemale         = "female"
	GenderOther          = "other"
	GenderPreferNotToSay = "prefer-not-to-say"
)

// Patient is a patient record owned by the upstream backend.
type Patient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	LastVisit string `json:"lastVisit"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CreatePatientRequest is the payload for POST /patients.
type CreatePatientRequest struct {
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	LastVisit string `json:"lastVisit,omitempty"`
}

// UpdatePatientRequest is the payload for PUT /patients/{id}.
type UpdatePatientRequest struct {
	Name    string `json:"name,omitempty"`
	Age     int    `json:"age,omitempty"`
	Gender  string `json:"gender,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// PatientDetailResponse aggregates a patient with related records, assembled
// server-side by the backend.
type PatientDetailResponse struct {
	Patient            Patient         `json:"patient"`
	RecentAppointments []Appointment   `json:"recentAppointments"`
	MedicalHistory     []MedicalRecord `json:"medicalHistory"`
}

// TimeSlot is one recurring availability window for a doctor.
type TimeSlot struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0-6, Sunday-Saturday
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Doctor is a doctor record owned by the upstream backend.
type Doctor struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Specialty    string     `json:"specialty"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Availability []TimeSlot `json:"availability"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

// CreateDoctorRequest is the payload for POST /doctors.
type CreateDoctorRequest struct {
	Name         string     `json:"name"`
	Specialty    string     `json:"specialty"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Availability []TimeSlot `json:"availability,omitempty"`
}

// UpdateDoctorRequest is the payload for PUT /doctors/{id}.
type UpdateDoctorRequest struct {
	Name         string     `json:"name,omitempty"`
	Specialty    string     `json:"specialty,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Availability []TimeSlot `json:"availability,omitempty"`
}

// DoctorDetailResponse aggregates a doctor with their recent patients.
type DoctorDetailResponse struct {
	Doctor         Doctor    `json:"doctor"`
	RecentPatients []Patient `json:"recentPatients"`
}

// AppointmentStatus is the finite appointment lifecycle state.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// AppointmentStatuses lists every lifecycle state in display order.
var AppointmentStatuses = []AppointmentStatus{
	StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled,
}

// Valid reports whether s is a known lifecycle state.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions should be offered.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// AppointmentType classifies an appointment.
type AppointmentType string

const (
	TypeCheckUp      AppointmentType = "check-up"
	TypeFollowUp     AppointmentType = "follow-up"
	TypeConsultation AppointmentType = "consultation"
	TypeProcedure    AppointmentType = "procedure"
	TypeEmergency    AppointmentType = "emergency"
)

// Appointment is an appointment record owned by the upstream backend.
type Appointment struct {
	ID             string            `json:"id"`
	PatientID      string            `json:"patientId"`
	DoctorID       string            `json:"doctorId"`
	Type           AppointmentType   `json:"type"`
	DateTime       string            `json:"dateTime"`
	Duration       int               `json:"duration"` // minutes
	Status         AppointmentStatus `json:"status"`
	Location       string            `json:"location"`
	Notes          string            `json:"notes,omitempty"`
	PatientHistory string            `json:"patientHistory,omitempty"`
	CreatedAt      string            `json:"createdAt"`
	UpdatedAt      string            `json:"updatedAt"`
}

// CreateAppointmentRequest is the payload for POST /appointments.
type CreateAppointmentRequest struct {
	PatientID      string          `json:"patientId"`
	DoctorID       string          `json:"doctorId"`
	Type           AppointmentType `json:"type"`
	DateTime       string          `json:"dateTime"`
	Duration       int             `json:"duration"`
	Location       string          `json:"location"`
	Notes          string          `json:"notes,omitempty"`
	PatientHistory string          `json:"patientHistory,omitempty"`
}

// UpdateAppointmentRequest is the payload for PUT /appointments/{id}.
type UpdateAppointmentRequest struct {
	PatientID string            `json:"patientId,omitempty"`
	DoctorID  string            `json:"doctorId,omitempty"`
	Type      AppointmentType   `json:"type,omitempty"`
	DateTime  string            `json:"dateTime,omitempty"`
	Duration  int               `json:"duration,omitempty"`
	Status    AppointmentStatus `json:"status,omitempty"`
	Location  string            `json:"location,omitempty"`
	Notes     string            `json:"notes,omitempty"`
}

// AppointmentDetailResponse aggregates an appointment with its patient and
// most recent medical record.
type AppointmentDetailResponse struct {
	Appointment Appointment    `json:"appointment"`
	Patient     *Patient       `json:"patient,omitempty"`
	LastRecord  *MedicalRecord `json:"lastRecord,omitempty"`
}

// MedicalRecordType classifies a medical record entry.
type MedicalRecordType string

const (
	RecordCheckup   MedicalRecordType = "checkup"
	RecordFollowup  MedicalRecordType = "followup"
	RecordProcedure MedicalRecordType = "procedure"
	RecordEmergency MedicalRecordType = "emergency"
)

// MedicalRecord is a medical record owned by the upstream backend.
type MedicalRecord struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patientId"`
	DoctorID    string            `json:"doctorId"`
	Date        string            `json:"date"`
	RecordType  MedicalRecordType `json:"recordType"`
	Description string            `json:"description"`
	Diagnosis   string            `json:"diagnosis"`
	Treatment   string            `json:"treatment"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

// CreateMedicalRecordRequest is the payload for POST /records.
type CreateMedicalRecordRequest struct {
	PatientID   string            `json:"patientId"`
	DoctorID    string            `json:"doctorId"`
	Date        string            `json:"date,omitempty"`
	RecordType  MedicalRecordType `json:"recordType"`
	Description string            `json:"description"`
	Diagnosis   string            `json:"diagnosis"`
	Treatment   string            `json:"treatment"`
	Notes       string            `json:"notes,omitempty"`
}

// UpdateMedicalRecordRequest is the payload for PUT /records/{id}.
type UpdateMedicalRecordRequest struct {
	RecordType  MedicalRecordType `json:"recordType,omitempty"`
	Description string            `json:"description,omitempty"`
	Diagnosis   string            `json:"diagnosis,omitempty"`
	Treatment   string            `json:"treatment,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

// Role is a dashboard user role.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleDoctor       Role = "Doctor"
	RoleNurse        Role = "Nurse"
	RoleReceptionist Role = "Receptionist"
	RoleManagement   Role = "Management"
)

// Roles lists every assignable role in display order.
var Roles = []Role{RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist, RoleManagement}

// User is a dashboard user account. The password is write-only and never
// round-tripped by the backend.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
}

// UpdateUserRequest is the payload for PUT /users/{id}.
type UpdateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// ChangePasswordRequest is the payload for PUT /users/{id}/password.
type ChangePasswordRequest struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Activity is a backend-generated audit trail entry. Read-only.
type Activity struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // e.g. "APPOINTMENT", "MEDICAL_RECORD"
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// DashboardStats holds the aggregate counters rendered on the landing page.
type DashboardStats struct {
	PatientsCount       int `json:"patientsCount"`
	DoctorsCount        int `json:"doctorsCount"`
	AppointmentsCount   int `json:"appointmentsCount"`
	MedicalRecordsCount int `json:"medicalRecordsCount"`
}

// UpcomingAppointment is a denormalized appointment row for the dashboard.
type UpcomingAppointment struct {
	ID          string `json:"id"`
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
	Date        string `json:"date"`
	Status      string `json:"status"`
}

// DashboardResponse is the aggregate payload of GET /dashboard.
type DashboardResponse struct {
	Stats                DashboardStats        `json:"stats"`
	RecentActivities     []Activity            `json:"recentActivities"`
	UpcomingAppointments []UpcomingAppointment `json:"upcomingAppointments"`
}

// AuthResponse is the payload of POST /auth/login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
