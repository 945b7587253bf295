package forms

import (
	"regexp"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

	// Digits plus +, -, parentheses and spaces, 8-20 characters. Applied by
	// the stricter edit-form variants only.
	phonePattern = regexp.MustCompile(`^[0-9+\-() ]{8,20}$`)
)

// maxAge is the upper bound enforced by the stricter patient edit form.
const maxAge = 120

func genderOptions() []Option {
	return []Option{
		{Value: backend.GenderMale, Label: "Male"},
		{Value: backend.GenderFemale, Label: "Female"},
		{Value: backend.GenderOther, Label: "Other"},
		{Value: backend.GenderPreferNotToSay, Label: "Prefer not to say"},
	}
}

func appointmentTypeOptions() []Option {
	return []Option{
		{Value: string(backend.TypeCheckUp), Label: "Check-up"},
		{Value: string(backend.TypeFollowUp), Label: "Follow-up"},
		{Value: string(backend.TypeConsultation), Label: "Consultation"},
		{Value: string(backend.TypeProcedure), Label: "Procedure"},
		{Value: string(backend.TypeEmergency), Label: "Emergency"},
	}
}

func recordTypeOptions() []Option {
	return []Option{
		{Value: string(backend.RecordCheckup), Label: "Checkup"},
		{Value: string(backend.RecordFollowup), Label: "Follow-up"},
		{Value: string(backend.RecordProcedure), Label: "Procedure"},
		{Value: string(backend.RecordEmergency), Label: "Emergency"},
	}
}

func roleOptions() []Option {
	opts := make([]Option, 0, len(backend.Roles))
	for _, role := range backend.Roles {
		opts = append(opts, Option{Value: string(role), Label: string(role)})
	}
	return opts
}

func statusOptions() []Option {
	opts := make([]Option, 0, len(backend.AppointmentStatuses))
	for _, status := range backend.AppointmentStatuses {
		opts = append(opts, Option{Value: string(status), Label: string(status)})
	}
	return opts
}

// Login is the sign-in form.
func Login() Form {
	return Form{
		Name: "login",
		Fields: []Field{
			{Name: "email", Label: "Email", Type: "email", Placeholder: "admin@hospital.example",
				Rules: Rules{Required: true, Pattern: emailPattern, PatternMessage: "Email is invalid"}},
			{Name: "password", Label: "Password", Type: "password",
				Rules: Rules{Required: true}},
		},
	}
}

// AddPatient is the patient creation form.
func AddPatient() Form {
	return Form{
		Name: "add-patient",
		Fields: []Field{
			{Name: "name", Label: "Name", Placeholder: "John Smith", Rules: Rules{Required: true}},
			{Name: "age", Label: "Age", Type: "number", Placeholder: "45",
				Rules: Rules{Required: true, Positive: true}},
			{Name: "gender", Label: "Gender", Type: "select", Options: genderOptions(),
				Rules: Rules{Required: true}},
			{Name: "email", Label: "Email", Type: "email", Placeholder: "john.smith@example.com",
				Rules: Rules{Required: true, Pattern: emailPattern, PatternMessage: "Email is invalid"}},
			{Name: "phone", Label: "Phone", Placeholder: "(555) 123-4567", Rules: Rules{Required: true}},
			{Name: "address", Label: "Address", Placeholder: "123 Main St, Anytown, USA",
				Rules: Rules{Required: true}},
		},
	}
}

// EditPatient is the stricter patient edit variant: age is bounded and the
// phone shape is enforced.
func EditPatient() Form {
	form := AddPatient()
	form.Name = "edit-patient"
	for i, field := range form.Fields {
		switch field.Name {
		case "age":
			form.Fields[i].Rules.Max = maxAge
		case "phone":
			form.Fields[i].Rules.Pattern = phonePattern
			form.Fields[i].Rules.PatternMessage = "Phone number is invalid"
		}
	}
	return form
}

// AddDoctor is the doctor creation form.
func AddDoctor() Form {
	return Form{
		Name: "add-doctor",
		Fields: []Field{
			{Name: "name", Label: "Name", Placeholder: "Dr. Jane Doe", Rules: Rules{Required: true}},
			{Name: "specialty", Label: "Specialty", Placeholder: "Cardiology", Rules: Rules{Required: true}},
			{Name: "email", Label: "Email", Type: "email", Placeholder: "jane.doe@hospital.example",
				Rules: Rules{Required: true, Pattern: emailPattern, PatternMessage: "Email is invalid"}},
			{Name: "phone", Label: "Phone", Placeholder: "(555) 123-4567", Rules: Rules{Required: true}},
		},
	}
}

// EditDoctor is the stricter doctor edit variant.
func EditDoctor() Form {
	form := AddDoctor()
	form.Name = "edit-doctor"
	for i, field := range form.Fields {
		if field.Name == "phone" {
			form.Fields[i].Rules.Pattern = phonePattern
			form.Fields[i].Rules.PatternMessage = "Phone number is invalid"
		}
	}
	return form
}

// AddAppointment is the appointment creation form.
func AddAppointment() Form {
	return Form{
		Name: "add-appointment",
		Fields: []Field{
			{Name: "patientId", Label: "Patient", Type: "select", Rules: Rules{Required: true}},
			{Name: "doctorId", Label: "Doctor", Type: "select", Rules: Rules{Required: true}},
			{Name: "type", Label: "Appointment type", Type: "select", Options: appointmentTypeOptions(),
				Rules: Rules{Required: true}},
			{Name: "dateTime", Label: "Date", Type: "datetime-local", Rules: Rules{Required: true}},
			{Name: "duration", Label: "Duration", Type: "number", Placeholder: "30",
				Rules: Rules{Required: true, Positive: true}},
			{Name: "location", Label: "Location", Placeholder: "Room 204", Rules: Rules{Required: true}},
			{Name: "notes", Label: "Notes", Type: "textarea"},
		},
	}
}

// EditAppointment additionally exposes the lifecycle status.
func EditAppointment() Form {
	form := AddAppointment()
	form.Name = "edit-appointment"
	form.Fields = append(form.Fields, Field{
		Name: "status", Label: "Status", Type: "select", Options: statusOptions(),
	})
	return form
}

// AddMedicalRecord is the medical record creation form.
func AddMedicalRecord() Form {
	return Form{
		Name: "add-record",
		Fields: []Field{
			{Name: "patientId", Label: "Patient", Type: "select", Rules: Rules{Required: true}},
			{Name: "doctorId", Label: "Doctor", Type: "select", Rules: Rules{Required: true}},
			{Name: "recordType", Label: "Record type", Type: "select", Options: recordTypeOptions(),
				Rules: Rules{Required: true}},
			{Name: "date", Label: "Date", Type: "date"},
			{Name: "description", Label: "Description", Type: "textarea", Rules: Rules{Required: true}},
			{Name: "diagnosis", Label: "Diagnosis", Type: "textarea", Rules: Rules{Required: true}},
			{Name: "treatment", Label: "Treatment", Type: "textarea", Rules: Rules{Required: true}},
			{Name: "notes", Label: "Notes", Type: "textarea"},
		},
	}
}

// EditMedicalRecord reuses the creation rules minus the fixed references.
func EditMedicalRecord() Form {
	form := AddMedicalRecord()
	form.Name = "edit-record"
	fields := form.Fields[:0]
	for _, field := range form.Fields {
		if field.Name == "patientId" || field.Name == "doctorId" {
			continue
		}
		fields = append(fields, field)
	}
	form.Fields = fields
	return form
}

// AddUser is the user creation form. The password is write-only.
func AddUser() Form {
	return Form{
		Name: "add-user",
		Fields: []Field{
			{Name: "name", Label: "Name", Rules: Rules{Required: true}},
			{Name: "email", Label: "Email", Type: "email",
				Rules: Rules{Required: true, Pattern: emailPattern, PatternMessage: "Invalid email format"}},
			{Name: "password", Label: "Password", Type: "password",
				Rules: Rules{Required: true, MinLen: 8}},
			{Name: "role", Label: "Role", Type: "select", Options: roleOptions(),
				Rules: Rules{Required: true}},
		},
	}
}

// EditUser updates profile fields only; passwords go through ChangePassword.
func EditUser() Form {
	return Form{
		Name: "edit-user",
		Fields: []Field{
			{Name: "name", Label: "Name", Rules: Rules{Required: true}},
			{Name: "email", Label: "Email", Type: "email",
				Rules: Rules{Required: true, Pattern: emailPattern, PatternMessage: "Invalid email format"}},
			{Name: "role", Label: "Role", Type: "select", Options: roleOptions(),
				Rules: Rules{Required: true}},
		},
	}
}

// ChangePassword sets a new password with confirmation.
func ChangePassword() Form {
	return Form{
		Name: "change-password",
		Fields: []Field{
			{Name: "newPassword", Label: "New password", Type: "password",
				Rules: Rules{Required: true, MinLen: 8}},
			{Name: "confirmPassword", Label: "Confirm password", Type: "password",
				Rules: Rules{Required: true, Custom: func(value string, values Values) string {
					if value != values.Get("newPassword") {
						return "Passwords do not match"
					}
					return ""
				}}},
		},
	}
}
