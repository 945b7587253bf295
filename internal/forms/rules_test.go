package forms

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPatientValues() Values {
	return Values{
		"name":    "John Smith",
		"age":     "45",
		"gender":  "male",
		"email":   "john.smith@example.com",
		"phone":   "(555) 123-4567",
		"address": "123 Main St, Anytown, USA",
	}
}

func TestValidPatientSubmissionHasNoErrors(t *testing.T) {
	errs := AddPatient().Validate(validPatientValues())
	assert.Empty(t, errs)
}

func TestRequiredFieldsReportLabelMessages(t *testing.T) {
	errs := AddPatient().Validate(Values{})

	assert.Equal(t, "Name is required", errs["name"])
	assert.Equal(t, "Age is required", errs["age"])
	assert.Equal(t, "Gender is required", errs["gender"])
	assert.Equal(t, "Email is required", errs["email"])
	assert.Equal(t, "Phone is required", errs["phone"])
	assert.Equal(t, "Address is required", errs["address"])
}

func TestNegativeAgeReportsPositiveNumberMessage(t *testing.T) {
	values := validPatientValues()
	values["age"] = "-5"

	errs := AddPatient().Validate(values)

	require.Len(t, errs, 1)
	assert.Equal(t, "Age must be a positive number", errs["age"])
}

func TestNonNumericAgeReportsPositiveNumberMessage(t *testing.T) {
	values := validPatientValues()
	values["age"] = "forty"

	errs := AddPatient().Validate(values)
	assert.Equal(t, "Age must be a positive number", errs["age"])
}

func TestInvalidEmailMessage(t *testing.T) {
	values := validPatientValues()
	values["email"] = "not-an-email"

	errs := AddPatient().Validate(values)
	assert.Equal(t, "Email is invalid", errs["email"])
}

func TestValidationIsDeterministic(t *testing.T) {
	values := Values{"age": "-5", "email": "bad"}
	form := AddPatient()

	first := form.Validate(values)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, form.Validate(values))
	}
}

func TestWhitespaceOnlyValueFailsRequired(t *testing.T) {
	values := validPatientValues()
	values["name"] = "   "

	errs := AddPatient().Validate(values)
	assert.Equal(t, "Name is required", errs["name"])
}

func TestEditPatientBoundsAge(t *testing.T) {
	values := validPatientValues()
	values["age"] = "121"

	errs := EditPatient().Validate(values)
	assert.Equal(t, "Age must be 120 or less", errs["age"])

	values["age"] = "120"
	assert.Empty(t, EditPatient().Validate(values))
}

func TestEditPatientEnforcesPhonePattern(t *testing.T) {
	values := validPatientValues()
	values["phone"] = "abc"

	errs := EditPatient().Validate(values)
	assert.Equal(t, "Phone number is invalid", errs["phone"])

	// The add form accepts the same value.
	assert.Empty(t, AddPatient().Validate(values))
}

func TestAddFormIsLaxerThanEditForm(t *testing.T) {
	// Any submission the edit form accepts, the add form accepts too.
	cases := []Values{
		validPatientValues(),
		func() Values {
			v := validPatientValues()
			v["age"] = "1"
			return v
		}(),
		func() Values {
			v := validPatientValues()
			v["phone"] = "+1 (555) 123-4567"
			return v
		}(),
	}
	for _, values := range cases {
		if len(EditPatient().Validate(values)) == 0 {
			assert.Empty(t, AddPatient().Validate(values))
		}
	}
}

func TestUserFormEmailMessageDiffers(t *testing.T) {
	errs := AddUser().Validate(Values{
		"name":     "Admin",
		"email":    "nope",
		"password": "longenough",
		"role":     "Admin",
	})
	assert.Equal(t, "Invalid email format", errs["email"])
}

func TestUserPasswordMinimumLength(t *testing.T) {
	errs := AddUser().Validate(Values{
		"name":     "Admin",
		"email":    "admin@hospital.example",
		"password": "short",
		"role":     "Admin",
	})
	assert.Equal(t, "Password must be at least 8 characters", errs["password"])
}

func TestChangePasswordConfirmationMustMatch(t *testing.T) {
	form := ChangePassword()

	errs := form.Validate(Values{
		"newPassword":     "supersecret",
		"confirmPassword": "different",
	})
	assert.Equal(t, "Passwords do not match", errs["confirmPassword"])

	errs = form.Validate(Values{})
	assert.Equal(t, "New password is required", errs["newPassword"])
	assert.Equal(t, "Confirm password is required", errs["confirmPassword"])

	assert.Empty(t, form.Validate(Values{
		"newPassword":     "supersecret",
		"confirmPassword": "supersecret",
	}))
}

func TestAppointmentTypeRequiredMessage(t *testing.T) {
	errs := AddAppointment().Validate(Values{})
	assert.Equal(t, "Appointment type is required", errs["type"])
	assert.Equal(t, "Patient is required", errs["patientId"])
	assert.Equal(t, "Doctor is required", errs["doctorId"])
}

func TestRecordTypeRequiredMessage(t *testing.T) {
	errs := AddMedicalRecord().Validate(Values{})
	assert.Equal(t, "Record type is required", errs["recordType"])
}

func TestOptionalEmptyFieldPassesAllRules(t *testing.T) {
	values := Values{
		"patientId": "p1",
		"doctorId":  "d1",
		"type":      "check-up",
		"dateTime":  "2026-09-01T10:00",
		"duration":  "30",
		"location":  "Room 204",
		// notes omitted
	}
	assert.Empty(t, AddAppointment().Validate(values))
}

func TestSchemaEchoesValuesAndErrors(t *testing.T) {
	form := AddPatient()
	values := Values{"name": "John", "age": "-5"}
	errs := form.Validate(values)

	views := form.Schema(values, errs)
	require.Len(t, views, len(form.Fields))

	byID := map[string]FieldView{}
	for _, view := range views {
		byID[view.ID] = view
	}
	assert.Equal(t, "John", byID["name"].Value)
	assert.Empty(t, byID["name"].Error)
	assert.Equal(t, "-5", byID["age"].Value)
	assert.Equal(t, "Age must be a positive number", byID["age"].Error)
	assert.Equal(t, "text", byID["name"].Type)
	assert.Equal(t, "number", byID["age"].Type)
	assert.True(t, byID["email"].Required)
}

func TestDecodeValues(t *testing.T) {
	req := httptest.NewRequest("POST", "/patients", strings.NewReader(`{"name":"John","age":"45"}`))

	values, err := DecodeValues(req)
	require.NoError(t, err)
	assert.Equal(t, "John", values.Get("name"))
	assert.Equal(t, 45, values.Int("age"))

	req = httptest.NewRequest("POST", "/patients", strings.NewReader(`not json`))
	_, err = DecodeValues(req)
	assert.Error(t, err)
}
