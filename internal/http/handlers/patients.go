package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
	"github.com/medidesk/hospital-admin-bff/internal/forms"
	"github.com/medidesk/hospital-admin-bff/internal/table"
	"github.com/medidesk/hospital-admin-bff/pkg/logging"
)

// PatientsHandler serves the patient directory pages.
type PatientsHandler struct {
	backend *backend.Client
	logger  *logging.Logger
}

// NewPatientsHandler creates a new patients handler.
func NewPatientsHandler(client *backend.Client, logger *logging.Logger) *PatientsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &PatientsHandler{backend: client, logger: logger.Named("patients")}
}

func patientsTable() table.Table[backend.Patient] {
	return table.Table[backend.Patient]{
		ID: func(p backend.Patient) string { return p.ID },
		Columns: []table.Column[backend.Patient]{
			{Header: "Name", Key: "name", Sortable: true},
			{Header: "Age", Key: "age", Sortable: true},
			{Header: "Gender", Key: "gender"},
			{Header: "Email", Key: "email"},
			{Header: "Phone", Key: "phone"},
		},
		Actions: []table.Action[backend.Patient]{
			{Name: "view", Label: table.Static[backend.Patient]("View Details"), Icon: "eye"},
			{Name: "edit", Label: table.Static[backend.Patient]("Edit"), Icon: "pencil"},
			{Name: "delete", Label: table.Static[backend.Patient]("Delete"), Icon: "trash",
				Variant: table.Static[backend.Patient]("destructive")},
		},
	}
}

// List renders the patient table.
// GET /patients
func (h *PatientsHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.backend.ListPatients(r.Context())
	if err != nil {
		respondBackendError(w, err)
		return
	}

	opts := table.ParseOptions(r.URL.Query())
	opts.SearchPlaceholder = "Search patients..."
	opts.EmptyMessage = "No patients found."
	respondData(w, http.StatusOK, map[string]any{
		"table": patientsTable().Build(patients, opts),
	})
}

// Detail renders a patient with recent appointments and medical history.
// GET /patients/{id}
func (h *PatientsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.backend.GetPatientDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "Patient not found"})
			return
		}
		respondBackendError(w, err)
		return
	}
	respondData(w, http.StatusOK, detail)
}

// NewForm renders the empty add-patient form schema.
// GET /patients/new
func (h *PatientsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	respondForm(w, forms.AddPatient(), nil, nil)
}

// Create validates and submits a new patient.
// POST /patients
func (h *PatientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	values, err := forms.DecodeValues(r)
	if err != nil {
		decodeError(w)
		return
	}

	form := forms.AddPatient()
	if errs := form.Validate(values); len(errs) > 0 {
		respondValidationErrors(w, form, values, errs)
		return
	}

	patient, err := h.backend.CreatePatient(r.Context(), backend.CreatePatientRequest{
		Name:    values.Get("name"),
		Age:     values.Int("age"),
		Gender:  values.Get("gender"),
		Email:   values.Get("email"),
		Phone:   values.Get("phone"),
		Address: values.Get("address"),
	})
	if err != nil {
		h.logger.Error("create patient failed", "error", err)
		submitError(w, form, values, err, "Failed to add patient. Please try again.")
		return
	}
	respondData(w, http.StatusCreated, patient)
}

// EditForm renders the edit form pre-filled with the patient's current values.
// GET /patients/{id}/edit
func (h *PatientsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	patient, err := h.backend.GetPatient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "Patient not found"})
			return
		}
		respondBackendError(w, err)
		return
	}
	respondForm(w, forms.EditPatient(), patientValues(patient), nil)
}

// Update validates and submits patient edits.
// PUT /patients/{id}
func (h *PatientsHandler) Update(w http.ResponseWriter, r *http.Request) {
	values, err := forms.DecodeValues(r)
	if err != nil {
		decodeError(w)
		return
	}

	form := forms.EditPatient()
	if errs := form.Validate(values); len(errs) > 0 {
		respondValidationErrors(w, form, values, errs)
		return
	}

	id := chi.URLParam(r, "id")
	err = h.backend.UpdatePatient(r.Context(), id, backend.UpdatePatientRequest{
		Name:    values.Get("name"),
		Age:     values.Int("age"),
		Gender:  values.Get("gender"),
		Email:   values.Get("email"),
		Phone:   values.Get("phone"),
		Address: values.Get("address"),
	})
	if err != nil {
		h.logger.Error("update patient failed", "patient_id", id, "error", err)
		submitError(w, form, values, err, "Failed to update patient. Please try again.")
		return
	}
	respondMessage(w, http.StatusOK, "Patient updated")
}

// Delete removes a patient.
// DELETE /patients/{id}
func (h *PatientsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.backend.DeletePatient(r.Context(), id); err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "Patient not found"})
			return
		}
		respondBackendError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Patient deleted")
}

func patientValues(p *backend.Patient) forms.Values {
	return forms.Values{
		"name":    p.Name,
		"age":     strconv.Itoa(p.Age),
		"gender":  p.Gender,
		"email":   p.Email,
		"phone":   p.Phone,
		"address": p.Address,
	}
}
