package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
	"github.com/medidesk/hospital-admin-bff/internal/forms"
	"github.com/medidesk/hospital-admin-bff/internal/table"
	"github.com/medidesk/hospital-admin-bff/pkg/logging"
)

// DoctorsHandler serves the doctor directory pages.
type DoctorsHandler struct {
	backend *backend.Client
	logger  *logging.Logger
}

// NewDoctorsHandler creates a new doctors handler.
func NewDoctorsHandler(client *backend.Client, logger *logging.Logger) *DoctorsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DoctorsHandler{backend: client, logger: logger.Named("doctors")}
}

func doctorsTable() table.Table[backend.Doctor] {
	return table.Table[backend.Doctor]{
		ID: func(d backend.Doctor) string { return d.ID },
		Columns: []table.Column[backend.Doctor]{
			{Header: "Name", Key: "name", Sortable: true},
			{Header: "Specialty", Key: "specialty", Sortable: true},
			{Header: "Email", Key: "email"},
			{Header: "Phone", Key: "phone"},
		},
		Actions: []table.Action[backend.Doctor]{
			{Name: "view", Label: table.Static[backend.Doctor]("View Details"), Icon: "eye"},
			{Name: "edit", Label: table.Static[backend.Doctor]("Edit"), Icon: "pencil"},
			{Name: "delete", Label: table.Static[backend.Doctor]("Delete"), Icon: "trash",
				Variant: table.Static[backend.Doctor]("destructive")},
		},
	}
}

// List renders the doctor table.
// GET /doctors
func (h *DoctorsHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.backend.ListDoctors(r.Context())
	if err != nil {
		respondBackendError(w, err)
		return
	}

	opts := table.ParseOptions(r.URL.Query())
	opts.SearchPlaceholder = "Search doctors..."
	opts.EmptyMessage = "No doctors found."
	respondData(w, http.StatusOK, map[string]any{
		"table": doctorsTable().Build(doctors, opts),
	})
}

// Detail renders a doctor with their recent patients.
// GET /doctors/{id}
func (h *DoctorsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.backend.GetDoctorDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "Doctor not found"})
			return
		}
		respondBackendError(w, err)
		return
	}
	respondData(w, http.StatusOK, detail)
}

// NewForm renders the empty add-doctor form schema.
// GET /doctors/new
func (h *DoctorsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	respondForm(w, forms.AddDoctor(), nil, nil)
}

// Create validates and submits a new doctor.
// POST /doctors
func (h *DoctorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	values, err := forms.DecodeValues(r)
	if err != nil {
		decodeError(w)
		return
	}

	form := forms.AddDoctor()
	if errs := form.Validate(values); len(errs) > 0 {
		respondValidationErrors(w, form, values, errs)
		return
	}

	doctor, err := h.backend.CreateDoctor(r.Context(), backend.CreateDoctorRequest{
		Name:      values.Get("name"),
		Specialty: values.Get("specialty"),
		Email:     values.Get("email"),
		Phone:     values.Get("phone"),
	})
	if err != nil {
		h.logger.Error("create doctor failed", "error", err)
		submitError(w, form, values, err, "Failed to add doctor. Please try again.")
		return
	}
	respondData(w, http.StatusCreated, doctor)
}

// EditForm renders the edit form pre-filled with the doctor's current values.
// GET /doctors/{id}/edit
func (h *DoctorsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.backend.GetDoctor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "Doctor not found"})
			return
		}
		respondBackendError(w, err)
		return
	}
	respondForm(w, forms.EditDoctor(), forms.Values{
		"name":      doctor.Name,
		"specialty": doctor.Specialty,
		"email":     doctor.Email,
		"phone":     doctor.Phone,
	}, nil)
}

// Update validates and submits doctor edits.
// PUT /doctors/{id}
func (h *DoctorsHandler) Update(w http.ResponseWriter, r *http.Request) {
	values, err := forms.DecodeValues(r)
	if err != nil {
		decodeError(w)
		return
	}

	form := forms.EditDoctor()
	if errs := form.Validate(values); len(errs) > 0 {
		respondValidationErrors(w, form, values, errs)
		return
	}

	id := chi.URLParam(r, "id")
	err = h.backend.UpdateDoctor(r.Context(), id, backend.UpdateDoctorRequest{
		Name:      values.Get("name"),
		Specialty: values.Get("specialty"),
		Email:     values.Get("email"),
		Phone:     values.Get("phone"),
	})
	if err != nil {
		h.logger.Error("update doctor failed", "doctor_id", id, "error", err)
		submitError(w, form, values, err, "Failed to update doctor. Please try again.")
		return
	}
	respondMessage(w, http.StatusOK, "Doctor updated")
}

// Delete removes a doctor.
// DELETE /doctors/{id}
func (h *DoctorsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.backend.DeleteDoctor(r.Context(), id); err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "Doctor not found"})
			return
		}
		respondBackendError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Doctor deleted")
}
