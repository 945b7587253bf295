package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
	"github.com/medidesk/hospital-admin-bff/internal/forms"
	"github.com/medidesk/hospital-admin-bff/internal/table"
	"github.com/medidesk/hospital-admin-bff/pkg/logging"
)

// AppointmentsHandler serves the appointment scheduling pages, including the
// status lifecycle endpoint.
type AppointmentsHandler struct {
	backend *backend.Client
	logger  *logging.Logger
}

// NewAppointmentsHandler creates a new appointments handler.
func NewAppointmentsHandler(client *backend.Client, logger *logging.Logger) *AppointmentsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AppointmentsHandler{backend: client, logger: logger.Named("appointments")}
}

// appointmentRow denormalizes an appointment with its patient and doctor
// names for display.
type appointmentRow struct {
	ID       string `json:"id"`
	Patient  string `json:"patient"`
	Doctor   string `json:"doctor"`
	DateTime string `json:"dateTime"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Location string `json:"location"`
}

func appointmentsTable() table.Table[appointmentRow] {
	return table.Table[appointmentRow]{
		ID: func(a appointmentRow) string { return a.ID },
		Columns: []table.Column[appointmentRow]{
			{Header: "Patient", Key: "patient", Sortable: true},
			{Header: "Doctor", Key: "doctor", Sortable: true},
			{Header: "Date", Key: "dateTime", Sortable: true},
			{Header: "Type", Key: "type"},
			{Header: "Status", Key: "status"},
			{Header: "Location", Key: "location"},
		},
		Actions: []table.Action[appointmentRow]{
			{Name: "view", Label: table.Static[appointmentRow]("View Details"), Icon: "eye"},
			{Name: "edit", Label: table.Static[appointmentRow]("Edit"), Icon: "pencil"},
			{Name: "delete", Label: table.Static[appointmentRow]("Delete"), Icon: "trash",
				Variant: table.Static[appointmentRow]("destructive")},
		},
	}
}

// List renders the appointment table. Patient and doctor names are joined in
// from their directories, fetched concurrently with the appointment list.
// GET /appointments
func (h *AppointmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		appointments []backend.Appointment
		patients     []backend.Patient
		doctors      []backend.Doctor
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		appointments, err = h.backend.ListAppointments(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		patients, err = h.backend.ListPatients(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		doctors, err = h.backend.ListDoctors(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondBackendError(w, err)
		return
	}

	patientNames := make(map[string]string, len(patients))
	for _, p := range patients {
		patientNames[p.ID] = p.Name
	}
	doctorNames := make(map[string]string, len(doctors))
	for _, d := range doctors {
		doctorNames[d.ID] = d.Name
	}

	rows := make([]appointmentRow, 0, len(appointments))
	for _, a := range appointments {
		rows = append(rows, appointmentRow{
			ID:       a.ID,
			Patient:  nameOr(patientNames[a.PatientID], "Unknown patient"),
			Doctor:   nameOr(doctorNames[a.DoctorID], "Unknown doctor"),
			DateTime: a.DateTime,
			Type:     string(a.Type),
			Status:   string(a.Status),
			Location: a.Location,
		})
	}

	opts := table.ParseOptions(r.URL.Query())
	opts.SearchPlaceholder = "Search appointments..."
	opts.EmptyMessage = "No appointments found."
	respondData(w, http.StatusOK, map[string]any{
		"table": appointmentsTable().Build(rows, opts),
	})
}

// statusAction describes one lifecycle transition button. The current status
// renders disabled so clicking it is a no-op.
type statusAction struct {
	Status   backend.AppointmentStatus `json:"status"`
	Label    string                    `json:"label"`
	Disabled bool                      `json:"disabled"`
	Variant  string                    `json:"variant,omitempty"`
}

func statusActions(current backend.AppointmentStatus) []statusAction {
	actions := make([]statusAction, 0, len(backend.AppointmentStatuses))
	for _, status := range backend.AppointmentStatuses {
		action := statusAction{
			Status:   status,
			Label:    "Mark as " + string(status),
			Disabled: status == current,
		}
		if status == backend.StatusCancelled {
			action.Variant = "destructive"
		}
		actions = append(actions, action)
	}
	return actions
}

// appointmentDetail is the detail page payload. Patient and doctor are nil
// when their lookups fail; the page still renders.
type appointmentDetail struct {
	Appointment   backend.Appointment `json:"appointment"`
	Patient       *backend.Patient    `json:"patient,omitempty"`
	Doctor        *backend.Doctor     `json:"doctor,omitempty"`
	StatusActions []statusAction      `json:"statusActions"`
}

// Detail renders an appointment with its patient and doctor, fetched in
// parallel. Related lookups are best-effort: a missing patient or doctor
// degrades to an empty panel rather than failing the page.
// GET /appointments/{id}
func (h *AppointmentsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.backend.GetAppointment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "Appointment not found"})
			return
		}
		respondBackendError(w, err)
		return
	}

	detail := appointmentDetail{
		Appointment:   *appointment,
		StatusActions: statusActions(appointment.Status),
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		patient, err := h.backend.GetPatient(ctx, appointment.PatientID)
		if err != nil {
			h.logger.Warn("appointment patient lookup failed",
				"appointment_id", appointment.ID, "error", err)
			return nil
		}
		detail.Patient = patient
		return nil
	})
	g.Go(func() error {
		doctor, err := h.backend.GetDoctor(ctx, appointment.DoctorID)
		if err != nil {
			h.logger.Warn("appointment doctor lookup failed",
				"appointment_id", appointment.ID, "error", err)
			return nil
		}
		detail.Doctor = doctor
		return nil
	})
	_ = g.Wait()

	respondData(w, http.StatusOK, detail)
}

// NewForm renders the empty add-appointment schema with patient and doctor
// options resolved from their directories.
// GET /appointments/new
func (h *AppointmentsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.appointmentForm(r, forms.AddAppointment())
	if err != nil {
		respondBackendError(w, err)
		return
	}
	respondForm(w, form, nil, nil)
}

// Create validates and submits a new appointment.
// POST /appointments
func (h *AppointmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	values, err := forms.DecodeValues(r)
	if err != nil {
		decodeError(w)
		return
	}

	form := forms.AddAppointment()
	if errs := form.Validate(values); len(errs) > 0 {
		respondValidationErrors(w, form, values, errs)
		return
	}

	appointment, err := h.backend.CreateAppointment(r.Context(), backend.CreateAppointmentRequest{
		PatientID: values.Get("patientId"),
		DoctorID:  values.Get("doctorId"),
		Type:      backend.AppointmentType(values.Get("type")),
		DateTime:  values.Get("dateTime"),
		Duration:  values.Int("duration"),
		Location:  values.Get("location"),
		Notes:     values.Get("notes"),
	})
	if err != nil {
		h.logger.Error("create appointment failed", "error", err)
		submitError(w, form, values, err, "Failed to add appointment. Please try again.")
		return
	}
	respondData(w, http.StatusCreated, appointment)
}

// EditForm renders the edit form pre-filled with the appointment's values.
// GET /appointments/{id}/edit
func (h *AppointmentsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.backend.GetAppointment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "Appointment not found"})
			return
		}
		respondBackendError(w, err)
		return
	}

	form, err := h.appointmentForm(r, forms.EditAppointment())
	if err != nil {
		respondBackendError(w, err)
		return
	}
	respondForm(w, form, forms.Values{
		"patientId": appointment.PatientID,
		"doctorId":  appointment.DoctorID,
		"type":      string(appointment.Type),
		"dateTime":  appointment.DateTime,
		"duration":  strconv.Itoa(appointment.Duration),
		"location":  appointment.Location,
		"notes":     appointment.Notes,
		"status":    string(appointment.Status),
	}, nil)
}

// Update validates and submits appointment edits.
// PUT /appointments/{id}
func (h *AppointmentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	values, err := forms.DecodeValues(r)
	if err != nil {
		decodeError(w)
		return
	}

	form := forms.EditAppointment()
	if errs := form.Validate(values); len(errs) > 0 {
		respondValidationErrors(w, form, values, errs)
		return
	}

	id := chi.URLParam(r, "id")
	err = h.backend.UpdateAppointment(r.Context(), id, backend.UpdateAppointmentRequest{
		PatientID: values.Get("patientId"),
		DoctorID:  values.Get("doctorId"),
		Type:      backend.AppointmentType(values.Get("type")),
		DateTime:  values.Get("dateTime"),
		Duration:  values.Int("duration"),
		Status:    backend.AppointmentStatus(values.Get("status")),
		Location:  values.Get("location"),
		Notes:     values.Get("notes"),
	})
	if err != nil {
		h.logger.Error("update appointment failed", "appointment_id", id, "error", err)
		submitError(w, form, values, err, "Failed to update appointment. Please try again.")
		return
	}
	respondMessage(w, http.StatusOK, "Appointment updated")
}

// UpdateStatus transitions the appointment lifecycle. Selecting the current
// status is a no-op; any other selection issues exactly one status update and
// refetches the appointment so the response reflects the stored state.
// PUT /appointments/{id}/status
func (h *AppointmentsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status backend.AppointmentStatus `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		decodeError(w)
		return
	}
	if !req.Status.Valid() {
		badRequest(w, "Invalid appointment status")
		return
	}

	id := chi.URLParam(r, "id")
	appointment, err := h.backend.GetAppointment(r.Context(), id)
	if err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "Appointment not found"})
			return
		}
		respondBackendError(w, err)
		return
	}

	if appointment.Status == req.Status {
		respondData(w, http.StatusOK, appointmentDetail{
			Appointment:   *appointment,
			StatusActions: statusActions(appointment.Status),
		})
		return
	}

	if err := h.backend.UpdateAppointmentStatus(r.Context(), id, req.Status); err != nil {
		h.logger.Error("update appointment status failed",
			"appointment_id", id, "status", req.Status, "error", err)
		respondBackendError(w, err)
		return
	}

	updated, err := h.backend.GetAppointment(r.Context(), id)
	if err != nil {
		respondBackendError(w, err)
		return
	}
	h.logger.Info("appointment status updated",
		"appointment_id", id, "from", appointment.Status, "to", updated.Status)
	respondData(w, http.StatusOK, appointmentDetail{
		Appointment:   *updated,
		StatusActions: statusActions(updated.Status),
	})
}

// Delete removes an appointment.
// DELETE /appointments/{id}
func (h *AppointmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.backend.DeleteAppointment(r.Context(), id); err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "Appointment not found"})
			return
		}
		respondBackendError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Appointment deleted")
}

// appointmentForm fills the patient and doctor select options from their
// directories, fetched concurrently.
func (h *AppointmentsHandler) appointmentForm(r *http.Request, form forms.Form) (forms.Form, error) {
	var (
		patients []backend.Patient
		doctors  []backend.Doctor
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		patients, err = h.backend.ListPatients(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		doctors, err = h.backend.ListDoctors(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return forms.Form{}, err
	}

	patientOptions := make([]forms.Option, 0, len(patients))
	for _, p := range patients {
		patientOptions = append(patientOptions, forms.Option{Value: p.ID, Label: p.Name})
	}
	doctorOptions := make([]forms.Option, 0, len(doctors))
	for _, d := range doctors {
		doctorOptions = append(doctorOptions, forms.Option{Value: d.ID, Label: d.Name})
	}

	for i, field := range form.Fields {
		switch field.Name {
		case "patientId":
			form.Fields[i].Options = patientOptions
		case "doctorId":
			form.Fields[i].Options = doctorOptions
		}
	}
	return form, nil
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
