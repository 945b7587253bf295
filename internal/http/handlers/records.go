package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
	"github.com/medidesk/hospital-admin-bff/internal/forms"
	"github.com/medidesk/hospital-admin-bff/internal/table"
	"github.com/medidesk/hospital-admin-bff/pkg/logging"
)

// RecordsHandler serves the medical record pages.
type RecordsHandler struct {
	backend *backend.Client
	logger  *logging.Logger
}

// NewRecordsHandler creates a new medical records handler.
func NewRecordsHandler(client *backend.Client, logger *logging.Logger) *RecordsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &RecordsHandler{backend: client, logger: logger.Named("records")}
}

type recordRow struct {
	ID          string `json:"id"`
	Patient     string `json:"patient"`
	Doctor      string `json:"doctor"`
	Date        string `json:"date"`
	RecordType  string `json:"recordType"`
	Description string `json:"description"`
}

func recordsTable() table.Table[recordRow] {
	return table.Table[recordRow]{
		ID: func(rr recordRow) string { return rr.ID },
		Columns: []table.Column[recordRow]{
			{Header: "Patient", Key: "patient", Sortable: true},
			{Header: "Doctor", Key: "doctor", Sortable: true},
			{Header: "Date", Key: "date", Sortable: true},
			{Header: "Type", Key: "recordType"},
			{Header: "Description", Key: "description"},
		},
		Actions: []table.Action[recordRow]{
			{Name: "view", Label: table.Static[recordRow]("View Details"), Icon: "eye"},
			{Name: "edit", Label: table.Static[recordRow]("Edit"), Icon: "pencil"},
			{Name: "delete", Label: table.Static[recordRow]("Delete"), Icon: "trash",
				Variant: table.Static[recordRow]("destructive")},
		},
	}
}

// List renders the medical record table with patient and doctor names joined
// in from their directories.
// GET /records
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		records  []backend.MedicalRecord
		patients []backend.Patient
		doctors  []backend.Doctor
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		records, err = h.backend.ListMedicalRecords(ctx)
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

	rows := make([]recordRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, recordRow{
			ID:          rec.ID,
			Patient:     nameOr(patientNames[rec.PatientID], "Unknown patient"),
			Doctor:      nameOr(doctorNames[rec.DoctorID], "Unknown doctor"),
			Date:        rec.Date,
			RecordType:  string(rec.RecordType),
			Description: rec.Description,
		})
	}

	opts := table.ParseOptions(r.URL.Query())
	opts.SearchPlaceholder = "Search records..."
	opts.EmptyMessage = "No medical records found."
	respondData(w, http.StatusOK, map[string]any{
		"table": recordsTable().Build(rows, opts),
	})
}

// Detail renders one medical record.
// GET /records/{id}
func (h *RecordsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	record, err := h.backend.GetMedicalRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "Medical record not found"})
			return
		}
		respondBackendError(w, err)
		return
	}
	respondData(w, http.StatusOK, record)
}

// NewForm renders the empty add-record schema with patient and doctor options.
// GET /records/new
func (h *RecordsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.recordForm(r, forms.AddMedicalRecord())
	if err != nil {
		respondBackendError(w, err)
		return
	}
	respondForm(w, form, nil, nil)
}

// Create validates and submits a new medical record.
// POST /records
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	values, err := forms.DecodeValues(r)
	if err != nil {
		decodeError(w)
		return
	}

	form := forms.AddMedicalRecord()
	if errs := form.Validate(values); len(errs) > 0 {
		respondValidationErrors(w, form, values, errs)
		return
	}

	record, err := h.backend.CreateMedicalRecord(r.Context(), backend.CreateMedicalRecordRequest{
		PatientID:   values.Get("patientId"),
		DoctorID:    values.Get("doctorId"),
		Date:        values.Get("date"),
		RecordType:  backend.MedicalRecordType(values.Get("recordType")),
		Description: values.Get("description"),
		Diagnosis:   values.Get("diagnosis"),
		Treatment:   values.Get("treatment"),
		Notes:       values.Get("notes"),
	})
	if err != nil {
		h.logger.Error("create medical record failed", "error", err)
		submitError(w, form, values, err, "Failed to add medical record. Please try again.")
		return
	}
	respondData(w, http.StatusCreated, record)
}

// EditForm renders the edit form pre-filled with the record's current values.
// GET /records/{id}/edit
func (h *RecordsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	record, err := h.backend.GetMedicalRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "Medical record not found"})
			return
		}
		respondBackendError(w, err)
		return
	}
	respondForm(w, forms.EditMedicalRecord(), forms.Values{
		"recordType":  string(record.RecordType),
		"date":        record.Date,
		"description": record.Description,
		"diagnosis":   record.Diagnosis,
		"treatment":   record.Treatment,
		"notes":       record.Notes,
	}, nil)
}

// Update validates and submits record edits.
// PUT /records/{id}
func (h *RecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	values, err := forms.DecodeValues(r)
	if err != nil {
		decodeError(w)
		return
	}

	form := forms.EditMedicalRecord()
	if errs := form.Validate(values); len(errs) > 0 {
		respondValidationErrors(w, form, values, errs)
		return
	}

	id := chi.URLParam(r, "id")
	err = h.backend.UpdateMedicalRecord(r.Context(), id, backend.UpdateMedicalRecordRequest{
		RecordType:  backend.MedicalRecordType(values.Get("recordType")),
		Description: values.Get("description"),
		Diagnosis:   values.Get("diagnosis"),
		Treatment:   values.Get("treatment"),
		Notes:       values.Get("notes"),
	})
	if err != nil {
		h.logger.Error("update medical record failed", "record_id", id, "error", err)
		submitError(w, form, values, err, "Failed to update medical record. Please try again.")
		return
	}
	respondMessage(w, http.StatusOK, "Medical record updated")
}

// Delete removes a medical record.
// DELETE /records/{id}
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.backend.DeleteMedicalRecord(r.Context(), id); err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "Medical record not found"})
			return
		}
		respondBackendError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Medical record deleted")
}

func (h *RecordsHandler) recordForm(r *http.Request, form forms.Form) (forms.Form, error) {
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
