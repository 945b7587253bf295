package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
	"github.com/medidesk/hospital-admin-bff/internal/forms"
	"github.com/medidesk/hospital-admin-bff/internal/table"
	"github.com/medidesk/hospital-admin-bff/pkg/logging"
)

// UsersHandler serves the user management pages.
type UsersHandler struct {
	backend *backend.Client
	logger  *logging.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(client *backend.Client, logger *logging.Logger) *UsersHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &UsersHandler{backend: client, logger: logger.Named("users")}
}

func usersTable() table.Table[backend.User] {
	return table.Table[backend.User]{
		ID: func(u backend.User) string { return u.ID },
		Columns: []table.Column[backend.User]{
			{Header: "Name", Key: "name", Sortable: true},
			{Header: "Email", Key: "email", Sortable: true},
			{Header: "Role", Key: "role"},
			{Header: "Status", Key: "isActive", Cell: func(u backend.User) string {
				if u.IsActive {
					return "Active"
				}
				return "Inactive"
			}},
		},
		Actions: []table.Action[backend.User]{
			{Name: "edit", Label: table.Static[backend.User]("Edit"), Icon: "pencil"},
			{Name: "change-password", Label: table.Static[backend.User]("Change Password"), Icon: "key"},
			{
				Name: "toggle-active",
				Label: table.Computed(func(u backend.User) string {
					if u.IsActive {
						return "Deactivate"
					}
					return "Activate"
				}),
				Variant: table.Computed(func(u backend.User) string {
					if u.IsActive {
						return "destructive"
					}
					return "default"
				}),
			},
		},
	}
}

// List renders the user table.
// GET /users
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.backend.ListUsers(r.Context())
	if err != nil {
		respondBackendError(w, err)
		return
	}

	opts := table.ParseOptions(r.URL.Query())
	opts.SearchPlaceholder = "Search users..."
	opts.EmptyMessage = "No users found."
	opts.SearchableKeys = []string{"name", "email", "role"}
	respondData(w, http.StatusOK, map[string]any{
		"table": usersTable().Build(users, opts),
	})
}

// NewForm renders the empty add-user form schema.
// GET /users/new
func (h *UsersHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	respondForm(w, forms.AddUser(), nil, nil)
}

// Create validates and submits a new user.
// POST /users
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	values, err := forms.DecodeValues(r)
	if err != nil {
		decodeError(w)
		return
	}

	form := forms.AddUser()
	if errs := form.Validate(values); len(errs) > 0 {
		respondValidationErrors(w, form, values, errs)
		return
	}

	user, err := h.backend.CreateUser(r.Context(), backend.CreateUserRequest{
		Name:     values.Get("name"),
		Email:    values.Get("email"),
		Password: values.Get("password"),
		Role:     backend.Role(values.Get("role")),
	})
	if err != nil {
		h.logger.Error("create user failed", "error", err)
		submitError(w, form, values, err, "Failed to add user. Please try again.")
		return
	}
	respondData(w, http.StatusCreated, user)
}

// EditForm renders the edit form pre-filled with the user's current values.
// GET /users/{id}/edit
func (h *UsersHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user, err := h.backend.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if backend.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, envelope{Message: "User not found"})
			return
		}
		respondBackendError(w, err)
		return
	}
	respondForm(w, forms.EditUser(), forms.Values{
		"name":  user.Name,
		"email": user.Email,
		"role":  string(user.Role),
	}, nil)
}

// Update validates and submits user profile edits.
// PUT /users/{id}
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	values, err := forms.DecodeValues(r)
	if err != nil {
		decodeError(w)
		return
	}

	form := forms.EditUser()
	if errs := form.Validate(values); len(errs) > 0 {
		respondValidationErrors(w, form, values, errs)
		return
	}

	id := chi.URLParam(r, "id")
	err = h.backend.UpdateUser(r.Context(), id, backend.UpdateUserRequest{
		Name:  values.Get("name"),
		Email: values.Get("email"),
		Role:  backend.Role(values.Get("role")),
	})
	if err != nil {
		h.logger.Error("update user failed", "user_id", id, "error", err)
		submitError(w, form, values, err, "Failed to update user. Please try again.")
		return
	}
	respondMessage(w, http.StatusOK, "User updated")
}

// ChangePassword validates and submits a password change for the user.
// PUT /users/{id}/password
func (h *UsersHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	values, err := forms.DecodeValues(r)
	if err != nil {
		decodeError(w)
		return
	}

	form := forms.ChangePassword()
	if errs := form.Validate(values); len(errs) > 0 {
		respondValidationErrors(w, form, values, errs)
		return
	}

	id := chi.URLParam(r, "id")
	err = h.backend.ChangeUserPassword(r.Context(), id, backend.ChangePasswordRequest{
		NewPassword:     values.Get("newPassword"),
		ConfirmPassword: values.Get("confirmPassword"),
	})
	if err != nil {
		h.logger.Error("change password failed", "user_id", id, "error", err)
		submitError(w, form, values, err, "Failed to change password. Please try again.")
		return
	}
	respondMessage(w, http.StatusOK, "Password changed")
}

// SetActive activates or deactivates a user account.
// PUT /users/{id}/active
func (h *UsersHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsActive *bool `json:"isActive"`
	}
	if err := decodeJSON(r, &req); err != nil || req.IsActive == nil {
		decodeError(w)
		return
	}

	id := chi.URLParam(r, "id")
	if !*req.IsActive {
		if err := h.backend.DeactivateUser(r.Context(), id); err != nil {
			respondBackendError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "User deactivated")
		return
	}
	if err := h.backend.UpdateUser(r.Context(), id, backend.UpdateUserRequest{IsActive: req.IsActive}); err != nil {
		respondBackendError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "User activated")
}
