package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/rahulnair-dev/event-platform/internal/model"
	"github.com/rahulnair-dev/event-platform/internal/service"
)

// allowedProofExtensions are the file types accepted for id-proof uploads.
var allowedProofExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".pdf": true,
}

// UserHandler serves profiles, user administration, and the
// manager-upgrade workflow.
type UserHandler struct {
	users     *service.UserService
	uploadDir string
}

// NewUserHandler constructs a UserHandler. Uploaded id proofs are stored
// under uploadDir/id_proofs.
func NewUserHandler(users *service.UserService, uploadDir string) *UserHandler {
	return &UserHandler{users: users, uploadDir: uploadDir}
}

// List handles GET /api/v1/users. Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	skip, limit := pagination(r)
	users, err := h.users.List(r.Context(), p, skip, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	user, err := h.users.Get(r.Context(), p.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateMe handles PUT /api/v1/users/me, a partial profile update.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)

	var req model.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), p, req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// RequestUpgrade handles POST /api/v1/users/request-upgrade
func (h *UserHandler) RequestUpgrade(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)

	var req model.UpgradeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.RequestUpgrade(r.Context(), p, req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// MyManagerRequest handles GET /api/v1/users/my-manager-request
func (h *UserHandler) MyManagerRequest(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	user, err := h.users.MyManagerRequest(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// PendingManagers handles GET /api/v1/users/pending-managers. Admin only.
func (h *UserHandler) PendingManagers(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	users, err := h.users.PendingManagers(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// ApproveManager handles PUT /api/v1/users/{id}/approve. Admin only.
func (h *UserHandler) ApproveManager(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req model.DecisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.ApproveManager(r.Context(), p, id, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// RejectManager handles PUT /api/v1/users/{id}/reject. Admin only.
func (h *UserHandler) RejectManager(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req model.DecisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.RejectManager(r.Context(), p, id, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Deactivate handles PUT /api/v1/users/{id}/deactivate. Admin only,
// never self.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r)
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	user, err := h.users.DeactivateUser(r.Context(), p, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UploadIDProof handles POST /api/v1/users/upload-id-proof. It stores the
// file under a random name and returns its public path.
func (h *UserHandler) UploadIDProof(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedProofExtensions[ext] {
		writeError(w, http.StatusBadRequest, "file type not allowed: jpg, jpeg, png, pdf only")
		return
	}

	dir := filepath.Join(h.uploadDir, "id_proofs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"file_path": fmt.Sprintf("/uploads/id_proofs/%s", name),
	})
}
