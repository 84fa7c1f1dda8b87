package department

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"github.com/nardosm/ik-registry/internal"
	"github.com/nardosm/ik-registry/internal/blobstore"
	"github.com/nardosm/ik-registry/internal/transport"
	"github.com/nardosm/ik-registry/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateDepartmentDTO, ownerAccountID *int64) (*Department, error)
	GetByID(id int64) (*Department, error)
	List(limit, offset int) ([]*Department, error)
	ListByCategory(category string, limit, offset int) ([]*Department, error)
	Update(id int64, dto UpdateDepartmentDTO, principal *internal.Principal) (*Department, error)
	SetStatus(id int64, dto UpdateStatusDTO) (*Department, error)
	Delete(id int64, principal *internal.Principal) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Blobs   blobstore.Store
}

func NewHandler(svc ServiceAPI, blobs blobstore.Store) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Blobs:       blobs,
	}
}

// CreateDepartment handles POST /api/departments. The route is public;
// a valid token makes the caller the owner, otherwise the submission is
// anonymous. Accepts JSON or multipart/form-data with an optional file.
func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var ownerAccountID *int64
	if principal, ok := internal.PrincipalFromContext(r.Context()); ok {
		ownerAccountID = &principal.AccountID
	}

	dto, err := h.decodeCreate(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	dep, err := h.Service.Create(*dto, ownerAccountID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, dep)
}

// GetDepartment handles GET /api/departments/{id}.
func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid submission ID")
		return
	}

	dep, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dep)
}

// ListDepartments handles GET /api/departments, most recent first.
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	deps, err := h.Service.List(limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"departments": deps,
		"limit":       limit,
		"offset":      offset,
	})
}

// ListByCategory handles GET /api/departments/indigenous/{department}.
func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "department")
	limit, offset := transport.Pagination(r)

	deps, err := h.Service.ListByCategory(category, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"departments": deps,
		"limit":       limit,
		"offset":      offset,
	})
}

// UpdateDepartment handles PUT /api/departments/{id}.
func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	id, err := h.parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid submission ID")
		return
	}

	var dto UpdateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dep, err := h.Service.Update(id, dto, principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dep)
}

// UpdateStatus handles PATCH /api/departments/{id}/status (admin only).
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid submission ID")
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dep, err := h.Service.SetStatus(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dep)
}

// DeleteDepartment handles DELETE /api/departments/{id}.
func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	id, err := h.parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid submission ID")
		return
	}

	if err := h.Service.Delete(id, principal); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "submission deleted"})
}

// decodeCreate accepts either a JSON body or a multipart form with an
// optional "file" part that is forwarded to the blob store.
func (h *Handler) decodeCreate(r *http.Request) (*CreateDepartmentDTO, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if !strings.HasPrefix(mediaType, "multipart/") {
		var dto CreateDepartmentDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			return nil, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed)
		}
		return &dto, nil
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, internal.NewValidationError("invalid multipart form", internal.ErrCodeValidationFailed)
	}

	dto := CreateDepartmentDTO{
		FullName:    r.FormValue("full_name"),
		Email:       r.FormValue("email"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}

	file, header, err := r.FormFile("file")
	if err == http.ErrMissingFile {
		return &dto, nil
	}
	if err != nil {
		return nil, internal.NewValidationError("invalid file upload", internal.ErrCodeValidationFailed)
	}
	defer file.Close()

	url, err := h.Blobs.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		return nil, err
	}
	dto.FileURL = url

	return &dto, nil
}

func (h *Handler) parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
