package sheet

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nardosm/ik-registry/internal"
	"github.com/nardosm/ik-registry/internal/blobstore"
	"github.com/nardosm/ik-registry/internal/transport"
	"github.com/nardosm/ik-registry/pkg/logger"
)

// SheetOneHandler serves the /api/sheet-one routes. All routes require
// authentication; created records are owned by the caller.
type SheetOneHandler struct {
	*transport.BaseHandler
	Service *Service[*SheetOne]
	Blobs   blobstore.Store
}

func NewSheetOneHandler(svc *Service[*SheetOne], blobs blobstore.Store) *SheetOneHandler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &SheetOneHandler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Blobs:       blobs,
	}
}

// Create handles POST /api/sheet-one. Accepts JSON or multipart with an
// optional file.
func (h *SheetOneHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	dto, err := h.decodeCreate(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	now := time.Now()
	rec := &SheetOne{
		OwnerAccountID:       principal.AccountID,
		FullName:             strings.TrimSpace(dto.FullName),
		Sex:                  dto.Sex,
		Phone:                strings.TrimSpace(dto.Phone),
		EducationLevel:       dto.EducationLevel,
		Region:               dto.Region,
		Zone:                 dto.Zone,
		Woreda:               dto.Woreda,
		KnowledgeTitle:       strings.TrimSpace(dto.KnowledgeTitle),
		KnowledgeDescription: dto.KnowledgeDescription,
		FileURL:              dto.FileURL,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	rec, err = h.Service.Create(rec)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rec)
}

// Get handles GET /api/sheet-one/{id}.
func (h *SheetOneHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseRecordID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid record ID")
		return
	}

	rec, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rec)
}

// List handles GET /api/sheet-one, most recent first.
func (h *SheetOneHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	recs, err := h.Service.List(limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records": recs,
		"limit":   limit,
		"offset":  offset,
	})
}

// Update handles PUT /api/sheet-one/{id}, owner or admin only.
func (h *SheetOneHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	id, err := parseRecordID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid record ID")
		return
	}

	var dto UpdateSheetOneDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.Update(id, principal, func(rec *SheetOne) error {
		if err := dto.Validate(); err != nil {
			return err
		}
		dto.Apply(rec)
		return nil
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /api/sheet-one/{id}, owner or admin only.
func (h *SheetOneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	id, err := parseRecordID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid record ID")
		return
	}

	if err := h.Service.Delete(id, principal); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "record deleted"})
}

func (h *SheetOneHandler) decodeCreate(r *http.Request) (*CreateSheetOneDTO, error) {
	if !isMultipart(r) {
		var dto CreateSheetOneDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			return nil, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed)
		}
		return &dto, nil
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, internal.NewValidationError("invalid multipart form", internal.ErrCodeValidationFailed)
	}

	dto := CreateSheetOneDTO{
		FullName:             r.FormValue("full_name"),
		Sex:                  r.FormValue("sex"),
		Phone:                r.FormValue("phone"),
		EducationLevel:       r.FormValue("education_level"),
		Region:               r.FormValue("region"),
		Zone:                 r.FormValue("zone"),
		Woreda:               r.FormValue("woreda"),
		KnowledgeTitle:       r.FormValue("knowledge_title"),
		KnowledgeDescription: r.FormValue("knowledge_description"),
	}

	url, err := saveUpload(r, h.Blobs)
	if err != nil {
		return nil, err
	}
	dto.FileURL = url

	return &dto, nil
}
