package sheet

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nardosm/ik-registry/internal"
	"github.com/nardosm/ik-registry/internal/blobstore"
	"github.com/nardosm/ik-registry/internal/transport"
	"github.com/nardosm/ik-registry/pkg/logger"
)

// SheetTwoHandler serves the /api/sheet-two routes.
type SheetTwoHandler struct {
	*transport.BaseHandler
	Service *Service[*SheetTwo]
	Blobs   blobstore.Store
}

func NewSheetTwoHandler(svc *Service[*SheetTwo], blobs blobstore.Store) *SheetTwoHandler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &SheetTwoHandler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Blobs:       blobs,
	}
}

// Create handles POST /api/sheet-two. Accepts JSON or multipart with an
// optional file.
func (h *SheetTwoHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	rec := &SheetTwo{
		OwnerAccountID: principal.AccountID,
		Title:          strings.TrimSpace(dto.Title),
		Sector:         strings.TrimSpace(dto.Sector),
		DurationYears:  dto.DurationYears,
		TransferMethod: dto.TransferMethod,
		UsageStatus:    dto.UsageStatus,
		Remark:         dto.Remark,
		FileURL:        dto.FileURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	rec, err = h.Service.Create(rec)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rec)
}

// Get handles GET /api/sheet-two/{id}.
func (h *SheetTwoHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// List handles GET /api/sheet-two, most recent first.
func (h *SheetTwoHandler) List(w http.ResponseWriter, r *http.Request) {
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

// Update handles PUT /api/sheet-two/{id}, owner or admin only.
func (h *SheetTwoHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var dto UpdateSheetTwoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.Update(id, principal, func(rec *SheetTwo) error {
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

// Delete handles DELETE /api/sheet-two/{id}, owner or admin only.
func (h *SheetTwoHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *SheetTwoHandler) decodeCreate(r *http.Request) (*CreateSheetTwoDTO, error) {
	if !isMultipart(r) {
		var dto CreateSheetTwoDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			return nil, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed)
		}
		return &dto, nil
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, internal.NewValidationError("invalid multipart form", internal.ErrCodeValidationFailed)
	}

	dto := CreateSheetTwoDTO{
		Title:          r.FormValue("title"),
		Sector:         r.FormValue("sector"),
		TransferMethod: r.FormValue("transfer_method"),
		UsageStatus:    r.FormValue("usage_status"),
		Remark:         r.FormValue("remark"),
	}
	if v := r.FormValue("duration_years"); v != "" {
		years, err := strconv.Atoi(v)
		if err != nil {
			return nil, internal.NewValidationError("duration_years must be a number", internal.ErrCodeValidationFailed)
		}
		dto.DurationYears = years
	}

	url, err := saveUpload(r, h.Blobs)
	if err != nil {
		return nil, err
	}
	dto.FileURL = url

	return &dto, nil
}
