package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/filedepot/filedepot-go/internal/middleware"
	"github.com/filedepot/filedepot-go/internal/model"
	"github.com/filedepot/filedepot-go/internal/service"
)

// FilesHandler handles HTTP requests for file operations.
type FilesHandler struct {
	files *service.FilesService
	auth  *service.AuthService
}

// NewFilesHandler creates a new FilesHandler.
func NewFilesHandler(files *service.FilesService, auth *service.AuthService) *FilesHandler {
	return &FilesHandler{files: files, auth: auth}
}

// HandleUpload handles POST /files requests.
func (h *FilesHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 10<<20) // 10MB

	var req model.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	f, err := h.files.CreateEntry(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingName):
			writeJSON(w, http.StatusBadRequest, errorResponse("Missing name"))
		case errors.Is(err, service.ErrMissingType):
			writeJSON(w, http.StatusBadRequest, errorResponse("Missing type"))
		case errors.Is(err, service.ErrMissingData):
			writeJSON(w, http.StatusBadRequest, errorResponse("Missing data"))
		case errors.Is(err, service.ErrInvalidData):
			writeJSON(w, http.StatusBadRequest, errorResponse("Missing data"))
		case errors.Is(err, service.ErrParentNotFound):
			writeJSON(w, http.StatusBadRequest, errorResponse("Parent not found"))
		case errors.Is(err, service.ErrParentNotFolder):
			writeJSON(w, http.StatusBadRequest, errorResponse("Parent is not a folder"))
		case errors.Is(err, service.ErrUnauthorized):
			writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, model.NewFileResponse(f))
}

// HandleList handles GET /files requests. parentId defaults to the root
// sentinel and page to 0.
func (h *FilesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)

	files, err := h.files.List(r.Context(), userID, r.URL.Query().Get("parentId"), page)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	resp := make([]model.FileResponse, 0, len(files))
	for i := range files {
		resp = append(resp, model.NewFileResponse(&files[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /files/{id} requests.
func (h *FilesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	f, err := h.files.GetByID(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("Not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.NewFileResponse(f))
}

// HandlePublish handles PUT /files/{id}/publish requests.
func (h *FilesHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	h.setPublic(w, r, true)
}

// HandleUnpublish handles PUT /files/{id}/unpublish requests.
func (h *FilesHandler) HandleUnpublish(w http.ResponseWriter, r *http.Request) {
	h.setPublic(w, r, false)
}

func (h *FilesHandler) setPublic(w http.ResponseWriter, r *http.Request, public bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	f, err := h.files.SetPublic(r.Context(), chi.URLParam(r, "id"), userID, public)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("Not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.NewFileResponse(f))
}

// HandleData handles GET /files/{id}/data requests. The route takes no
// session middleware: public files are readable without a token, while a
// valid token unlocks the requester's own private files.
func (h *FilesHandler) HandleData(w http.ResponseWriter, r *http.Request) {
	requesterID := ""
	if token := r.Header.Get("X-Token"); token != "" {
		if id, err := h.auth.ResolveSession(r.Context(), token); err == nil {
			requesterID = id
		}
	}

	f, path, err := h.files.ReadContent(r.Context(), chi.URLParam(r, "id"), requesterID, r.URL.Query().Get("size"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse("Not found"))
		case errors.Is(err, service.ErrFolderNoContent):
			writeJSON(w, http.StatusBadRequest, errorResponse("A folder doesn't have content"))
		case errors.Is(err, service.ErrInvalidSize):
			writeJSON(w, http.StatusBadRequest, errorResponse("Invalid size"))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	ctype := mime.TypeByExtension(filepath.Ext(f.Name))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	http.ServeFile(w, r, path)
}
