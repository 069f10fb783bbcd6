package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"letterflow/internal/auth"
	"letterflow/internal/service"
	"letterflow/internal/workflow"
)

type SubmissionHandler struct {
	subSvc  *service.SubmissionService
	viewSvc *service.ViewService
}

func NewSubmissionHandler(subSvc *service.SubmissionService, viewSvc *service.ViewService) *SubmissionHandler {
	return &SubmissionHandler{subSvc: subSvc, viewSvc: viewSvc}
}

// Create accepts multipart form data: templateId, title, description, and
// the document under "file".
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	subject := auth.GetUser(r.Context()).Subject()

	// Max 12MB
	if err := r.ParseMultipartForm(12 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "multipart form expected")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	sub, err := h.subSvc.Create(r.Context(), subject,
		r.FormValue("templateId"), r.FormValue("title"), r.FormValue("description"),
		header.Filename, data)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	subject := auth.GetUser(r.Context()).Subject()
	subs, err := h.viewSvc.List(r.Context(), subject)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": subs, "total": len(subs)})
}

func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	subject := auth.GetUser(r.Context()).Subject()
	sub, err := h.subSvc.Get(r.Context(), subject, chi.URLParam(r, "subId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// MarkInReview, Approve, and Reject each apply one workflow action; the
// state machine decides whether the caller's role and the current status
// allow it.
func (h *SubmissionHandler) MarkInReview(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, workflow.ActionMarkInReview)
}

func (h *SubmissionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, workflow.ActionApprove)
}

func (h *SubmissionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, workflow.ActionReject)
}

func (h *SubmissionHandler) transition(w http.ResponseWriter, r *http.Request, action workflow.Action) {
	subject := auth.GetUser(r.Context()).Subject()
	var req struct {
		Notes string `json:"notes"`
	}
	if r.ContentLength > 0 {
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	sub, err := h.subSvc.Transition(r.Context(), subject, chi.URLParam(r, "subId"), action, req.Notes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *SubmissionHandler) Download(w http.ResponseWriter, r *http.Request) {
	subject := auth.GetUser(r.Context()).Subject()
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "submitted"
	}
	data, filename, err := h.subSvc.Download(r.Context(), subject, chi.URLParam(r, "subId"), kind)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}
