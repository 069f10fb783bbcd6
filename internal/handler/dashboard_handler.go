package handler

import (
	"net/http"

	"letterflow/internal/auth"
	"letterflow/internal/service"
)

type DashboardHandler struct {
	viewSvc *service.ViewService
}

func NewDashboardHandler(viewSvc *service.ViewService) *DashboardHandler {
	return &DashboardHandler{viewSvc: viewSvc}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	subject := auth.GetUser(r.Context()).Subject()
	view, err := h.viewSvc.ForSubject(r.Context(), subject)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
