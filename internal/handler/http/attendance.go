package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/silangan-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	periodStart := r.URL.Query().Get("period_start")
	periodEnd := r.URL.Query().Get("period_end")

	result, err := h.attendanceService.ListAttendance(r.Context(), employeeID, periodStart, periodEnd)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
