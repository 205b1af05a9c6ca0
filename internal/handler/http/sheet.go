package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
	"github.com/cmlabs-hris/liff-attendance-go/internal/handler/http/response"
)

type SheetHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Add(w http.ResponseWriter, r *http.Request)
}

type sheetHandlerImpl struct {
	sheetService sheet.Service
}

func NewSheetHandler(sheetService sheet.Service) SheetHandler {
	return &sheetHandlerImpl{sheetService: sheetService}
}

// Get returns the rows of a range as header-keyed objects.
func (h *sheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	var req sheet.GetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	records, err := h.sheetService.Get(r.Context(), req)
	if err != nil {
		slog.Error("Sheet get error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

type appendResult struct {
	Success     bool  `json:"success"`
	UpdatedRows int64 `json:"updatedRows"`
}

// Add appends one row.
func (h *sheetHandlerImpl) Add(w http.ResponseWriter, r *http.Request) {
	var req sheet.AppendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.sheetService.Append(r.Context(), req)
	if err != nil {
		slog.Error("Sheet add error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, appendResult{Success: true, UpdatedRows: resp.UpdatedRows})
}
