package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/notification"
	"github.com/cmlabs-hris/liff-attendance-go/internal/handler/http/response"
)

type NotificationHandler interface {
	Push(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifier notification.Notifier
}

func NewNotificationHandler(notifier notification.Notifier) NotificationHandler {
	return &notificationHandlerImpl{notifier: notifier}
}

// Push forwards a message to the notifier. Unlike the notifications sent as a
// side effect of other operations, a failure here is returned to the caller.
func (h *notificationHandlerImpl) Push(w http.ResponseWriter, r *http.Request) {
	var req notification.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.notifier.Send(r.Context(), req.ToMessage()); err != nil {
		slog.Error("Push notification error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notification sent", nil)
}
