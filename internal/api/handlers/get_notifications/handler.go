package get_notifications

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

const (
	route = "GET /users/{userId}/notifications"

	msgInvalidUserID = "invalid user ID"
	msgInvalidLimit  = "limit must be a positive integer"
)

// NotificationResponse уведомление в портале
type NotificationResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

// NotificationListResponse список уведомлений, новые первыми
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/notifications?limit=20
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var limit uint64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.ParseUint(raw, 10, 64)
		if err != nil || limit == 0 {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
	}

	list, err := h.service.ListForUser(r.Context(), caller, userID, limit)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Notifications listed: user_id=%d, count=%d", route, userID, len(list))
	handlers.RespondJSON(w, http.StatusOK, fromDomain(list))
}

func fromDomain(list []*domain.Notification) NotificationListResponse {
	resp := NotificationListResponse{Notifications: make([]NotificationResponse, 0, len(list))}
	for _, n := range list {
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Severity:  string(n.Severity),
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}
