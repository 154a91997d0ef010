package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/absences"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/blocked_dates"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/booking_action"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/create_booking"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/create_document_request"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/document_action"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/gateway_callback"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/get_available_slots"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/get_booking"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/get_catalog"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/get_dashboard"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/get_document_request"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/get_notifications"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/get_user_bookings"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/get_workload"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/list_bookings"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/list_document_requests"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/list_pending_payments"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/payment_action"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/reschedule_booking"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/submit_payment"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/update_booking_type"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
)

// Handlers все HTTP обработчики сервиса
type Handlers struct {
	GetAvailableSlots *get_available_slots.Handler
	BlockedDates      *blocked_dates.Handler
	GatewayCallback   *gateway_callback.Handler

	GetCatalog        *get_catalog.Handler
	UpdateBookingType *update_booking_type.Handler

	CreateBooking     *create_booking.Handler
	GetBooking        *get_booking.Handler
	ListBookings      *list_bookings.Handler
	GetUserBookings   *get_user_bookings.Handler
	RescheduleBooking *reschedule_booking.Handler
	BookingAction     *booking_action.Handler

	CreateDocumentRequest *create_document_request.Handler
	GetDocumentRequest    *get_document_request.Handler
	ListDocumentRequests  *list_document_requests.Handler
	DocumentAction        *document_action.Handler

	SubmitPayment       *submit_payment.Handler
	ListPendingPayments *list_pending_payments.Handler
	PaymentAction       *payment_action.Handler

	Dashboard     *get_dashboard.Handler
	Workload      *get_workload.Handler
	Absences      *absences.Handler
	Notifications *get_notifications.Handler
}

// Options параметры маршрутизатора
// MetricsHandler == nil отключает /metrics и HTTP метрики
type Options struct {
	MetricsPath    string
	MetricsHandler http.Handler
	HTTPObserver   middleware.HTTPObserver
}

type Router struct {
	router   *mux.Router
	handlers Handlers
	opts     Options
}

func NewRouter(h Handlers, opts Options) *Router {
	return &Router{
		router:   mux.NewRouter(),
		handlers: h,
		opts:     opts,
	}
}

// Setup регистрирует маршруты; /reschedule объявлен раньше /{action}
func (r *Router) Setup() *mux.Router {
	h := r.handlers

	r.router.Use(middleware.RequestID)
	if r.opts.HTTPObserver != nil {
		r.router.Use(middleware.MetricsMiddleware(r.opts.HTTPObserver))
	}
	if r.opts.MetricsHandler != nil {
		r.router.Handle(r.opts.MetricsPath, r.opts.MetricsHandler).Methods(http.MethodGet)
	}

	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/booking-types/{typeId}/available-slots", h.GetAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/blocked-dates", h.BlockedDates.List).Methods(http.MethodGet)
	// Шлюз проверяется собственным токеном
	api.HandleFunc("/payments/{paymentId}/gateway-callback", h.GatewayCallback.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (X-User-ID, X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/catalog", h.GetCatalog.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", h.ListBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", h.GetBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", h.RescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/{action}", h.BookingAction.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", h.GetUserBookings.Handle).Methods(http.MethodGet)

	// --- Заявки на документы ---
	protected.HandleFunc("/document-requests", h.CreateDocumentRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/document-requests", h.ListDocumentRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/document-requests/{requestId}", h.GetDocumentRequest.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/document-requests/{requestId}/{action}", h.DocumentAction.Handle).Methods(http.MethodPatch)

	// --- Платежи ---
	protected.HandleFunc("/payments", h.SubmitPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/pending", h.ListPendingPayments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId}/{action}", h.PaymentAction.Handle).Methods(http.MethodPatch)

	// --- Уведомления ---
	protected.HandleFunc("/users/{userId}/notifications", h.Notifications.Handle).Methods(http.MethodGet)

	// --- Офис: сводка и нагрузка персонала ---
	protected.HandleFunc("/dashboard", h.Dashboard.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/workload", h.Workload.Handle).Methods(http.MethodGet)

	// --- Администрирование (роль проверяется в сервисах) ---
	protected.HandleFunc("/admin/booking-types/{typeId}", h.UpdateBookingType.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/admin/absences", h.Absences.Create).Methods(http.MethodPost)
	protected.HandleFunc("/admin/absences", h.Absences.List).Methods(http.MethodGet)
	protected.HandleFunc("/admin/absences/{absenceId}", h.Absences.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/admin/blocked-dates", h.BlockedDates.Create).Methods(http.MethodPost)
	protected.HandleFunc("/admin/blocked-dates/{blockedId}", h.BlockedDates.Delete).Methods(http.MethodDelete)

	return r.router
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
