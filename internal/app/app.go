package app

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/absences"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/blocked_dates"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/booking_action"
	createBookingHandler "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/create_booking"
	createDocumentRequestHandler "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/create_document_request"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/document_action"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/gateway_callback"
	getAvailableSlotsHandler "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/get_available_slots"
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
	rescheduleBookingHandler "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/reschedule_booking"
	submitPaymentHandler "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/submit_payment"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers/update_booking_type"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/integrations/notifier"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/bookings"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/calendar"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/catalog"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/dashboard"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/documents"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/slots"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/workload"
	createBookingUC "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/create_booking"
	createDocumentRequestUC "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/create_document_request"
	getAvailableSlotsUC "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/reschedule_booking"
	reviewPaymentUC "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/review_payment"
	submitPaymentUC "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/submit_payment"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/metrics"
)

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// FileStore хранилище подтверждений оплаты
type FileStore = submitPaymentUC.FileStore

// Dependencies всё, что нужно для сборки HTTP обработчика
type Dependencies struct {
	Storage Storage
	// Sender == nil: уведомления остаются только в портале
	Sender notifier.Sender
	Files  FileStore
	// Metrics == nil отключает /metrics и HTTP метрики
	Metrics        *metrics.Metrics
	MetricsPath    string
	Office         domain.OfficeHours
	GatewayToken   string
	MaxUploadBytes int64
	// Clock == nil: системное время
	Clock  Clock
	Logger *logger.Logger
}

// NewHandler собирает сервисы, use case и маршруты
func NewHandler(deps Dependencies) http.Handler {
	st := deps.Storage
	log := deps.Logger

	metricsCollector := deps.Metrics

	// Сервисы
	notificationSvc := notifications.NewService(st.Notifications, deps.Sender, log)
	allocator := slots.NewAllocator(st.Bookings, st.BlockedDates, deps.Office, metricsCollector, log)
	bookingSvc := bookings.NewService(st.Bookings, st.Catalog, notificationSvc, metricsCollector, st.Tx, log)
	documentSvc := documents.NewService(st.Documents, st.Catalog, notificationSvc, metricsCollector, st.Tx, log)
	catalogSvc := catalog.NewService(st.Catalog, st.Tx, log)
	calendarSvc := calendar.NewService(st.BlockedDates, log)
	workloadSvc := workload.NewService(st.Absences, st.Users, st.Documents, st.Bookings, st.Payments, deps.Office, log)
	dashboardSvc := dashboard.NewService(st.Documents, st.Bookings, st.Payments, metricsCollector, log)

	// Use cases
	createBooking := createBookingUC.NewUseCase(
		st.Bookings, st.Catalog, st.Payments, deps.Files, allocator, notificationSvc, metricsCollector, st.Tx, log,
	)
	rescheduleBooking := rescheduleBookingUC.NewUseCase(
		st.Bookings, st.Catalog, allocator, notificationSvc, metricsCollector, st.Tx, log,
	)
	getAvailableSlots := getAvailableSlotsUC.NewUseCase(st.Bookings, st.BlockedDates, st.Catalog, deps.Office, log)
	createDocumentRequest := createDocumentRequestUC.NewUseCase(
		st.Documents, st.Catalog, notificationSvc, metricsCollector, st.Tx, log,
	)
	submitPayment := submitPaymentUC.NewUseCase(
		st.Payments, st.Documents, st.Bookings, deps.Files, notificationSvc, metricsCollector, st.Tx, log,
	)
	reviewPayment := reviewPaymentUC.NewUseCase(
		st.Payments, st.Documents, st.Bookings, notificationSvc, metricsCollector, st.Tx, log,
	)

	if deps.Clock != nil {
		allocator.WithTimeProvider(deps.Clock)
		getAvailableSlots.WithTimeProvider(deps.Clock)
		workloadSvc.WithTimeProvider(deps.Clock)
		dashboardSvc.WithTimeProvider(deps.Clock)
	}

	h := api.Handlers{
		GetAvailableSlots: getAvailableSlotsHandler.NewHandler(getAvailableSlots, log),
		BlockedDates:      blocked_dates.NewHandler(calendarSvc, log),
		GatewayCallback:   gateway_callback.NewHandler(reviewPayment, deps.GatewayToken, log),

		GetCatalog:        get_catalog.NewHandler(catalogSvc, log),
		UpdateBookingType: update_booking_type.NewHandler(catalogSvc, log),

		CreateBooking:     createBookingHandler.NewHandler(createBooking, deps.MaxUploadBytes, log),
		GetBooking:        get_booking.NewHandler(bookingSvc, log),
		ListBookings:      list_bookings.NewHandler(bookingSvc, log),
		GetUserBookings:   get_user_bookings.NewHandler(bookingSvc, log),
		RescheduleBooking: rescheduleBookingHandler.NewHandler(rescheduleBooking, log),
		BookingAction:     booking_action.NewHandler(bookingSvc, log),

		CreateDocumentRequest: createDocumentRequestHandler.NewHandler(createDocumentRequest, log),
		GetDocumentRequest:    get_document_request.NewHandler(documentSvc, log),
		ListDocumentRequests:  list_document_requests.NewHandler(documentSvc, log),
		DocumentAction:        document_action.NewHandler(documentSvc, log),

		SubmitPayment:       submitPaymentHandler.NewHandler(submitPayment, deps.MaxUploadBytes, log),
		ListPendingPayments: list_pending_payments.NewHandler(reviewPayment, log),
		PaymentAction:       payment_action.NewHandler(reviewPayment, log),

		Dashboard:     get_dashboard.NewHandler(dashboardSvc, log),
		Workload:      get_workload.NewHandler(workloadSvc, log),
		Absences:      absences.NewHandler(workloadSvc, log),
		Notifications: get_notifications.NewHandler(notificationSvc, log),
	}

	opts := api.Options{}
	if metricsCollector != nil {
		opts.MetricsPath = deps.MetricsPath
		opts.MetricsHandler = promhttp.Handler()
		opts.HTTPObserver = metricsCollector
	}

	return api.NewRouter(h, opts).Setup()
}
