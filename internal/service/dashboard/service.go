package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/sla"
)

// Dashboard ожидающие элементы всех видов с возрастом и уровнем SLA
type Dashboard struct {
	GeneratedAt    time.Time
	Rows           []sla.Row
	Summary        sla.Summary
	CriticalByKind map[sla.Kind]int
}

// Service административная сводка по просроченным элементам
type Service struct {
	documentRepo DocumentRepository
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сводки
func NewService(
	documentRepo DocumentRepository,
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		documentRepo: documentRepo,
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Compute собирает сводку; самые старые элементы первыми
// Обновляет gauge sla_critical_items по каждому виду
func (s *Service) Compute(ctx context.Context, caller domain.Caller) (*Dashboard, error) {
	if !caller.IsStaff() {
		return nil, fmt.Errorf("%w: staff role required", domain.ErrAccessDenied)
	}

	now := s.timeProvider.Now()

	var (
		documents []*domain.DocumentRequestWithType
		bookings  []*domain.BookingWithType
		payments  []*domain.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		status := domain.DocumentPending
		documents, err = s.documentRepo.List(gctx, domain.DocumentFilter{Status: &status})
		return err
	})
	g.Go(func() (err error) {
		status := domain.BookingPending
		bookings, err = s.bookingRepo.List(gctx, domain.BookingFilter{Status: &status})
		return err
	})
	g.Go(func() (err error) {
		payments, err = s.paymentRepo.ListByStatus(gctx, domain.PaymentRecordPending)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Compute: failed to load pending items: %v", err)
		return nil, fmt.Errorf("%w: Compute - repository error: %v", ErrInternal, err)
	}

	rows := make([]sla.Row, 0, len(documents)+len(bookings)+len(payments))
	for _, d := range documents {
		rows = append(rows, sla.NewRow(sla.KindDocument, d.ID, d.UserID, d.TypeName, d.CreatedAt, now))
	}
	for _, b := range bookings {
		label := fmt.Sprintf("%s %s %s", b.TypeName, b.BookingDate.Format(domain.DateFormat), b.BookingTime)
		rows = append(rows, sla.NewRow(sla.KindBooking, b.ID, b.UserID, label, b.CreatedAt, now))
	}
	for _, p := range payments {
		label := fmt.Sprintf("%s #%d (%s)", p.ReferenceType, p.ReferenceID, p.Amount.StringFixed(2))
		rows = append(rows, sla.NewRow(sla.KindPayment, p.ID, p.UserID, label, p.CreatedAt, now))
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Age > rows[j].Age })

	critical := map[sla.Kind]int{sla.KindDocument: 0, sla.KindBooking: 0, sla.KindPayment: 0}
	for _, r := range rows {
		if r.Level == sla.LevelCritical {
			critical[r.Kind]++
		}
	}
	if s.metrics != nil {
		for kind, count := range critical {
			s.metrics.SLACritical(string(kind), count)
		}
	}

	summary := sla.Summarize(rows)
	if summary.Critical > 0 {
		s.logger.Warn("Compute: %d pending items past the critical threshold", summary.Critical)
	}

	return &Dashboard{
		GeneratedAt:    now,
		Rows:           rows,
		Summary:        summary,
		CriticalByKind: critical,
	}, nil
}
