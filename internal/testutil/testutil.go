// Package testutil fixtures shared by package tests.
package testutil

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/memory"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// Now reference "current" time used across tests: Monday 2024-06-10 09:00 UTC
var Now = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

// Today calendar date of Now
var Today = domain.DateOnly(Now)

// Clock controllable time provider
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

// NewClock clock stopped at t
func NewClock(t time.Time) *Clock {
	return &Clock{t: t}
}

// Now returns the current fake time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// Office 08:00-17:00 UTC
func Office() domain.OfficeHours {
	return domain.OfficeHours{
		Open:     types.MustTimeString("08:00"),
		Close:    types.MustTimeString("17:00"),
		Location: time.UTC,
	}
}

// Fixture ids seeded by NewStore
const (
	ClientID      int64 = 7
	OtherClientID int64 = 8
	StaffID       int64 = 20
	AdminID       int64 = 21

	BaptismTypeID     int64 = 101
	MassTypeID        int64 = 103
	CertificateTypeID int64 = 201
	FreeCertTypeID    int64 = 204
)

// Callers
var (
	Client      = domain.Caller{UserID: ClientID, Role: domain.RoleClient}
	OtherClient = domain.Caller{UserID: OtherClientID, Role: domain.RoleClient}
	Staff       = domain.Caller{UserID: StaffID, Role: domain.RoleStaff}
	Admin       = domain.Caller{UserID: AdminID, Role: domain.RoleAdmin}
)

// NewStore memory store with catalog and users; clock drives created_at
func NewStore(clock *Clock) *memory.Store {
	s := memory.NewStore()
	s.SetClock(clock.Now)

	s.AddUser(domain.User{ID: ClientID, FullName: "Maria Santos", Role: domain.RoleClient})
	s.AddUser(domain.User{ID: OtherClientID, FullName: "Jose Cruz", Role: domain.RoleClient})
	s.AddUser(domain.User{ID: StaffID, FullName: "Ana Reyes", Role: domain.RoleStaff})
	s.AddUser(domain.User{ID: AdminID, FullName: "Fr. Ramon Lopez", Role: domain.RoleAdmin})

	s.AddBookingType(domain.BookingType{
		ID: BaptismTypeID, Name: "Baptism", Fee: decimal.NewFromInt(500),
		DurationMinutes: 60, MaxBookingsPerDay: 4, IsActive: true,
	})
	s.AddBookingType(domain.BookingType{
		ID: MassTypeID, Name: "Mass Intention", Fee: decimal.Zero,
		DurationMinutes: 30, MaxBookingsPerDay: 10, IsActive: true,
	})
	s.AddDocumentType(domain.DocumentType{
		ID: CertificateTypeID, Name: "Baptismal Certificate", Fee: decimal.NewFromInt(100),
		ProcessingDays: 3, IsActive: true,
	})
	s.AddDocumentType(domain.DocumentType{
		ID: FreeCertTypeID, Name: "Certificate of Good Standing", Fee: decimal.Zero,
		ProcessingDays: 1, IsActive: true,
	})

	return s
}
