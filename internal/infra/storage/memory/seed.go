package memory

import (
	"github.com/shopspring/decimal"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// SeedDefaults заполняет справочники и сотрудников для локального запуска без БД
// Совпадает с данными миграции 000002_seed_catalog
func SeedDefaults(s *Store) {
	s.AddUser(domain.User{ID: 1, FullName: "Parish Administrator", Role: domain.RoleAdmin})
	s.AddUser(domain.User{ID: 2, FullName: "Office Secretary", Role: domain.RoleStaff})

	for _, bt := range []domain.BookingType{
		{ID: 101, Name: "Baptism", Fee: decimal.NewFromInt(500), DurationMinutes: 60, MaxBookingsPerDay: 4, IsActive: true},
		{ID: 102, Name: "Wedding", Fee: decimal.NewFromInt(3000), DurationMinutes: 120, MaxBookingsPerDay: 2, IsActive: true},
		{ID: 103, Name: "Mass Intention", Fee: decimal.Zero, DurationMinutes: 30, MaxBookingsPerDay: 10, IsActive: true},
		{ID: 104, Name: "Funeral Mass", Fee: decimal.NewFromInt(1000), DurationMinutes: 90, MaxBookingsPerDay: 2, IsActive: true},
	} {
		s.AddBookingType(bt)
	}

	for _, dt := range []domain.DocumentType{
		{ID: 201, Name: "Baptismal Certificate", Fee: decimal.NewFromInt(100), ProcessingDays: 3, IsActive: true},
		{ID: 202, Name: "Confirmation Certificate", Fee: decimal.NewFromInt(100), ProcessingDays: 3, IsActive: true},
		{ID: 203, Name: "Marriage Certificate", Fee: decimal.NewFromInt(150), ProcessingDays: 5, IsActive: true},
		{ID: 204, Name: "Certificate of Good Standing", Fee: decimal.Zero, ProcessingDays: 1, IsActive: true},
	} {
		s.AddDocumentType(dt)
	}
}
