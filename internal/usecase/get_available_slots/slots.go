package get_available_slots

import (
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// generateTimeSlots генерирует времена начала от открытия офиса с шагом длительности типа
// Слот, который заканчивается позже закрытия, не предлагается
// Для сегодняшней даты отбрасываются уже прошедшие времена
func generateTimeSlots(office domain.OfficeHours, duration int, date time.Time, now time.Time) ([]types.TimeString, error) {
	today := office.Today(now)

	// Дата в прошлом: слотов нет
	if domain.CalendarBefore(date, today) {
		return []types.TimeString{}, nil
	}

	if duration <= 0 {
		return []types.TimeString{}, nil
	}

	// Шаг 1: все слоты от открытия до закрытия
	allSlots := make([]types.TimeString, 0)
	current := office.Open

	for current.IsBefore(office.Close) {
		end, err := current.AddMinutes(duration)
		if err != nil {
			// следующий слот выходит за сутки
			break
		}
		if end.IsAfter(office.Close) {
			break
		}

		allSlots = append(allSlots, current)
		current = end
	}

	// Шаг 2: не сегодня - возвращаем все слоты
	if !domain.SameCalendarDate(date, today) {
		return allSlots, nil
	}

	// Шаг 3: сегодня - оставляем слоты, которые ещё не начались
	currentTime := types.NewTimeString(office.Now(now))
	upcoming := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if slot.IsAfter(currentTime) {
			upcoming = append(upcoming, slot)
		}
	}

	return upcoming, nil
}

// markSlots отмечает слоты, занятые активным бронированием любого типа или попавшие под блокировку
func markSlots(
	times []types.TimeString,
	duration int,
	bookings []*domain.Booking,
	blocked []*domain.BlockedDate,
) []domain.AvailableSlot {
	taken := make(map[int]bool, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			taken[b.BookingTime.Minutes()] = true
		}
	}

	result := make([]domain.AvailableSlot, 0, len(times))
	for _, start := range times {
		end, _ := start.AddMinutes(duration)

		slot := domain.AvailableSlot{
			StartTime: start,
			EndTime:   end,
			Taken:     taken[start.Minutes()],
		}
		for _, bd := range blocked {
			if bd.Covers(start) {
				slot.Blocked = true
				break
			}
		}

		result = append(result, slot)
	}

	return result
}
