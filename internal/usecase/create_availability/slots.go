package create_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// expandWindow нарезает окно доступности на слоты фиксированного шага.
//
// Курсор стартует с начала окна и двигается шагом interval_minutes; шаг,
// конец которого вышел бы за границу окна, отбрасывается (хвост короче
// интервала остаётся незанимаемым "мёртвым" временем).
//
// Генерация идемпотентна: слот с существующей парой (provider_id, start_time)
// не создаётся повторно и его is_booked не трогается. Возвращается число
// пройденных шагов, включая совпавшие с существующими слотами - это счётчик
// генерации, а не счётчик созданных строк.
func expandWindow(ctx context.Context, repo SlotRepository, window *domain.AvailabilityWindow) (int, error) {
	cursor, err := window.StartAt()
	if err != nil {
		return 0, fmt.Errorf("%w: expandWindow - combine start: %v", ErrInternal, err)
	}

	end, err := window.EndAt()
	if err != nil {
		return 0, fmt.Errorf("%w: expandWindow - combine end: %v", ErrInternal, err)
	}

	// Защита от незавершающегося цикла: окно обязано быть валидным
	if !cursor.Before(end) {
		return 0, ErrInvalidTimeRange
	}

	step := time.Duration(window.IntervalMinutes) * time.Minute
	generated := 0

	for {
		next := cursor.Add(step)
		if next.After(end) {
			break
		}

		s := &domain.Slot{
			ProviderID: window.ProviderID,
			StartTime:  cursor,
			EndTime:    next,
		}
		if _, err := repo.Upsert(ctx, s); err != nil {
			return generated, fmt.Errorf("%w: expandWindow - upsert slot: %v", ErrInternal, err)
		}

		cursor = next
		generated++
	}

	return generated, nil
}
