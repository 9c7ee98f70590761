package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает слот, если слота с таким (provider_id, start_time) ещё нет.
// Атомарный вариант get-or-create: ON CONFLICT DO NOTHING вместо
// check-then-insert, поэтому безопасен при конкурентной генерации.
// Существующий слот не трогается - его is_booked сохраняется.
// Возвращает true, если слот был создан этим вызовом.
func (r *Repository) Upsert(ctx context.Context, s *domain.Slot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns("provider_id", "start_time", "end_time", "is_booked").
		Values(s.ProviderID, s.StartTime, s.EndTime, false).
		Suffix("ON CONFLICT (provider_id, start_time) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID)
	if err == sql.ErrNoRows {
		// Конфликт по (provider_id, start_time) - слот уже существует
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return true, nil
}

// GetByID получает слот по ID
// Внутри транзакции блокирует строку (FOR UPDATE) - используется при бронировании
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "provider_id", "start_time", "end_time", "is_booked").
		From("slots").
		Where(squirrel.Eq{"id": id})

	// Если используется транзакция, добавляем FOR UPDATE для блокировки
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ProviderID,
		&s.StartTime,
		&s.EndTime,
		&s.IsBooked,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return &s, nil
}

// ListFree получает свободные слоты провайдера, отсортированные по времени начала
// Если в фильтре задан день - ограничивает выборку полуинтервалом [day, day+1)
func (r *Repository) ListFree(ctx context.Context, filter domain.FreeSlotsFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "provider_id", "start_time", "end_time", "is_booked").
		From("slots").
		Where(squirrel.Eq{"provider_id": filter.ProviderID}).
		Where(squirrel.Eq{"is_booked": false}).
		OrderBy("start_time ASC")

	if filter.Day != nil {
		dayStart, dayEnd := domain.DayBounds(*filter.Day)
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"start_time": dayStart}).
			Where(squirrel.Lt{"start_time": dayEnd})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFree - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFree - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// CountOverlapping подсчитывает слоты провайдера, пересекающиеся с интервалом [start, end)
// Используются строгие неравенства: граничащие интервалы пересечением не считаются
func (r *Repository) CountOverlapping(ctx context.Context, providerID int64, start, end time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ExistsBooked проверяет, есть ли у провайдера занятые слоты в интервале [start, end)
// Используется как guard при редактировании/удалении окна доступности
func (r *Repository) ExistsBooked(ctx context.Context, providerID int64, start, end time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"is_booked": true}).
		Where(squirrel.GtOrEq{"start_time": start}).
		Where(squirrel.Lt{"start_time": end}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsBooked - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: ExistsBooked - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// DeleteFreeInRange удаляет свободные слоты провайдера в интервале [start, end)
// Занятые слоты не трогает. Возвращает число удалённых слотов
func (r *Repository) DeleteFreeInRange(ctx context.Context, providerID int64, start, end time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"is_booked": false}).
		Where(squirrel.GtOrEq{"start_time": start}).
		Where(squirrel.Lt{"start_time": end}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFreeInRange - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFreeInRange - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFreeInRange - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// MarkBooked помечает слот занятым
// Условное обновление: проходит только если слот сейчас свободен
func (r *Repository) MarkBooked(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("is_booked", true).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"is_booked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotAlreadyBooked
	}

	return nil
}

// Release освобождает слот (is_booked = false)
// Вызывается при отмене и отклонении записи
func (r *Repository) Release(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("is_booked", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет свободный слот провайдера
// Занятый или чужой слот не удаляется: ErrSlotBooked / ErrSlotNotFound
func (r *Repository) Delete(ctx context.Context, id, providerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"is_booked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем "занят" и "не найден/чужой" для корректного ответа клиенту
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return ErrSlotNotFound
		}
		if existing.ProviderID == providerID && existing.IsBooked {
			return ErrSlotBooked
		}
		return ErrSlotNotFound
	}

	return nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var s domain.Slot
		err := rows.Scan(
			&s.ID,
			&s.ProviderID,
			&s.StartTime,
			&s.EndTime,
			&s.IsBooked,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
