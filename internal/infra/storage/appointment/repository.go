package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Код ошибки Postgres "unique_violation"
const pgUniqueViolation = "23505"

// Столбцы запроса с JOIN на слот
var joinedColumns = []string{
	"a.id",
	"a.slot_id",
	"a.customer_id",
	"a.appointment_type",
	"a.patient_notes",
	"a.status",
	"a.created_at",
	"a.updated_at",
	"s.id",
	"s.provider_id",
	"s.start_time",
	"s.end_time",
	"s.is_booked",
}

// Repository репозиторий для работы с записями на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись на приём
// Частичный уникальный индекс по slot_id гарантирует не более одной активной
// записи на слот; нарушение транслируется в ErrSlotTaken
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns("slot_id", "customer_id", "appointment_type", "patient_notes", "status").
		Values(appt.SlotID, appt.CustomerID, appt.AppointmentType, appt.PatientNotes, appt.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись вместе с её слотом
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(joinedColumns...).
		From("appointments a").
		Join("slots s ON s.id = a.slot_id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var row domain.AppointmentWithSlot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&row.ID,
		&row.SlotID,
		&row.CustomerID,
		&row.AppointmentType,
		&row.PatientNotes,
		&row.Status,
		&row.CreatedAt,
		&row.UpdatedAt,
		&row.Slot.ID,
		&row.Slot.ProviderID,
		&row.Slot.StartTime,
		&row.Slot.EndTime,
		&row.Slot.IsBooked,
	)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return &row, nil
}

// ListWithFilter получает записи по фильтру (клиент или провайдер),
// опционально по статусу и окну времени начала слота.
// Сортировка - сначала новые записи
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentWithSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(joinedColumns...).
		From("appointments a").
		Join("slots s ON s.id = a.slot_id").
		OrderBy("a.created_at DESC")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.customer_id": *filter.CustomerID})
	}
	if filter.ProviderID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.provider_id": *filter.ProviderID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.status": *filter.Status})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"s.start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"s.start_time": *filter.To})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// UpdateStatus обновляет статус записи
// UpdateStatus переводит запись в новый статус
// Возвращает updated_at после срабатывания триггера appointments_set_updated_at
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrAppointmentNotFound
		}
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return updatedAt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.AppointmentWithSlot, error) {
	appointments := make([]*domain.AppointmentWithSlot, 0)

	for rows.Next() {
		var row domain.AppointmentWithSlot
		err := rows.Scan(
			&row.ID,
			&row.SlotID,
			&row.CustomerID,
			&row.AppointmentType,
			&row.PatientNotes,
			&row.Status,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.Slot.ID,
			&row.Slot.ProviderID,
			&row.Slot.StartTime,
			&row.Slot.EndTime,
			&row.Slot.IsBooked,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
