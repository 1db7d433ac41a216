package tenantconfig

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

// Repository репозиторий настроек тенанта: базовые настройки,
// недельное расписание, диапазоны блокировок и услуги
// Для движка слотов всё это read-only: мутации делает мерчантская панель
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек тенанта
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSettings получает базовые настройки тенанта (таймзона, гранулярность, дефолтные часы)
func (r *Repository) GetSettings(ctx context.Context, tenantID int64) (*domain.TenantSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"tenant_id",
		"timezone",
		"slot_granularity_minutes",
		"default_open_time",
		"default_close_time",
		"min_lead_minutes",
	).
		From("tenant_settings").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.TenantSettings
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.TenantID,
		&settings.Timezone,
		&settings.SlotGranularityMinutes,
		&settings.DefaultOpenTime,
		&settings.DefaultCloseTime,
		&settings.MinLeadMinutes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - scan settings: %v", ErrScanRow, err)
	}

	if settings.SlotGranularityMinutes <= 0 {
		settings.SlotGranularityMinutes = domain.DefaultSlotGranularityMinutes
	}

	return &settings, nil
}

// GetWeeklyRules получает недельные правила расписания тенанта
// Пустой результат означает, что недельное расписание не настроено
func (r *Repository) GetWeeklyRules(ctx context.Context, tenantID int64) ([]domain.WeeklyRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"tenant_id",
		"day_of_week",
		"open_time",
		"close_time",
	).
		From("schedule_rules").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.WeeklyRule, 0)
	for rows.Next() {
		var rule domain.WeeklyRule
		if err := rows.Scan(&rule.TenantID, &rule.DayOfWeek, &rule.OpenTime, &rule.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklyRules - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// GetBlackoutForDate получает диапазон блокировки, накрывающий дату, если такой есть
// Дата внутри любого диапазона (границы включительно) делает тенанта полностью
// закрытым в этот день независимо от недельного расписания
func (r *Repository) GetBlackoutForDate(ctx context.Context, tenantID int64, date time.Time) (*domain.BlackoutRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"start_date",
		"end_date",
		"reason",
		"created_at",
	).
		From("blackout_ranges").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.LtOrEq{"start_date": date}).
		Where(squirrel.GtOrEq{"end_date": date}).
		OrderBy("start_date ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlackoutForDate - build select query: %v", ErrBuildQuery, err)
	}

	var blackout domain.BlackoutRange
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&blackout.ID,
		&blackout.TenantID,
		&blackout.StartDate,
		&blackout.EndDate,
		&blackout.Reason,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlackoutForDate - scan blackout: %v", ErrScanRow, err)
	}

	blackout.CreatedAt = createdAt.Time

	return &blackout, nil
}

// GetServiceBySlug получает услугу тенанта по slug
func (r *Repository) GetServiceBySlug(ctx context.Context, tenantID int64, slug string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"slug",
		"name",
		"duration_minutes",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"slug": slug}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceBySlug - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.TenantID,
		&service.Slug,
		&service.Name,
		&service.DurationMinutes,
		&service.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceBySlug - scan service: %v", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}
