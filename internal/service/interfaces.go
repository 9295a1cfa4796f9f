// Package service holds the typed wrappers over the gateway, one per
// server resource. Services carry no state; all session handling lives
// in the gateway and all caching in the stores.
package service

import (
	"context"
	"time"

	"github.com/tabelhq/tabel/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.User, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error)
}

// TimeRecordFilter narrows a record listing. From/To are wire dates
// (DD.MM.YYYY); zero UserID means the signed-in user.
type TimeRecordFilter struct {
	From   string
	To     string
	UserID int
}

type TimeRecordService interface {
	List(ctx context.Context, filter TimeRecordFilter) ([]domain.TimeRecord, error)
	Create(ctx context.Context, rec domain.CreateTimeRecord) (*domain.TimeRecord, error)
	Update(ctx context.Context, id int, upd domain.UpdateTimeRecord) (*domain.TimeRecord, error)
	Delete(ctx context.Context, id int) error
}

type ScheduleService interface {
	ByMonth(ctx context.Context, year int, month time.Month) ([]domain.ScheduleEntry, error)
	BulkSet(ctx context.Context, items []domain.ScheduleItem) ([]domain.ScheduleEntry, error)
	Remove(ctx context.Context, year int, month time.Month) error
	ExpectedHours(ctx context.Context, year int, month time.Month) (float64, error)
}

type NotificationService interface {
	List(ctx context.Context) ([]domain.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id int) (*domain.Notification, error)
	MarkAllRead(ctx context.Context) (int, error)
	Check(ctx context.Context) error
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	ByID(ctx context.Context, id int) (*domain.User, error)
	Update(ctx context.Context, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int) error
}

// UserUpdate is the admin-side partial user edit.
type UserUpdate struct {
	ID       int         `json:"id"`
	Email    string      `json:"email,omitempty"`
	Password string      `json:"password,omitempty"`
	Role     domain.Role `json:"role,omitempty"`
}

type StatisticsService interface {
	UserStatistics(ctx context.Context, year int, month time.Month) ([]domain.UserStatistics, error)
}

type ChartService interface {
	ActualVsRequiredByDays(ctx context.Context, year int, month time.Month) ([]domain.ActualVsRequiredPoint, error)
	CumulativeHoursByUsers(ctx context.Context, year int, month time.Month) ([]domain.CumulativeHoursByUser, error)
	ActualVsPlannedByUsers(ctx context.Context, year int, month time.Month) ([]domain.ActualVsPlannedPoint, error)
}
