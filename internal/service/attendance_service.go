package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

const (
	dayFormat   = "02 Jan 2006"
	clockFormat = "03:04 PM"

	hoursPerWorkday = 8.0
)

// AttendanceService runs the per-day clock-in/out state machine and
// derives the today/week/month summaries. All timestamps come from one
// UTC clock so issuance and aggregation cannot skew apart.
type AttendanceService struct {
	attendance repository.AttendanceRepository
	tx         repository.TxRunner
	dispatcher events.Dispatcher
	now        func() time.Time
}

// AttendanceDependencies bundles requirements for the service.
type AttendanceDependencies struct {
	AttendanceRepo repository.AttendanceRepository
	Tx             repository.TxRunner
	Dispatcher     events.Dispatcher
}

// NewAttendanceService constructs the service.
func NewAttendanceService(deps AttendanceDependencies) *AttendanceService {
	return &AttendanceService{
		attendance: deps.AttendanceRepo,
		tx:         deps.Tx,
		dispatcher: deps.Dispatcher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// AttendanceView is the caller-facing shape of one attendance record.
type AttendanceView struct {
	ID          string                  `json:"attendance_id"`
	Date        string                  `json:"date"`
	ClockIn     *string                 `json:"clock_in"`
	ClockOut    *string                 `json:"clock_out"`
	Status      domain.AttendanceStatus `json:"status"`
	IsClockedIn bool                    `json:"is_clocked_in"`
}

// TodaySummary describes today's state, synthesized as an absence when
// no row exists.
type TodaySummary struct {
	Date        string                  `json:"date"`
	ClockIn     *string                 `json:"clock_in"`
	ClockOut    *string                 `json:"clock_out"`
	Status      domain.AttendanceStatus `json:"status"`
	IsClockedIn bool                    `json:"is_clocked_in"`
}

// WeekDay is one entry of the Monday..Sunday weekly view. Status is nil
// for days without a record.
type WeekDay struct {
	Name     string                   `json:"name"`
	Date     int                      `json:"date"`
	FullDate string                   `json:"full_date"`
	IsToday  bool                     `json:"is_today"`
	IsPast   bool                     `json:"is_past"`
	Status   *domain.AttendanceStatus `json:"status"`
}

// MonthlyStats aggregates worked hours for the current month up to
// today.
type MonthlyStats struct {
	ExpectedHours float64 `json:"expected_hours"`
	ActualHours   float64 `json:"actual_hours"`
	AvgDaily      float64 `json:"avg_daily"`
	DaysPresent   int     `json:"days_present"`
	WorkingDays   int     `json:"working_days"`
}

// ClockIn creates today's attendance record. It fails with
// AlreadyClockedIn when any record exists for today, clocked out or
// not. The check and insert run in one transaction; the (account, day)
// unique constraint settles concurrent attempts so exactly one wins.
func (s *AttendanceService) ClockIn(ctx context.Context, accountID string) (*AttendanceView, error) {
	now := s.now()
	day := dateOf(now)

	var record *domain.AttendanceRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, found, err := s.attendance.FindByAccountAndDay(txCtx, accountID, day)
		if err != nil {
			return err
		}
		if found {
			return apperrors.NewAlreadyClockedIn()
		}

		clockIn := now
		rec := &domain.AttendanceRecord{
			AccountID: accountID,
			Day:       day,
			ClockIn:   &clockIn,
			Status:    domain.AttendanceStatusPresent,
		}
		if err := s.attendance.Insert(txCtx, rec); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperrors.NewAlreadyClockedIn()
			}
			return err
		}
		record = rec
		return nil
	})
	if err != nil {
		return nil, asAttendanceError(err)
	}

	s.publish(ctx, events.EventClockedIn, accountID, now, events.ClockedInPayload{
		Day:     day.Format(time.DateOnly),
		ClockIn: now,
	})
	return viewOf(record), nil
}

// ClockOut stamps clock-out on today's open record. The first committed
// clock-out is final; later attempts fail with AlreadyClockedOut.
func (s *AttendanceService) ClockOut(ctx context.Context, accountID string) (*AttendanceView, error) {
	now := s.now()
	day := dateOf(now)

	var record *domain.AttendanceRecord
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, found, err := s.attendance.FindByAccountAndDay(txCtx, accountID, day)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.NewNotClockedIn()
		}
		if rec.ClockOut != nil {
			return apperrors.NewAlreadyClockedOut()
		}

		updated, err := s.attendance.SetClockOut(txCtx, rec.ID, now)
		if err != nil {
			return err
		}
		if !updated {
			// Lost the race against a concurrent clock-out.
			return apperrors.NewAlreadyClockedOut()
		}

		clockOut := now
		rec.ClockOut = &clockOut
		rec.UpdatedAt = now
		record = rec
		return nil
	})
	if err != nil {
		return nil, asAttendanceError(err)
	}

	var hours float64
	if record.ClockIn != nil {
		hours = record.ClockOut.Sub(*record.ClockIn).Hours()
	}
	s.publish(ctx, events.EventClockedOut, accountID, now, events.ClockedOutPayload{
		Day:         day.Format(time.DateOnly),
		ClockOut:    now,
		HoursWorked: round1(hours),
	})
	return viewOf(record), nil
}

// GetTodaySummary returns today's state without ever creating a row;
// a missing row reads as an absence.
func (s *AttendanceService) GetTodaySummary(ctx context.Context, accountID string) (*TodaySummary, error) {
	day := dateOf(s.now())

	record, found, err := s.attendance.FindByAccountAndDay(ctx, accountID, day)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !found {
		return &TodaySummary{
			Date:        day.Format(dayFormat),
			Status:      domain.AttendanceStatusAbsent,
			IsClockedIn: false,
		}, nil
	}

	return &TodaySummary{
		Date:        record.Day.Format(dayFormat),
		ClockIn:     formatClock(record.ClockIn),
		ClockOut:    formatClock(record.ClockOut),
		Status:      record.Status,
		IsClockedIn: record.ClockOut == nil,
	}, nil
}

// GetWeeklyAttendance returns exactly seven entries for the Monday to
// Sunday window containing today, in day order. Days without a record
// appear with a nil status.
func (s *AttendanceService) GetWeeklyAttendance(ctx context.Context, accountID string) ([]WeekDay, error) {
	today := dateOf(s.now())
	monday := mondayOf(today)
	sunday := monday.AddDate(0, 0, 6)

	records, err := s.attendance.ListRange(ctx, accountID, monday, sunday)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	byDay := make(map[string]domain.AttendanceRecord, len(records))
	for _, record := range records {
		byDay[record.Day.Format(time.DateOnly)] = record
	}

	dayNames := [7]string{"M", "T", "W", "T", "F", "S", "S"}
	week := make([]WeekDay, 0, 7)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		entry := WeekDay{
			Name:     dayNames[i],
			Date:     day.Day(),
			FullDate: day.Format(time.DateOnly),
			IsToday:  day.Equal(today),
			IsPast:   day.Before(today),
		}
		if record, ok := byDay[day.Format(time.DateOnly)]; ok {
			status := record.Status
			entry.Status = &status
		}
		week = append(week, entry)
	}
	return week, nil
}

// GetMonthlyStats sums worked hours for the current month through
// today. An open record counts hours up to now, so the total keeps
// growing while the caller is clocked in; the result is a point-in-time
// snapshot, not a cached figure.
func (s *AttendanceService) GetMonthlyStats(ctx context.Context, accountID string) (*MonthlyStats, error) {
	now := s.now()
	today := dateOf(now)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	records, err := s.attendance.ListRange(ctx, accountID, firstOfMonth, today)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	totalHours, daysPresent := sumWorkedHours(records, now)
	workingDays := countWeekdays(firstOfMonth, today)

	avgDaily := 0.0
	if daysPresent > 0 {
		avgDaily = round1(totalHours / float64(daysPresent))
	}

	return &MonthlyStats{
		ExpectedHours: round1(float64(workingDays) * hoursPerWorkday),
		ActualHours:   round1(totalHours),
		AvgDaily:      avgDaily,
		DaysPresent:   daysPresent,
		WorkingDays:   workingDays,
	}, nil
}

func (s *AttendanceService) publish(ctx context.Context, eventType events.EventType, accountID string, ts time.Time, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AccountID: accountID,
		Timestamp: ts,
		Payload:   payload,
	})
}

// asAttendanceError passes domain conflicts through unmodified and
// wraps anything unexpected as the generic attendance failure.
func asAttendanceError(err error) error {
	if apperrors.KindOf(err) != "" {
		return err
	}
	return apperrors.NewAttendanceFailed(err)
}

// sumWorkedHours totals hours across records; an open record counts
// from its clock-in up to now.
func sumWorkedHours(records []domain.AttendanceRecord, now time.Time) (float64, int) {
	totalHours := 0.0
	daysCounted := 0
	for _, record := range records {
		switch {
		case record.ClockIn != nil && record.ClockOut != nil:
			totalHours += record.ClockOut.Sub(*record.ClockIn).Hours()
			daysCounted++
		case record.ClockIn != nil:
			totalHours += now.Sub(*record.ClockIn).Hours()
			daysCounted++
		}
	}
	return totalHours, daysCounted
}

// countWeekdays counts Mon-Fri days in [from, to] inclusive.
func countWeekdays(from, to time.Time) int {
	count := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// mondayOf returns the Monday of the week containing day, with the week
// numbered Monday=0..Sunday=6.
func mondayOf(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// dateOf truncates a timestamp to its UTC calendar day.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func viewOf(record *domain.AttendanceRecord) *AttendanceView {
	return &AttendanceView{
		ID:          record.ID,
		Date:        record.Day.Format(dayFormat),
		ClockIn:     formatClock(record.ClockIn),
		ClockOut:    formatClock(record.ClockOut),
		Status:      record.Status,
		IsClockedIn: record.ClockOut == nil,
	}
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(clockFormat)
	return &formatted
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
