package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/persistence"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// leaveAllocation pairs a leave type with its annual quota and chart
// color. Kept as a slice so report rows come out in a stable order.
type leaveAllocation struct {
	Type  domain.LeaveType
	Total int
	Color string
}

var leaveAllocations = []leaveAllocation{
	{domain.LeaveTypeCasual, 12, "#0C6B46"},
	{domain.LeaveTypeSick, 10, "#3B82F6"},
	{domain.LeaveTypeAnnual, 15, "#D97706"},
	{domain.LeaveTypeEmergency, 5, "#DC2626"},
}

// ReportService derives the monthly performance report from attendance
// and leave data. Reports are read-through cached in Redis with a short
// TTL; cache trouble degrades to recomputing, never to an error.
type ReportService struct {
	attendance repository.AttendanceRepository
	leaves     repository.LeaveRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService constructs the service. cache may be nil to disable
// caching.
func NewReportService(attendance repository.AttendanceRepository, leaves repository.LeaveRepository, cache *persistence.Redis, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	return &ReportService{
		attendance: attendance,
		leaves:     leaves,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// AttendanceSummary counts day outcomes for a month. Weekdays without
// any record count as absences.
type AttendanceSummary struct {
	WorkingDays int `json:"working_days"`
	PresentDays int `json:"present_days"`
	AbsentDays  int `json:"absent_days"`
	LateDays    int `json:"late_days"`
	HalfDays    int `json:"half_days"`
	Rate        int `json:"rate"`
}

// LeaveBalance reports per-type usage against the annual allocation.
type LeaveBalance struct {
	Type    string `json:"type"`
	Total   int    `json:"total"`
	Used    int    `json:"used"`
	Balance int    `json:"balance"`
	Color   string `json:"color"`
}

// WorkingHours aggregates hour totals for a month.
type WorkingHours struct {
	Expected float64 `json:"expected"`
	Actual   float64 `json:"actual"`
	Overtime float64 `json:"overtime"`
	AvgDaily float64 `json:"avg_daily"`
}

// PerformanceScore grades the attendance rate.
type PerformanceScore struct {
	Grade          string `json:"grade"`
	Message        string `json:"message"`
	AttendanceRate int    `json:"attendance_rate"`
}

// MonthlyReport is the full report payload.
type MonthlyReport struct {
	Month       int               `json:"month"`
	Year        int               `json:"year"`
	Attendance  AttendanceSummary `json:"attendance"`
	Leaves      []LeaveBalance    `json:"leaves"`
	Hours       WorkingHours      `json:"hours"`
	Performance PerformanceScore  `json:"performance"`
}

// Monthly builds the report for the given month, serving it from cache
// when a fresh copy exists.
func (s *ReportService) Monthly(ctx context.Context, accountID string, month, year int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationError("Invalid month", nil)
	}
	if year < 2000 || year > 2100 {
		return nil, apperrors.NewValidationError("Invalid year", nil)
	}

	cacheKey := fmt.Sprintf("report:%s:%d-%02d", accountID, year, month)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	attendance, err := s.attendanceSummary(ctx, accountID, month, year)
	if err != nil {
		return nil, apperrors.NewReportFailed(err)
	}
	leaves, err := s.leaveBalances(ctx, accountID, year)
	if err != nil {
		return nil, apperrors.NewReportFailed(err)
	}
	hours, err := s.workingHours(ctx, accountID, month, year)
	if err != nil {
		return nil, apperrors.NewReportFailed(err)
	}

	report := &MonthlyReport{
		Month:       month,
		Year:        year,
		Attendance:  *attendance,
		Leaves:      leaves,
		Hours:       *hours,
		Performance: scoreOf(attendance.Rate),
	}

	s.toCache(ctx, cacheKey, report)
	return report, nil
}

func (s *ReportService) attendanceSummary(ctx context.Context, accountID string, month, year int) (*AttendanceSummary, error) {
	firstDay, endDate := s.monthWindow(month, year)

	records, err := s.attendance.ListRange(ctx, accountID, firstDay, endDate)
	if err != nil {
		return nil, err
	}

	summary := AttendanceSummary{WorkingDays: countWeekdays(firstDay, endDate)}
	weekdayRecords := 0
	for _, record := range records {
		switch record.Status {
		case domain.AttendanceStatusPresent:
			summary.PresentDays++
		case domain.AttendanceStatusAbsent:
			summary.AbsentDays++
		case domain.AttendanceStatusLate:
			summary.LateDays++
		case domain.AttendanceStatusHalfDay:
			summary.HalfDays++
		}
		if wd := record.Day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			weekdayRecords++
		}
	}

	// Working days with no record at all are implicit absences.
	if missing := summary.WorkingDays - weekdayRecords; missing > 0 {
		summary.AbsentDays += missing
	}

	if summary.WorkingDays > 0 {
		attended := summary.PresentDays + summary.LateDays + summary.HalfDays
		summary.Rate = int(math.Round(float64(attended) / float64(summary.WorkingDays) * 100))
	}
	return &summary, nil
}

func (s *ReportService) leaveBalances(ctx context.Context, accountID string, year int) ([]LeaveBalance, error) {
	firstOfYear := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	lastOfYear := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	approved, err := s.leaves.ListApprovedInRange(ctx, accountID, firstOfYear, lastOfYear)
	if err != nil {
		return nil, err
	}

	usedByType := make(map[domain.LeaveType]int)
	for _, leave := range approved {
		usedByType[leave.Type] += leave.Days
	}

	balances := make([]LeaveBalance, 0, len(leaveAllocations))
	for _, alloc := range leaveAllocations {
		used := usedByType[alloc.Type]
		balance := alloc.Total - used
		if balance < 0 {
			balance = 0
		}
		balances = append(balances, LeaveBalance{
			Type:    leaveTypeDisplay[alloc.Type],
			Total:   alloc.Total,
			Used:    used,
			Balance: balance,
			Color:   alloc.Color,
		})
	}
	return balances, nil
}

func (s *ReportService) workingHours(ctx context.Context, accountID string, month, year int) (*WorkingHours, error) {
	firstDay, endDate := s.monthWindow(month, year)

	records, err := s.attendance.ListRange(ctx, accountID, firstDay, endDate)
	if err != nil {
		return nil, err
	}

	totalHours, daysCounted := sumWorkedHours(records, s.now())
	expected := float64(countWeekdays(firstDay, endDate)) * hoursPerWorkday

	overtime := totalHours - expected
	if overtime < 0 {
		overtime = 0
	}
	avgDaily := 0.0
	if daysCounted > 0 {
		avgDaily = round1(totalHours / float64(daysCounted))
	}

	return &WorkingHours{
		Expected: round1(expected),
		Actual:   round1(totalHours),
		Overtime: round1(overtime),
		AvgDaily: avgDaily,
	}, nil
}

// monthWindow returns the first day of the month and the earlier of its
// last day and today, so the current month only counts elapsed days.
func (s *ReportService) monthWindow(month, year int) (time.Time, time.Time) {
	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)
	today := dateOf(s.now())
	if today.Before(lastDay) {
		return firstDay, today
	}
	return firstDay, lastDay
}

func scoreOf(rate int) PerformanceScore {
	var grade, message string
	switch {
	case rate >= 95:
		grade, message = "A+", "Excellent performance! Keep up the great work."
	case rate >= 90:
		grade, message = "A", "Great performance! You're doing well."
	case rate >= 80:
		grade, message = "B", "Good performance. There's room for improvement."
	case rate >= 70:
		grade, message = "C", "Average performance. Try to improve attendance."
	default:
		grade, message = "D", "Needs improvement. Please focus on attendance."
	}
	return PerformanceScore{Grade: grade, Message: message, AttendanceRate: rate}
}

func (s *ReportService) fromCache(ctx context.Context, key string) *MonthlyReport {
	if s.cache == nil || s.cache.Client == nil {
		return nil
	}
	payload, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var report MonthlyReport
	if err := json.Unmarshal(payload, &report); err != nil {
		s.logger.Debug("discarding unreadable cached report", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &report
}

func (s *ReportService) toCache(ctx context.Context, key string, report *MonthlyReport) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
