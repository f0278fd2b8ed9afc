package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/domain"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

func newTestReportService(attendance *fakeAttendanceRepo, leaves *fakeLeaveRepo, at time.Time) *ReportService {
	svc := NewReportService(attendance, leaves, nil, 0, zap.NewNop())
	svc.now = fixedClock(at)
	return svc
}

// seedWorkdays inserts an 8 hour present record for every weekday of
// the month, returning how many were inserted.
func seedWorkdays(t *testing.T, repo *fakeAttendanceRepo, accountID string, month time.Month, year int) int {
	t.Helper()

	count := 0
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		in := day.Add(9 * time.Hour)
		out := in.Add(8 * time.Hour)
		if err := repo.Insert(context.Background(), &domain.AttendanceRecord{
			AccountID: accountID,
			Day:       day,
			ClockIn:   &in,
			ClockOut:  &out,
			Status:    domain.AttendanceStatusPresent,
		}); err != nil {
			t.Fatalf("seed %s: %v", day.Format(time.DateOnly), err)
		}
		count++
	}
	return count
}

func TestMonthlyReportValidation(t *testing.T) {
	svc := newTestReportService(newFakeAttendanceRepo(), newFakeLeaveRepo(), time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		month int
		year  int
	}{
		{"month zero", 0, 2025},
		{"month thirteen", 13, 2025},
		{"year too old", 3, 1999},
		{"year too far", 3, 2101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Monthly(context.Background(), "acc-1", tt.month, tt.year); !apperrors.IsKind(err, apperrors.KindValidationFailed) {
				t.Fatalf("got err %v, want kind %s", err, apperrors.KindValidationFailed)
			}
		})
	}
}

func TestMonthlyReportEmptyMonth(t *testing.T) {
	// March 2025 is fully elapsed by mid April and has 21 weekdays.
	svc := newTestReportService(newFakeAttendanceRepo(), newFakeLeaveRepo(), time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC))

	report, err := svc.Monthly(context.Background(), "acc-1", 3, 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Attendance.WorkingDays != 21 {
		t.Fatalf("got %d working days, want 21", report.Attendance.WorkingDays)
	}
	if report.Attendance.AbsentDays != 21 {
		t.Fatalf("got %d absent days, want 21 implicit absences", report.Attendance.AbsentDays)
	}
	if report.Attendance.Rate != 0 {
		t.Fatalf("got rate %d, want 0", report.Attendance.Rate)
	}
	if report.Performance.Grade != "D" {
		t.Fatalf("got grade %s, want D", report.Performance.Grade)
	}
	if report.Hours.Actual != 0 || report.Hours.Expected != 168 {
		t.Fatalf("unexpected hours: %+v", report.Hours)
	}
}

func TestMonthlyReportFullAttendance(t *testing.T) {
	attendance := newFakeAttendanceRepo()
	leaves := newFakeLeaveRepo()
	seedWorkdays(t, attendance, "acc-1", time.March, 2025)

	// Three approved sick days inside the year.
	leaves.leaves = append(leaves.leaves, domain.LeaveRequest{
		ID:        "leave-1",
		AccountID: "acc-1",
		Type:      domain.LeaveTypeSick,
		FromDate:  time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		ToDate:    time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
		Days:      3,
		Status:    domain.LeaveStatusApproved,
	})

	svc := newTestReportService(attendance, leaves, time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC))
	report, err := svc.Monthly(context.Background(), "acc-1", 3, 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Attendance.PresentDays != 21 || report.Attendance.AbsentDays != 0 {
		t.Fatalf("unexpected attendance: %+v", report.Attendance)
	}
	if report.Attendance.Rate != 100 {
		t.Fatalf("got rate %d, want 100", report.Attendance.Rate)
	}
	if report.Performance.Grade != "A+" {
		t.Fatalf("got grade %s, want A+", report.Performance.Grade)
	}
	if report.Hours.Actual != 168 || report.Hours.Overtime != 0 || report.Hours.AvgDaily != 8 {
		t.Fatalf("unexpected hours: %+v", report.Hours)
	}

	byType := make(map[string]LeaveBalance, len(report.Leaves))
	for _, balance := range report.Leaves {
		byType[balance.Type] = balance
	}
	sick := byType["Sick Leave"]
	if sick.Used != 3 || sick.Balance != 7 || sick.Total != 10 {
		t.Fatalf("unexpected sick balance: %+v", sick)
	}
	casual := byType["Casual Leave"]
	if casual.Used != 0 || casual.Balance != 12 {
		t.Fatalf("unexpected casual balance: %+v", casual)
	}
	if len(report.Leaves) != 4 {
		t.Fatalf("got %d balance rows, want 4", len(report.Leaves))
	}
}

func TestMonthlyReportPartialAttendance(t *testing.T) {
	attendance := newFakeAttendanceRepo()
	// Present only in the first full week of March 2025 (3rd..7th).
	for dayNum := 3; dayNum <= 7; dayNum++ {
		day := time.Date(2025, 3, dayNum, 0, 0, 0, 0, time.UTC)
		in := day.Add(9 * time.Hour)
		out := in.Add(8 * time.Hour)
		if err := attendance.Insert(context.Background(), &domain.AttendanceRecord{
			AccountID: "acc-1", Day: day, ClockIn: &in, ClockOut: &out, Status: domain.AttendanceStatusPresent,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	svc := newTestReportService(attendance, newFakeLeaveRepo(), time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC))
	report, err := svc.Monthly(context.Background(), "acc-1", 3, 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Attendance.PresentDays != 5 {
		t.Fatalf("got %d present days, want 5", report.Attendance.PresentDays)
	}
	// The remaining 16 weekdays have no record and count as absences.
	if report.Attendance.AbsentDays != 16 {
		t.Fatalf("got %d absent days, want 16", report.Attendance.AbsentDays)
	}
	// 5 of 21 rounds to 24.
	if report.Attendance.Rate != 24 {
		t.Fatalf("got rate %d, want 24", report.Attendance.Rate)
	}
}

// The current month only counts days that have already happened.
func TestMonthlyReportCurrentMonthWindow(t *testing.T) {
	attendance := newFakeAttendanceRepo()
	// Mid-month: Monday 10 March 2025.
	svc := newTestReportService(attendance, newFakeLeaveRepo(), time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	report, err := svc.Monthly(context.Background(), "acc-1", 3, 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1..10 March 2025 holds six weekdays; the rest of the month does
	// not count yet.
	if report.Attendance.WorkingDays != 6 {
		t.Fatalf("got %d working days, want 6", report.Attendance.WorkingDays)
	}
	if report.Hours.Expected != 48 {
		t.Fatalf("got %v expected hours, want 48", report.Hours.Expected)
	}
}

func TestPerformanceGrades(t *testing.T) {
	tests := []struct {
		rate  int
		grade string
	}{
		{100, "A+"},
		{95, "A+"},
		{94, "A"},
		{90, "A"},
		{89, "B"},
		{80, "B"},
		{79, "C"},
		{70, "C"},
		{69, "D"},
		{0, "D"},
	}
	for _, tt := range tests {
		if got := scoreOf(tt.rate); got.Grade != tt.grade {
			t.Errorf("rate %d graded %s, want %s", tt.rate, got.Grade, tt.grade)
		}
	}
}
