package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/repository"
)

// In-memory repository fakes. They reproduce the uniqueness guarantees
// the real Postgres schema enforces, so the services see the same
// ErrDuplicate signals they would in production.

type fakeCredentialRepo struct {
	byUsername map[string]*domain.Credential
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{byUsername: make(map[string]*domain.Credential)}
}

func (f *fakeCredentialRepo) Create(_ context.Context, cred *domain.Credential) error {
	if _, ok := f.byUsername[cred.Username]; ok {
		return repository.ErrDuplicate
	}
	stored := *cred
	f.byUsername[cred.Username] = &stored
	return nil
}

func (f *fakeCredentialRepo) FindByUsername(_ context.Context, username string) (*domain.Credential, bool, error) {
	cred, ok := f.byUsername[username]
	if !ok {
		return nil, false, nil
	}
	copied := *cred
	return &copied, true, nil
}

type fakeAccountRepo struct {
	byID   map[string]*domain.Account
	grants map[string]*domain.AdminGrant
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byID:   make(map[string]*domain.Account),
		grants: make(map[string]*domain.AdminGrant),
	}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	if _, ok := f.byID[account.ID]; ok {
		return repository.ErrDuplicate
	}
	stored := *account
	f.byID[account.ID] = &stored
	return nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, bool, error) {
	account, ok := f.byID[id]
	if !ok {
		return nil, false, nil
	}
	copied := *account
	return &copied, true, nil
}

func (f *fakeAccountRepo) IsActiveAdmin(_ context.Context, id string) (bool, error) {
	account, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	_, granted := f.grants[id]
	return granted && account.Role == domain.RoleAdmin && account.Active, nil
}

func (f *fakeAccountRepo) UpdateRole(_ context.Context, id string, role domain.Role) (bool, error) {
	account, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	account.Role = role
	return true, nil
}

func (f *fakeAccountRepo) CreateAdminGrant(_ context.Context, grant *domain.AdminGrant) error {
	if _, ok := f.grants[grant.AccountID]; ok {
		return repository.ErrDuplicate
	}
	stored := *grant
	f.grants[grant.AccountID] = &stored
	return nil
}

type fakeTokenRepo struct {
	tokens []domain.Token
	nextID int64
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{}
}

func (f *fakeTokenRepo) Create(_ context.Context, token *domain.Token) error {
	for _, existing := range f.tokens {
		if existing.TokenHash == token.TokenHash {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	token.ID = f.nextID
	token.CreatedAt = time.Now().UTC()
	f.tokens = append(f.tokens, *token)
	return nil
}

func (f *fakeTokenRepo) FindActiveByHash(_ context.Context, hash string, tokenType domain.TokenType) (*domain.Token, bool, error) {
	for i := range f.tokens {
		token := f.tokens[i]
		if token.TokenHash == hash && token.Type == tokenType && !token.Revoked {
			return &token, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeTokenRepo) Revoke(_ context.Context, hash string, tokenType domain.TokenType) (bool, error) {
	for i := range f.tokens {
		if f.tokens[i].TokenHash == hash && f.tokens[i].Type == tokenType && !f.tokens[i].Revoked {
			f.tokens[i].Revoked = true
			return true, nil
		}
	}
	return false, nil
}

type fakeAttendanceRepo struct {
	records []domain.AttendanceRecord
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{}
}

func (f *fakeAttendanceRepo) Insert(_ context.Context, record *domain.AttendanceRecord) error {
	for _, existing := range f.records {
		if existing.AccountID == record.AccountID && existing.Day.Equal(record.Day) {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	record.ID = fmt.Sprintf("att-%d", f.nextID)
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeAttendanceRepo) FindByAccountAndDay(_ context.Context, accountID string, day time.Time) (*domain.AttendanceRecord, bool, error) {
	for i := range f.records {
		record := f.records[i]
		if record.AccountID == accountID && record.Day.Equal(day) {
			return &record, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeAttendanceRepo) SetClockOut(_ context.Context, id string, clockOut time.Time) (bool, error) {
	for i := range f.records {
		if f.records[i].ID == id && f.records[i].ClockOut == nil {
			out := clockOut
			f.records[i].ClockOut = &out
			f.records[i].UpdatedAt = clockOut
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepo) ListRange(_ context.Context, accountID string, from, to time.Time) ([]domain.AttendanceRecord, error) {
	var out []domain.AttendanceRecord
	for _, record := range f.records {
		if record.AccountID == accountID && !record.Day.Before(from) && !record.Day.After(to) {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

type fakeLeaveRepo struct {
	leaves   []domain.LeaveRequest
	profiles map[string]*domain.EmployeeProfile
	seq      int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{profiles: make(map[string]*domain.EmployeeProfile)}
}

func (f *fakeLeaveRepo) Create(_ context.Context, leave *domain.LeaveRequest) error {
	f.seq++
	// Monotonic timestamps keep the newest-first ordering observable.
	leave.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.seq) * time.Minute)
	leave.UpdatedAt = leave.CreatedAt
	f.leaves = append(f.leaves, *leave)
	return nil
}

func (f *fakeLeaveRepo) FindByID(_ context.Context, id string) (*domain.LeaveRequest, bool, error) {
	for i := range f.leaves {
		leave := f.leaves[i]
		if leave.ID == id {
			return &leave, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeLeaveRepo) ListByAccount(_ context.Context, accountID string) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	for _, leave := range f.leaves {
		if leave.AccountID == accountID {
			out = append(out, leave)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeLeaveRepo) ListAll(_ context.Context, status *domain.LeaveStatus) ([]repository.LeaveWithProfile, error) {
	var out []repository.LeaveWithProfile
	for _, leave := range f.leaves {
		if status != nil && leave.Status != *status {
			continue
		}
		item := repository.LeaveWithProfile{LeaveRequest: leave}
		if profile, ok := f.profiles[leave.AccountID]; ok {
			name := profile.Name
			employeeID := profile.EmployeeID
			department := string(profile.Department)
			item.EmployeeName = &name
			item.EmployeeID = &employeeID
			item.Department = &department
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeLeaveRepo) ListApprovedInRange(_ context.Context, accountID string, from, to time.Time) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	for _, leave := range f.leaves {
		if leave.AccountID == accountID && leave.Status == domain.LeaveStatusApproved &&
			!leave.FromDate.Before(from) && !leave.ToDate.After(to) {
			out = append(out, leave)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) UpdateStatus(_ context.Context, id string, status domain.LeaveStatus, decidedAt time.Time) (bool, error) {
	for i := range f.leaves {
		if f.leaves[i].ID == id && f.leaves[i].Status == domain.LeaveStatusPending {
			f.leaves[i].Status = status
			f.leaves[i].UpdatedAt = decidedAt
			return true, nil
		}
	}
	return false, nil
}

type fakeProfileRepo struct {
	byAccount map[string]*domain.EmployeeProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byAccount: make(map[string]*domain.EmployeeProfile)}
}

func (f *fakeProfileRepo) Create(_ context.Context, profile *domain.EmployeeProfile) error {
	if _, ok := f.byAccount[profile.AccountID]; ok {
		return repository.ErrDuplicate
	}
	for _, existing := range f.byAccount {
		if existing.Phone == profile.Phone || existing.EmployeeID == profile.EmployeeID {
			return repository.ErrDuplicate
		}
	}
	stored := *profile
	f.byAccount[profile.AccountID] = &stored
	return nil
}

func (f *fakeProfileRepo) FindByAccountID(_ context.Context, accountID string) (*domain.EmployeeProfile, bool, error) {
	profile, ok := f.byAccount[accountID]
	if !ok {
		return nil, false, nil
	}
	copied := *profile
	return &copied, true, nil
}

// fakeTxRunner runs the function directly; the fakes have no
// transactional state to protect.
type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// fakeDispatcher records published events.
type fakeDispatcher struct {
	published []events.Event
}

func (f *fakeDispatcher) Publish(_ context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
