package unit

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository"
)

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) FindByTeamAndOpportunity(ctx context.Context, teamID, opportunityID int32) (*domain.Application, error) {
	args := m.Called(ctx, teamID, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Update(ctx context.Context, app *domain.Application, expectedStatus domain.ApplicationStatus) error {
	args := m.Called(ctx, app, expectedStatus)
	return args.Error(0)
}
func (m *MockApplicationRepo) UpdateContent(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockApplicationRepo) ListByTeam(ctx context.Context, teamID int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.Application, int32, error) {
	args := m.Called(ctx, teamID, status, page, pageSize)
	return args.Get(0).([]domain.Application), args.Get(1).(int32), args.Error(2)
}
func (m *MockApplicationRepo) ListByOpportunity(ctx context.Context, opportunityID int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.Application, int32, error) {
	args := m.Called(ctx, opportunityID, status, page, pageSize)
	return args.Get(0).([]domain.Application), args.Get(1).(int32), args.Error(2)
}
func (m *MockApplicationRepo) ListReviewingPastDeadline(ctx context.Context, now string) ([]domain.Application, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Application), args.Error(1)
}

// MockOpportunityRepo
type MockOpportunityRepo struct {
	mock.Mock
}

func (m *MockOpportunityRepo) GetByID(ctx context.Context, id int32) (*domain.Opportunity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Opportunity), args.Error(1)
}
func (m *MockOpportunityRepo) SetStatus(ctx context.Context, id int32, status domain.OpportunityStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockOpportunityRepo) IncrementApplications(ctx context.Context, id, delta int32) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockTeamRepo
type MockTeamRepo struct {
	mock.Mock
}

func (m *MockTeamRepo) GetByID(ctx context.Context, id int32) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}
func (m *MockTeamRepo) GetMembership(ctx context.Context, teamID, userID int32) (*domain.TeamMember, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}
func (m *MockTeamRepo) ListMembershipsByUser(ctx context.Context, userID int32) ([]domain.TeamMember, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}
func (m *MockTeamRepo) ListActiveMembers(ctx context.Context, teamID int32) ([]domain.User, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockTeamRepo) ListRepresentatives(ctx context.Context, teamID int32) ([]domain.User, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockCompanyRepo
type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) GetByID(ctx context.Context, id int32) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}
func (m *MockCompanyRepo) GetMembership(ctx context.Context, companyID, userID int32) (*domain.CompanyMember, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyMember), args.Error(1)
}
func (m *MockCompanyRepo) ListMembershipsByUser(ctx context.Context, userID int32) ([]domain.CompanyMember, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.CompanyMember), args.Error(1)
}
func (m *MockCompanyRepo) ListMembers(ctx context.Context, companyID int32) ([]domain.User, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockEOIRepo
type MockEOIRepo struct {
	mock.Mock
}

func (m *MockEOIRepo) Create(ctx context.Context, eoi *domain.ExpressionOfInterest) error {
	args := m.Called(ctx, eoi)
	return args.Error(0)
}
func (m *MockEOIRepo) GetByID(ctx context.Context, id int32) (*domain.ExpressionOfInterest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpressionOfInterest), args.Error(1)
}
func (m *MockEOIRepo) UpdateStatus(ctx context.Context, eoi *domain.ExpressionOfInterest, expectedStatus domain.EOIStatus) error {
	args := m.Called(ctx, eoi, expectedStatus)
	return args.Error(0)
}
func (m *MockEOIRepo) HasPending(ctx context.Context, from, to repository.PartyRef) (bool, error) {
	args := m.Called(ctx, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockEOIRepo) ListSent(ctx context.Context, from []repository.PartyRef, page, pageSize int32) ([]domain.ExpressionOfInterest, int32, error) {
	args := m.Called(ctx, from, page, pageSize)
	return args.Get(0).([]domain.ExpressionOfInterest), args.Get(1).(int32), args.Error(2)
}
func (m *MockEOIRepo) ListReceived(ctx context.Context, teamIDs, companyIDs []int32, page, pageSize int32) ([]domain.ExpressionOfInterest, int32, error) {
	args := m.Called(ctx, teamIDs, companyIDs, page, pageSize)
	return args.Get(0).([]domain.ExpressionOfInterest), args.Get(1).(int32), args.Error(2)
}
func (m *MockEOIRepo) ListPendingOlderThan(ctx context.Context, cutoff string) ([]domain.ExpressionOfInterest, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.ExpressionOfInterest), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockTxManager runs the transactional function directly against the same
// context, so mocked repo calls inside the closure are observable.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyApplicationStatus(recipients []domain.User, teamName, opportunityTitle, companyName string, status domain.ApplicationStatus, message string) {
	m.Called(recipients, teamName, opportunityTitle, companyName, status, message)
}
func (m *MockNotifier) NotifyExpressionOfInterest(recipients []domain.User, interestedPartyName, targetName, message string, eoiID int32) {
	m.Called(recipients, interestedPartyName, targetName, message, eoiID)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendApplicationStatusNotification(ctx context.Context, email, name, teamName, opportunityTitle, companyName string, status domain.ApplicationStatus, message string) error {
	args := m.Called(ctx, email, name, teamName, opportunityTitle, companyName, status, message)
	return args.Error(0)
}
func (m *MockEmailService) SendEOINotification(ctx context.Context, email, name, interestedPartyName, targetName, message string) error {
	args := m.Called(ctx, email, name, interestedPartyName, targetName, message)
	return args.Error(0)
}

// MockPushService
type MockPushService struct {
	mock.Mock
}

func (m *MockPushService) SendPush(ctx context.Context, deviceToken, title, body string) error {
	args := m.Called(ctx, deviceToken, title, body)
	return args.Error(0)
}
