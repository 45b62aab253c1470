package service

import (
	"context"

	"github.com/niklvrr/codybot/internal/domain"
	"github.com/niklvrr/codybot/internal/infrastructure/models/dto"
	"github.com/niklvrr/codybot/internal/infrastructure/models/result"
	"github.com/stretchr/testify/mock"
)

// MockHostClient мок клиента GitHub для тестов
type MockHostClient struct {
	mock.Mock
}

func (m *MockHostClient) CreateStatus(ctx context.Context, repo domain.RepositoryRef, sha string, status domain.CommitStatus) error {
	args := m.Called(ctx, repo, sha, status)
	return args.Error(0)
}

func (m *MockHostClient) GetPullRequest(ctx context.Context, repo domain.RepositoryRef, number int) (*domain.PullRequestDetail, error) {
	args := m.Called(ctx, repo, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PullRequestDetail), args.Error(1)
}

func (m *MockHostClient) EditBody(ctx context.Context, repo domain.RepositoryRef, number int, body string) error {
	args := m.Called(ctx, repo, number, body)
	return args.Error(0)
}

func (m *MockHostClient) ListTeamMembers(ctx context.Context, teamId int64) ([]string, error) {
	args := m.Called(ctx, teamId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPrRepository мок хранилища сессий ревью.
// WithSession прогоняет fn на сессии из ожидания и запоминает закоммиченные изменения.
type MockPrRepository struct {
	mock.Mock
	Committed []*domain.SessionChange
	Sessions  []*domain.ReviewSession
}

func (m *MockPrRepository) Create(ctx context.Context, d *dto.CreatePullRequestDTO) (*result.PullRequestResult, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*result.PullRequestResult), args.Error(1)
}

func (m *MockPrRepository) Find(ctx context.Context, d *dto.FindPullRequestDTO) (*domain.PullRequest, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PullRequest), args.Error(1)
}

func (m *MockPrRepository) WithSession(ctx context.Context, prId int64, fn domain.SessionFunc) (*domain.SessionChange, error) {
	args := m.Called(ctx, prId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	session := args.Get(0).(*domain.ReviewSession)
	m.Sessions = append(m.Sessions, session)

	change, err := fn(ctx, session)
	if err != nil {
		return nil, err
	}
	if change.IsEmpty() {
		return nil, nil
	}
	m.Committed = append(m.Committed, change)
	return change, nil
}

// MockRuleRepository мок хранилища правил
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) Add(ctx context.Context, d *dto.AddRuleDTO) (*domain.ReviewRule, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewRule), args.Error(1)
}

func (m *MockRuleRepository) Get(ctx context.Context, d *dto.GetRuleDTO) (*domain.ReviewRule, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewRule), args.Error(1)
}

func (m *MockRuleRepository) GetByCode(ctx context.Context, repositoryId int64, code string) (*domain.ReviewRule, error) {
	args := m.Called(ctx, repositoryId, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewRule), args.Error(1)
}

func (m *MockRuleRepository) GetById(ctx context.Context, id int64) (*domain.ReviewRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewRule), args.Error(1)
}

// MockUserRepository мок реестра пользователей
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SetPaused(ctx context.Context, d *dto.SetPausedDTO) (*domain.User, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetReview(ctx context.Context, d *dto.GetReviewDTO) (*result.GetReviewResult, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*result.GetReviewResult), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Load(ctx context.Context, ref domain.RepositoryRef) (*domain.Settings, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) SetIgnoreLabels(ctx context.Context, d *dto.SetIgnoreLabelsDTO) (*domain.Repository, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repository), args.Error(1)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetStats(ctx context.Context) (*result.StatsResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*result.StatsResult), args.Error(1)
}
