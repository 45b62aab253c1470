package service

import (
	"context"

	"github.com/niklvrr/codybot/internal/domain"
	"go.uber.org/zap"
)

type TeamClient interface {
	ListTeamMembers(ctx context.Context, teamId int64) ([]string, error)
}

// RuleResolver собирает логины, которыми можно заполнить слот правила
type RuleResolver struct {
	teams TeamClient
	log   *zap.Logger
}

func NewRuleResolver(teams TeamClient, log *zap.Logger) *RuleResolver {
	return &RuleResolver{
		teams: teams,
		log:   log,
	}
}

// Acceptable назначенный ревьюер правила плюс участники его команды.
// Ошибка GitHub не фатальна: команда просто ничего не добавляет.
func (r *RuleResolver) Acceptable(ctx context.Context, rule *domain.ReviewRule) *domain.LoginSet {
	set := domain.NewLoginSet()
	if rule == nil {
		return set
	}
	set.Add(rule.Reviewer)

	if rule.TeamId == nil {
		return set
	}

	members, err := r.teams.ListTeamMembers(ctx, *rule.TeamId)
	if err != nil {
		r.log.Warn("team lookup failed, rule resolves without team members",
			zap.String("short_code", rule.ShortCode),
			zap.Int64("team_id", *rule.TeamId),
			zap.Error(err),
		)
		return set
	}
	set.Add(members...)

	r.log.Debug("rule resolved",
		zap.String("short_code", rule.ShortCode),
		zap.Strings("acceptable", set.Logins()),
	)
	return set
}
