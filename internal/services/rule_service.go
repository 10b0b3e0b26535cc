package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/logger"
	"github.com/jouerflux/jouerflux/internal/metrics"
	"github.com/jouerflux/jouerflux/internal/models"
	"github.com/jouerflux/jouerflux/internal/repository"
	"github.com/jouerflux/jouerflux/internal/validation"
)

type RuleService struct {
	rules    *repository.RuleGateway
	policies *repository.PolicyGateway
}

func NewRuleService(db *gorm.DB) *RuleService {
	return &RuleService{
		rules:    repository.NewRuleGateway(db),
		policies: repository.NewPolicyGateway(db),
	}
}

// ListByPolicy returns the rules of policyID. An unknown policy yields an empty list.
func (s *RuleService) ListByPolicy(ctx context.Context, policyID uint) ([]models.Rule, error) {
	return s.rules.ListByPolicy(ctx, policyID)
}

// Get returns a single rule.
func (s *RuleService) Get(ctx context.Context, id uint) (*models.Rule, error) {
	r, err := s.rules.GetByID(ctx, id)
	return r, replaceKind(err, ErrRuleNotFound, nil)
}

// Create adds a rule to policyID. Action and protocol are upper-cased
// before the enum check. Nothing is written unless every field is valid.
func (s *RuleService) Create(ctx context.Context, policyID uint, in validation.RuleInput) (*models.Rule, error) {
	if _, err := s.policies.GetByID(ctx, policyID); err != nil {
		return nil, replaceKind(err, ErrPolicyNotFound, nil)
	}

	in.Action = strings.ToUpper(strings.TrimSpace(in.Action))
	in.Protocol = strings.ToUpper(strings.TrimSpace(in.Protocol))

	spec, err := validation.ValidateRule(in)
	if err != nil {
		metrics.IncValidationFailure("rule")
		logger.Component("rules").WithField("policy_id", policyID).WithError(err).Debug("rule rejected")
		return nil, err
	}

	rule := &models.Rule{
		Action:        spec.Action,
		Protocol:      spec.Protocol,
		SourceIP:      spec.SourceIP,
		DestinationIP: spec.DestinationIP,
		Port:          spec.Port,
		PolicyID:      policyID,
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, err
	}

	metrics.IncCreated("rule")
	return rule, nil
}

// Delete removes a single rule.
func (s *RuleService) Delete(ctx context.Context, id uint) (*models.Rule, error) {
	r, err := s.rules.Delete(ctx, id)
	if err != nil {
		return nil, replaceKind(err, ErrRuleNotFound, nil)
	}
	metrics.IncDeleted("rule")
	return r, nil
}
