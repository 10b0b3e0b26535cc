package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/logger"
	"github.com/jouerflux/jouerflux/internal/metrics"
	"github.com/jouerflux/jouerflux/internal/models"
	"github.com/jouerflux/jouerflux/internal/repository"
	"github.com/jouerflux/jouerflux/internal/util"
	"github.com/jouerflux/jouerflux/internal/validation"
)

type PolicyService struct {
	policies *repository.PolicyGateway
}

func NewPolicyService(db *gorm.DB) *PolicyService {
	return &PolicyService{policies: repository.NewPolicyGateway(db)}
}

// List returns a page of policies with their rules.
func (s *PolicyService) List(ctx context.Context, name string, page, perPage int) (*repository.Page[models.Policy], error) {
	return s.policies.List(ctx, name, page, perPage)
}

// Get returns a policy with its rules.
func (s *PolicyService) Get(ctx context.Context, id uint) (*models.Policy, error) {
	p, err := s.policies.Get(ctx, id)
	return p, replaceKind(err, ErrPolicyNotFound, nil)
}

// Create validates name and inserts a new, empty policy.
func (s *PolicyService) Create(ctx context.Context, name string) (*models.Policy, error) {
	name, err := validation.ValidateName(name)
	if err != nil {
		metrics.IncValidationFailure("policy")
		return nil, err
	}

	p := &models.Policy{Name: name}
	if err := s.policies.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			metrics.IncConflict("policy")
			logger.Component("policies").WithField("name", util.TruncateForLog(name)).Warn("policy name already exists")
		}
		return nil, replaceKind(err, nil, ErrPolicyExists)
	}

	metrics.IncCreated("policy")
	return p, nil
}

// Delete removes a policy together with all of its rules and firewall links.
func (s *PolicyService) Delete(ctx context.Context, id uint) (*models.Policy, error) {
	p, err := s.policies.Delete(ctx, id)
	if err != nil {
		return nil, replaceKind(err, ErrPolicyNotFound, nil)
	}
	metrics.IncDeleted("policy")
	return p, nil
}
