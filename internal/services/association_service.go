package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/logger"
	"github.com/jouerflux/jouerflux/internal/metrics"
	"github.com/jouerflux/jouerflux/internal/models"
	"github.com/jouerflux/jouerflux/internal/repository"
)

// AssociationService manages which policies are attached to which firewalls.
// Double attach and double detach are reported, never ignored.
type AssociationService struct {
	firewalls *repository.FirewallGateway
	policies  *repository.PolicyGateway
	edges     *repository.AssociationGateway
}

func NewAssociationService(db *gorm.DB) *AssociationService {
	return &AssociationService{
		firewalls: repository.NewFirewallGateway(db),
		policies:  repository.NewPolicyGateway(db),
		edges:     repository.NewAssociationGateway(db),
	}
}

// Attach links policyID to firewallID.
func (s *AssociationService) Attach(ctx context.Context, firewallID, policyID uint) error {
	if err := s.resolve(ctx, firewallID, policyID); err != nil {
		return err
	}

	if err := s.edges.Insert(ctx, firewallID, policyID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			metrics.IncConflict("firewall_policy")
			return ErrAlreadyAssociated
		}
		return err
	}

	logger.Component("associations").WithFields(logrus.Fields{
		"firewall_id": firewallID,
		"policy_id":   policyID,
	}).Info("policy attached to firewall")
	return nil
}

// Detach removes the link between policyID and firewallID.
func (s *AssociationService) Detach(ctx context.Context, firewallID, policyID uint) error {
	if err := s.resolve(ctx, firewallID, policyID); err != nil {
		return err
	}

	if err := s.edges.Remove(ctx, firewallID, policyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotAssociated
		}
		return err
	}

	logger.Component("associations").WithFields(logrus.Fields{
		"firewall_id": firewallID,
		"policy_id":   policyID,
	}).Info("policy detached from firewall")
	return nil
}

// ListPoliciesForFirewall returns a page of the policies attached to
// firewallID, each with its rules.
func (s *AssociationService) ListPoliciesForFirewall(ctx context.Context, firewallID uint, page, perPage int) (*repository.Page[models.Policy], error) {
	if _, err := s.firewalls.GetByID(ctx, firewallID); err != nil {
		return nil, replaceKind(err, ErrFirewallNotFound, nil)
	}
	return s.policies.ListForFirewall(ctx, firewallID, page, perPage)
}

func (s *AssociationService) resolve(ctx context.Context, firewallID, policyID uint) error {
	if _, err := s.firewalls.GetByID(ctx, firewallID); err != nil {
		return replaceKind(err, ErrFirewallNotFound, nil)
	}
	if _, err := s.policies.GetByID(ctx, policyID); err != nil {
		return replaceKind(err, ErrPolicyNotFound, nil)
	}
	return nil
}
