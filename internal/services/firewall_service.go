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

type FirewallService struct {
	firewalls *repository.FirewallGateway
}

func NewFirewallService(db *gorm.DB) *FirewallService {
	return &FirewallService{firewalls: repository.NewFirewallGateway(db)}
}

// List returns a page of firewalls, optionally filtered by a name substring.
func (s *FirewallService) List(ctx context.Context, name string, page, perPage int) (*repository.Page[models.Firewall], error) {
	return s.firewalls.List(ctx, name, page, perPage)
}

// Get returns a firewall with its attached policies.
func (s *FirewallService) Get(ctx context.Context, id uint) (*models.Firewall, error) {
	fw, err := s.firewalls.GetByID(ctx, id, "Policies")
	return fw, replaceKind(err, ErrFirewallNotFound, nil)
}

// Create validates name and inserts a new firewall.
func (s *FirewallService) Create(ctx context.Context, name string) (*models.Firewall, error) {
	name, err := validation.ValidateName(name)
	if err != nil {
		metrics.IncValidationFailure("firewall")
		return nil, err
	}

	fw := &models.Firewall{Name: name}
	if err := s.firewalls.Create(ctx, fw); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			metrics.IncConflict("firewall")
			logger.Component("firewalls").WithField("name", util.TruncateForLog(name)).Warn("firewall name already exists")
		}
		return nil, replaceKind(err, nil, ErrFirewallExists)
	}

	metrics.IncCreated("firewall")
	return fw, nil
}

// Delete removes a firewall and its policy associations. The policies stay.
func (s *FirewallService) Delete(ctx context.Context, id uint) (*models.Firewall, error) {
	fw, err := s.firewalls.Delete(ctx, id)
	if err != nil {
		return nil, replaceKind(err, ErrFirewallNotFound, nil)
	}
	metrics.IncDeleted("firewall")
	return fw, nil
}
