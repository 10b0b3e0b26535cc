package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/models"
)

// FirewallGateway persists firewalls.
type FirewallGateway struct {
	*Gateway[models.Firewall]
}

func NewFirewallGateway(db *gorm.DB) *FirewallGateway {
	return &FirewallGateway{Gateway: NewGateway[models.Firewall](db, "firewall")}
}

// Create inserts fw, rejecting a name that is already taken.
func (g *FirewallGateway) Create(ctx context.Context, fw *models.Firewall) error {
	return g.Gateway.Create(ctx, fw, Unique{Column: "name", Value: fw.Name})
}

// Delete removes the firewall and its association rows. Attached policies are kept.
func (g *FirewallGateway) Delete(ctx context.Context, id uint) (*models.Firewall, error) {
	return g.Gateway.Delete(ctx, id, func(tx *gorm.DB, id uint) error {
		return tx.Where("firewall_id = ?", id).Delete(&models.FirewallPolicy{}).Error
	})
}

// List returns a page of firewalls whose name contains name.
func (g *FirewallGateway) List(ctx context.Context, name string, page, perPage int) (*Page[models.Firewall], error) {
	q := Query{Page: page, PerPage: perPage}.Contains("name", name)
	return g.Gateway.List(ctx, q)
}
