package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/models"
)

// PolicyGateway persists policies. Rules are always loaded with them.
type PolicyGateway struct {
	*Gateway[models.Policy]
}

func NewPolicyGateway(db *gorm.DB) *PolicyGateway {
	return &PolicyGateway{Gateway: NewGateway[models.Policy](db, "policy")}
}

// Create inserts p, rejecting a name that is already taken.
func (g *PolicyGateway) Create(ctx context.Context, p *models.Policy) error {
	return g.Gateway.Create(ctx, p, Unique{Column: "name", Value: p.Name})
}

// Get loads a policy with its rules.
func (g *PolicyGateway) Get(ctx context.Context, id uint) (*models.Policy, error) {
	return g.GetByID(ctx, id, "Rules")
}

// Delete removes the policy, its rules and its firewall associations in
// one transaction.
func (g *PolicyGateway) Delete(ctx context.Context, id uint) (*models.Policy, error) {
	return g.Gateway.Delete(ctx, id,
		func(tx *gorm.DB, id uint) error {
			return tx.Where("policy_id = ?", id).Delete(&models.FirewallPolicy{}).Error
		},
		func(tx *gorm.DB, id uint) error {
			return tx.Where("policy_id = ?", id).Delete(&models.Rule{}).Error
		},
	)
}

// List returns a page of policies whose name contains name.
func (g *PolicyGateway) List(ctx context.Context, name string, page, perPage int) (*Page[models.Policy], error) {
	q := Query{Page: page, PerPage: perPage, Preloads: []string{"Rules"}}.Contains("name", name)
	return g.Gateway.List(ctx, q)
}

// ListForFirewall returns a page of the policies attached to firewallID.
func (g *PolicyGateway) ListForFirewall(ctx context.Context, firewallID uint, page, perPage int) (*Page[models.Policy], error) {
	q := Query{
		Page:     page,
		PerPage:  perPage,
		Preloads: []string{"Rules"},
		Scopes:   []func(*gorm.DB) *gorm.DB{attachedTo(firewallID)},
	}
	return g.Gateway.List(ctx, q)
}

func attachedTo(firewallID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		edges := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.FirewallPolicy{}).
			Select("policy_id").
			Where("firewall_id = ?", firewallID)
		return db.Where("id IN (?)", edges)
	}
}
