package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/models"
)

// RuleGateway persists rules.
type RuleGateway struct {
	*Gateway[models.Rule]
}

func NewRuleGateway(db *gorm.DB) *RuleGateway {
	return &RuleGateway{Gateway: NewGateway[models.Rule](db, "rule")}
}

// Create inserts r. Rules have no unique columns.
func (g *RuleGateway) Create(ctx context.Context, r *models.Rule) error {
	return g.Gateway.Create(ctx, r)
}

// Delete removes a single rule.
func (g *RuleGateway) Delete(ctx context.Context, id uint) (*models.Rule, error) {
	return g.Gateway.Delete(ctx, id)
}

// ListByPolicy returns every rule of policyID in id order.
func (g *RuleGateway) ListByPolicy(ctx context.Context, policyID uint) ([]models.Rule, error) {
	rules := make([]models.Rule, 0)
	err := g.db.WithContext(ctx).Where("policy_id = ?", policyID).Order("id ASC").Find(&rules).Error
	if err != nil {
		return nil, g.translate("list", err)
	}
	return rules, nil
}
