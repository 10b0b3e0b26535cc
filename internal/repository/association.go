package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/models"
)

// AssociationGateway stores firewall/policy edges in the firewall_policy table.
type AssociationGateway struct {
	gw *Gateway[models.FirewallPolicy]
}

func NewAssociationGateway(db *gorm.DB) *AssociationGateway {
	return &AssociationGateway{gw: NewGateway[models.FirewallPolicy](db, "firewall_policy")}
}

// Exists reports whether the edge is present.
func (g *AssociationGateway) Exists(ctx context.Context, firewallID, policyID uint) (bool, error) {
	var count int64
	err := g.gw.db.WithContext(ctx).Model(&models.FirewallPolicy{}).
		Where("firewall_id = ? AND policy_id = ?", firewallID, policyID).
		Count(&count).Error
	if err != nil {
		return false, g.gw.translate("exists", err)
	}
	return count > 0, nil
}

// Insert adds the edge. It fails with ErrConflict when the pair exists,
// whether found by the check or by the uq_firewall_policy constraint.
func (g *AssociationGateway) Insert(ctx context.Context, firewallID, policyID uint) error {
	return g.gw.Transaction(ctx, "attach", func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.FirewallPolicy{}).
			Where("firewall_id = ? AND policy_id = ?", firewallID, policyID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("firewall %d already has policy %d: %w", firewallID, policyID, ErrConflict)
		}
		return tx.Create(&models.FirewallPolicy{FirewallID: firewallID, PolicyID: policyID}).Error
	})
}

// Remove deletes the edge, or fails with ErrNotFound when it is absent.
func (g *AssociationGateway) Remove(ctx context.Context, firewallID, policyID uint) error {
	return g.gw.Transaction(ctx, "detach", func(tx *gorm.DB) error {
		res := tx.Where("firewall_id = ? AND policy_id = ?", firewallID, policyID).
			Delete(&models.FirewallPolicy{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("firewall %d has no policy %d: %w", firewallID, policyID, ErrNotFound)
		}
		return nil
	})
}
