package models

// Firewall is a named container of policies. Policies are attached through
// the firewall_policy join table and are never owned by the firewall.
type Firewall struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Name     string   `json:"name" gorm:"size:100;not null;uniqueIndex:uq_firewall_name"`
	Policies []Policy `json:"policies,omitempty" gorm:"many2many:firewall_policy;"`
}

// FirewallPolicy is the join table for the many-to-many relationship between
// firewalls and policies. A pair may appear at most once.
type FirewallPolicy struct {
	FirewallID uint `gorm:"primaryKey;autoIncrement:false;uniqueIndex:uq_firewall_policy,priority:1"`
	PolicyID   uint `gorm:"primaryKey;autoIncrement:false;uniqueIndex:uq_firewall_policy,priority:2;index"`
}

// TableName keeps the join table name stable regardless of naming strategy.
func (FirewallPolicy) TableName() string {
	return "firewall_policy"
}
