// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/config"
	"github.com/jouerflux/jouerflux/internal/database"
	"github.com/jouerflux/jouerflux/internal/models"
)

var unsafeDSNChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// OpenTestDB returns a migrated in-memory SQLite database unique to t.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := unsafeDSNChars.ReplaceAllString(t.Name(), "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := database.Connect(config.DriverSQLite, dsn)
	require.NoError(t, err, "open test db")
	require.NoError(t, database.Migrate(db), "migrate test db")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedFirewall inserts a firewall directly, bypassing services.
func SeedFirewall(t *testing.T, db *gorm.DB, name string) models.Firewall {
	t.Helper()
	fw := models.Firewall{Name: name}
	require.NoError(t, db.Create(&fw).Error)
	return fw
}

// SeedPolicy inserts a policy with the given rules.
func SeedPolicy(t *testing.T, db *gorm.DB, name string, rules ...models.Rule) models.Policy {
	t.Helper()
	p := models.Policy{Name: name, Rules: rules}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// Attach links a firewall and a policy directly in the join table.
func Attach(t *testing.T, db *gorm.DB, firewallID, policyID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.FirewallPolicy{FirewallID: firewallID, PolicyID: policyID}).Error)
}

// TCPRule builds an ALLOW TCP rule to port.
func TCPRule(port int) models.Rule {
	return models.Rule{
		Action:        models.ActionAllow,
		Protocol:      models.ProtocolTCP,
		SourceIP:      "10.0.0.1",
		DestinationIP: "10.0.0.2",
		Port:          &port,
	}
}
