package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jouerflux/jouerflux/internal/models"
	"github.com/jouerflux/jouerflux/internal/testutil"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()

	require.NoError(t, seed(ctx, db))
	require.NoError(t, seed(ctx, db))

	var firewalls, policies, rules, edges int64
	db.Model(&models.Firewall{}).Count(&firewalls)
	db.Model(&models.Policy{}).Count(&policies)
	db.Model(&models.Rule{}).Count(&rules)
	db.Model(&models.FirewallPolicy{}).Count(&edges)

	assert.Equal(t, int64(len(seedFirewalls)), firewalls)
	assert.Equal(t, int64(len(seedPolicies)), policies)
	assert.Equal(t, int64(6), rules)
	assert.Equal(t, int64(5), edges)
}
