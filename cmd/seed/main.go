package main

import (
	"context"
	"errors"
	"os"

	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/config"
	"github.com/jouerflux/jouerflux/internal/database"
	"github.com/jouerflux/jouerflux/internal/logger"
	"github.com/jouerflux/jouerflux/internal/models"
	"github.com/jouerflux/jouerflux/internal/repository"
	"github.com/jouerflux/jouerflux/internal/services"
	"github.com/jouerflux/jouerflux/internal/validation"
)

type seedPolicy struct {
	name  string
	rules []validation.RuleInput
}

var (
	seedFirewalls = []string{"edge-paris", "edge-lyon", "core-dc1"}

	seedPolicies = []seedPolicy{
		{name: "web", rules: []validation.RuleInput{
			{Action: "ALLOW", Protocol: "TCP", SourceIP: "0.0.0.0", DestinationIP: "10.0.10.10", Port: 80},
			{Action: "ALLOW", Protocol: "TCP", SourceIP: "0.0.0.0", DestinationIP: "10.0.10.10", Port: 443},
		}},
		{name: "admin-ssh", rules: []validation.RuleInput{
			{Action: "ALLOW", Protocol: "TCP", SourceIP: "10.0.99.5", DestinationIP: "10.0.0.0", Port: 22},
			{Action: "DENY", Protocol: "TCP", SourceIP: "0.0.0.0", DestinationIP: "10.0.0.0", Port: 22},
		}},
		{name: "dns", rules: []validation.RuleInput{
			{Action: "ALLOW", Protocol: "UDP", SourceIP: "10.0.0.0", DestinationIP: "10.0.0.53", Port: 53},
			{Action: "ALLOW", Protocol: "ICMP", SourceIP: "10.0.0.0", DestinationIP: "10.0.0.53"},
		}},
	}

	// firewall name -> policy names
	seedAttachments = map[string][]string{
		"edge-paris": {"web", "admin-ssh"},
		"edge-lyon":  {"web"},
		"core-dc1":   {"admin-ssh", "dns"},
	}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log().WithError(err).Fatal("load config")
	}
	logger.Init(cfg.Debug, os.Stdout)

	db, err := database.Open(cfg)
	if err != nil {
		logger.Log().WithError(err).Fatal("connect database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Log().WithError(err).Fatal("migrate database")
	}

	if err := seed(context.Background(), db); err != nil {
		logger.Log().WithError(err).Fatal("seed database")
	}
	logger.Log().Info("database seeded")
}

// seed creates the sample data through the services. Entities that already
// exist are left untouched, so running it twice is harmless.
func seed(ctx context.Context, db *gorm.DB) error {
	firewalls := services.NewFirewallService(db)
	policies := services.NewPolicyService(db)
	rules := services.NewRuleService(db)
	assoc := services.NewAssociationService(db)

	fwIDs := map[string]uint{}
	for _, name := range seedFirewalls {
		fw, err := firewalls.Create(ctx, name)
		if errors.Is(err, services.ErrFirewallExists) {
			page, lerr := firewalls.List(ctx, name, 1, 100)
			if lerr != nil {
				return lerr
			}
			fw = findByName(page.Items, name, func(f models.Firewall) string { return f.Name })
			logger.Log().WithField("firewall", name).Info("already present")
		} else if err != nil {
			return err
		} else {
			logger.Log().WithField("firewall", name).Info("created")
		}
		if fw != nil {
			fwIDs[name] = fw.ID
		}
	}

	policyIDs := map[string]uint{}
	for _, sp := range seedPolicies {
		p, err := policies.Create(ctx, sp.name)
		if errors.Is(err, services.ErrPolicyExists) {
			page, lerr := policies.List(ctx, sp.name, 1, 100)
			if lerr != nil {
				return lerr
			}
			p = findByName(page.Items, sp.name, func(p models.Policy) string { return p.Name })
			if p != nil {
				policyIDs[sp.name] = p.ID
			}
			logger.Log().WithField("policy", sp.name).Info("already present")
			continue
		}
		if err != nil {
			return err
		}
		policyIDs[sp.name] = p.ID
		for _, in := range sp.rules {
			if _, err := rules.Create(ctx, p.ID, in); err != nil {
				return err
			}
		}
		logger.Log().WithField("policy", sp.name).WithField("rules", len(sp.rules)).Info("created")
	}

	for fwName, names := range seedAttachments {
		for _, pName := range names {
			err := assoc.Attach(ctx, fwIDs[fwName], policyIDs[pName])
			if err != nil && !errors.Is(err, repository.ErrConflict) {
				return err
			}
		}
	}
	return nil
}

func findByName[T any](items []T, name string, nameOf func(T) string) *T {
	for i := range items {
		if nameOf(items[i]) == name {
			return &items[i]
		}
	}
	return nil
}
