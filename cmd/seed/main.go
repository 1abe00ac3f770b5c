package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lead-crm/config"
	"github.com/oksasatya/go-lead-crm/internal/application"
	"github.com/oksasatya/go-lead-crm/internal/container"
	pginfra "github.com/oksasatya/go-lead-crm/internal/infrastructure/postgres"
	"github.com/oksasatya/go-lead-crm/pkg/helpers"
)

func str(s string) *string { return &s }

// sample leads covering every source
var samples = []application.CreateLeadInput{
	{Name: "Ann Lee", Email: "ann.lee@example.com", Company: str("Acme"), Source: str("Website")},
	{Name: "Bob Stone", Email: "bob@stone.io", Phone: str("+1 555 0100"), Source: str("Referral")},
	{Name: "Cara Diaz", Email: "cara-diaz@studio.co.uk", Message: str("Saw your reel, want a quote"), Source: str("Instagram")},
	{Name: "Dev Patel", Email: "dev@patel.dev", Source: str("Other")},
	{Name: "Eve Moss", Email: "eve@moss.org"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	// seeding should not notify external systems
	cfg.WebhookURL = ""
	cfg.RabbitMQURL = ""
	cfg.MetricsEnabled = false

	if !cfg.UseMemoryStore() {
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	ctx := context.Background()
	c, err := container.Build(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}
	defer c.Close()

	created, skipped, err := seed(ctx, c.LeadService, samples, logger)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	logger.WithFields(logrus.Fields{"created": created, "skipped": skipped}).Info("seed finished")
}

// seed creates every sample whose email is not stored yet, so reruns
// leave the table unchanged.
func seed(ctx context.Context, svc *application.LeadService, in []application.CreateLeadInput, logger logrus.FieldLogger) (created, skipped int, err error) {
	existing, err := svc.ListLeads(ctx)
	if err != nil {
		return 0, 0, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, l := range existing {
		seen[strings.ToLower(l.Email)] = struct{}{}
	}

	for _, s := range in {
		key := strings.ToLower(s.Email)
		if _, ok := seen[key]; ok {
			skipped++
			continue
		}
		res, err := svc.CreateLead(ctx, s)
		if err != nil {
			return created, skipped, fmt.Errorf("seed %s: %w", s.Email, err)
		}
		seen[key] = struct{}{}
		created++
		logger.WithField("id", res.Lead.ID).WithField("email", res.Lead.Email).Info("seeded lead")
	}
	return created, skipped, nil
}
