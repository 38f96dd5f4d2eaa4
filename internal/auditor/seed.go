package auditor

import (
	"context"
	"fmt"

	id "riskgate/pkg/domain"
)

// SeedDefaults provisions one active auditor per level so a fresh deployment
// can route cases immediately. Intended for local runs and tests; production
// pools come from the identity collaborator.
func SeedDefaults(ctx context.Context, svc *Service, password string) error {
	defaults := []struct {
		username   string
		name       string
		level      id.AuditLevel
		department string
	}{
		{"junior1", "Jamie Ward", id.LevelJunior, "Retail Review"},
		{"senior1", "Priya Nair", id.LevelSenior, "Retail Review"},
		{"expert1", "Tomasz Zielinski", id.LevelExpert, "Risk Office"},
		{"committee1", "Investment Committee", id.LevelCommittee, "Risk Office"},
	}
	for _, d := range defaults {
		if _, err := svc.Register(ctx, d.username, password, d.name, d.level, d.department); err != nil {
			return fmt.Errorf("seed auditor %s: %w", d.username, err)
		}
	}
	return nil
}
