package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/infrastructure/api"
	"github.com/wareops/opsctl/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Versions       *api.VersionClient
	Sessions       ports.SessionStore
	Store          ports.KeyValueStore
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded, backend %s", cfg.API.BaseURL)))

	checks = append(checks, s.backendCheck(ctx))
	checks = append(checks, s.versionCheck(ctx))
	checks = append(checks, s.sessionCheck())
	checks = append(checks, s.storeCheck())

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) backendCheck(ctx context.Context) domain.HealthCheck {
	started := time.Now()
	if _, err := s.Versions.Health(ctx); err != nil {
		return fail("Backend reachability", err.Error())
	}
	check := ok("Backend reachability", "health endpoint responding")
	check.Latency = time.Since(started)
	return check
}

func (s *Service) versionCheck(ctx context.Context) domain.HealthCheck {
	info := s.Versions.Version(ctx)
	if info.Version == "0.0.0-dev" {
		return warn("Backend version", "version endpoint unreachable")
	}
	return ok("Backend version", fmt.Sprintf("%s (%s)", info.Version, info.Environment))
}

func (s *Service) sessionCheck() domain.HealthCheck {
	if _, present := s.Sessions.Token(); !present {
		return warn("Session", "no stored token; authenticated endpoints will fail")
	}
	if user, present := s.Sessions.User(); present {
		return ok("Session", fmt.Sprintf("token stored for %s", user.Username))
	}
	return ok("Session", "token stored")
}

// storeCheck probes the local state directory with a write/read/delete
// round trip.
func (s *Service) storeCheck() domain.HealthCheck {
	const probeKey = "doctor_probe"
	if err := s.Store.Set(probeKey, []byte("ok")); err != nil {
		return fail("Local state", fmt.Sprintf("write failed: %v", err))
	}
	if _, found, err := s.Store.Get(probeKey); err != nil || !found {
		return fail("Local state", "probe readback failed")
	}
	if err := s.Store.Delete(probeKey); err != nil {
		return warn("Local state", fmt.Sprintf("probe cleanup failed: %v", err))
	}
	return ok("Local state", "read/write verified")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
