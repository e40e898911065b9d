package app

import (
	"context"
	"testing"
	"time"

	"github.com/allisson/trustregistry/internal/config"
	ownershipDomain "github.com/allisson/trustregistry/internal/ownership/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

func newMemoryConfig() *config.Config {
	return &config.Config{
		LogLevel:             "error",
		DBDriver:             config.DriverMemory,
		ServerHost:           "localhost",
		ServerPort:           8080,
		AuthJWTSecret:        "test-secret",
		AuthJWTIssuer:        "trustregistry-test",
		AuthTokenExpiration:  time.Hour,
		MetricsEnabled:       true,
		MetricsNamespace:     "trustregistry_test",
		MetricsPort:          8081,
		OwnerPrincipal:       "registry-owner",
		RecoveryPrincipal:    "urn:trustregistry:recovery-coordinator",
		EventPublisher:       config.PublisherLog,
		EventWorkerInterval:  time.Second,
		EventWorkerBatchSize: 10,
		EventMaxRetries:      3,
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := newMemoryConfig()

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger is created once.
func TestContainerLogger(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "debug"})
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	if logger != container.Logger() {
		t.Error("expected same logger instance on multiple calls")
	}
}

func TestContainerLoggerDefaultLevel(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "invalid"})

	if container.Logger() == nil {
		t.Fatal("expected non-nil logger")
	}
}

// TestContainerInitializationErrors verifies that a failed initialization is remembered.
func TestContainerInitializationErrors(t *testing.T) {
	container := NewContainer(&config.Config{DBDriver: "invalid_driver"})

	_, err1 := container.DB()
	if err1 == nil {
		t.Fatal("expected error with invalid database driver")
	}

	_, err2 := container.DB()
	if err2 == nil {
		t.Fatal("expected error on second call")
	}

	if err1.Error() != err2.Error() {
		t.Error("expected same error on subsequent calls")
	}

	if _, err := container.IdentifierUseCase(); err == nil {
		t.Error("expected identifier use case to fail without a database")
	}
}

func TestContainerMemoryStoreRequiresMemoryDriver(t *testing.T) {
	container := NewContainer(&config.Config{DBDriver: config.DriverPostgres})

	if _, err := container.MemoryStore(); err == nil {
		t.Error("expected error when the memory store is requested for postgres")
	}
}

// TestContainerSharesTxManager verifies that every repository of the memory
// driver is bound to the transaction manager the use cases run in.
func TestContainerSharesTxManager(t *testing.T) {
	container := NewContainer(newMemoryConfig())

	store, err := container.MemoryStore()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	txManager, err := container.TxManager()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if txManager != store {
		t.Error("expected the tx manager to be the memory store")
	}

	checker, err := container.HealthChecker()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := checker.PingContext(context.Background()); err != nil {
		t.Errorf("unexpected ping error: %v", err)
	}
}

func TestContainerLazyInitialization(t *testing.T) {
	container := NewContainer(newMemoryConfig())

	first, err := container.RecoveryUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := container.RecoveryUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("expected same recovery use case instance on multiple calls")
	}
}

func TestContainerMetricsDisabled(t *testing.T) {
	cfg := newMemoryConfig()
	cfg.MetricsEnabled = false
	container := NewContainer(cfg)

	server, err := container.MetricsServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server != nil {
		t.Error("expected no metrics server when metrics are disabled")
	}

	if _, err := container.BusinessMetrics(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestContainerUnsupportedPublisher(t *testing.T) {
	cfg := newMemoryConfig()
	cfg.EventPublisher = "carrier-pigeon"
	container := NewContainer(cfg)

	if _, err := container.EventDispatcher(); err == nil {
		t.Error("expected error for an unsupported event publisher")
	}
}

func TestContainerBootstrap(t *testing.T) {
	ctx := context.Background()
	container := NewContainer(newMemoryConfig())

	if err := container.Bootstrap(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A second start keeps the recorded owner.
	if err := container.Bootstrap(ctx); err != nil {
		t.Fatalf("unexpected error on second bootstrap: %v", err)
	}

	ownership, err := container.OwnershipUseCase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, registry := range ownershipDomain.Registries {
		owner, err := ownership.Owner(ctx, registry)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if owner != principal.Principal("registry-owner") {
			t.Errorf("expected registry-owner to own %s, got %q", registry, owner)
		}
	}
}

func TestContainerBootstrapWithoutOwner(t *testing.T) {
	cfg := newMemoryConfig()
	cfg.OwnerPrincipal = ""
	container := NewContainer(cfg)

	if err := container.Bootstrap(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestContainerShutdown verifies that shutdown succeeds on a fully wired container.
func TestContainerShutdown(t *testing.T) {
	container := NewContainer(newMemoryConfig())

	if _, err := container.HTTPServer(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := container.EventDispatcher(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := container.Shutdown(ctx); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestContainerShutdownWithoutInitialization(t *testing.T) {
	container := NewContainer(&config.Config{})

	if err := container.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}
