package container

import (
	"context"
	"fmt"
	"sync"

	config "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Config"
	logger "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Logger"
	store "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Store"
)

// Container manages dependencies and their lifecycle
type Container struct {
	config  *config.Config
	logger  *logger.Logger
	history *store.History

	// Mutex for thread-safe access
	mu sync.RWMutex

	// Cleanup functions
	cleanupFuncs []func() error
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	log := logger.NewLogger(&cfg.Logging)

	return &Container{
		config:  cfg,
		logger:  log,
		history: store.NewHistory(cfg.History.Cap),
	}, nil
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.logger
}

// GetHistory returns the shared reading history
func (c *Container) GetHistory() *store.History {
	return c.history
}

// RegisterCleanup registers a function to run during shutdown
func (c *Container) RegisterCleanup(fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
}

// Shutdown runs registered cleanup functions in reverse order
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for i := len(c.cleanupFuncs) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := c.cleanupFuncs[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
