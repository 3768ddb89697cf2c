package cli

import (
	"io"
	"os"

	"github.com/okuren/tt/internal/config"
	"github.com/okuren/tt/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services
	Services *service.Services

	Config config.Config
}

// DefaultDeps creates a new Deps wired to the standard streams. The
// configuration file and the store are only touched by Init, so building
// deps (including at package init) performs no I/O.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		Exit:   os.Exit,
		Config: config.DefaultConfig(),
	}
}

// Init loads the configuration file and opens the store. Without an
// override it is a no-op once services are wired; a non-empty dbOverride
// forces a rebuild against that database path.
func (d *Deps) Init(dbOverride string) error {
	if dbOverride == "" && d.Services != nil {
		return nil
	}

	cfg := config.DefaultConfig()
	if configPath, err := config.GetConfigPath(); err == nil {
		loaded, err := config.LoadOrDefault(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if dbOverride != "" {
		cfg.DB = dbOverride
	}

	services, err := service.NewServices(cfg)
	if err != nil {
		return err
	}
	d.Services = services
	d.Config = cfg
	return nil
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services, cfg config.Config) *Deps {
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Services: services,
		Config:   cfg,
	}
}

// Global deps instance for CLI
var deps = DefaultDeps()

// SetDeps sets the global deps (for testing)
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets to default deps
func ResetDeps() {
	deps = DefaultDeps()
}

// GetDeps returns the current deps
func GetDeps() *Deps {
	return deps
}
