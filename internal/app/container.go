package app

import (
	"context"

	"github.com/doeshing/shrc/internal/application/activate"
	"github.com/doeshing/shrc/internal/application/doctor"
	"github.com/doeshing/shrc/internal/infrastructure/compcache"
	"github.com/doeshing/shrc/internal/infrastructure/config"
	"github.com/doeshing/shrc/internal/infrastructure/emit"
	"github.com/doeshing/shrc/internal/infrastructure/promptengine"
	"github.com/doeshing/shrc/internal/infrastructure/security"
	"github.com/doeshing/shrc/internal/infrastructure/sessionlog"
	"github.com/doeshing/shrc/internal/infrastructure/shell"
	"github.com/doeshing/shrc/internal/infrastructure/term"
	"github.com/doeshing/shrc/internal/infrastructure/toolprobe"
	"github.com/doeshing/shrc/internal/pkg/logger"
	"github.com/doeshing/shrc/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	ActivateService *activate.Service
	DoctorService   *doctor.Service
	ConfigProvider  ports.ConfigProvider
	ConfigLoader    *config.FileLoader
	ShellIntegrator ports.ShellIntegrator
	SessionStore    ports.SessionStore
	CacheManager    *compcache.Manager
	Emitter         ports.ScriptEmitter
	Logger          ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(verbose)
	prober := toolprobe.New()
	collector := term.NewCollector()
	cacheManager := compcache.NewManager(cfg.Completion)
	auditor := security.NewAuditor()
	sessionStore := sessionlog.NewSQLiteStore()
	shellInstaller := shell.NewInstaller(log)

	activateService := &activate.Service{
		ConfigProvider: cfgLoader,
		Environment:    collector,
		Prober:         prober,
		PromptEngines:  promptengine.NewFactory(),
		Cache:          cacheManager,
		Auditor:        auditor,
		Sessions:       sessionStore,
		Logger:         log,
	}

	doctorService := &doctor.Service{
		ConfigProvider:  cfgLoader,
		ShellIntegrator: shellInstaller,
		Prober:          prober,
		Cache:           cacheManager,
		Auditor:         auditor,
		Sessions:        sessionStore,
	}

	return &Container{
		ActivateService: activateService,
		DoctorService:   doctorService,
		ConfigProvider:  cfgLoader,
		ConfigLoader:    cfgLoader,
		ShellIntegrator: shellInstaller,
		SessionStore:    sessionStore,
		CacheManager:    cacheManager,
		Emitter:         emit.New(),
		Logger:          log,
	}, nil
}
