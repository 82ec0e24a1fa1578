package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	appnotify "github.com/lite-lake/ipsync/internal/application/notify"
	appplugin "github.com/lite-lake/ipsync/internal/application/plugin"
	"github.com/lite-lake/ipsync/internal/application/publish"
	"github.com/lite-lake/ipsync/internal/application/reconcile"
	"github.com/lite-lake/ipsync/internal/application/source"
	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/repository"
	"github.com/lite-lake/ipsync/internal/infrastructure/dns"
	"github.com/lite-lake/ipsync/internal/infrastructure/dnscheck"
	"github.com/lite-lake/ipsync/internal/infrastructure/liststore"
	"github.com/lite-lake/ipsync/internal/infrastructure/logger"
	"github.com/lite-lake/ipsync/internal/infrastructure/metrics"
	infranotify "github.com/lite-lake/ipsync/internal/infrastructure/notify"
	"github.com/lite-lake/ipsync/internal/infrastructure/persistence"
	infraplugin "github.com/lite-lake/ipsync/internal/infrastructure/plugin"
	"github.com/lite-lake/ipsync/internal/infrastructure/prober"
	"github.com/lite-lake/ipsync/internal/infrastructure/secrets"
	"github.com/lite-lake/ipsync/internal/infrastructure/ssh"
	"github.com/lite-lake/ipsync/internal/infrastructure/state"
)

// Workflow loads one configuration file and assembles the runner for it.
type Workflow struct {
	configPath string
	loader     repository.ConfigLoader
	sshPool    *ssh.Pool
}

func NewWorkflow(configPath string) *Workflow {
	return &Workflow{
		configPath: configPath,
		loader:     persistence.NewConfigLoader(),
		sshPool:    ssh.NewPool(),
	}
}

// Close releases the SSH connections opened by runners of this workflow.
func (w *Workflow) Close() error {
	return w.sshPool.CloseAll()
}

func (w *Workflow) ConfigPath() string { return w.configPath }

func (w *Workflow) LoadConfig(ctx context.Context) (*entity.Config, error) {
	cfg, err := w.loader.Load(ctx, w.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (w *Workflow) LoadAndValidate(ctx context.Context) (*entity.Config, error) {
	cfg, err := w.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.loader.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (w *Workflow) ResolveSecrets(cfg *entity.Config) (*secrets.SecretResolver, error) {
	resolver := secrets.NewSecretResolver(cfg.Secrets)
	if err := resolver.ResolveAll(cfg); err != nil {
		return nil, fmt.Errorf("resolve secrets: %w", err)
	}
	return resolver, nil
}

// NewRunner wires the production adapters for cfg.
func (w *Workflow) NewRunner(cfg *entity.Config, resolver *secrets.SecretResolver) (*Runner, error) {
	pluginRunner, err := newPluginRunner(cfg.Plugin, resolver, w.sshPool)
	if err != nil {
		return nil, err
	}

	providers := dns.NewFactory()
	reconcilers := func(account *entity.Account) (RecordReconciler, error) {
		creds, err := resolver.Credentials(account)
		if err != nil {
			return nil, err
		}
		provider, err := providers.Create(account, creds)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", account.Name, err)
		}
		return reconcile.NewReconciler(&reconcile.Config{Provider: provider}), nil
	}

	publisher := publish.NewPublisher(cfg.ListPublishers, func(pub *entity.ListPublisher) (contract.ListStore, error) {
		return liststore.New(pub, resolver.Resolve, nil, w.sshPool)
	})

	runnerCfg := &RunnerConfig{
		Config: cfg,
		Lock:   state.NewFileLock(filepath.Dir(w.configPath)),
		Source: source.NewResolver(&source.Config{
			Prober:  prober.NewExecRunner(cfg.Prober.BinaryOrDefault(), cfg.Prober.WorkDir),
			WorkDir: cfg.Prober.WorkDir,
		}),
		Plugin:      appplugin.NewController(cfg.Plugin, pluginRunner, nil),
		Reconcilers: reconcilers,
		Notifier: appnotify.NewDispatcher(&appnotify.Config{
			Channels:  cfg.Push,
			Senders:   infranotify.NewFactory(resolver.Resolve, nil),
			Publisher: publisher,
		}),
	}
	if cfg.Verify.Enabled() {
		runnerCfg.Verifier = dnscheck.New(cfg.Verify.Nameserver, cfg.Verify.TimeoutOrDefault())
	}
	if cfg.Metrics.Enabled() {
		recorder := metrics.NewRecorder()
		logger.AddObserver(recorder.Observe)
		runnerCfg.Metrics = recorder
	}
	return NewRunner(runnerCfg), nil
}

func newPluginRunner(p *entity.Plugin, resolver *secrets.SecretResolver, pool *ssh.Pool) (contract.ServiceRunner, error) {
	if p == nil || p.SSH == nil {
		return infraplugin.NewLocalRunner(), nil
	}
	password, err := resolver.Resolve(p.SSH.Password)
	if err != nil {
		return nil, fmt.Errorf("plugin.ssh.password: %w", err)
	}
	return infraplugin.NewRemoteRunner(infraplugin.SSHDialer(pool, ssh.Config{
		Host:       p.SSH.Host,
		Port:       p.SSH.PortOrDefault(),
		User:       p.SSH.User,
		Password:   password,
		KnownHosts: p.SSH.KnownHosts,
	})), nil
}
