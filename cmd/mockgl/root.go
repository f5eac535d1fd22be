package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/mockgl"
	"github.com/wippyai/mockgl/config"
	"github.com/wippyai/mockgl/diag"
	"github.com/wippyai/mockgl/errors"
	"github.com/wippyai/mockgl/version"
)

// rootOptions holds the global flags and the configuration they resolve to.
type rootOptions struct {
	cfg *config.Config
	log *zap.Logger

	configPath string
	profile    string
	glVersion  string
	extensions []string
	policy     string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "mockgl",
		Short: "Emulated buffer-object context",
		Long: `mockgl emulates the buffer-object subset of a graphics API context.

Calls are validated against the configured version and extensions, object
state is tracked per handle and bind target, and every violation is
reported through the diagnostics policy.

Configuration is read from --config (TOML), then MOCKGL_* environment
variables, then the flags below.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	f.StringVar(&opts.profile, "profile", "", "API profile (desktop|es)")
	f.StringVar(&opts.glVersion, "gl-version", "", "API version, e.g. 3.3")
	f.StringSliceVar(&opts.extensions, "ext", nil, "extra extensions, e.g. ARB_direct_state_access")
	f.StringVar(&opts.policy, "policy", "", "diagnostics policy (panic-early|panic-on-finalize|do-not-panic)")
	f.StringVar(&opts.logLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(newProcsCommand(opts))
	cmd.AddCommand(newScenarioCommand(opts))
	cmd.AddCommand(newExecCommand(opts))
	cmd.AddCommand(newReplCommand(opts))

	return cmd
}

func (o *rootOptions) load() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return commandError("load configuration", err)
	}
	if o.profile != "" {
		cfg.Context.Profile = o.profile
	}
	if o.glVersion != "" {
		cfg.Context.Version = o.glVersion
	}
	if len(o.extensions) > 0 {
		cfg.Context.Extensions = append(cfg.Context.Extensions, o.extensions...)
	}
	if o.policy != "" {
		cfg.Diagnostics.Policy = o.policy
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return commandError("invalid configuration", err)
	}

	log, err := cfg.Logger()
	if err != nil {
		return commandError("build logger", err)
	}
	diag.SetLogger(log)
	o.cfg, o.log = cfg, log
	return nil
}

func (o *rootOptions) version() (*version.Version, error) {
	return o.cfg.Version()
}

// begin opens a context under the resolved configuration.
func (o *rootOptions) begin() (c *mockgl.Context, err error) {
	v, err := o.cfg.Version()
	if err != nil {
		return nil, commandError("version", err)
	}
	p, err := o.cfg.Policy()
	if err != nil {
		return nil, commandError("policy", err)
	}

	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*errors.Error)
			if !ok {
				panic(r)
			}
			err = commandError("begin context", e)
		}
	}()
	return mockgl.Begin(v, p, mockgl.WithLogger(o.log)), nil
}

// finalize closes c and returns the condition finalize raised, if any.
func finalize(c *mockgl.Context) (failed *errors.Error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*errors.Error)
			if !ok {
				panic(r)
			}
			failed = e
		}
	}()
	c.Finalize()
	return nil
}
