package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/carlosrabelo/portlabel/application/services"
	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/infrastructure/config"
	"github.com/carlosrabelo/portlabel/infrastructure/logging"
	"github.com/carlosrabelo/portlabel/infrastructure/report"
	"github.com/carlosrabelo/portlabel/infrastructure/snmp"
	"github.com/carlosrabelo/portlabel/infrastructure/table"
	"github.com/carlosrabelo/portlabel/infrastructure/transport"
	"github.com/carlosrabelo/portlabel/platform"
)

// eventBuffer bounds how far the worker may run ahead of the renderer.
const eventBuffer = 64

type applyOptions struct {
	target         string
	username       string
	password       string
	enablePassword string
	file           string
	configPath     string
	sheet          string
	encoding       string
	platform       string
	protocols      []string
	verbose        int
	logJSON        bool
	reportPath     string
	verify         bool
}

// promptPassword reads a secret from the terminal without echo.
var promptPassword = func(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(secret), nil
}

type runner interface {
	Run(req services.RunRequest) (*entities.Summary, error)
}

func newApplyCmd() *cobra.Command {
	o := &applyOptions{}
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the descriptions listed in a table",
		Long: `Apply reads the change table, negotiates a session with the switch and
sets one description per row. Rows missing an interface or a description
are skipped. Each processed row gets "Success" or the failure text in its
status column, then the device configuration is saved.

  portlabel apply --target 10.0.0.1 --username admin --file ports.xlsx
  portlabel apply --target sw-core --file ports.csv --platform dmos --verify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.target, "target", "t", "", "switch address (required)")
	f.StringVarP(&o.username, "username", "u", "", "login username")
	f.StringVarP(&o.password, "password", "p", "", "login password (prompted when omitted on a terminal)")
	f.StringVar(&o.enablePassword, "enable-password", "", "privileged mode secret (defaults to the login password)")
	f.StringVarP(&o.file, "file", "f", "", "XLSX or CSV change table (required)")
	f.StringVarP(&o.configPath, "config", "c", "", "YAML configuration file")
	f.StringVar(&o.sheet, "sheet", "", "worksheet name (default: active sheet)")
	f.StringVar(&o.encoding, "encoding", "", "CSV character set, e.g. windows-1252")
	f.StringVar(&o.platform, "platform", "", "switch platform: "+strings.Join(platform.Names(), ", "))
	f.StringSliceVar(&o.protocols, "protocols", nil, "ordered transports to try (default ssh,telnet)")
	f.IntVarP(&o.verbose, "verbose", "v", 0, "verbosity: 0=info, 1=debug logs, 2=raw switch output, 3=debug+raw output")
	f.BoolVar(&o.logJSON, "log-json", false, "emit logs as JSON")
	f.StringVar(&o.reportPath, "report", "", "write a JSON run report to this file")
	f.BoolVar(&o.verify, "verify", false, "read descriptions back over SNMP after applying")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (o *applyOptions) run(out io.Writer) error {
	if o.verbose < 0 || o.verbose > 3 {
		return fmt.Errorf("--verbose must be 0, 1, 2, or 3")
	}
	logging.SetVerbosity(o.verbose)
	if o.logJSON {
		logging.SetJSONFormat()
	}

	cfg, path, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return err
	}
	if path != "" {
		logging.Logger.Debugf("Configuration loaded from %s", path)
	}

	req, err := o.request(cfg)
	if err != nil {
		return err
	}

	tableOpts := table.Options{Sheet: cfg.Table.Sheet, Encoding: cfg.Table.Encoding}
	if o.sheet != "" {
		tableOpts.Sheet = o.sheet
	}
	if o.encoding != "" {
		tableOpts.Encoding = o.encoding
	}

	var opts []services.Option
	if req.Verify {
		opts = append(opts, services.WithVerifier(snmp.NewVerifier(snmp.Settings{
			Community: cfg.SNMP.Community,
			Port:      cfg.SNMP.Port,
			Version:   cfg.SNMP.Version,
			Timeout:   cfg.SNMP.Timeout,
		})))
	}
	if o.reportPath != "" {
		opts = append(opts, services.WithReportWriter(report.NewJSONWriter(o.reportPath)))
	}

	svc := services.NewDescriptionApplicationService(table.NewOpener(tableOpts), transport.NewOpener(), opts...)
	return execute(out, svc, req)
}

// request merges the configuration file with the command-line overrides.
func (o *applyOptions) request(cfg *config.Config) (services.RunRequest, error) {
	sw := cfg.SwitchFor(o.target)
	if o.platform != "" {
		if !platform.IsKnown(o.platform) {
			return services.RunRequest{}, fmt.Errorf("--platform %q is invalid, must be one of: %s", o.platform, strings.Join(platform.Names(), ", "))
		}
		sw.Platform = o.platform
	}
	if o.username != "" {
		sw.Username = o.username
	}
	if o.password != "" {
		sw.Password = o.password
	}
	if o.enablePassword != "" {
		sw.EnablePassword = o.enablePassword
	}
	if len(o.protocols) > 0 {
		sw.Protocols = o.protocols
	}
	sw.VerbosityLevel = o.verbose

	if sw.Password == "" && sw.Username != "" {
		secret, err := promptPassword(fmt.Sprintf("Password for %s@%s: ", sw.Username, sw.Target))
		if err != nil {
			return services.RunRequest{}, err
		}
		sw.Password = secret
	}

	return services.RunRequest{
		Switch:     sw,
		SourcePath: o.file,
		Layout:     cfg.Table.Layout(),
		Verify:     o.verify || cfg.SNMP.Enabled,
	}, nil
}

// execute runs the batch on a worker goroutine while the caller renders its
// events, then prints the terminal summary.
func execute(out io.Writer, svc runner, req services.RunRequest) error {
	sink := services.NewChannelSink(eventBuffer)
	req.Sink = sink

	var summary *entities.Summary
	var g errgroup.Group
	g.Go(func() error {
		defer sink.Close()
		var err error
		summary, err = svc.Run(req)
		return err
	})

	render(out, sink.Events())
	err := g.Wait()

	if summary != nil {
		printSummary(out, summary)
	}
	if err != nil {
		var phase *entities.PhaseError
		if errors.As(err, &phase) && phase.Phase == entities.StateIdle {
			return fmt.Errorf("invalid input: %w", phase.Err)
		}
		return err
	}
	return nil
}

func render(out io.Writer, events <-chan services.Event) {
	for ev := range events {
		switch ev.Kind {
		case services.EventState:
			logging.Logger.Debugf("State: %s", ev.State)
			if ev.State == entities.StateNegotiating {
				fmt.Fprintln(out, "Connecting...")
			}
		case services.EventProgress:
			mark := "✔"
			if !ev.Progress.Outcome.Succeeded() {
				mark = "✖"
			}
			fmt.Fprintf(out, "%s %s [%s]\n", mark, ev.Progress.Line, ev.Progress.Counter())
		}
	}
}

func printSummary(out io.Writer, s *entities.Summary) {
	fmt.Fprintln(out, s.Message())
	if s.State != entities.StateDone {
		return
	}
	if s.Failed > 0 {
		fmt.Fprintf(out, "%d succeeded, %d failed\n", s.Succeeded, s.Failed)
	}
	if !s.ConfigSaved {
		fmt.Fprintln(out, "Warning: device configuration was not saved")
	}
	if len(s.Verification) > 0 {
		matched := 0
		for _, v := range s.Verification {
			if v.Matches() {
				matched++
			}
		}
		fmt.Fprintf(out, "Verified %d/%d descriptions over SNMP\n", matched, len(s.Verification))
	}
}
