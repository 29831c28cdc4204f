package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"duty-validator/internal/adapter/primary/web"
	"duty-validator/internal/adapter/secondary/repository"
	"duty-validator/internal/adapter/secondary/worksheet"
	"duty-validator/internal/domain"
	"duty-validator/internal/logging"
	"duty-validator/internal/usecase"
)

var (
	cfgPath   string
	verbosity int
)

// NewRootCmd creates the root CLI command.
// This is the primary adapter that translates CLI inputs to use case calls.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duty-validator",
		Short: "Validate a duty period and its breaks",
		Long:  "Checks duty and break times for ordering, containment, overlaps and the legal break requirement.",
	}

	defaultCfg := repository.DefaultPath()
	cmd.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "settings file path")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v, -vv, ... up to 4)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.SetVerbosity(verbosity)
	}

	cmd.AddCommand(
		newValidateCmd(),
		newConfigCmd(),
		newWebCmd(),
		newShellCmd(),
	)

	return cmd
}

func newUseCase() (usecase.ValidationUseCase, error) {
	repo, err := repository.NewFileRepository(cfgPath)
	if err != nil {
		return nil, err
	}
	return usecase.NewValidationUseCase(repo)
}

func newValidateCmd() *cobra.Command {
	var (
		dutyFlag   string
		breakFlags []string
		fileFlag   string
		formatFlag string
		policyFlag string
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a duty and its breaks",
		Example: `  duty-validator validate --duty 08:00-16:00 --break 12:00-12:30
  duty-validator validate --duty 22:00-06:00+1 --break 01:00+1-01:45+1
  duty-validator validate --file sheet.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := domain.NewWorksheet()
			if fileFlag != "" {
				loaded, err := worksheet.NewLoader(nil).Load(fileFlag)
				if err != nil {
					return err
				}
				ws = loaded
			}
			if cmd.Flags().Changed("duty") {
				start, end, err := domain.ParseClockRange(dutyFlag)
				if err != nil {
					return fmt.Errorf("--duty: %w", err)
				}
				ws = ws.WithDuty(domain.Duty{Start: start, End: end})
			}
			ids := worksheet.UUIDGenerator{}
			for _, raw := range breakFlags {
				start, end, err := domain.ParseClockRange(raw)
				if err != nil {
					return fmt.Errorf("--break %s: %w", raw, err)
				}
				if ws, err = ws.AddBreak(domain.Break{ID: ids.NewID(), Start: start, End: end}); err != nil {
					return err
				}
			}

			uc, err := newUseCase()
			if err != nil {
				return err
			}
			err = runValidation(cmd.OutOrStdout(), uc, ws, policyFlag, formatFlag)
			if errors.Is(err, domain.ErrDutyInvalid) {
				cmd.SilenceUsage = true
			}
			return err
		},
	}
	cmd.Flags().StringVar(&dutyFlag, "duty", "08:00-16:00", "duty window START-END, \"+1\" marks the next day")
	cmd.Flags().StringArrayVar(&breakFlags, "break", nil, "break START-END (repeatable)")
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "YAML worksheet file")
	cmd.Flags().StringVar(&formatFlag, "format", formatTable, "output format: table|json")
	cmd.Flags().StringVar(&policyFlag, "policy", "", "legal policy override: stub|break-rule")
	return cmd
}

// runValidation validates ws, prints the report and turns an invalid result into ErrDutyInvalid.
func runValidation(out io.Writer, uc usecase.ValidationUseCase, ws domain.Worksheet, policyFlag, format string) error {
	policy := uc.Settings().LegalPolicy
	var result domain.ValidationResult
	if policyFlag != "" {
		p, err := domain.ParseLegalPolicy(policyFlag)
		if err != nil {
			return err
		}
		if result, err = uc.ValidateWith(ws, p); err != nil {
			return err
		}
		policy = p
	} else {
		result = uc.Validate(ws)
	}

	if err := renderReport(out, format, ws, result, policy); err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("%w: %d issue(s), %d legal issue(s)", domain.ErrDutyInvalid, len(result.Issues), len(result.LegalIssues))
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update settings",
	}
	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the current settings as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repository.NewFileRepository(cfgPath)
			if err != nil {
				return err
			}
			settings, err := repo.Load()
			if err != nil {
				return err
			}

			display := map[string]interface{}{
				"legalPolicy":                string(settings.LegalPolicy),
				"maxDutyWithoutBreakMinutes": settings.MaxDutyWithoutBreak,
				"minBreakMinutes":            settings.MinBreak,
				"path":                       cfgPath,
			}

			out, _ := json.MarshalIndent(display, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var (
		policyFlag   string
		maxDutyFlag  time.Duration
		minBreakFlag time.Duration
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := newUseCase()
			if err != nil {
				return err
			}

			settings := uc.Settings()
			if cmd.Flags().Changed("policy") {
				settings.LegalPolicy = domain.LegalPolicy(policyFlag)
			}
			if cmd.Flags().Changed("max-duty") {
				settings.MaxDutyWithoutBreak = int(maxDutyFlag / time.Minute)
			}
			if cmd.Flags().Changed("min-break") {
				settings.MinBreak = int(minBreakFlag / time.Minute)
			}

			if err := uc.UpdateSettings(settings); err != nil {
				return err
			}

			settings = uc.Settings()
			fmt.Fprintf(cmd.OutOrStdout(), "saved: policy=%s max-duty=%dm min-break=%dm\n",
				settings.LegalPolicy, settings.MaxDutyWithoutBreak, settings.MinBreak)
			return nil
		},
	}
	cmd.Flags().StringVar(&policyFlag, "policy", string(domain.PolicyBreakRule), "legal policy: stub|break-rule")
	cmd.Flags().DurationVar(&maxDutyFlag, "max-duty", domain.DefaultMaxDutyWithoutBreak*time.Minute, "duty length above which a break is required, e.g. 6h")
	cmd.Flags().DurationVar(&minBreakFlag, "min-break", domain.DefaultMinBreak*time.Minute, "minimum qualifying break, e.g. 30m")
	return cmd
}

func newWebCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Start the Web UI and REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := newUseCase()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			srv := web.NewServer(uc, worksheet.UUIDGenerator{}, addr)
			fmt.Printf("Duty Validator Web UI running at http://%s\n", addr)
			logging.Infof("Web UI: http://%s (policy=%s)", addr, uc.Settings().LegalPolicy)

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logging.Warnf("web shutdown: %v", err)
				}
			}()

			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7080", "HTTP listen address host:port")
	return cmd
}
