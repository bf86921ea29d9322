// gymctl manages the member roster of a running gym-api from a terminal.
//
// It keeps a roster over the API's member endpoints and follows the same
// contract as the server-side one: every change is sent to the API and the
// whole list is fetched again afterwards.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/gimnasio/gym-system/internal/core/domain"
	"github.com/gimnasio/gym-system/internal/core/service"
	"github.com/gimnasio/gym-system/internal/core/validation"
	"github.com/gimnasio/gym-system/internal/infrastructure/directory"
	"github.com/gimnasio/gym-system/pkg/logger"
)

const (
	defaultAPI = "http://localhost:8080"
	cliUserID  = "gymctl"
)

func main() {
	log := logger.Init(logger.Options{
		Level:   "warn",
		Pretty:  true,
		Service: "gymctl",
		Output:  os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Getenv, os.Stdout, log); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "gymctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, getenv func(string) string, out io.Writer, log zerolog.Logger) error {
	var (
		apiURL       string
		token        string
		estado       string
		requirePhone bool
	)

	flagSet := pflag.NewFlagSet("gymctl", pflag.ContinueOnError)
	flagSet.SetOutput(out)
	flagSet.StringVar(&apiURL, "api", envOr(getenv, "GYM_API_URL", defaultAPI), "base URL of gym-api (env GYM_API_URL)")
	flagSet.StringVar(&token, "token", getenv("GYM_API_TOKEN"), "bearer token from /auth/login (env GYM_API_TOKEN)")
	flagSet.StringVarP(&estado, "estado", "e", string(domain.StatusTodos), "status filter for list and search: Activo, Inactivo or Todos")
	flagSet.BoolVar(&requirePhone, "require-phone", false, "reject new members without telefono")
	flagSet.Usage = func() { printUsage(out, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(out, flagSet)
		return errors.New("missing command")
	}
	if token == "" {
		return errors.New("a token is required: pass --token or set GYM_API_TOKEN")
	}

	status := domain.SocioStatus(estado)
	if status != domain.StatusTodos && !status.IsValid() {
		return fmt.Errorf("invalid --estado %q", estado)
	}

	client := directory.NewClient(apiURL, token, nil)
	session := domain.NewSession(domain.Identity{UserID: cliUserID}, time.Now().UTC())
	roster := service.NewRoster(client, session, log)

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "list":
		if err := load(ctx, roster); err != nil {
			return err
		}
		printSocios(out, roster.Search("", status))
		return nil

	case "search":
		if len(cmdArgs) == 0 {
			return errors.New("usage: gymctl search TEXT")
		}
		if err := load(ctx, roster); err != nil {
			return err
		}
		printSocios(out, roster.Search(strings.Join(cmdArgs, " "), status))
		return nil

	case "stats":
		if err := load(ctx, roster); err != nil {
			return err
		}
		printStats(out, roster.Stats(), roster.TierBreakdown())
		return nil

	case "add":
		form := validation.NewForm(validation.NewSocioValidator(validation.Rules{RequirePhone: requirePhone}))
		for _, kv := range cmdArgs {
			field, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("expected field=value, got %q", kv)
			}
			if err := form.Set(field, value); err != nil {
				return err
			}
		}
		if res := form.Submit(); !res.Valid {
			printFieldErrors(out, res.Errors)
			return errors.New("the member form has errors")
		}
		res := roster.Add(ctx, form.Draft.Socio())
		if !res.Success {
			return errors.New(res.Error)
		}
		fmt.Fprintf(out, "socio creado: %s\n", res.ID)
		return nil

	case "remove":
		if len(cmdArgs) != 1 {
			return errors.New("usage: gymctl remove ID")
		}
		res := roster.Remove(ctx, cmdArgs[0])
		if !res.Success {
			return errors.New(res.Error)
		}
		fmt.Fprintf(out, "socio eliminado: %s\n", res.ID)
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func load(ctx context.Context, r *service.Roster) error {
	if res := r.Load(ctx); !res.Success {
		return errors.New(res.Error)
	}
	return nil
}

func printSocios(out io.Writer, socios []domain.Socio) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tEMAIL\tTELEFONO\tMEMBRESIA\tESTADO")
	for _, s := range socios {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.DisplayName(), s.Email, s.Telefono, s.TipoMembresia, s.Estado)
	}
	_ = tw.Flush()
	fmt.Fprintf(out, "%d socio(s)\n", len(socios))
}

func printStats(out io.Writer, st domain.Stats, tiers map[domain.MembershipTier]int) {
	fmt.Fprintf(out, "Total:     %d\n", st.Total)
	fmt.Fprintf(out, "Activos:   %d (%d%%)\n", st.Activos, st.PorcentajeActivos)
	fmt.Fprintf(out, "Inactivos: %d\n", st.Inactivos)
	for _, t := range domain.Tiers {
		fmt.Fprintf(out, "  %-8s %d\n", t, tiers[t])
	}
}

func printFieldErrors(out io.Writer, errs validation.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(out, "  %s: %s\n", f, errs[f].Message)
	}
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func printUsage(out io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(out, `gymctl manages the member roster of a running gym-api.

Usage:
  gymctl [flags] list
  gymctl [flags] search TEXT
  gymctl [flags] stats
  gymctl [flags] add nombre=NAME email=EMAIL [telefono=PHONE] [tipoMembresia=TIER] ...
  gymctl [flags] remove ID

Flags:
`)
	fmt.Fprint(out, flagSet.FlagUsages())
}
