package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Virgo-SSS/Ternakku/internal/client/api"
	"github.com/Virgo-SSS/Ternakku/internal/client/viewmodel"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	apiURL       string
	token        string
	refreshToken string
	timeout      time.Duration
	yes          bool

	client *api.Client
	ui     *terminal
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "farmctl",
		Short:         "Cliente de terminal para la API de Ternakku",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.connect()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.apiURL, "api-url", envOr("TERNAKKU_API_URL", "http://localhost:8080"), "URL base de la API")
	pf.StringVar(&a.token, "token", os.Getenv("TERNAKKU_TOKEN"), "access token")
	pf.StringVar(&a.refreshToken, "refresh-token", os.Getenv("TERNAKKU_REFRESH_TOKEN"), "refresh token")
	pf.DurationVar(&a.timeout, "timeout", api.DefaultTimeout, "timeout por request")
	pf.BoolVarP(&a.yes, "yes", "y", false, "no pedir confirmación al borrar")

	root.AddCommand(
		a.cowCmd(),
		a.workerCmd(),
		a.transactionCmd(),
		a.profileCmd(),
	)
	return root
}

func (a *app) connect() error {
	c, err := api.New(api.NewSession(a.token, a.refreshToken), api.Options{
		BaseURL: a.apiURL,
		Timeout: a.timeout,
	})
	if err != nil {
		return err
	}
	a.client = c
	a.ui = &terminal{in: a.in, out: a.out, errOut: a.errOut, assumeYes: a.yes}
	return nil
}

// navigator resuelve las rutas de la app web a listados en la terminal.
func (a *app) navigator(ctx context.Context) viewmodel.Navigator {
	return &navigator{ctx: ctx, routes: map[string]func(context.Context) error{
		viewmodel.PathCows:         func(ctx context.Context) error { return a.listCows(ctx, nil) },
		viewmodel.PathWorkers:      func(ctx context.Context) error { return a.listWorkers(ctx, nil) },
		viewmodel.PathTransactions: func(ctx context.Context) error { return a.listTransactions(ctx, nil) },
	}}
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
}

// shownError: el usuario ya vio el mensaje en el diálogo de error.
type shownError struct{ err error }

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return &shownError{err: err}
}

// dateFilter arma birth_date / transaction_date desde --from/--to.
func dateFilter(from, to string) (string, error) {
	if from == "" && to == "" {
		return "", nil
	}
	if from == "" {
		from, to = to, ""
	}
	start, err := time.Parse(query.DateLayout, from)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", from)
	}
	var end time.Time
	if to != "" {
		if end, err = time.Parse(query.DateLayout, to); err != nil {
			return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", to)
		}
	}
	return viewmodel.EncodeDateRange(start, end), nil
}

// patchFrom arma el body de un PATCH con los flags que vinieron en la línea
// de comandos; keys mapea flag -> campo JSON.
func patchFrom(cmd *cobra.Command, keys map[string]string) (map[string]any, error) {
	out := map[string]any{}
	var err error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := keys[f.Name]
		if !ok || err != nil {
			return
		}
		if f.Value.Type() == "float64" {
			v, perr := strconv.ParseFloat(f.Value.String(), 64)
			if perr != nil {
				err = perr
				return
			}
			out[key] = v
			return
		}
		out[key] = f.Value.String()
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("nothing to update")
	}
	return out, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
