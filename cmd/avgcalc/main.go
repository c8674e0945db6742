// Command avgcalc calculadora de precio promedio y login contra el servicio de autenticación.
//
// Uso:
//
//	avgcalc forward  --old-price 10000 --old-qty 10 --new-price 8000 --new-qty 10
//	avgcalc reverse  --current-avg 10000 --current-qty 10 --target-avg 9000 --buy-price 8000
//	avgcalc evaluate --avg-price 10000 --qty 10 --current-price 12000
//	avgcalc login    --user admin --password admin123 [--remember] [--server URL]
//	avgcalc whoami
//	avgcalc logout
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jhoicas/Promedio-api/internal/application/auth"
	"github.com/jhoicas/Promedio-api/internal/application/calculator"
	"github.com/jhoicas/Promedio-api/internal/application/dto"
	"github.com/jhoicas/Promedio-api/internal/application/ports"
	"github.com/jhoicas/Promedio-api/internal/infrastructure/authapi"
	"github.com/jhoicas/Promedio-api/internal/infrastructure/tokenstore"
	"github.com/jhoicas/Promedio-api/pkg/config"
	"github.com/jhoicas/Promedio-api/pkg/jwt"
	"github.com/jhoicas/Promedio-api/pkg/logger"
	"github.com/jhoicas/Promedio-api/pkg/numfmt"
)

const usage = `uso: avgcalc <comando> [flags]

comandos:
  forward   nuevo precio promedio tras una compra
  reverse   cantidad a comprar para alcanzar un promedio objetivo
  evaluate  valoración de una posición a precio actual
  login     iniciar sesión y guardar el token
  whoami    usuario del token guardado
  logout    borrar el token guardado
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app dependencias compartidas por los subcomandos.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	calc   *calculator.CalculatorUseCase
	stores ports.TokenStores
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Output: stderr})

	a := &app{
		cfg: cfg,
		log: log,
		calc: calculator.NewCalculatorUseCase(numfmt.New(cfg.Display.Locale), calculator.Units{
			Price:    cfg.Display.PriceUnit,
			Quantity: cfg.Display.QuantityUnit,
		}, nil, log),
		stores: ports.TokenStores{
			Durable: tokenstore.NewFileStore(cfg.CLI.TokenFile),
			Session: tokenstore.NewMemoryStore(),
		},
		stdout: stdout,
		stderr: stderr,
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case dto.ModeForward, dto.ModeReverse, dto.ModeEvaluate:
		err = a.calculate(cmd, rest)
	case "login":
		err = a.login(ctx, rest)
	case "whoami":
		err = a.whoami()
	case "logout":
		err = a.logout()
	default:
		fmt.Fprintf(stderr, "comando desconocido %q\n\n%s", cmd, usage)
		return 2
	}
	if errors.Is(err, flag.ErrHelp) {
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) calculate(mode string, args []string) error {
	fs := flag.NewFlagSet(mode, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	form := dto.CalculatorForm{Mode: mode}
	switch mode {
	case dto.ModeForward:
		fs.StringVar(&form.OldPrice, "old-price", "", "precio promedio actual")
		fs.StringVar(&form.OldQuantity, "old-qty", "", "cantidad actual")
		fs.StringVar(&form.NewPrice, "new-price", "", "precio de compra")
		fs.StringVar(&form.NewQuantity, "new-qty", "", "cantidad a comprar")
	case dto.ModeReverse:
		fs.StringVar(&form.CurrentAvg, "current-avg", "", "precio promedio actual")
		fs.StringVar(&form.CurrentQuantity, "current-qty", "", "cantidad actual")
		fs.StringVar(&form.TargetAvg, "target-avg", "", "precio promedio objetivo")
		fs.StringVar(&form.BuyPrice, "buy-price", "", "precio de compra")
	case dto.ModeEvaluate:
		fs.StringVar(&form.AvgPrice, "avg-price", "", "precio promedio")
		fs.StringVar(&form.Quantity, "qty", "", "cantidad")
		fs.StringVar(&form.CurrentPrice, "current-price", "", "precio actual")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.calc.Calculate(form)
	if err != nil {
		return err
	}
	for _, f := range res.Results {
		fmt.Fprintf(a.stdout, "%-26s %s\n", f.Label+":", f.Formatted)
	}
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	server := fs.String("server", a.cfg.Auth.APIURL, "URL base del servicio de autenticación")
	user := fs.String("user", "", "usuario")
	password := fs.String("password", "", "contraseña")
	remember := fs.Bool("remember", false, "guardar el token en "+a.cfg.CLI.TokenFile)
	if err := fs.Parse(args); err != nil {
		return err
	}

	uc := auth.NewLoginUseCase(authapi.NewClient(*server, a.cfg.Auth.Timeout), auth.LoginConfig{}, a.log)
	res, err := uc.Login(ctx, dto.LoginRequest{Username: *user, Password: *password, Remember: *remember}, a.stores)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%s (%s)\n", res.Message, res.Username)
	if res.Durable {
		fmt.Fprintf(a.stdout, "token guardado en %s\n", a.cfg.CLI.TokenFile)
		return nil
	}
	// El almacén de sesión muere con el proceso: se muestra el token una vez.
	tok, err := a.stores.Session.Load()
	if err != nil {
		return err
	}
	if tok != "" {
		fmt.Fprintf(a.stdout, "token de sesión (no se guarda): %s\n", tok)
	}
	return nil
}

func (a *app) whoami() error {
	tok, err := auth.CurrentToken(a.stores)
	if err != nil {
		return err
	}
	if tok == "" {
		return errors.New("sin sesión: ejecute avgcalc login --remember")
	}
	name, ok := jwt.PeekUsername(tok)
	if !ok {
		name = "usuario"
	}
	fmt.Fprintln(a.stdout, strings.TrimSpace(name))
	return nil
}

func (a *app) logout() error {
	if err := auth.Logout(a.stores); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, auth.MsgLoggedOut)
	return nil
}
