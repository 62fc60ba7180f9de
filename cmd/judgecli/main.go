// judgecli is a terminal client for the online judge: browse problems,
// submit solutions and watch grading results arrive live.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/seongmin-dev/OnlineJudgeClient/internal/api"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/config"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/credstore"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/gateway"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/roles"
	"github.com/seongmin-dev/OnlineJudgeClient/internal/session"
)

const usage = `usage: judgecli <command> [flags]

commands:
  login      --username --password
  register   --username --password --confirm
  logout
  whoami
  problems
  problem    <id>
  submit     <problem-id> <source-file> --language C|CPP|PYTHON|JAVA
  history    [--watch]
`

// app bundles the wired-up client stack handed to each command.
type app struct {
	cfg     config.Config
	client  *api.Client
	session *session.Controller
	roles   *roles.Resolver
}

func newApp() *app {
	cfg := config.LoadConfig()

	gw := gateway.NewGateway(cfg.BaseURL)
	client := api.NewClient(gw)
	store := credstore.NewStore(cfg.CredentialFile)
	ctrl := session.NewController(store, gw, client)

	resolver := roles.NewResolver(client)
	ctrl.OnChange(resolver.IdentityChanged)
	resolver.IdentityChanged(ctrl.Current())

	return &app{cfg: cfg, client: client, session: ctrl, roles: resolver}
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	ctx := context.Background()
	a := newApp()

	switch args[0] {
	case "login":
		return a.cmdLogin(ctx, args[1:])
	case "register":
		return a.cmdRegister(ctx, args[1:])
	case "logout":
		a.session.Logout()
		return nil
	case "whoami":
		return a.cmdWhoami(ctx)
	case "problems":
		return a.cmdProblems(ctx)
	case "problem":
		return a.cmdProblem(ctx, args[1:])
	case "submit":
		return a.cmdSubmit(ctx, args[1:])
	case "history":
		return a.cmdHistory(ctx, args[1:])
	case "help", "--help", "-h":
		fmt.Print(usage)
		return nil
	}

	return fmt.Errorf("unknown command %q", args[0])
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	username := fs.String("username", "", "account name")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.session.Login(ctx, *username, *password); err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", *username)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("register", pflag.ContinueOnError)
	username := fs.String("username", "", "account name")
	password := fs.String("password", "", "account password")
	confirm := fs.String("confirm", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.session.Register(ctx, *username, *password, *confirm); err != nil {
		return err
	}
	fmt.Printf("registered and logged in as %s\n", *username)
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	identity := a.session.Current()
	if identity == nil {
		fmt.Println("not logged in")
		return nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	admin, err := a.roles.Await(waitCtx)
	if err != nil {
		// Conservative default, same as a failed lookup.
		admin = false
	}

	fmt.Printf("%s", identity.Username)
	if admin {
		fmt.Print(" (admin)")
	}
	fmt.Println()
	return nil
}
