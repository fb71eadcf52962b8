package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/fintrack/infra/initializer"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/money"
	"github.com/fatih/color"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  register <email> <name>   create a user (password is prompted)
  seed-categories           insert the default categories
  wallets <email>           list a user's wallets and total balance`

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	errColor   = color.New(color.FgRed, color.Bold)
	titleColor = color.New(color.FgCyan, color.Bold)
	negColor   = color.New(color.FgRed)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}
	if err := run(context.Background(), os.Args[1:]); err != nil {
		errColor.Fprintln(os.Stderr, "Error:", err) //nolint:errcheck
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	deps, cleanup, err := initializer.InitializeDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	a := app.New(deps, cfg)

	switch args[0] {
	case "register":
		if len(args) < 3 {
			return errors.New("usage: register <email> <name>")
		}
		password, err := readPassword(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		return register(ctx, a, os.Stdout, args[1], strings.Join(args[2:], " "), password)
	case "seed-categories":
		return seedCategories(ctx, a, os.Stdout)
	case "wallets":
		if len(args) < 2 {
			return errors.New("usage: wallets <email>")
		}
		return listWallets(ctx, a, os.Stdout, args[1])
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

// readPassword prompts without echo on a terminal and reads a line otherwise.
func readPassword(in *os.File, out io.Writer) (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	fmt.Fprint(out, "Password: ") //nolint:errcheck
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(out) //nolint:errcheck
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func register(ctx context.Context, a *app.App, out io.Writer, email, name, password string) error {
	u, err := a.UserService.CreateUser(ctx, email, name, password)
	if err != nil {
		return err
	}
	okColor.Fprintf(out, "User created: %s <%s> id=%s\n", u.Name, u.Email, u.ID) //nolint:errcheck
	return nil
}

func seedCategories(ctx context.Context, a *app.App, out io.Writer) error {
	cs, err := a.CategoryService.SeedDefaults(ctx)
	if err != nil {
		return err
	}
	okColor.Fprintf(out, "Seeded %d categories\n", len(cs)) //nolint:errcheck
	return nil
}

func listWallets(ctx context.Context, a *app.App, out io.Writer, email string) error {
	u, err := a.UserService.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	wallets, err := a.WalletService.List(ctx, u.ID)
	if err != nil {
		return err
	}
	total, err := a.WalletService.TotalBalance(ctx, u.ID)
	if err != nil {
		return err
	}

	titleColor.Fprintf(out, "Wallets of %s\n", u.Email) //nolint:errcheck
	for _, w := range wallets {
		fmt.Fprintf(out, "  %-20s ", w.Name) //nolint:errcheck
		c := okColor
		if w.Balance.IsNegative() {
			c = negColor
		}
		c.Fprintf(out, "%15s\n", money.Format(w.Balance)) //nolint:errcheck
	}
	titleColor.Fprintf(out, "  %-20s %15s\n", "Total", money.Format(total)) //nolint:errcheck
	return nil
}
