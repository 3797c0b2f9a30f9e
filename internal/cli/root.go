package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

func (a *App) getStatus() string {
	sess := a.auth.Session()
	if sess == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", sess.Principal.Name)
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to dukabook (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "duka %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "setup":
			a.setup(ctx)
		case "login":
			a.login(ctx)
		case "biologin":
			a.bioLogin(ctx)
		case "logout":
			a.logout()
		case "whoami", "status":
			a.whoami(ctx)
		case "biometric":
			a.biometricToggle(ctx, args)
		case "reset":
			a.resetCredential(ctx)
		case "shop":
			a.shop(ctx, args)
		case "addproduct":
			a.addProduct(ctx)
		case "products":
			a.listProducts(ctx)
		case "sell":
			a.sell(ctx)
		case "sales":
			a.listSales(ctx)
		case "expense":
			a.addExpense(ctx)
		case "expenses":
			a.listExpenses(ctx)
		case "addcustomer":
			a.addCustomer(ctx)
		case "customers":
			a.listCustomers(ctx)
		case "link":
			a.link(args)
		case "sync":
			a.syncNow(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: shop, addproduct, products, sell, sales,")
		fmt.Fprintln(a.out, "  expense, expenses, addcustomer, customers, link, sync,")
		fmt.Fprintln(a.out, "  whoami, biometric on|off, logout, reset, exit")
		return
	}
	fmt.Fprintln(a.out, "Available commands: setup, login, biologin, status, exit")
}

func (a *App) printError(err error) {
	color.New(color.FgRed).Fprintln(a.out, "error:", err)
}

func (a *App) printOK(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(a.out, format+"\n", args...)
}
