package cli

import (
	"context"
	"fmt"
)

func (a *App) setup(ctx context.Context) {
	set, err := a.auth.IsSetUp(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	if set {
		fmt.Fprintln(a.out, "Already set up. Use 'login'.")
		return
	}

	name, err := GetSimpleText(a.reader, "Your name", a.out)
	if err != nil {
		a.printError(err)
		return
	}
	password, err := GetPassword("Choose a password", a.out)
	if err != nil {
		a.printError(err)
		return
	}

	principal, err := a.auth.Setup(ctx, name, string(password), false)
	if err != nil {
		a.printError(err)
		return
	}
	a.sessions.Invalidate()
	a.printOK("Welcome, %s. Your shop data stays on this device until you sync.", principal.Name)
}

func (a *App) login(ctx context.Context) {
	password, err := GetPassword("Password", a.out)
	if err != nil {
		a.printError(err)
		return
	}
	principal, err := a.auth.VerifyPassword(ctx, string(password))
	if err != nil {
		a.printError(err)
		return
	}
	a.sessions.Invalidate()
	a.printOK("Logged in as %s", principal.Name)
}

func (a *App) bioLogin(ctx context.Context) {
	principal, err := a.auth.VerifyBiometric(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	a.sessions.Invalidate()
	a.printOK("Logged in as %s", principal.Name)
}

func (a *App) logout() {
	a.auth.Logout()
	a.sessions.Invalidate()
	fmt.Fprintln(a.out, "Logged out.")
}

func (a *App) whoami(ctx context.Context) {
	state, err := a.auth.State(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintln(a.out, "State:", state.Kind)
	if state.Principal != nil {
		fmt.Fprintln(a.out, "Principal:", state.Principal.Name)
		if state.Principal.IsPremium {
			fmt.Fprintln(a.out, "Plan: premium (sync enabled)")
		} else {
			fmt.Fprintln(a.out, "Plan: free (local only)")
		}
	}
}

func (a *App) biometricToggle(ctx context.Context, args []string) {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		fmt.Fprintln(a.out, "Usage: biometric on|off")
		return
	}
	if err := a.auth.SetBiometricEnabled(ctx, args[0] == "on"); err != nil {
		a.printError(err)
		return
	}
	a.printOK("Biometric unlock turned %s", args[0])
}

func (a *App) resetCredential(ctx context.Context) {
	answer, err := GetSimpleText(a.reader, "Type 'reset' to delete the local credential. Business records stay.", a.out)
	if err != nil || answer != "reset" {
		fmt.Fprintln(a.out, "Cancelled.")
		return
	}
	if err := a.auth.Reset(ctx); err != nil {
		a.printError(err)
		return
	}
	a.sessions.Invalidate()
	fmt.Fprintln(a.out, "Credential removed. Run 'setup' to start again.")
}
