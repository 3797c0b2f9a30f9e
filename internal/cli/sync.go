package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
)

// link installs the account token used to authenticate against the sync
// server. The token comes from the account page of the companion web app.
func (a *App) link(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: link <account-token>")
		return
	}
	a.remote.SetToken(args[0])
	a.printOK("Account linked. Run 'sync' to push pending changes.")
}

func (a *App) syncNow(ctx context.Context) {
	sess := a.sessions.Get(ctx)
	if sess == nil {
		a.printError(errors.New("not logged in"))
		return
	}

	report, err := a.sync.RunOnce(ctx, sess.Principal)
	if err != nil {
		a.printError(err)
		return
	}

	a.printOK("Synced: %d pushed, %d skipped, %d failed, %d remaining",
		report.Pushed, report.Skipped, report.Failed, report.Remaining)

	if len(report.Conflicts) > 0 {
		warn := color.New(color.FgYellow)
		warn.Fprintf(a.out, "%d conflict(s) resolved:\n", len(report.Conflicts))
		for _, c := range report.Conflicts {
			warn.Fprintf(a.out, "  %s/%s: %s\n", c.Table, c.RecordID, c.Type)
		}
	}
}
