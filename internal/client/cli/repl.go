package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rashedul-dev/Qourio-client/internal/client/api"
	"github.com/rashedul-dev/Qourio-client/internal/client/models"
	"github.com/rashedul-dev/Qourio-client/internal/client/nav"
)

const supportContact = "support@qourio.dev"

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s %s) ", a.session.User.Email, a.session.User.Role)
}

// repl is the main read-eval-print loop. Every command runs inside exec,
// which recovers panics into an error screen instead of killing the process.
func (a *App) repl(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Qourio CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "qourio %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(a.out, "Bye!")
			return
		}
		if !a.dispatch(ctx, cmd, args) {
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

// dispatch routes one command. It returns false for commands that exist for
// no role at all; role mismatches are handled by the guard inside each
// handler.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "help":
		a.printHelp()
	case "login":
		a.exec(ctx, cmd, a.cmdLogin)
	case "register":
		a.exec(ctx, cmd, a.cmdRegister)
	case "verify":
		a.exec(ctx, cmd, a.cmdVerifyOTP)
	case "forgot":
		a.exec(ctx, cmd, a.cmdForgotPassword)
	case "reset":
		a.exec(ctx, cmd, a.cmdResetPassword)
	case "logout":
		a.exec(ctx, cmd, a.cmdLogout)
	case "whoami":
		a.exec(ctx, cmd, a.cmdWhoami)
	case "passwd":
		a.exec(ctx, cmd, a.cmdChangePassword)
	case "track":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdTrack(ctx, args) })

	case "list", "l":
		a.exec(ctx, cmd, a.cmdList)
	case "parcels":
		a.exec(ctx, cmd, a.cmdParcels)
	case "next", "n":
		a.exec(ctx, cmd, a.cmdNextPage)
	case "prev", "p":
		a.exec(ctx, cmd, a.cmdPrevPage)
	case "sort":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdSort(ctx, args) })
	case "search":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdSearch(ctx, args) })
	case "filter":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdFilter(ctx, args) })
	case "columns":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdColumns(ctx, args) })
	case "limit":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdLimit(ctx, args) })

	case "create":
		a.exec(ctx, cmd, a.cmdCreateParcel)
	case "cancel":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdCancelParcel(ctx, args) })
	case "delete":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdDeleteParcel(ctx, args) })
	case "detail":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdParcelDetail(ctx, args) })
	case "log":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdStatusLog(ctx, args) })
	case "history":
		a.exec(ctx, cmd, a.cmdHistory)
	case "confirm":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdConfirmDelivery(ctx, args) })

	case "profile":
		a.exec(ctx, cmd, a.cmdEditProfile)

	case "users":
		a.exec(ctx, cmd, a.cmdUsers)
	case "edituser":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdEditUser(ctx, args) })
	case "blockuser":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdSetUserActive(ctx, args, models.Blocked) })
	case "unblockuser":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdSetUserActive(ctx, args, models.Active) })
	case "mkadmin":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdCreateStaff(ctx, models.RoleAdmin) })
	case "mkcourier":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdCreateStaff(ctx, models.RoleDeliveryMan) })
	case "status":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdUpdateStatus(ctx, args) })
	case "blockparcel":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdSetParcelBlocked(ctx, args, true) })
	case "unblockparcel":
		a.exec(ctx, cmd, func(ctx context.Context) error { return a.cmdSetParcelBlocked(ctx, args, false) })
	case "stats":
		a.exec(ctx, cmd, a.cmdStats)
	case "coupons":
		a.exec(ctx, cmd, a.cmdCoupons)
	case "newcoupon":
		a.exec(ctx, cmd, a.cmdCreateCoupon)

	default:
		return false
	}
	return true
}

func (a *App) printHelp() {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: login, register, verify, forgot, reset, track <id>, exit")
		return
	}
	for _, section := range nav.SidebarItems(a.role()) {
		fmt.Fprintln(a.out, section.Title+":")
		for _, item := range section.Items {
			fmt.Fprintf(a.out, "  %-22s %s\n", item.Title, item.Route)
		}
	}
	fmt.Fprintln(a.out, "Session: whoami, profile, passwd, logout, exit")
	fmt.Fprintln(a.out, "Lists:   list, next, prev, sort <col>, search [term], filter ..., columns [hide|show <col>], limit <n>")
	fmt.Fprintln(a.out, "         (these act on the active list; 'users' switches to the user table, 'parcels' back)")
	switch a.role() {
	case models.RoleSender:
		fmt.Fprintln(a.out, "Parcels: create, cancel <id>, delete <id>, detail <id>, log <id>, track <id>")
	case models.RoleReceiver:
		fmt.Fprintln(a.out, "Parcels: history, confirm <id>, detail <id>, track <id>")
	case models.RoleAdmin, models.RoleSuperAdmin:
		fmt.Fprintln(a.out, "Parcels: create, status <id>, blockparcel <id>, unblockparcel <id>, detail <id>, log <id>, track <id>")
		fmt.Fprintln(a.out, "Users:   users, filter role|active|verified <v>, edituser <id>, blockuser <id>, unblockuser <id>, mkadmin, mkcourier")
		fmt.Fprintln(a.out, "Admin:   stats, coupons, newcoupon")
	}
}

// exec is the command boundary: a panic inside a handler becomes an error
// screen offering retry, back, or a support hint, never a dead process.
// Ordinary errors print as one-line notifications with the server's message
// when there is one.
func (a *App) exec(ctx context.Context, name string, fn func(ctx context.Context) error) {
	for {
		err := a.runSafely(ctx, name, fn)
		if err == nil {
			return
		}
		if _, panicked := err.(*commandPanic); !panicked {
			fmt.Fprintln(a.out, "Error:", api.ServerMessage(err, err.Error()))
			return
		}

		fmt.Fprintln(a.out, "Something went wrong while running", name+".")
		choice, readErr := GetSimpleText(a.reader, "[r]etry, [b]ack, [s]upport info", a.out)
		if readErr != nil {
			return
		}
		switch strings.ToLower(choice) {
		case "r", "retry":
			continue
		case "s", "support":
			fmt.Fprintln(a.out, "If this keeps happening, contact", supportContact)
			return
		default:
			return
		}
	}
}

// commandPanic marks an error that originated as a panic inside a command.
type commandPanic struct {
	value any
}

func (e *commandPanic) Error() string {
	return fmt.Sprintf("internal error: %v", e.value)
}

func (a *App) runSafely(ctx context.Context, name string, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			a.log.Error(ctx, "command panicked", "command", name, "panic", p)
			err = &commandPanic{value: p}
		}
	}()
	return fn(ctx)
}
