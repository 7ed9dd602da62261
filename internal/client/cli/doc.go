// Package cli provides the interactive Qourio command-line client.
//
// It wires configuration, the local session store, the REST API services and
// an interactive REPL. Commands are gated by the same role guards the web
// client uses: anonymous users see the auth commands, signed-in users see the
// command set of their role.
//
// Key features:
//   - Login / Register / OTP verification / Logout
//   - Role-scoped parcel lists with paging, sorting, filtering and search
//   - Parcel lifecycle: create, cancel, confirm delivery, status updates
//   - Public tracking with the status timeline and estimated delivery
//   - Admin: user management, staff accounts, coupons, parcel analytics
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
