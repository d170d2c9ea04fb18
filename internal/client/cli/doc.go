// Package cli provides the interactive NatMan command-line client for the
// Лукоморье park.
//
// It wires configuration, the session store, API services and a REPL in
// which every screen of the park app is a command. On start the session
// gate decides, from the stored token alone, whether the visitor lands in
// the signed-in or the signed-out command set.
//
// Key features:
//   - Login / Register (with automatic login) / Logout
//   - Home dashboard and profile
//   - Statue recognition from an image file
//   - Park map, tickets and QR codes
//   - Listing and creating remote records (games, marks, regions, teams)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
