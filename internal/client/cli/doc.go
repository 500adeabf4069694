// Package cli provides the interactive SafeTrace command-line client.
//
// It wires configuration, the selected store backend and the vault
// controller behind a small REPL. The CLI plays the identity collaborator:
// "signin" names the user whose vault is opened and "signout" ends the
// session, wiping the master secret.
//
// Key features:
//   - Set the master password (hidden prompt)
//   - Add / edit / delete password, card and note records
//   - List records and show one with sensitive fields masked until revealed
//   - Copy a decrypted field to the clipboard
//   - Generate passwords and score their strength
//
// With the remote backend a background watcher pings the server and the
// prompt shows whether it is reachable.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
