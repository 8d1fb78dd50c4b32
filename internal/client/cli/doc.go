// Package cli provides the interactive matcheat command-line client.
//
// It wires configuration, the HTTP API client and a REPL. Typical flow:
// register or log in, then manage the account and the shared home.
//
// Key features:
//   - Register / Login / Logout / Whoami
//   - Change handle, email, password, image and settings
//   - Delete the account
//   - Create, join and leave a home
//   - Upload an image through a presigned URL
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// A background watcher pings the server and flips App.Mode between online
// and offline.
package cli
