// Package cli provides the interactive study planner command-line client.
//
// It wires configuration, the local session store and the API client into
// a REPL. The session survives restarts, so a user stays logged in until
// they run logout or the refresh token expires.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
