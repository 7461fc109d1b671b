// Package cli provides the interactive gophprofile command-line client.
//
// It wires configuration, the token file, the GraphQL client and a REPL.
// The access token obtained by signup or login is cached on disk and sent as
// a Bearer header by every later command, so a session survives restarts
// until the token expires or the user logs out.
//
// Commands:
//   - signup / login / logout
//   - me, refresh
//   - update (name and/or email), delete (asks for confirmation)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends.
package cli
