// Package cli provides the interactive MedKeeper command-line client.
//
// The App is a small screen state machine driven by a REPL:
//
//	LOGIN      login, signup, help, exit
//	SIGNUP     signup, login, help, exit
//	INVENTORY  list, search <term>, expiring, add, edit <id>, delete <id>,
//	           logout, help, exit
//
// On start the stored session is restored; a confirmed session opens the
// INVENTORY screen directly. Any call that finds the session expired tears
// it down and returns to LOGIN with a notice.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
