// Package credentials turns a username and password into the token the
// record store expects in a Basic Authorization header.
//
// The client only ever re-transmits the token; decoding is the store's job.
package credentials

import "encoding/base64"

const scheme = "Basic "

// Encode returns base64("username:password") using the standard alphabet.
// Empty values are allowed; the store rejects them.
func Encode(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// Header returns the Authorization header value for token.
func Header(token string) string {
	return scheme + token
}
