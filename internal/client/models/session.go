package models

// SessionStatus is the authentication state of the client.
type SessionStatus string

const (
	StatusAnonymous     SessionStatus = "ANONYMOUS"
	StatusAuthenticated SessionStatus = "AUTHENTICATED"
	// StatusExpired is transient: the store rejected the credentials and the
	// session is being torn down.
	StatusExpired SessionStatus = "EXPIRED"
)

// Session is the current authentication context. Token is the encoded
// Basic credential and is set only while authenticated.
type Session struct {
	Username string
	Token    string
	Status   SessionStatus
}

// AnonymousSession is the zero state: nobody logged in.
func AnonymousSession() Session {
	return Session{Status: StatusAnonymous}
}

func (s Session) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated && s.Token != ""
}

// StoredCredentials is what survives a restart. The JSON names match the
// "user" record the web client keeps in browser storage.
type StoredCredentials struct {
	Username string `json:"username"`
	Token    string `json:"authdata"`
}
