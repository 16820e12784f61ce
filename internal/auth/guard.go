package auth

// RequireSignedIn lets signed-in sessions through. Anonymous sessions get the
// sign-in flash and an ErrAuthRequired; callers redirect home before doing
// anything else.
func RequireSignedIn(session *Session) error {
	if session.SignedIn() {
		return nil
	}
	if session != nil {
		session.SetFlash(MessageAuthRequired)
	}
	return authRequiredError()
}

// SignIn attaches username to the session.
func SignIn(session *Session, username string) {
	session.User = username
	session.SetFlash(MessageWelcome)
}

// SignOut detaches the user from the session.
func SignOut(session *Session) {
	session.User = ""
	session.SetFlash(MessageSignedOut)
}
