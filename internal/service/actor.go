package service

// Actor identifies the authenticated account behind a request. A zero Actor
// means the request is anonymous.
type Actor struct {
	ID   string
	Tipo string
}

// Authenticated reports whether the actor carries an identity.
func (a Actor) Authenticated() bool {
	return a.ID != ""
}
