// Package signup validates account-creation input before submission.
package signup

import "regexp"

// Field error messages, shown next to the offending input.
const (
	MsgUsernameRequired = "Username is required"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Invalid email format"
	MsgPasswordRequired = "Password is required"
	MsgPasswordTooShort = "Password must be at least 6 characters"
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// Errors maps a field name ("username", "email", "password") to a
// human-readable validation message. A missing key means the field is valid.
type Errors map[string]string

// Valid reports whether no field has an error.
func (e Errors) Valid() bool { return len(e) == 0 }

// Validate checks all three fields independently, so every invalid field
// is reported at once. It never touches the network; submission is gated
// on the result being Valid.
func Validate(username, email, password string) Errors {
	errs := Errors{}

	if username == "" {
		errs["username"] = MsgUsernameRequired
	}

	switch {
	case email == "":
		errs["email"] = MsgEmailRequired
	case !emailPattern.MatchString(email):
		errs["email"] = MsgEmailInvalid
	}

	switch {
	case password == "":
		errs["password"] = MsgPasswordRequired
	case len(password) < minPasswordLen:
		errs["password"] = MsgPasswordTooShort
	}

	return errs
}
