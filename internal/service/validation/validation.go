package validation

import "regexp"

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]{1,28}[a-zA-Z0-9]$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	passwordRe = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_+=-]{8,64}$`)
)

func ValidateUsername(username string) bool {
	return usernameRe.MatchString(username)
}

func ValidateEmail(email string) bool {
	return len(email) <= 100 && emailRe.MatchString(email)
}

func ValidatePassword(password string) bool {
	return passwordRe.MatchString(password)
}
