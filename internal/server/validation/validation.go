// Package validation checks user-supplied auth and profile input.
// Every failure is an apperror of KindValidation whose message names the
// first rule that was violated.
package validation

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/gophprofile/internal/apperror"
	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	// Whitespace here is the Unicode set: \s alone is ASCII-only.
	emailRe     = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	lowercaseRe = regexp.MustCompile(`[a-z]`)
	uppercaseRe = regexp.MustCompile(`[A-Z]`)
	digitRe     = regexp.MustCompile(`\d`)
)

const (
	MsgCredentialsRequired = "Email and password are required"
	MsgInvalidEmail        = "Invalid email format"
	MsgEmptyName           = "Name cannot be empty"
)

var passwordRules = []validation.Rule{
	validation.RuneLength(8, 0).Error("Password must be at least 8 characters long"),
	validation.Match(lowercaseRe).Error("Password must contain at least one lowercase letter"),
	validation.Match(uppercaseRe).Error("Password must contain at least one uppercase letter"),
	validation.Match(digitRe).Error("Password must contain at least one number"),
}

// Email checks that email looks like local@domain.tld.
func Email(email string) error {
	return check(email, validation.Match(emailRe).Error(MsgInvalidEmail))
}

// Password checks the strength rules in order: length, lowercase,
// uppercase, digit.
func Password(password string) error {
	return check(password, passwordRules...)
}

// Name checks that a supplied name is not blank. nil means "not supplied".
func Name(name *string) error {
	if name == nil {
		return nil
	}
	return check(strings.TrimSpace(*name), validation.Required.Error(MsgEmptyName))
}

func credentials(email, password string) error {
	if email == "" || password == "" {
		return apperror.Validation(MsgCredentialsRequired)
	}
	return Email(email)
}

// Signup validates signup arguments.
func Signup(email, password string, name *string) error {
	if err := credentials(email, password); err != nil {
		return err
	}
	if err := Password(password); err != nil {
		return err
	}
	return Name(name)
}

// Login validates login arguments. Password strength is not checked so
// that accounts created under older rules can still log in.
func Login(email, password string) error {
	return credentials(email, password)
}

// ProfileUpdate validates the supplied fields of a profile update.
func ProfileUpdate(name, email *string) error {
	if email != nil {
		if *email == "" {
			return apperror.Validation(MsgInvalidEmail)
		}
		if err := Email(*email); err != nil {
			return err
		}
	}
	return Name(name)
}

// check applies rules in order and converts the first failure.
func check(value string, rules ...validation.Rule) error {
	for _, r := range rules {
		if err := validation.Validate(value, r); err != nil {
			return apperror.Validation(err.Error())
		}
	}
	return nil
}
