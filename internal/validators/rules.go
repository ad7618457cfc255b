package validators

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern is the address format accepted at signup and profile update.
var emailPattern = regexp.MustCompile(`^([\w.\-]+@([\w-]+\.)+[\w-]{2,4})$`)

const (
	// "@" is reserved: a login containing it is looked up as an email.
	tagUsername = "required,min=3,max=20,excludesall=@"
	tagEmail    = "required,account_email"
	tagRequired = "required"
	tagTitle    = "max=100"
	tagCategory = "max=50"
	tagNote     = "max=500"
	tagAmount   = "gt=0"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("account_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// check runs the tag rules against value and replaces any failure with
// the sentinel err.
func check(value any, tag string, err error) error {
	if validate.Var(value, tag) != nil {
		return err
	}
	return nil
}

// NormalizeUsername trims surrounding whitespace.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
