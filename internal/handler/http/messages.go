package http

import (
	"errors"

	"github.com/MKhiriev/expense-tracker/internal/validators"
)

// Flash texts shown to the user.
const (
	msgSignedIn           = "Successfully signed in!"
	msgSignedOut          = "Logged out successfully"
	msgInvalidCredentials = "Invalid username or password."
	msgSignInFailed       = "An error occurred during sign-in."
	msgLoginFailed        = "Login failed. Please try again."
	msgSignInRequired     = "Please sign in to continue."
	msgAccountCreated     = "Account created successfully"
	msgAlreadyTaken       = "Username or email is already taken."
	msgNoOAuthEmail       = "Your Google account did not share an email address."

	msgOTPSent          = "If an account with that email exists, an OTP has been sent."
	msgOTPSendFailed    = "We could not send the code. Please try again later."
	msgOTPInvalid       = "Invalid OTP or OTP expired. Please try again."
	msgVerifyFirst      = "Please verify your code first."
	msgPasswordsDiffer  = "Passwords do not match. Please try again."
	msgPasswordReset    = "Password has been set successfully. Please sign in."
	msgPasswordChanged  = "Password has been changed"
	msgWrongPassword    = "Current password is incorrect."
	msgChangePassFailed = "An error occurred while changing the password"

	msgProfileUpdated   = "Profile updated successfully"
	msgAvatarUpdated    = "Avatar updated successfully"
	msgAvatarFailed     = "Something went wrong while uploading the avatar."
	msgAvatarMissing    = "Please choose an image to upload."
	msgAccountDeleted   = "Account deleted successfully"
	msgAccountNotDelete = "Your account could not be deleted. Please try again."

	msgExpenseCreated = "Expense created successfully"
	msgExpenseUpdated = "Expense updated successfully"
	msgExpenseDeleted = "Expense deleted successfully"

	msgFieldsRequired = "All fields are required"
)

var validationMessages = []struct {
	err     error
	message string
}{
	{validators.ErrInvalidUsername, "Username must be 3 to 20 characters long."},
	{validators.ErrInvalidEmail, "Please enter a valid email address."},
	{validators.ErrEmptyLogin, "Please enter your username or email."},
	{validators.ErrEmptyPassword, "Password is required."},
	{validators.ErrEmptyAvatar, msgAvatarMissing},
	{validators.ErrInvalidAvatarType, "Only JPG, PNG or GIF images are allowed."},
	{validators.ErrAvatarTooLarge, "The image must not be larger than 5 MB."},
	{validators.ErrEmptyTitle, "Title is required."},
	{validators.ErrTitleTooLong, "Title must be at most 100 characters long."},
	{validators.ErrCategoryTooLong, "Category must be at most 50 characters long."},
	{validators.ErrNoteTooLong, "Note must be at most 500 characters long."},
	{validators.ErrInvalidAmount, "Amount must be a positive number with at most two decimals."},
	{validators.ErrInvalidSpentDate, "Please pick a valid date."},
}

// validationMessage returns the text for the first validation error found
// in err's chain.
func validationMessage(err error) string {
	for _, m := range validationMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return msgFieldsRequired
}
