package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername = errors.New("username must be between 3 and 20 characters")
	ErrInvalidEmail    = errors.New("please fill a valid email address")
	ErrEmptyLogin      = errors.New("username or email is required")
	ErrEmptyPassword   = errors.New("password is required")

	ErrEmptyAvatar       = errors.New("no image was uploaded")
	ErrInvalidAvatarType = errors.New("only jpg, jpeg, png and gif images are allowed")
	ErrAvatarTooLarge    = errors.New("image must not exceed 5 MB")

	ErrEmptyTitle       = errors.New("title is required")
	ErrTitleTooLong     = errors.New("title must not exceed 100 characters")
	ErrCategoryTooLong  = errors.New("category must not exceed 50 characters")
	ErrNoteTooLong      = errors.New("note must not exceed 500 characters")
	ErrInvalidAmount    = errors.New("amount must be a positive number with at most two decimals")
	ErrInvalidSpentDate = errors.New("date is required")
)
