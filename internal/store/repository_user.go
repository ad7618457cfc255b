package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It works against the "users" table through a [DBTX], so the same code runs
// on the pool and inside a transaction.
type userRepository struct {
	logger *logger.Logger
	db     DBTX
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db DBTX, logger *logger.Logger) UserRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var otp sql.NullInt64
	var otpExpiry sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Avatar.FileID,
		&user.Avatar.URL,
		&user.Avatar.ThumbnailURL,
		&otp,
		&otpExpiry,
		&user.OTPAttempts,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if otp.Valid {
		code := int(otp.Int64)
		user.OTP = &code
	}
	if otpExpiry.Valid {
		expiry := otpExpiry.Time
		user.OTPExpiry = &expiry
	}

	return user, nil
}

// userError maps driver errors to repository sentinels. Ids are uuid
// columns, so a malformed id from a URL is reported as not found.
func userError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrUserNotFound
	}

	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrUserAlreadyExists
	case pgerrcode.InvalidTextRepresentation:
		return ErrUserNotFound
	default:
		return fmt.Errorf("unexpected DB error: %w", err)
	}
}

// CreateUser persists a new user record and returns the canonical database
// representation of it.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, userError(err)
	}

	return created, nil
}

// CreateExternalUser inserts user unless the email is already taken. On an
// email conflict nothing is written and created is false; the caller re-reads
// the existing row. A username conflict is still reported as
// [ErrUserAlreadyExists].
func (r *userRepository) CreateExternalUser(ctx context.Context, user models.User) (models.User, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertExternalUserQuery(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateExternalUser").Msg("failed to build query")
		return models.User{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug().Str("func", "*userRepository.CreateExternalUser").Msg("email already registered, insert skipped")
		return models.User{}, false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateExternalUser").Msg("error inserting user")
		return models.User{}, false, userError(err)
	}

	return created, true, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findUserBy(ctx, "id", userID)
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUserBy(ctx, "username", username)
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUserBy(ctx, "email", email)
}

func (r *userRepository) findUserBy(ctx context.Context, column string, value string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(ctx, column, value)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUserBy").Str("column", column).Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		err = userError(err)
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", "*userRepository.findUserBy").Str("column", column).Msg("error selecting user")
		}
		return models.User{}, err
	}

	return user, nil
}

// UpdateProfile writes exactly the username and email columns.
func (r *userRepository) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProfileQuery(ctx, userID, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Str("user_id", userID).Msg("error updating profile")
		return models.User{}, userError(err)
	}

	return user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query, args, err := buildUpdatePasswordQuery(ctx, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingUser(ctx, "*userRepository.UpdatePassword", userID, query, args)
}

func (r *userRepository) UpdateAvatar(ctx context.Context, userID string, avatar models.Avatar) error {
	query, args, err := buildUpdateAvatarQuery(ctx, userID, avatar)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingUser(ctx, "*userRepository.UpdateAvatar", userID, query, args)
}

// SetOTP stores a new recovery code, replacing any previous one, and resets
// the failure counter.
func (r *userRepository) SetOTP(ctx context.Context, userID string, otp int, expiry time.Time) error {
	query, args, err := buildSetOTPQuery(ctx, userID, otp, expiry)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingUser(ctx, "*userRepository.SetOTP", userID, query, args)
}

func (r *userRepository) RegisterFailedOTPAttempt(ctx context.Context, userID string, maxAttempts int) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFailedOTPAttemptQuery(ctx, userID, maxAttempts)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var attempts int
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&attempts); err != nil {
		err = userError(err)
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", "*userRepository.RegisterFailedOTPAttempt").Str("user_id", userID).Msg("error counting failed attempt")
		}
		return 0, err
	}

	return attempts, nil
}

// ResetPasswordWithOTP returns [ErrOTPNotMatched] when no row still holds
// otp with an expiry after now.
func (r *userRepository) ResetPasswordWithOTP(ctx context.Context, userID string, otp int, passwordHash string, now time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildResetPasswordWithOTPQuery(ctx, userID, otp, passwordHash, now)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ResetPasswordWithOTP").Str("user_id", userID).Msg("error resetting password")
		return userError(err)
	}
	if affected == 0 {
		return ErrOTPNotMatched
	}

	return nil
}

func (r *userRepository) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildClearExpiredOTPsQuery(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ClearExpiredOTPs").Msg("error clearing expired otps")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	query, args, err := buildDeleteUserQuery(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingUser(ctx, "*userRepository.DeleteUser", userID, query, args)
}

// execAffectingUser runs a statement that must touch exactly the row of
// userID; zero affected rows means the user does not exist.
func (r *userRepository) execAffectingUser(ctx context.Context, funcName, userID, query string, args []any) error {
	log := logger.FromContext(ctx)

	affected, err := r.exec(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", funcName).Str("user_id", userID).Msg("error executing statement")
		return userError(err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) exec(ctx context.Context, query string, args []any) (int64, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
