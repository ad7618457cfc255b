package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/expense-tracker/internal/adapter"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/internal/utils"
	"github.com/MKhiriev/expense-tracker/internal/validators"
	"github.com/MKhiriev/expense-tracker/models"
)

type accountService struct {
	transactor        store.Transactor
	userRepository    store.UserRepository
	expenseRepository store.ExpenseRepository
	assets            adapter.AssetStore
	validator         validators.Validator

	logger *logger.Logger
}

func NewAccountService(
	transactor store.Transactor,
	userRepository store.UserRepository,
	expenseRepository store.ExpenseRepository,
	assets adapter.AssetStore,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		transactor:        transactor,
		userRepository:    userRepository,
		expenseRepository: expenseRepository,
		assets:            assets,
		validator:         validators.NewAccountValidator(),
		logger:            logger,
	}
}

// Profile returns the user together with the ids of the expenses they own.
func (s *accountService) Profile(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*accountService.Profile").Str("user_id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	user.ExpenseIDs, err = s.expenseRepository.ListExpenseIDs(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*accountService.Profile").Str("user_id", userID).Msg("listing expense ids failed")
		return models.User{}, fmt.Errorf("listing expense ids failed: %w", err)
	}

	return user, nil
}

// UpdateProfile writes the username and email only. A taken username or
// email yields store.ErrUserAlreadyExists.
func (s *accountService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	update.Username = validators.NormalizeUsername(update.Username)
	update.Email = validators.NormalizeEmail(update.Email)

	if err := s.validator.Validate(ctx, update); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := s.userRepository.UpdateProfile(ctx, userID, update)
	if err != nil {
		log.Err(err).Str("func", "*accountService.UpdateProfile").Str("user_id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return user, nil
}

// UpdateAvatar uploads the new image, then records it and removes the
// previous remote image inside one transaction. If anything after the
// upload fails, the transaction is rolled back and the new upload removed,
// so the stored avatar always points at an existing object.
func (s *accountService) UpdateAvatar(ctx context.Context, userID string, upload models.AvatarUpload) (models.Avatar, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, upload); err != nil {
		return models.Avatar{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	asset, err := s.assets.Upload(ctx, userID, upload)
	if err != nil {
		log.Err(err).Str("func", "*accountService.UpdateAvatar").Str("user_id", userID).Msg("avatar upload failed")
		return models.Avatar{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	avatar := asset.Avatar()

	previousDeleted := false
	err = s.transactor.Transact(ctx, func(ctx context.Context, repos store.Repositories) error {
		user, err := repos.Users.FindUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if err = repos.Users.UpdateAvatar(ctx, userID, avatar); err != nil {
			return err
		}
		if user.Avatar.IsDefault() {
			return nil
		}
		if err = s.assets.Delete(ctx, user.Avatar.FileID); err != nil {
			return fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		previousDeleted = true
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*accountService.UpdateAvatar").Str("user_id", userID).Msg("avatar replacement failed")
		if previousDeleted {
			s.resetAvatar(ctx, userID)
		}
		if delErr := s.assets.Delete(ctx, asset.FileID); delErr != nil {
			log.Err(delErr).Str("func", "*accountService.UpdateAvatar").Str("file_id", asset.FileID).Msg("orphaned avatar could not be removed")
		}
		return models.Avatar{}, fmt.Errorf("avatar replacement failed: %w", err)
	}

	return avatar, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *accountService) ChangePassword(ctx context.Context, userID string, change models.PasswordChange) error {
	log := logger.FromContext(ctx)

	if change.NewPassword != change.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if err := s.validator.Validate(ctx, change); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*accountService.ChangePassword").Str("user_id", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	ok, err := utils.CheckPassword(user.PasswordHash, change.OldPassword)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}

	passwordHash, err := utils.HashPassword(change.NewPassword)
	if err != nil {
		log.Err(err).Str("func", "*accountService.ChangePassword").Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err = s.userRepository.UpdatePassword(ctx, userID, passwordHash); err != nil {
		log.Err(err).Str("func", "*accountService.ChangePassword").Str("user_id", userID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// DeleteAccount removes the user's expenses, the user row and the remote
// avatar in one transaction. The remote delete runs last, so its failure
// rolls the database changes back.
func (s *accountService) DeleteAccount(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	avatarDeleted := false
	err := s.transactor.Transact(ctx, func(ctx context.Context, repos store.Repositories) error {
		user, err := repos.Users.FindUserByID(ctx, userID)
		if err != nil {
			return err
		}

		deleted, err := repos.Expenses.DeleteUserExpenses(ctx, userID)
		if err != nil {
			return err
		}
		log.Debug().Str("func", "*accountService.DeleteAccount").Int64("expenses", deleted).Msg("expenses removed")

		if err = repos.Users.DeleteUser(ctx, userID); err != nil {
			return err
		}

		if user.Avatar.IsDefault() {
			return nil
		}
		if err = s.assets.Delete(ctx, user.Avatar.FileID); err != nil {
			return fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		avatarDeleted = true
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*accountService.DeleteAccount").Str("user_id", userID).Msg("account deletion failed")
		if avatarDeleted {
			s.resetAvatar(ctx, userID)
		}
		return fmt.Errorf("account deletion failed: %w", err)
	}

	log.Info().Str("func", "*accountService.DeleteAccount").Str("user_id", userID).Msg("account deleted")
	return nil
}

// resetAvatar points the user back at the placeholder image. It runs when a
// remote avatar was deleted inside a transaction that then failed to
// commit, so the restored row would reference a missing object.
func (s *accountService) resetAvatar(ctx context.Context, userID string) {
	if err := s.userRepository.UpdateAvatar(ctx, userID, models.DefaultAvatar()); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accountService.resetAvatar").Str("user_id", userID).
			Msg("avatar still references a deleted object")
	}
}
