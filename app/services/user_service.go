package services

import (
	"errors"
	"fmt"

	"inkwell/app/models"
	"inkwell/app/repositories"

	"github.com/gofrs/uuid/v5"
)

const minPasswordLen = 8

// UserService handles registration, login sessions and the admin user
// management panel.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new active author account.
func (s *UserService) Register(username, email, password string) (*models.User, error) {
	if len(password) < minPasswordLen {
		return nil, validationErrorf("password must be at least %d characters", minPasswordLen)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleAuthor,
		Active:   true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.BeforeCreate()

	if err := user.Validate(); err != nil {
		return nil, validationErrorf("invalid user: %v", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, wrapRepoErr("register", err)
	}
	return user, nil
}

// Login verifies credentials and opens a session, returning its token.
// Deactivated accounts cannot log in.
func (s *UserService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrUnauthorized
		}
		return "", nil, wrapRepoErr("login", err)
	}

	if !user.CheckPassword(password) {
		return "", nil, ErrUnauthorized
	}
	if !user.Active {
		return "", nil, ErrForbidden
	}

	token, err := uuid.NewV4()
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}
	if err := s.userRepo.CreateSession(token.String(), user.ID); err != nil {
		return "", nil, wrapRepoErr("login", err)
	}
	return token.String(), user, nil
}

// Logout closes the session identified by token. Unknown tokens are a no-op.
func (s *UserService) Logout(token string) error {
	if err := s.userRepo.DeleteSession(token); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return wrapRepoErr("logout", err)
	}
	return nil
}

// CurrentUser resolves a session token to its user. Sessions of
// deactivated users resolve to ErrUnauthorized.
func (s *UserService) CurrentUser(token string) (*models.User, error) {
	userID, err := s.userRepo.GetSession(token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, wrapRepoErr("current user", err)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, wrapRepoErr("current user", err)
	}
	if !user.Active {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// ListUsers returns all accounts. Admin only.
func (s *UserService) ListUsers(callerRole string) ([]*models.User, error) {
	if callerRole != models.RoleAdmin {
		return nil, ErrForbidden
	}
	users, err := s.userRepo.List()
	if err != nil {
		return nil, wrapRepoErr("list users", err)
	}
	return users, nil
}

// SetUserActive flips an account's active flag. Admin only; admins cannot
// deactivate themselves.
func (s *UserService) SetUserActive(id int, active bool, callerID int, callerRole string) (*models.User, error) {
	user, err := s.adminTarget(id, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	user.Active = active
	if err := s.userRepo.Update(user); err != nil {
		return nil, wrapRepoErr("set user active", err)
	}
	return user, nil
}

// SetUserRole changes an account's role. Admin only; admins cannot change
// their own role.
func (s *UserService) SetUserRole(id int, role string, callerID int, callerRole string) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleAuthor {
		return nil, validationErrorf("invalid role %q", role)
	}

	user, err := s.adminTarget(id, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, wrapRepoErr("set user role", err)
	}
	return user, nil
}

// DeleteUser removes an account. Admin only; admins cannot delete
// themselves.
func (s *UserService) DeleteUser(id int, callerID int, callerRole string) error {
	if _, err := s.adminTarget(id, callerID, callerRole); err != nil {
		return err
	}
	if err := s.userRepo.Delete(id); err != nil {
		return wrapRepoErr("delete user", err)
	}
	return nil
}

// EnsureAdmin creates the initial admin account if no account holds the
// given email yet. Used at startup for seeding.
func (s *UserService) EnsureAdmin(username, email, password string) error {
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return wrapRepoErr("ensure admin", err)
	}

	admin := &models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleAdmin,
		Active:   true,
	}
	if err := admin.SetPassword(password); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	admin.BeforeCreate()

	if err := admin.Validate(); err != nil {
		return validationErrorf("invalid admin account: %v", err)
	}
	return wrapRepoErrNil("ensure admin", s.userRepo.Create(admin))
}

func (s *UserService) adminTarget(id, callerID int, callerRole string) (*models.User, error) {
	if callerRole != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if id == callerID {
		return nil, validationErrorf("cannot modify your own account")
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, wrapRepoErr("manage user", err)
	}
	return user, nil
}

func wrapRepoErrNil(op string, err error) error {
	if err == nil {
		return nil
	}
	return wrapRepoErr(op, err)
}
