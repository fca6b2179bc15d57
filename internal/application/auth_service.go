package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inkwellhq/inkwell/internal/domain/entity"
	"github.com/inkwellhq/inkwell/internal/domain/repository"
	"github.com/inkwellhq/inkwell/pkg/apperror"
	"github.com/inkwellhq/inkwell/pkg/googleauth"
	"github.com/inkwellhq/inkwell/pkg/helpers"
	"github.com/inkwellhq/inkwell/pkg/mailer"
	"github.com/inkwellhq/inkwell/pkg/validation"
)

const usernameSuffixLen = 5

// IdentityVerifier validates a third-party identity assertion and returns
// the verified identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*googleauth.Identity, error)
}

// Session is the payload returned after every successful authentication.
type Session struct {
	AccessToken string `json:"access_token"`
	ProfileImg  string `json:"profile_img"`
	Username    string `json:"username"`
	Fullname    string `json:"fullname"`
}

// AuthService reconciles the three credential sources (local password,
// Google identity, bearer sessions) against the single user record.
type AuthService struct {
	Users       repository.UserRepository
	JWT         *helpers.JWTManager
	Google      IdentityVerifier
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	MailEnabled bool
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, google IdentityVerifier, pub *helpers.RabbitPublisher, logger *logrus.Logger, mailEnabled bool) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Google: google, Pub: pub, Logger: logger, MailEnabled: mailEnabled}
}

// SignUp creates a local account. Validation happens before any hashing or
// storage access; the email unique index is the final arbiter of duplicates.
func (s *AuthService) SignUp(ctx context.Context, fullname, email, password string) (*Session, error) {
	if len(fullname) < 3 {
		return nil, apperror.NewInvalidInput("Full name must be at least 3 letters long")
	}
	if email == "" {
		return nil, apperror.NewInvalidInput("Enter email")
	}
	if !validation.EmailRegex.MatchString(email) {
		return nil, apperror.NewInvalidInput("Email is invalid")
	}
	if !validation.ValidPassword(password) {
		return nil, apperror.NewInvalidInput("Password should be 6 to 20 characters long with a numeric, 1 lowercase and 1 uppercase letters")
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, apperror.NewInternal("something went wrong", err)
	}

	username, err := s.allocateUsername(ctx, email)
	if err != nil {
		return nil, apperror.NewInternal("something went wrong", err)
	}

	u := &entity.User{
		FullName:     fullname,
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		GoogleAuth:   false,
		ProfileImg:   defaultAvatar(username),
	}
	if err := s.createUser(ctx, u, localPart(email)); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperror.NewDuplicateAccount("Email already exists", err)
		}
		return nil, apperror.NewInternal("something went wrong", err)
	}

	s.publishWelcome(ctx, u)
	return s.issueSession(u)
}

// SignIn authenticates a local account by email and password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NewNotFound("Email not found")
	}
	if err != nil {
		return nil, apperror.NewInternal("something went wrong", err)
	}
	if u.GoogleAuth {
		return nil, apperror.NewWrongAuthMethod("Account was created using Google. Try logging in with Google")
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return nil, apperror.NewInvalidCredential("Incorrect password")
	}
	return s.issueSession(u)
}

// GoogleAuth verifies a Google ID token and resolves it to an existing or
// new federated account. Repeated logins for the same email resolve to the
// same user and only mint a fresh token.
func (s *AuthService) GoogleAuth(ctx context.Context, idToken string) (*Session, error) {
	ident, err := s.Google.Verify(ctx, idToken)
	if err != nil {
		return nil, apperror.NewFederatedAuthFailed("Failed to authenticate you with Google. Try with some other Google account", err)
	}

	u, err := s.Users.GetByEmail(ctx, ident.Email)
	switch {
	case err == nil:
		if !u.GoogleAuth {
			return nil, apperror.NewWrongAuthMethod("This email was signed up without Google. Please log in with password to access the account")
		}
	case errors.Is(err, repository.ErrNotFound):
		u, err = s.createGoogleUser(ctx, ident)
		if err != nil {
			return nil, err
		}
	default:
		return nil, apperror.NewInternal("something went wrong", err)
	}

	return s.issueSession(u)
}

func (s *AuthService) createGoogleUser(ctx context.Context, ident *googleauth.Identity) (*entity.User, error) {
	username, err := s.allocateUsername(ctx, ident.Email)
	if err != nil {
		return nil, apperror.NewInternal("something went wrong", err)
	}
	profileImg := ident.PictureURL
	if profileImg == "" {
		profileImg = defaultAvatar(username)
	}
	u := &entity.User{
		FullName:   ident.Name,
		Email:      ident.Email,
		Username:   username,
		GoogleAuth: true,
		ProfileImg: profileImg,
	}
	if err := s.createUser(ctx, u, localPart(ident.Email)); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperror.NewDuplicateAccount("Email already exists", err)
		}
		return nil, apperror.NewInternal("something went wrong", err)
	}
	s.publishWelcome(ctx, u)
	return u, nil
}

// allocateUsername derives a handle from the email's local part and appends
// a short random suffix when it is already taken. Single pass; the username
// unique index catches the check-then-create race and createUser retries
// once with a fresh suffix.
func (s *AuthService) allocateUsername(ctx context.Context, email string) (string, error) {
	username := localPart(email)
	taken, err := s.Users.UsernameExists(ctx, username)
	if err != nil {
		return "", err
	}
	if taken {
		suffix, err := helpers.RandomSuffix(usernameSuffixLen)
		if err != nil {
			return "", err
		}
		username += suffix
	}
	return username, nil
}

func (s *AuthService) createUser(ctx context.Context, u *entity.User, local string) error {
	err := s.Users.Create(ctx, u)
	if !errors.Is(err, repository.ErrDuplicateUsername) {
		return err
	}
	suffix, serr := helpers.RandomSuffix(usernameSuffixLen)
	if serr != nil {
		return serr
	}
	u.Username = local + suffix
	return s.Users.Create(ctx, u)
}

func (s *AuthService) issueSession(u *entity.User) (*Session, error) {
	token, err := s.JWT.Sign(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("sign session token failed")
		}
		return nil, apperror.NewInternal("something went wrong", err)
	}
	return &Session{
		AccessToken: token,
		ProfileImg:  u.ProfileImg,
		Username:    u.Username,
		Fullname:    u.FullName,
	}, nil
}

// publishWelcome enqueues the welcome email. Best effort: a broker failure
// is logged and never fails the signup.
func (s *AuthService) publishWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data: map[string]any{
			"Fullname": u.FullName,
			"Username": u.Username,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("enqueue welcome email failed")
	}
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

func defaultAvatar(username string) string {
	return "https://api.dicebear.com/6.x/notionists-neutral/svg?seed=" + username
}
