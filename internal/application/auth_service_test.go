package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/inkwellhq/inkwell/internal/domain/entity"
	"github.com/inkwellhq/inkwell/internal/domain/repository"
	"github.com/inkwellhq/inkwell/pkg/apperror"
	"github.com/inkwellhq/inkwell/pkg/googleauth"
	"github.com/inkwellhq/inkwell/pkg/helpers"
)

type mockUserRepo struct {
	CreateFn           func(ctx context.Context, u *entity.User) error
	GetByEmailFn       func(ctx context.Context, email string) (*entity.User, error)
	UsernameExistsFn   func(ctx context.Context, username string) (bool, error)
	GetByIDFn          func(ctx context.Context, id string) (*entity.User, error)
	GetByUsernameFn    func(ctx context.Context, username string) (*entity.User, error)
	SearchByUsernameFn func(ctx context.Context, query string, limit int) ([]*entity.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.CreateFn(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.GetByIDFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.GetByEmailFn(ctx, email)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.GetByUsernameFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.GetByUsernameFn(ctx, username)
}

func (m *mockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	if m.UsernameExistsFn == nil {
		return false, nil
	}
	return m.UsernameExistsFn(ctx, username)
}

func (m *mockUserRepo) SearchByUsername(ctx context.Context, query string, limit int) ([]*entity.User, error) {
	if m.SearchByUsernameFn == nil {
		return nil, nil
	}
	return m.SearchByUsernameFn(ctx, query, limit)
}

func (m *mockUserRepo) IncrementTotalPosts(ctx context.Context, id string, delta int64) error {
	return nil
}

func (m *mockUserRepo) IncrementTotalReads(ctx context.Context, id string, delta int64) error {
	return nil
}

type fakeVerifier struct {
	Ident *googleauth.Identity
	Err   error
}

func (f *fakeVerifier) Verify(ctx context.Context, idToken string) (*googleauth.Identity, error) {
	return f.Ident, f.Err
}

func newAuthService(repo *mockUserRepo, google IdentityVerifier) *AuthService {
	return NewAuthService(repo, helpers.NewJWTManager("test-secret"), google, nil, nil, false)
}

func wantKindAndMessage(t *testing.T, err error, kind apperror.Kind, message string) {
	t.Helper()
	var ae *apperror.Error
	if !errors.As(err, &ae) {
		t.Fatalf("error %v is not an apperror", err)
	}
	if ae.Kind != kind {
		t.Fatalf("kind = %d, want %d (message %q)", ae.Kind, kind, ae.Message)
	}
	if ae.Message != message {
		t.Fatalf("message = %q, want %q", ae.Message, message)
	}
}

func TestSignUpValidation(t *testing.T) {
	repo := &mockUserRepo{
		CreateFn: func(ctx context.Context, u *entity.User) error {
			t.Fatal("Create called despite invalid input")
			return nil
		},
	}
	svc := newAuthService(repo, nil)
	ctx := context.Background()

	cases := []struct {
		name                      string
		fullname, email, password string
		wantMsg                   string
	}{
		{"short fullname", "Al", "al@example.com", "Passw0rd", "Full name must be at least 3 letters long"},
		{"empty email", "Alice Smith", "", "Passw0rd", "Enter email"},
		{"bad email", "Alice Smith", "bad-email", "Passw0rd", "Email is invalid"},
		{"weak password", "Alice Smith", "alice@example.com", "weakpass", "Password should be 6 to 20 characters long with a numeric, 1 lowercase and 1 uppercase letters"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, c.fullname, c.email, c.password)
			wantKindAndMessage(t, err, apperror.InvalidInput, c.wantMsg)
		})
	}
}

func TestSignUpSuccess(t *testing.T) {
	var created *entity.User
	repo := &mockUserRepo{
		CreateFn: func(ctx context.Context, u *entity.User) error {
			u.ID = "user-1"
			created = u
			return nil
		},
	}
	svc := newAuthService(repo, nil)

	session, err := svc.SignUp(context.Background(), "Jane Doe", "jane@example.com", "Str0ngPass")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if created == nil {
		t.Fatal("user never stored")
	}
	if created.Username != "jane" {
		t.Fatalf("username = %q, want %q", created.Username, "jane")
	}
	if created.GoogleAuth {
		t.Fatal("local account stored as a google account")
	}
	if created.PasswordHash == "" || created.PasswordHash == "Str0ngPass" {
		t.Fatalf("password stored badly: %q", created.PasswordHash)
	}
	if created.ProfileImg == "" {
		t.Fatal("no default avatar assigned")
	}

	if session.AccessToken == "" {
		t.Fatal("no access token in session")
	}
	if session.Username != "jane" || session.Fullname != "Jane Doe" {
		t.Fatalf("session = %+v", session)
	}

	userID, err := helpers.NewJWTManager("test-secret").Verify(session.AccessToken)
	if err != nil || userID != "user-1" {
		t.Fatalf("token resolves to %q (%v), want user-1", userID, err)
	}
}

func TestSignUpUsernameCollisionGetsSuffix(t *testing.T) {
	repo := &mockUserRepo{
		UsernameExistsFn: func(ctx context.Context, username string) (bool, error) {
			return username == "alice", nil
		},
		CreateFn: func(ctx context.Context, u *entity.User) error {
			u.ID = "user-2"
			return nil
		},
	}
	svc := newAuthService(repo, nil)

	session, err := svc.SignUp(context.Background(), "Alice Smith", "alice@example.com", "Str0ngPass")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if !strings.HasPrefix(session.Username, "alice") || len(session.Username) != len("alice")+usernameSuffixLen {
		t.Fatalf("username = %q, want alice plus a %d-char suffix", session.Username, usernameSuffixLen)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		CreateFn: func(ctx context.Context, u *entity.User) error {
			return repository.ErrDuplicateEmail
		},
	}
	svc := newAuthService(repo, nil)

	_, err := svc.SignUp(context.Background(), "Jane Doe", "jane@example.com", "Str0ngPass")
	wantKindAndMessage(t, err, apperror.DuplicateAccount, "Email already exists")
}

func TestSignUpRetriesUsernameRace(t *testing.T) {
	calls := 0
	repo := &mockUserRepo{
		CreateFn: func(ctx context.Context, u *entity.User) error {
			calls++
			if calls == 1 {
				return repository.ErrDuplicateUsername
			}
			u.ID = "user-3"
			return nil
		},
	}
	svc := newAuthService(repo, nil)

	session, err := svc.SignUp(context.Background(), "Jane Doe", "jane@example.com", "Str0ngPass")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if calls != 2 {
		t.Fatalf("Create calls = %d, want 2", calls)
	}
	if !strings.HasPrefix(session.Username, "jane") || session.Username == "jane" {
		t.Fatalf("retried username = %q, want jane plus suffix", session.Username)
	}
}

func TestSignInUnknownEmail(t *testing.T) {
	repo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := newAuthService(repo, nil)

	_, err := svc.SignIn(context.Background(), "ghost@example.com", "Str0ngPass")
	wantKindAndMessage(t, err, apperror.NotFound, "Email not found")
}

func TestSignInGoogleAccountRejected(t *testing.T) {
	repo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: "user-1", Email: email, GoogleAuth: true}, nil
		},
	}
	svc := newAuthService(repo, nil)

	_, err := svc.SignIn(context.Background(), "jane@example.com", "Str0ngPass")
	wantKindAndMessage(t, err, apperror.WrongAuthMethod, "Account was created using Google. Try logging in with Google")
}

func TestSignInWrongPassword(t *testing.T) {
	hash, _ := helpers.HashPassword("Str0ngPass")
	repo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newAuthService(repo, nil)

	_, err := svc.SignIn(context.Background(), "jane@example.com", "WrongPass1")
	wantKindAndMessage(t, err, apperror.InvalidCredential, "Incorrect password")
}

func TestSignInSuccess(t *testing.T) {
	hash, _ := helpers.HashPassword("Str0ngPass")
	repo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{
				ID:           "user-1",
				FullName:     "Jane Doe",
				Email:        email,
				Username:     "jane",
				PasswordHash: hash,
				ProfileImg:   "https://img.example/jane.png",
			}, nil
		},
	}
	svc := newAuthService(repo, nil)

	session, err := svc.SignIn(context.Background(), "jane@example.com", "Str0ngPass")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if session.Username != "jane" || session.Fullname != "Jane Doe" || session.ProfileImg != "https://img.example/jane.png" {
		t.Fatalf("session = %+v", session)
	}
	if session.AccessToken == "" {
		t.Fatal("no access token")
	}
}

func TestGoogleAuthVerificationFailure(t *testing.T) {
	repo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			t.Fatal("store consulted despite failed verification")
			return nil, nil
		},
	}
	svc := newAuthService(repo, &fakeVerifier{Err: errors.New("bad token")})

	_, err := svc.GoogleAuth(context.Background(), "bad-token")
	wantKindAndMessage(t, err, apperror.FederatedAuthFailed, "Failed to authenticate you with Google. Try with some other Google account")
}

func TestGoogleAuthLocalAccountRejected(t *testing.T) {
	repo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: "user-1", Email: email, GoogleAuth: false, PasswordHash: "x"}, nil
		},
	}
	svc := newAuthService(repo, &fakeVerifier{Ident: &googleauth.Identity{Email: "jane@example.com", Name: "Jane Doe"}})

	_, err := svc.GoogleAuth(context.Background(), "token")
	wantKindAndMessage(t, err, apperror.WrongAuthMethod, "This email was signed up without Google. Please log in with password to access the account")
}

func TestGoogleAuthCreatesAccountOnce(t *testing.T) {
	users := map[string]*entity.User{}
	creates := 0
	repo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			if u, ok := users[email]; ok {
				return u, nil
			}
			return nil, repository.ErrNotFound
		},
		CreateFn: func(ctx context.Context, u *entity.User) error {
			creates++
			u.ID = "user-9"
			users[u.Email] = u
			return nil
		},
	}
	ident := &googleauth.Identity{Email: "jane@x.com", Name: "Jane Doe", PictureURL: "https://img.example/jane=s384-c"}
	svc := newAuthService(repo, &fakeVerifier{Ident: ident})
	ctx := context.Background()

	first, err := svc.GoogleAuth(ctx, "token")
	if err != nil {
		t.Fatalf("first GoogleAuth: %v", err)
	}
	if creates != 1 {
		t.Fatalf("creates = %d, want 1", creates)
	}
	if first.Username != "jane" || first.ProfileImg != ident.PictureURL {
		t.Fatalf("session = %+v", first)
	}

	second, err := svc.GoogleAuth(ctx, "token")
	if err != nil {
		t.Fatalf("second GoogleAuth: %v", err)
	}
	if creates != 1 {
		t.Fatalf("second login created another account, creates = %d", creates)
	}
	if second.Username != first.Username {
		t.Fatalf("usernames differ across logins: %q vs %q", first.Username, second.Username)
	}
	if second.AccessToken == "" {
		t.Fatal("second login minted no token")
	}
}

func TestGoogleAuthDefaultAvatarWhenMissing(t *testing.T) {
	repo := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return nil, repository.ErrNotFound
		},
		CreateFn: func(ctx context.Context, u *entity.User) error {
			u.ID = "user-9"
			return nil
		},
	}
	svc := newAuthService(repo, &fakeVerifier{Ident: &googleauth.Identity{Email: "jane@x.com", Name: "Jane Doe"}})

	session, err := svc.GoogleAuth(context.Background(), "token")
	if err != nil {
		t.Fatalf("GoogleAuth: %v", err)
	}
	if session.ProfileImg == "" {
		t.Fatal("no fallback avatar for google account without picture")
	}
}
