package service

import (
    "context"
    "errors"
    "strconv"
    "strings"

    "github.com/sirupsen/logrus"

    "github.com/iliyamo/invoice-dashboard/internal/model"
    "github.com/iliyamo/invoice-dashboard/internal/repository"
    "github.com/iliyamo/invoice-dashboard/internal/utils"
    "github.com/iliyamo/invoice-dashboard/internal/validation"
)

// ErrInvalidCredentials is the single signal for a bad email, an unknown
// user or a wrong password.  Callers cannot tell these apart.
var ErrInvalidCredentials = errors.New("Invalid credentials.")

// ErrSomethingWentWrong covers every other sign-in failure.
var ErrSomethingWentWrong = errors.New("Something went wrong.")

// MinPasswordLen is the shortest password accepted before a lookup is
// attempted.
const MinPasswordLen = 6

// UserStore finds users by email.
type UserStore interface {
    GetByEmail(ctx context.Context, email string) (model.User, error)
}

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
    users  UserStore
    secret string
    ttlMin int
    log    logrus.FieldLogger
}

func NewAuthService(users UserStore, secret string, ttlMin int, log logrus.FieldLogger) *AuthService {
    return &AuthService{users: users, secret: secret, ttlMin: ttlMin, log: log}
}

// Authenticate checks email and password against the stored bcrypt hash
// and, on success, signs a session token for the user.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (utils.Session, utils.SessionToken, error) {
    email = strings.TrimSpace(email)
    if !wellFormed(email, password) {
        return utils.Session{}, utils.SessionToken{}, ErrInvalidCredentials
    }

    u, err := s.users.GetByEmail(ctx, email)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return utils.Session{}, utils.SessionToken{}, ErrInvalidCredentials
        }
        return utils.Session{}, utils.SessionToken{}, ErrSomethingWentWrong
    }
    if !utils.VerifyPassword(u.PasswordHash, password) {
        s.log.WithField("user_id", u.ID).Info("sign-in rejected")
        return utils.Session{}, utils.SessionToken{}, ErrInvalidCredentials
    }

    sess := utils.Session{UserID: u.ID, Name: u.Name, Email: u.Email}
    tok, err := utils.NewSessionToken(s.secret, sess, s.ttlMin)
    if err != nil {
        s.log.WithField("error", err).Error("sign session token")
        return utils.Session{}, utils.SessionToken{}, ErrSomethingWentWrong
    }
    s.log.WithField("user_id", u.ID).Info("signed in")
    return sess, tok, nil
}

// wellFormed applies the pre-lookup checks: a bare email address and a
// password of at least MinPasswordLen characters.
func wellFormed(email, password string) bool {
    return validation.Var(email, "required,email") == nil &&
        validation.Var(password, "min="+strconv.Itoa(MinPasswordLen)) == nil
}
