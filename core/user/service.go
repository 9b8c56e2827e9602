package user

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lotola/observatoire/core"
)

var (
	// errors
	ErrNotFound        = errors.New("user not found")
	ErrEmailExists     = errors.New("a user with this email already exists")
	ErrInvalidAuthCode = errors.New("invalid authorization code")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excludedUsers ...User) error
		CreateUser(user User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
		GetUserByEmail(email string) (User, error)
		UpdateUser(user User) (User, error)
		DeleteUsersByID(ids ...string) error
	}

	// Session is the resolved outcome of a successful sign-in: the account, its
	// normalized role and the name to display.
	Session struct {
		User        User   `json:"user"`
		Role        string `json:"role"`
		DisplayName string `json:"display_name"`
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	initTokenGen(conf)
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *Service) CheckEmailUniqueness(email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(email, exclUsers...); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Register creates a new account with the registrant's chosen role.
// Sensitive roles require AuthCode to be the id of an existing admin account;
// no account is created when the code does not check out.
func (svc *Service) Register(nu NewUser) (User, error) {
	role := nu.Role
	if role == "" {
		role = RoleUtilisateur
	}

	if IsSensitiveRole(role) {
		if nu.AuthCode == "" {
			return User{}, core.NewAuthorizationError(ErrInvalidAuthCode)
		}
		ref, err := svc.repo.GetUserByID(nu.AuthCode)
		if err != nil {
			if errors.Cause(err) == ErrNotFound {
				return User{}, core.NewAuthorizationError(ErrInvalidAuthCode)
			}
			return User{}, errors.Wrap(err, "checking authorization code")
		}
		if !ref.IsAdmin() {
			return User{}, core.NewAuthorizationError(ErrInvalidAuthCode)
		}
	}

	now := nowFunc().UTC()
	usr := User{
		Email:          nu.Email,
		FullName:       nu.FullName,
		Role:           role,
		CreatedAt:      now,
		LastRoleUpdate: null.TimeFrom(now),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}

	usr, err := svc.repo.CreateUser(usr)
	if err != nil {
		return User{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.DisplayName(), Address: usr.Email}},
		Subject:      "Bienvenue",
		TemplateName: "welcome",
		TemplateData: struct{ Name string }{usr.DisplayName()},
	})
	return usr, nil
}

// Authenticate checks the credentials then resolves the session.
func (svc *Service) Authenticate(email, pwd string) (Session, error) {
	usr, err := svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		return Session{}, err
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return Session{}, ErrNotFound
	}
	return svc.StartSession(usr.Email)
}

// StartSession resolves the active role for an authenticated identity.
// A missing account is provisioned with RoleUtilisateur; an unrecognized stored
// role resolves to RoleUtilisateur instead of failing the sign-in. lastLogin is
// stamped unconditionally.
func (svc *Service) StartSession(email string) (Session, error) {
	email = core.CleanString(email, true /* lower */)
	now := nowFunc().UTC()

	usr, err := svc.repo.GetUserByEmail(email)
	if err != nil {
		if errors.Cause(err) != ErrNotFound {
			return Session{}, errors.Wrap(err, "finding account")
		}
		usr = User{
			Email:     email,
			Role:      RoleUtilisateur,
			CreatedAt: now,
		}
		if usr, err = svc.repo.CreateUser(usr); err != nil {
			return Session{}, errors.Wrap(err, "provisioning account")
		}
	}

	role := NormalizeRole(usr.Role)

	usr.LastLogin = null.TimeFrom(now)
	if usr, err = svc.repo.UpdateUser(usr); err != nil {
		return Session{}, errors.Wrap(err, "stamping lastLogin")
	}

	return Session{
		User:        usr,
		Role:        role,
		DisplayName: usr.DisplayName(),
	}, nil
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

// UpdateRole reassigns an account's role and stamps lastRoleUpdate.
func (svc *Service) UpdateRole(id string, ur UpdateRole) (User, error) {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}
	usr.Role = ur.Role
	usr.LastRoleUpdate = null.TimeFrom(nowFunc().UTC())
	return svc.repo.UpdateUser(usr)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteUsersByID(ids...)
}

// RequestPasswordReset emails a reset token to the account.
func (svc *Service) RequestPasswordReset(email string) error {
	usr, err := svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}

	token, err := MakeToken(usr)
	if err != nil {
		return errors.Wrap(err, "generating reset token")
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.DisplayName(), Address: usr.Email}},
		Subject:      "Réinitialisation du mot de passe",
		TemplateName: "password-reset",
		TemplateData: struct {
			Name  string
			UID   string
			Token string
		}{usr.DisplayName(), EncodeUID(usr), token},
	})
	return nil
}

// ResetPassword verifies the token and sets the new password.
func (svc *Service) ResetPassword(rp ResetUserPassword) error {
	uid, err := decodeUID(rp.UID)
	if err != nil {
		return core.NewValidationError(errInvalidToken)
	}
	usr, err := svc.repo.GetUserByID(uid)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return core.NewValidationError(errInvalidToken)
		}
		return err
	}
	if err = verifyToken(usr, rp.Token); err != nil {
		return core.NewValidationError(err)
	}
	if err = usr.SetPassword(rp.Password); err != nil {
		return err
	}
	if _, err = svc.repo.UpdateUser(usr); err != nil {
		return errors.Wrap(err, fmt.Sprintf("updating user %s", usr.ID))
	}
	return nil
}
