package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/lotola/observatoire/core"
)

// Roles
const (
	RoleAdmin       = "admin"
	RoleAnalyst     = "analyst"
	RoleDecision    = "decision"
	RoleAgent       = "agent"
	RoleUtilisateur = "utilisateur"
)

var (
	AllRoles = []string{RoleAdmin, RoleAnalyst, RoleDecision, RoleAgent, RoleUtilisateur}

	// SensitiveRoles require an authorization code at registration.
	SensitiveRoles = []string{RoleAdmin, RoleAnalyst, RoleDecision, RoleAgent}

	Roles = []Role{
		{Name: "Utilisateur", Value: RoleUtilisateur},
		{Name: "Agent Communal", Value: RoleAgent},
		{Name: "Analyste", Value: RoleAnalyst},
		{Name: "Décideur", Value: RoleDecision},
		{Name: "Administrateur", Value: RoleAdmin},
	}
)

func KnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeRole maps any stored role value to a recognized role.
// Unrecognized or corrupt values resolve to RoleUtilisateur; a session start
// never fails on a bad role.
func NormalizeRole(role string) string {
	if KnownRole(role) {
		return role
	}
	return RoleUtilisateur
}

func IsSensitiveRole(role string) bool {
	for _, r := range SensitiveRoles {
		if r == role {
			return true
		}
	}
	return false
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name,omitempty"`
	Role           string    `json:"role"`
	PasswordHash   []byte    `json:"-"`
	CreatedAt      time.Time `json:"created_at"` // UTC
	LastLogin      null.Time `json:"last_login"`
	LastRoleUpdate null.Time `json:"last_role_update"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName falls back to the email address, then to a plain placeholder.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Email != "" {
		return u.Email
	}
	return "User"
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,knownrole"`
	AuthCode string `json:"auth_code"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.FullName = core.CleanString(nu.FullName)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	nu.AuthCode = core.CleanString(nu.AuthCode)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(nu.Email)
}

// UpdateRole defines an admin-side role reassignment.
type UpdateRole struct {
	Role string `json:"role" validate:"required,knownrole"`
}

func (ur *UpdateRole) Validate(validate *validator.Validate) error {
	ur.Role = core.CleanString(ur.Role, true /* lower */)
	return validate.Struct(ur)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate(validate *validator.Validate) error {
	return validate.Struct(rp)
}
