package user

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/lotola/observatoire/core"
)

func newTestValidator() *validator.Validate {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

func TestNewUser_passwordPolicy(t *testing.T) {
	validate := newTestValidator()

	tests := []struct {
		name    string
		pwd     string
		wantErr bool
	}{
		{name: "too short", pwd: "ab1", wantErr: true},
		{name: "whitespace", pwd: "le mot2passe", wantErr: true},
		{name: "all numeric", pwd: "12345678", wantErr: true},
		{name: "similar to email", pwd: "jo@test.cd", wantErr: true},
		{name: "similar to name", pwd: "Jo Kalonji", wantErr: true},
		{name: "acceptable", pwd: "LePassw0rd", wantErr: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := NewUser{Email: "jo@test.cd", FullName: "Jo Kalonji", Password: tt.pwd}
			err := validate.Struct(nu)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateRole_knownRole(t *testing.T) {
	validate := newTestValidator()

	for _, role := range AllRoles {
		if err := validate.Struct(UpdateRole{Role: role}); err != nil {
			t.Errorf("Struct() rejected known role %q: %v", role, err)
		}
	}
	if err := validate.Struct(UpdateRole{Role: "superuser"}); err == nil {
		t.Error("Struct() accepted an unknown role")
	}
	if err := validate.Struct(UpdateRole{}); err == nil {
		t.Error("Struct() accepted an empty role")
	}
}
