package user

import "testing"

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{RoleAdmin, RoleAdmin},
		{RoleAnalyst, RoleAnalyst},
		{RoleDecision, RoleDecision},
		{RoleAgent, RoleAgent},
		{RoleUtilisateur, RoleUtilisateur},
		{"superuser", RoleUtilisateur},
		{"ADMIN", RoleUtilisateur}, // roles are stored lowercase; anything else is corrupt
		{"", RoleUtilisateur},
	}
	for _, tt := range tests {
		if got := NormalizeRole(tt.role); got != tt.want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestIsSensitiveRole(t *testing.T) {
	for _, role := range SensitiveRoles {
		if !IsSensitiveRole(role) {
			t.Errorf("IsSensitiveRole(%q) = false, want true", role)
		}
	}
	if IsSensitiveRole(RoleUtilisateur) {
		t.Error("IsSensitiveRole(utilisateur) = true, want false")
	}
	if IsSensitiveRole("superuser") {
		t.Error("IsSensitiveRole(superuser) = true, want false")
	}
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		usr  User
		want string
	}{
		{name: "full name wins", usr: User{FullName: "Jo Kal", Email: "jo@test.cd"}, want: "Jo Kal"},
		{name: "email fallback", usr: User{Email: "jo@test.cd"}, want: "jo@test.cd"},
		{name: "placeholder", usr: User{}, want: "User"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.usr.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUser_SetCheckPassword(t *testing.T) {
	var usr User
	if err := usr.SetPassword("LePassw0rd"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	if err := usr.CheckPassword("LePassw0rd"); err != nil {
		t.Errorf("CheckPassword() failed on the right password: %v", err)
	}
	if err := usr.CheckPassword("notit"); err == nil {
		t.Error("CheckPassword() accepted a wrong password")
	}
}
