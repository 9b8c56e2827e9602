package access

import (
	"reflect"
	"testing"

	"github.com/lotola/observatoire/core/user"
)

func TestPagesFor(t *testing.T) {
	tests := []struct {
		role string
		want []Page
	}{
		{user.RoleAdmin, []Page{PageDashboard, PageAgent, PageAnalyst, PageDecision, PageAdmin}},
		{user.RoleAnalyst, []Page{PageDashboard, PageAnalyst, PageDecision}},
		{user.RoleDecision, []Page{PageDashboard, PageAnalyst, PageDecision}},
		{user.RoleAgent, []Page{PageDashboard, PageAgent}},
		{user.RoleUtilisateur, []Page{PageDashboard}},
		{"superuser", []Page{PageDashboard}}, // unknown role
		{"", []Page{PageDashboard}},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := PagesFor(tt.role); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PagesFor(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestPagesFor_returnsCopy(t *testing.T) {
	pages := PagesFor(user.RoleAgent)
	pages[0] = PageAdmin
	if got := PagesFor(user.RoleAgent)[0]; got != PageDashboard {
		t.Errorf("PagesFor() leaked its backing array; first page = %v", got)
	}
}

func TestDefaultPage(t *testing.T) {
	if got := DefaultPage(user.RoleAdmin); got != PageDashboard {
		t.Errorf("DefaultPage(admin) = %v, want %v", got, PageDashboard)
	}
	if got := DefaultPage("corrupt"); got != PageDashboard {
		t.Errorf("DefaultPage(unknown) = %v, want %v", got, PageDashboard)
	}
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		role string
		page Page
		want bool
	}{
		{user.RoleAdmin, PageAdmin, true},
		{user.RoleAgent, PageAgent, true},
		{user.RoleAgent, PageAdmin, false},
		{user.RoleAnalyst, PageDecision, true},
		{user.RoleAnalyst, PageAgent, false},
		{user.RoleUtilisateur, PageDashboard, true},
		{user.RoleUtilisateur, PageAgent, false},
		{"superuser", PageAdmin, false},
		{"superuser", PageDashboard, true},
	}
	for _, tt := range tests {
		if got := Allowed(tt.role, tt.page); got != tt.want {
			t.Errorf("Allowed(%q, %q) = %v, want %v", tt.role, tt.page, got, tt.want)
		}
	}
}
