// Package access holds the static role → pages table. It is the sole
// authorization boundary of the presentation layer and is re-validated
// server-side by the API middleware.
package access

import "github.com/lotola/observatoire/core/user"

type Page string

const (
	PageDashboard Page = "dashboard"
	PageAgent     Page = "agent"
	PageAnalyst   Page = "analyst"
	PageDecision  Page = "decision"
	PageAdmin     Page = "admin"
)

var pagesByRole = map[string][]Page{
	user.RoleAdmin:       {PageDashboard, PageAgent, PageAnalyst, PageDecision, PageAdmin},
	user.RoleAnalyst:     {PageDashboard, PageAnalyst, PageDecision},
	user.RoleDecision:    {PageDashboard, PageAnalyst, PageDecision},
	user.RoleAgent:       {PageDashboard, PageAgent},
	user.RoleUtilisateur: {PageDashboard},
}

// PagesFor returns the ordered list of pages a role may view.
// Unrecognized roles get the dashboard only.
func PagesFor(role string) []Page {
	pages, ok := pagesByRole[role]
	if !ok {
		pages = pagesByRole[user.RoleUtilisateur]
	}
	cp := make([]Page, len(pages))
	copy(cp, pages)
	return cp
}

// DefaultPage is the landing page for a role: the first entry of its page list.
func DefaultPage(role string) Page {
	return PagesFor(role)[0]
}

// Allowed reports whether a role may view a page.
func Allowed(role string, page Page) bool {
	for _, p := range PagesFor(role) {
		if p == page {
			return true
		}
	}
	return false
}
