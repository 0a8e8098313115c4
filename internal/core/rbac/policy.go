// Package rbac is the single source of truth for which roles may view which
// dashboard panels. The table is fixed at compile time; it is consulted by
// the navigation surface to filter the menu and by the session controller to
// reject direct panel requests.
package rbac

import "github.com/accessflow/accessflow/internal/core/domain"

type panelGrant struct {
	panel domain.Panel
	roles map[domain.Role]struct{}
}

// grants holds the authorization table in declaration order. VisiblePanels
// preserves this order, so it is also the navigation order.
var grants = []panelGrant{
	{domain.Panel{ID: domain.PanelOverview, Label: "Overview"}, roleSet(domain.RoleAdmin, domain.RoleEditor, domain.RoleViewer)},
	{domain.Panel{ID: domain.PanelAdmin, Label: "Admin Panel"}, roleSet(domain.RoleAdmin)},
	{domain.Panel{ID: domain.PanelEditor, Label: "Editor Panel"}, roleSet(domain.RoleAdmin, domain.RoleEditor)},
	{domain.Panel{ID: domain.PanelViewer, Label: "Viewer Panel"}, roleSet(domain.RoleAdmin, domain.RoleEditor, domain.RoleViewer)},
	{domain.Panel{ID: domain.PanelAudit, Label: "Audit Logs"}, roleSet(domain.RoleAdmin)},
}

func roleSet(roles ...domain.Role) map[domain.Role]struct{} {
	set := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// IsAuthorized reports whether role may view the panel. Unknown panels and
// unknown roles fail closed: absence of authorization is the default.
func IsAuthorized(role domain.Role, id domain.PanelID) bool {
	for _, g := range grants {
		if g.panel.ID == id {
			_, ok := g.roles[role]
			return ok
		}
	}
	return false
}

// VisiblePanels returns the panels role may view, in declaration order.
func VisiblePanels(role domain.Role) []domain.Panel {
	out := make([]domain.Panel, 0, len(grants))
	for _, g := range grants {
		if _, ok := g.roles[role]; ok {
			out = append(out, g.panel)
		}
	}
	return out
}

// Lookup returns the panel definition for id.
func Lookup(id domain.PanelID) (domain.Panel, bool) {
	for _, g := range grants {
		if g.panel.ID == id {
			return g.panel, true
		}
	}
	return domain.Panel{}, false
}
