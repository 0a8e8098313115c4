package domain

// PanelID identifies a unit of dashboard functionality.
type PanelID string

const (
	PanelOverview PanelID = "overview"
	PanelAdmin    PanelID = "admin"
	PanelEditor   PanelID = "editor"
	PanelViewer   PanelID = "viewer"
	PanelAudit    PanelID = "audit"
)

// Panel is a navigable dashboard unit subject to role-based authorization.
type Panel struct {
	ID    PanelID `json:"id"`
	Label string  `json:"label"`
}
