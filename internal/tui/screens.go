package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/realestatead/adctl/internal/console"
)

// routeCacheKey maps a navigation route to the cache key its screen reads
// from, so the refresh binding can invalidate the right collection.
func routeCacheKey(route string) string {
	switch route {
	case "/app/agents":
		return console.KeyAgents
	case "/app/contacts":
		return console.KeyContacts
	case "/app/campaigns":
		return console.KeyTemplates
	case "/admin/organizations":
		return console.KeyOrganizations
	case "/admin/org-admins":
		return console.KeyOrgAdmins
	default:
		return route
	}
}

// fetchScreen loads the data behind a navigation route and shapes it into
// table columns and rows. Screens without a backing collection (dashboard,
// settings) return local content.
func fetchScreen(ctx context.Context, con *console.Console, route string) tea.Msg {
	switch route {
	case "/app/agents":
		agents, err := con.Agents(ctx)
		if err != nil {
			return screenErrMsg{err: err}
		}
		rows := make([]table.Row, 0, len(agents))
		for _, a := range agents {
			rows = append(rows, table.Row{a.ID, a.FullName, a.Email, a.Phone, a.Role})
		}
		return screenDataMsg{
			route: route,
			columns: []table.Column{
				{Title: "ID", Width: 8},
				{Title: "Name", Width: 22},
				{Title: "Email", Width: 28},
				{Title: "Phone", Width: 14},
				{Title: "Role", Width: 12},
			},
			rows:  rows,
			empty: "No agents yet.",
		}

	case "/app/contacts":
		contacts, err := con.Contacts(ctx)
		if err != nil {
			return screenErrMsg{err: err}
		}
		rows := make([]table.Row, 0, len(contacts))
		for _, c := range contacts {
			rows = append(rows, table.Row{
				strconv.FormatInt(c.ID, 10),
				c.FirstName + " " + c.LastName,
				c.Email,
				c.Phone,
				strconv.Itoa(len(c.Preferences)),
			})
		}
		return screenDataMsg{
			route: route,
			columns: []table.Column{
				{Title: "ID", Width: 6},
				{Title: "Name", Width: 22},
				{Title: "Email", Width: 28},
				{Title: "Phone", Width: 14},
				{Title: "Prefs", Width: 6},
			},
			rows:  rows,
			empty: "No contacts yet.",
		}

	case "/app/campaigns":
		templates, err := con.Templates(ctx)
		if err != nil {
			return screenErrMsg{err: err}
		}
		rows := make([]table.Row, 0, len(templates))
		for _, t := range templates {
			rows = append(rows, table.Row{
				strconv.FormatInt(t.ID, 10), t.Name, t.Subject, t.FromEmail,
			})
		}
		return screenDataMsg{
			route: route,
			columns: []table.Column{
				{Title: "ID", Width: 6},
				{Title: "Name", Width: 22},
				{Title: "Subject", Width: 30},
				{Title: "From", Width: 24},
			},
			rows:  rows,
			empty: "No templates yet.",
		}

	case "/admin/organizations":
		orgs, err := con.Organizations(ctx)
		if err != nil {
			return screenErrMsg{err: err}
		}
		rows := make([]table.Row, 0, len(orgs))
		for _, o := range orgs {
			rows = append(rows, table.Row{
				strconv.FormatInt(o.ID, 10), o.Name, o.Description, o.CreatedAt,
			})
		}
		return screenDataMsg{
			route: route,
			columns: []table.Column{
				{Title: "ID", Width: 6},
				{Title: "Name", Width: 24},
				{Title: "Description", Width: 30},
				{Title: "Created", Width: 20},
			},
			rows:  rows,
			empty: "No organizations yet.",
		}

	case "/admin/org-admins":
		admins, err := con.OrgAdmins(ctx)
		if err != nil {
			return screenErrMsg{err: err}
		}
		rows := make([]table.Row, 0, len(admins))
		for _, a := range admins {
			rows = append(rows, table.Row{
				strconv.FormatInt(a.ID, 10), a.FullName, a.Email,
				strconv.FormatInt(a.OrganizationID, 10), a.Status,
			})
		}
		return screenDataMsg{
			route: route,
			columns: []table.Column{
				{Title: "ID", Width: 6},
				{Title: "Name", Width: 22},
				{Title: "Email", Width: 28},
				{Title: "Org", Width: 6},
				{Title: "Status", Width: 10},
			},
			rows:  rows,
			empty: "No organization administrators yet.",
		}

	default:
		// Dashboard, organization profile, settings: no backing
		// collection; render a static hint panel.
		return screenDataMsg{
			route: route,
			columns: []table.Column{
				{Title: "", Width: 60},
			},
			rows: []table.Row{
				{fmt.Sprintf("Use tab / shift+tab to move between screens (%s).", route)},
				{"Press r to refresh the current screen, L to log out, q to quit."},
			},
			empty: "",
		}
	}
}
