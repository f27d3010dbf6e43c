package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/realestatead/adctl/internal/authz"
)

// View renders the shell. PhaseResolving renders only the spinner: the
// guard's no-flash invariant in terminal form.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case PhaseResolving:
		return m.renderResolving()
	case PhaseLogin:
		return m.renderLogin()
	default:
		return m.renderAuthorized()
	}
}

func (m Model) renderResolving() string {
	return "\n  " + m.spinner.View() + " " + m.styles.Muted.Render("Loading...") + "\n"
}

func (m Model) renderLogin() string {
	var b strings.Builder
	title := "RealEstateAd · Sign in"
	if m.area == authz.AreaSystem {
		title = "RealEstateAd · System Admin Sign in"
	}
	b.WriteString("\n  " + m.styles.Title.Render(title) + "\n\n")
	if m.lastError != "" {
		b.WriteString("  " + m.styles.Error.Render(m.lastError) + "\n\n")
	}
	if m.loginForm != nil {
		b.WriteString(m.loginForm.View())
	}
	return b.String()
}

func (m Model) renderAuthorized() string {
	sidebar := m.renderSidebar()
	content := m.renderContent()
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("  tab: next screen • r: refresh • L: log out • q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderSidebar() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("RealEstateAd") + "\n\n")

	if user := m.decision.User; user != nil {
		b.WriteString(m.styles.Identity.Render(user.Name) + "\n")
		b.WriteString(m.styles.Muted.Render(user.Email) + "\n")
		org := user.OrganizationName
		if org == "" {
			org = user.OrgID
		}
		b.WriteString(m.styles.Muted.Render(org+" · "+string(user.Role)) + "\n\n")
	}

	for i, entry := range m.nav {
		if i == m.active {
			b.WriteString(m.styles.NavActive.Render("▸ "+entry.Name) + "\n")
		} else {
			b.WriteString(m.styles.NavItem.Render("  "+entry.Name) + "\n")
		}
	}

	return m.styles.Sidebar.Render(b.String())
}

func (m Model) renderContent() string {
	var b strings.Builder

	if len(m.nav) > 0 {
		b.WriteString(m.styles.Subtitle.Render(m.nav[m.active].Name) + "\n\n")
	}
	if m.notice != "" {
		b.WriteString(m.styles.Notice.Render(m.notice) + "\n\n")
	}
	if m.lastError != "" {
		b.WriteString(m.styles.Error.Render(m.lastError) + "\n\n")
	}

	switch {
	case m.screenLoading:
		b.WriteString(m.spinner.View() + " " + m.styles.Muted.Render("Fetching..."))
	case len(m.tbl.Rows()) == 0 && m.screenEmpty != "":
		b.WriteString(m.styles.Muted.Render(m.screenEmpty))
	default:
		b.WriteString(m.tbl.View())
	}

	return m.styles.Content.Render(b.String())
}
