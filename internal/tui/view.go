package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"APIDirectory/internal/catalog"
	"APIDirectory/internal/query"
)

func (m Model) View() string {
	switch {
	case m.loading:
		return styleSubtitle.Render("Loading APIs...") + "\n"
	case m.err != nil:
		return m.errorView()
	case m.session == nil:
		return ""
	}

	v := m.session.View()

	var b strings.Builder
	b.WriteString(styleTitle.Render("Free APIs Directory"))
	b.WriteString("\n")
	b.WriteString(styleSubtitle.Render(fmt.Sprintf("Discover %d free APIs for your next project", v.Total)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(renderFacets(v))
	b.WriteString("\n\n")
	b.WriteString(renderCounter(v))
	b.WriteString("\n\n")

	if v.Empty() {
		b.WriteString(styleEmpty.Render("No APIs found\nTry adjusting your search or filter criteria"))
		b.WriteString("\n")
	} else {
		for _, e := range m.window(v.Entries) {
			b.WriteString(renderEntry(e))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styleHelp.Render("tab/shift+tab category · ↑/↓ scroll · esc clear · ctrl+r reload · ctrl+c quit"))
	return b.String()
}

func (m Model) window(entries []catalog.Entry) []catalog.Entry {
	start := min(m.offset, len(entries))
	end := len(entries)
	if vis := m.visibleEntries(); vis > 0 && start+vis < end {
		end = start + vis
	}
	return entries[start:end]
}

func (m Model) errorView() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(colorDanger).Render("Error"))
	b.WriteString("\n\n")
	b.WriteString(m.err.Error())
	if m.Hint != "" {
		b.WriteString("\n\n")
		b.WriteString(styleSubtitle.Render(m.Hint))
	}
	b.WriteString("\n\n")
	b.WriteString(styleHelp.Render("r retry · ctrl+c quit"))
	return styleError.Render(b.String()) + "\n"
}

func renderFacets(v query.View) string {
	parts := make([]string, 0, len(v.Facets))
	for _, f := range v.Facets {
		if f == v.State.Category {
			parts = append(parts, styleFacetSelected.Render(f))
		} else {
			parts = append(parts, styleFacet.Render(f))
		}
	}
	return strings.Join(parts, " ")
}

func renderCounter(v query.View) string {
	return styleCounter.Render("Showing ") +
		styleCount.Render(fmt.Sprint(v.Count)) +
		styleCounter.Render(" of ") +
		styleCount.Render(fmt.Sprint(v.Total)) +
		styleCounter.Render(" APIs")
}

func renderEntry(e catalog.Entry) string {
	var b strings.Builder
	b.WriteString(styleEntryName.Render(e.Name))
	b.WriteString(" ")
	b.WriteString(authBadge(e))
	b.WriteString(" ")
	b.WriteString(styleCategory.Render(e.Category))
	b.WriteString("\n")
	if e.Description != "" {
		b.WriteString(styleDesc.Render(e.Description))
		b.WriteString("\n")
	}
	b.WriteString(styleLink.Render(e.URL))
	b.WriteString("\n")
	return b.String()
}
