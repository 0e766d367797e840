package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"modgrip/internal/domain"
	"modgrip/internal/format"
	"modgrip/internal/i18n"
)

// MarkdownRenderer renders mod descriptions with glamour, reusing the renderer while the wrap
// width stays the same
type MarkdownRenderer struct {
	// MaxWidth caps the wrap width. Zero leaves it at the pane width.
	MaxWidth int

	width    int
	renderer *glamour.TermRenderer
}

// Render renders content as markdown wrapped at width. Content that cannot be rendered is
// returned as plain text.
func (m *MarkdownRenderer) Render(content string, width int) string {
	if content == "" {
		return ""
	}
	if m.MaxWidth > 0 && width > m.MaxWidth {
		width = m.MaxWidth
	}
	if width < 20 {
		width = 20
	}

	if m.renderer == nil || m.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		m.renderer = renderer
		m.width = width
	}

	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}

// ModView renders the detail pane for the focused mod
type ModView struct {
	styles   *Styles
	markdown *MarkdownRenderer
}

// NewModView creates a new mod view renderer
func NewModView(styles *Styles) *ModView {
	return &ModView{styles: styles, markdown: &MarkdownRenderer{}}
}

// SetWordWrap caps the width descriptions are wrapped at
func (v *ModView) SetWordWrap(width int) {
	v.markdown.MaxWidth = width
}

// RenderEmpty renders a title and subtitle placeholder
func (v *ModView) RenderEmpty(title, subtitle string) string {
	return v.styles.DialogTitle.Render(title) + "\n" + v.styles.Dim.Render(subtitle)
}

// Render builds the full detail text for mod. installed resolves dependency ids against the
// open profile.
func (v *ModView) Render(mod *domain.ModPackage, installed func(domain.ModID) *domain.ModPackage, tr *i18n.Translator, width int) string {
	tag := tr.Locale().Tag()

	var b strings.Builder

	header := v.styles.Title.Render(mod.Name)
	if mod.IsDeprecated {
		header += " " + v.styles.Badge.Render(tr.T("modlist.modview.deprecated_badge", nil))
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(v.styles.Owner.Render(mod.Owner))
	b.WriteString("\n\n")

	field := func(key, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", v.styles.Label.Render(tr.T(key, nil)), value))
	}
	field("modlist.modview.version_label", mod.Version.VersionNumber)
	field("modlist.modview.downloads_label", format.Number(tag, mod.Version.Downloads))
	field("modlist.modview.size_label", format.HumanizeFileSize(mod.Version.FileSize, true))
	if created := mod.Created(); !created.IsZero() {
		field("modlist.modview.created_label", format.DateMed(created))
	}
	if len(mod.Categories) > 0 {
		b.WriteString(v.styles.Dim.Render(strings.Join(mod.Categories, ", ")))
		b.WriteString("\n")
	}

	if deps := mod.Version.Dependencies; len(deps) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Label.Render(tr.T("modlist.modview.dependencies_label", nil)))
		b.WriteString("\n")
		for _, raw := range deps {
			b.WriteString(v.renderDependency(raw, installed))
			b.WriteString("\n")
		}
	}

	if desc := v.markdown.Render(mod.Version.Description, width); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (v *ModView) renderDependency(raw string, installed func(domain.ModID) *domain.ModPackage) string {
	dep, err := domain.ParseDependency(raw)
	if err != nil {
		return "  " + v.styles.Dim.Render(raw)
	}

	var mod *domain.ModPackage
	if installed != nil {
		mod = installed(dep.ID())
	}
	if dep.SatisfiedBy(mod) {
		return "  " + v.styles.Satisfied.Render("✓") + " " + raw
	}
	return "  " + v.styles.Missing.Render("✗") + " " + raw
}
