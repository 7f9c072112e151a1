package controller

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/undefender/internal/model"
)

// bootstrapItem is one recognised eval bootstrap.
type bootstrapItem struct {
	primary bool
	m.BootstrapDescriptor
}

func (b bootstrapItem) FilterValue() string {
	return b.InitializerName + " " + b.Payload
}

type bootstrapDelegate struct {
	offset int
}

func (d bootstrapDelegate) Height() int  { return 1 }
func (d bootstrapDelegate) Spacing() int { return 0 }
func (d bootstrapDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d bootstrapDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	b, ok := item.(bootstrapItem)
	if !ok {
		return
	}

	role := "aux"
	if b.primary {
		role = "primary"
	}

	roleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Width(8)
	offsetStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(8).Align(lipgloss.Right)
	payloadStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	width := l.Width() - 20
	payload := strings.Join(strings.Fields(b.Payload), " ")
	shown := truncate(payload, width)

	if index == l.Index() {
		selected := lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		roleStyle = selected.Width(8)
		offsetStyle = selected.Width(8).Align(lipgloss.Right)
		payloadStyle = selected
		shown = animateScroll(payload, width, d.offset)
	}

	_, _ = fmt.Fprintf(w, "%s  %s  %s",
		roleStyle.Render(role),
		offsetStyle.Render(fmt.Sprintf("%d", b.Offset)),
		payloadStyle.Render(shown),
	)
}

// inspectModel shows what the matcher recognised without evaluating anything.
type inspectModel struct {
	width        int
	height       int
	bootstraps   list.Model
	delegate     bootstrapDelegate
	binding      string
	catalog      m.Catalog
	err          error
	rendered     bool
	animOffset   int
	lastSelected int
}

func newInspectModel() inspectModel {
	delegate := bootstrapDelegate{}
	bootstraps := list.New([]list.Item{}, delegate, 80, 10)
	bootstraps.SetShowPagination(false)
	bootstraps.SetShowFilter(false)
	bootstraps.SetShowHelp(false)
	bootstraps.SetShowTitle(false)
	bootstraps.SetShowStatusBar(false)

	return inspectModel{
		bootstraps:   bootstraps,
		delegate:     delegate,
		lastSelected: -1,
	}
}

func (im inspectModel) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (im inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		im.width = msg.Width
		im.height = msg.Height
		im.bootstraps.SetWidth(im.width)
	case tickMsg:
		if im.rendered {
			im.animOffset++
			im.delegate.offset = im.animOffset
			im.bootstraps.SetDelegate(im.delegate)
		}

		cmd = tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return im, tea.Quit
		}

		im.bootstraps, cmd = im.bootstraps.Update(msg)
		if im.bootstraps.Index() != im.lastSelected {
			im.lastSelected = im.bootstraps.Index()
			im.animOffset = 0
			im.delegate.offset = 0
			im.bootstraps.SetDelegate(im.delegate)
		}
	case signatureMsg:
		im = im.handleSignature(msg)
	case finishedMsg:
		im.rendered = true

		return im, tea.Quit
	}

	return im, cmd
}

func (im inspectModel) handleSignature(msg signatureMsg) inspectModel {
	im.rendered = true
	im.err = msg.err
	im.binding = msg.sig.Binding
	im.catalog = msg.catalog

	items := make([]list.Item, 0, len(msg.sig.Bootstraps))
	for i, d := range msg.sig.Bootstraps {
		items = append(items, bootstrapItem{primary: i == 0, BootstrapDescriptor: d})
	}

	im.bootstraps.SetItems(items)

	return im
}

func (im inspectModel) View() string {
	if !im.rendered {
		return "Matching signature…\n"
	}

	title := titleStyle().Render("Undefender · signature")

	if im.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Padding(0, 0, 1, 2)

		return lipgloss.JoinVertical(lipgloss.Left, title, errStyle.Render(im.err.Error()))
	}

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	summary := summaryStyle().Render(fmt.Sprintf(
		"Binding: %s  •  Bootstraps: %s  •  Blocks: %s  •  Accesses: %s  •  Arithmetic: %s",
		accentStyle.Render(im.binding),
		accentStyle.Render(fmt.Sprintf("%d", len(im.bootstraps.Items()))),
		accentStyle.Render(fmt.Sprintf("%d", len(im.catalog.Blocks))),
		accentStyle.Render(fmt.Sprintf("%d", len(im.catalog.Accesses))),
		accentStyle.Render(fmt.Sprintf("%d", len(im.catalog.Arithmetic))),
	))

	listHeight := im.height - 8
	if listHeight < 3 {
		listHeight = 3
	}

	im.bootstraps.SetHeight(listHeight)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1).
		Render(im.bootstraps.View())

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, box, footer(im.width, "↑/k up • ↓/j down • q quit"))
}
