package controller

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/undefender/internal/model"
)

var kindColors = map[m.FragmentKind]lipgloss.Color{
	m.FragmentBlock:      lipgloss.Color("5"),
	m.FragmentAccess:     lipgloss.Color("2"),
	m.FragmentArithmetic: lipgloss.Color("3"),
}

// resolutionDelegate renders one fragment and its replacement per line.
type resolutionDelegate struct {
	offset int
}

func (d resolutionDelegate) Height() int  { return 1 }
func (d resolutionDelegate) Spacing() int { return 0 }
func (d resolutionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d resolutionDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	res, ok := item.(resolutionItem)
	if !ok {
		return
	}

	// kind column (12) + arrow (4) + spacing
	half := (l.Width() - 18) / 2
	if half < 8 {
		half = 8
	}

	kindStyle := lipgloss.NewStyle().Foreground(kindColors[res.kind]).Bold(true).Width(12)
	fragmentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	replacementStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	fragment := truncate(res.fragment, half)
	replacement := truncate(res.replacement, half)

	if index == l.Index() {
		selected := lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		kindStyle = selected.Width(12)
		fragmentStyle = selected
		replacementStyle = selected
		fragment = animateScroll(res.fragment, half, d.offset)
		replacement = animateScroll(res.replacement, half, d.offset)
	}

	_, _ = fmt.Fprintf(w, "%s  %s  →  %s",
		kindStyle.Render(string(res.kind)),
		fragmentStyle.Render(fragment),
		replacementStyle.Render(replacement),
	)
}

// progressModel follows a deobfuscation run: chunks in flight while the
// workers run, then the summary and the resolution list.
type progressModel struct {
	width           int
	height          int
	progressBar     progress.Model
	workers         int
	cores           int
	totalChunks     int
	completedChunks int
	resolved        int
	failed          int
	progressPercent float64
	active          map[int]int
	rendered        bool
	finished        bool
	summary         *summaryMsg
	resultsList     list.Model
	delegate        resolutionDelegate
	animOffset      int
	lastSelected    int
}

func newProgressModel() progressModel {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	delegate := resolutionDelegate{}
	resultsList := list.New([]list.Item{}, delegate, 80, 20)
	resultsList.SetShowPagination(false)
	resultsList.SetShowFilter(true)
	resultsList.SetShowHelp(false)
	resultsList.SetShowTitle(false)
	resultsList.SetShowStatusBar(false)
	resultsList.FilterInput.Placeholder = "Filter fragments…"

	return progressModel{
		progressBar:  prog,
		resultsList:  resultsList,
		delegate:     delegate,
		active:       make(map[int]int),
		lastSelected: -1,
	}
}

func (pm progressModel) Init() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm = pm.handleWindowSize(msg)
	case tea.KeyMsg:
		return pm.handleKeyMsg(msg)
	case tickMsg:
		return pm.handleTick()
	case concurrencyMsg:
		pm.workers = msg.workers
		pm.totalChunks = msg.chunks
		pm.cores = msg.cores
		pm.rendered = true
	case chunkStartedMsg:
		pm.active[msg.index] = msg.size
		pm.rendered = true
	case chunkCompletedMsg:
		pm = pm.handleChunkCompleted(msg)
	case resolutionsMsg:
		items := make([]list.Item, 0, len(msg.items))
		for _, item := range msg.items {
			items = append(items, item)
		}

		pm.resultsList.SetItems(items)
	case summaryMsg:
		pm.summary = &msg
		pm.finished = true
		pm.rendered = true
	case finishedMsg:
		pm.finished = true
		pm.rendered = true

		return pm, tea.Quit
	}

	return pm, nil
}

func (pm progressModel) handleChunkCompleted(msg chunkCompletedMsg) progressModel {
	delete(pm.active, msg.index)

	pm.completedChunks++
	pm.resolved += msg.resolved
	pm.failed += msg.failed

	if pm.totalChunks > 0 {
		pm.progressPercent = float64(pm.completedChunks) / float64(pm.totalChunks)
	}

	return pm
}

func (pm progressModel) handleWindowSize(msg tea.WindowSizeMsg) progressModel {
	pm.width = msg.Width
	pm.height = msg.Height

	pm.progressBar.Width = pm.width - 8
	if pm.progressBar.Width < 20 {
		pm.progressBar.Width = 20
	}

	return pm
}

func (pm progressModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return pm, tea.Quit
	}

	if !pm.finished {
		return pm, nil
	}

	var cmd tea.Cmd

	pm.resultsList, cmd = pm.resultsList.Update(msg)

	if pm.resultsList.Index() != pm.lastSelected {
		pm.lastSelected = pm.resultsList.Index()
		pm.animOffset = 0
		pm.delegate.offset = 0
		pm.resultsList.SetDelegate(pm.delegate)
	}

	return pm, cmd
}

func (pm progressModel) handleTick() (tea.Model, tea.Cmd) {
	if pm.finished && pm.resultsList.FilterState() != list.Filtering {
		pm.animOffset++
		pm.delegate.offset = pm.animOffset
		pm.resultsList.SetDelegate(pm.delegate)
	}

	return pm, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (pm progressModel) View() string {
	if !pm.rendered {
		return "Preparing resolution…\n"
	}

	if pm.finished {
		return pm.viewResults()
	}

	return pm.viewProgress()
}

func (pm progressModel) viewProgress() string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle().Render("Undefender · resolving fragments")

	summary := summaryStyle().Render(fmt.Sprintf(
		"Chunks: %s / %s  •  Workers: %s  •  Cores: %s  •  Resolved: %s",
		accentStyle.Render(fmt.Sprintf("%d", pm.completedChunks)),
		accentStyle.Render(fmt.Sprintf("%d", pm.totalChunks)),
		accentStyle.Render(fmt.Sprintf("%d", pm.workers)),
		accentStyle.Render(fmt.Sprintf("%d", pm.cores)),
		accentStyle.Render(fmt.Sprintf("%d", pm.resolved)),
	))

	bar := lipgloss.NewStyle().Padding(0, 2).Render(pm.progressBar.ViewAs(pm.progressPercent))

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, bar, pm.renderActiveBox(), footer(pm.width, "Press q to quit"))
}

func (pm progressModel) renderActiveBox() string {
	indexes := make([]int, 0, len(pm.active))
	for index := range pm.active {
		indexes = append(indexes, index)
	}

	sort.Ints(indexes)

	lines := make([]string, 0, len(indexes))
	for _, index := range indexes {
		lines = append(lines, fmt.Sprintf("Chunk %d: %d fragment(s)", index, pm.active[index]))
	}

	if len(lines) == 0 {
		lines = append(lines, "idle")
	}

	width := pm.width - 4
	if width < 20 {
		width = 20
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1).
		Margin(1, 1, 1, 0).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (pm progressModel) viewResults() string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	title := titleStyle().Render("Undefender · results")

	var status string

	switch {
	case pm.summary == nil:
		status = fmt.Sprintf("Resolved: %s  •  Failed: %s",
			accentStyle.Render(fmt.Sprintf("%d", pm.resolved)),
			accentStyle.Render(fmt.Sprintf("%d", pm.failed)))
	case m.Classify(pm.summary.err).Fatal():
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(
			fmt.Sprintf("Failed after %d ms: %v", pm.summary.elapsed.Milliseconds(), pm.summary.err))
	default:
		status = fmt.Sprintf("Resolved: %s  •  Failed: %s  •  Elapsed: %s ms",
			accentStyle.Render(fmt.Sprintf("%d", pm.summary.resolved)),
			accentStyle.Render(fmt.Sprintf("%d", pm.failed)),
			accentStyle.Render(fmt.Sprintf("%d", pm.summary.elapsed.Milliseconds())))

		if pm.summary.err != nil {
			status += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(pm.summary.err.Error())
		}
	}

	parts := []string{title, summaryStyle().Render(status)}

	if len(pm.resultsList.Items()) > 0 {
		parts = append(parts, pm.renderResultsBox())
	}

	parts = append(parts, footer(pm.width, "↑/k up • ↓/j down • / filter • q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (pm progressModel) renderResultsBox() string {
	listWidth := pm.width - 4
	if listWidth < 40 {
		listWidth = 40
	}

	listHeight := pm.height - 9
	if listHeight < 5 {
		listHeight = 5
	}

	pm.resultsList.SetWidth(listWidth)
	pm.resultsList.SetHeight(listHeight)

	headers := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth).
		Render(fmt.Sprintf("%-12s  %s", "Kind", "Fragment → Replacement"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1, 0, 0).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, headers, pm.resultsList.View()))
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)
}

func summaryStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)
}

func footer(width int, text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(width).
		Render(text)
}
