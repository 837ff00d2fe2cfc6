// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/cubetui/internal/model"
	"github.com/verte-zerg/cubetui/internal/stats"
	"github.com/verte-zerg/cubetui/internal/store"
)

const (
	tabOverview = iota
	tabSolves
	tabTrends
)

const (
	plotHeight = 10
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	tabs        []string
	activeTab   int
	viewports   []viewport.Model
	solveTable  table.Model
	solveLayout tableLayout

	// Moving-average window applied to the trend curves, 1 disables it.
	smoothWindow int

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store:        st,
		cfg:          cfg,
		tabs:         []string{"Overview", "Solves", "Trends"},
		smoothWindow: 1,
	}
	m.initInputs()
	m.initSolveTable()
	m.initViewports()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.activeTab == tabSolves {
			m.solveTable.Focus()
		} else {
			m.solveTable.Blur()
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.smoothWindow = nextSmoothWindow(m.smoothWindow)
			m.renderTabContents()
			return m, nil
		case "-":
			m.smoothWindow = prevSmoothWindow(m.smoothWindow)
			m.renderTabContents()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabSolves {
				m.solveTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabSolves {
				m.solveTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabSolves {
				var cmd tea.Cmd
				m.solveTable, cmd = m.solveTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Puzzle: "),
		newFilterInput("Case: "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
	}
	m.setInputsFromConfig()
}

func (m *Model) initSolveTable() {
	m.solveTable = buildSolveTable(nil, 0, 1)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	if len(m.filterInputs) == 0 {
		return
	}
	m.filterInputs[0].SetValue(strings.TrimSpace(m.cfg.Puzzle))
	m.filterInputs[1].SetValue(strings.TrimSpace(m.cfg.CaseID))
	if m.cfg.Since != nil {
		m.filterInputs[2].SetValue(m.cfg.Since.Format("2006-01-02"))
	} else {
		m.filterInputs[2].SetValue("")
	}
	if m.cfg.Last > 0 {
		m.filterInputs[3].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[3].SetValue("")
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setSolveTableSize(m.width, vpHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabSolves {
		m.solveTable.Focus()
	} else {
		m.solveTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	puzzle := m.cfg.Puzzle
	if puzzle == "" {
		puzzle = "any"
	}
	caseID := m.cfg.CaseID
	if caseID == "" {
		caseID = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Filters: puzzle=%s  case=%s  since=%s  last=%s  smooth=%d", puzzle, caseID, since, last, m.smoothWindow)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Smooth: -/=  Filter: /  Quit: q"
	return headerStyle.Render(help)
}

func (m *Model) renderFilterHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel  quit: q")
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.renderFilterHelp()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filters (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabSolves {
		if len(m.report.Solves) == 0 {
			return fitLines("No solves found.", m.width, height)
		}
		view := tableMutedStyle.Render(m.solveTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.applySolveTable(width, bodyHeight)
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	if m.errMsg != "" {
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, width))
	m.viewports[tabTrends].SetContent(renderTrends(m.report.Solves, m.smoothWindow, width))
}

func renderOverview(report stats.Report, width int) string {
	if len(report.Solves) == 0 {
		return "No solves found."
	}
	summary := renderSummaryCards(report, width)
	spark := renderSparkline(report.Solves, width)
	records := renderRecords(report.Bests)
	return strings.TrimRight(summary+"\n\n"+spark+"\n\n"+records, "\n")
}

func renderSummaryCards(report stats.Report, width int) string {
	st := report.Stats
	cards := []string{
		metricCard("Solves", fmt.Sprintf("%d", len(report.Solves))),
		metricCard("Single", stats.FormatMaybe(st.CurrentSingle)),
		metricCard("ao5", stats.FormatMaybe(st.Ao5)),
		metricCard("ao12", stats.FormatMaybe(st.Ao12)),
		metricCard("Best single", stats.FormatMaybe(st.BestSingle)),
		metricCard("Best ao5", stats.FormatMaybe(st.BestAo5)),
		metricCard("Best ao12", stats.FormatMaybe(st.BestAo12)),
		metricCard("Best ao100", stats.FormatMaybe(st.BestAo100)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2], cards[3])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[4], cards[5], cards[6], cards[7])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func renderSparkline(solves []model.Solve, width int) string {
	series := stats.SingleSeries(solves)
	if len(series) == 0 {
		return ""
	}
	limit := maxInt(10, width-10)
	if len(series) > limit {
		series = series[len(series)-limit:]
	}
	return headerStyle.Render("Recent singles (fast is low):") + "\n" + stats.Sparkline(invert(series))
}

// invert flips the series so that faster solves draw higher sparkline bars.
func invert(values []float64) []float64 {
	maxVal := values[0]
	for _, v := range values[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = maxVal - v
	}
	return out
}

func renderRecords(bests map[model.PBKind]model.PersonalBest) string {
	if len(bests) == 0 {
		return headerStyle.Render("No records yet.")
	}
	order := []model.PBKind{model.PBSingle, model.PBAo5, model.PBAo12, model.PBAo50, model.PBAo100}
	lines := []string{headerStyle.Render("Records:")}
	for _, kind := range order {
		pb, ok := bests[kind]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %-7s %8s  %s", kind, stats.FormatMs(pb.TimeMs), pb.AchievedAt.Format("2006-01-02")))
	}
	return strings.Join(lines, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderTrends(solves []model.Solve, smooth, width int) string {
	if len(solves) == 0 {
		return "No solves found."
	}
	series := []stats.Series{
		{Name: "single", Values: stats.MovingAverage(stats.SingleSeries(solves), smooth)},
		{Name: "ao5", Values: stats.RollingSeries(solves, 5)},
		{Name: "ao12", Values: stats.RollingSeries(solves, 12)},
	}
	var buf bytes.Buffer
	if err := stats.PlotSeriesWithColor(&buf, "Solve times (s)", series, stats.PlotWidthFor(width), plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render trends: %v", err)
	}
	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return "Not enough data to plot."
	}
	return out
}

func buildSolveTable(solves []model.Solve, width, height int) table.Model {
	cols, rows := buildSolveTableData(solves)
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(solveTableStyles())
	return t
}

func (m *Model) applySolveTable(width, height int) {
	cols, rows := buildSolveTableData(m.report.Solves)
	m.solveTable.SetColumns(cols)
	m.solveTable.SetRows(rows)
	m.solveLayout.rowCount = len(rows)
	m.solveLayout.width = 0
	m.solveLayout.height = 0
	m.setSolveTableSize(width, height)
}

func (m *Model) setSolveTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.solveLayout.width == width && m.solveLayout.height == viewportHeight {
		return
	}
	m.solveLayout.width = width
	m.solveLayout.height = viewportHeight
	m.solveTable.SetWidth(width)
	m.solveTable.SetHeight(viewportHeight)
	viewportHeight = m.adjustSolveTableHeight(height)
	if m.solveLayout.height != viewportHeight {
		m.solveLayout.height = viewportHeight
		m.solveTable.SetHeight(viewportHeight)
	}
}

func solveTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// adjustSolveTableHeight compensates for the table's internal chrome so the
// rendered view exactly fills the body.
func (m *Model) adjustSolveTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.solveTable.Height()
	viewHeight := lipgloss.Height(m.solveTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	m.solveTable.SetHeight(height)
	viewHeight = lipgloss.Height(m.solveTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

func buildSolveTableData(solves []model.Solve) ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Time", Width: 9},
		{Title: "Case", Width: 10},
		{Title: "Date", Width: 16},
		{Title: "Scramble", Width: 50},
	}
	rows := make([]table.Row, 0, len(solves))
	// Newest first.
	for i := len(solves) - 1; i >= 0; i-- {
		s := solves[i]
		caseID := s.CaseID
		if caseID == "" {
			caseID = "-"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			stats.FormatSolve(s),
			caseID,
			s.Date.Local().Format("2006-01-02 15:04"),
			s.Scramble,
		})
	}
	return columns, rows
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	puzzle := strings.TrimSpace(m.filterInputs[0].Value())
	caseID := strings.TrimSpace(m.filterInputs[1].Value())
	sinceInput := strings.TrimSpace(m.filterInputs[2].Value())
	var since *time.Time
	if sinceInput != "" {
		parsed, err := time.ParseInLocation("2006-01-02", sinceInput, time.Local)
		if err != nil {
			return fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		since = &parsed
	}

	lastInput := strings.TrimSpace(m.filterInputs[3].Value())
	last := 0
	if lastInput != "" {
		parsed, err := strconv.Atoi(lastInput)
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		last = parsed
	}

	m.cfg = model.StatsConfig{
		Puzzle: puzzle,
		CaseID: caseID,
		Since:  since,
		Last:   last,
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func nextSmoothWindow(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

func prevSmoothWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
