// Package tui provides the Bubble Tea timer interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/cubetui/internal/cases"
	"github.com/verte-zerg/cubetui/internal/clock"
	"github.com/verte-zerg/cubetui/internal/model"
	"github.com/verte-zerg/cubetui/internal/scramble"
	statsPkg "github.com/verte-zerg/cubetui/internal/stats"
	"github.com/verte-zerg/cubetui/internal/store"
	"github.com/verte-zerg/cubetui/internal/timer"
)

var (
	scrambleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	idleTimeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	armingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	runningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	inspectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4DA6FF")).Bold(true)
	pbStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type (
	stateMsg    model.TimerState
	tickMsg     int64
	inspMsg     int
	completeMsg int64
	holdPollMsg struct{ seq int }
)

// Model implements the Bubble Tea timer UI.
type Model struct {
	store   *store.Store
	machine *timer.Machine
	gate    *timer.HoldGate
	hold    *keyHold
	gen     *scramble.Generator

	puzzle       string
	practiceCase *cases.Case
	sessionID    int64

	send func(tea.Msg)

	scramble  string
	session   []model.Solve
	all       []model.Solve
	stats     model.StatisticsResult
	bests     map[model.PBKind]model.PersonalBest
	pbFlash   []model.PersonalBestEvent
	lastSolve *model.Solve
	errMsg    string

	width  int
	height int
}

// NewModel constructs the timer UI. practiceCase selects case-practice
// mode; nil means full solves on the given puzzle.
func NewModel(st *store.Store, cfg model.TimerConfig, puzzle string, practiceCase *cases.Case) (*Model, error) {
	m := &Model{
		store:        st,
		gen:          scramble.New(),
		puzzle:       puzzle,
		practiceCase: practiceCase,
	}

	machine, err := timer.NewMachine(cfg, nil, nil, timer.Hooks{
		OnStateChange:    func(s model.TimerState) { m.deliver(stateMsg(s)) },
		OnComplete:       func(ms int64) { m.deliver(completeMsg(ms)) },
		OnInspectionTick: func(s int) { m.deliver(inspMsg(s)) },
		OnTick:           func(ms int64) { m.deliver(tickMsg(ms)) },
	})
	if err != nil {
		return nil, err
	}
	m.machine = machine
	m.gate = timer.NewHoldGate(machine, nil)
	m.hold = newKeyHold(m.gate, machine, clock.System())

	ctx := context.Background()
	sessionID, err := st.CreateSession(ctx, time.Now(), puzzle, m.caseID())
	if err != nil {
		machine.Close()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	m.sessionID = sessionID
	if err := m.reload(ctx); err != nil {
		machine.Close()
		return nil, err
	}
	m.nextScramble()
	return m, nil
}

// AttachProgram wires timer notifications into the running program. Must
// be called before Program.Run.
func (m *Model) AttachProgram(p *tea.Program) {
	m.send = p.Send
}

// Close releases the timer's scheduled work.
func (m *Model) Close() {
	m.machine.Close()
}

func (m *Model) deliver(msg tea.Msg) {
	if m.send != nil {
		m.send(msg)
	}
}

func (m *Model) caseID() string {
	if m.practiceCase == nil {
		return ""
	}
	return m.practiceCase.ID
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

func pollCmd(seq int) tea.Cmd {
	return tea.Tick(holdPollInterval, func(time.Time) tea.Msg {
		return holdPollMsg{seq: seq}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case holdPollMsg:
		if m.hold.Poll(msg.seq) {
			return m, pollCmd(msg.seq)
		}
		return m, nil
	case stateMsg:
		if model.TimerState(msg) == model.StateRunning {
			m.pbFlash = nil
			m.errMsg = ""
		}
		return m, nil
	case tickMsg, inspMsg:
		return m, nil
	case completeMsg:
		m.finishSolve(int64(msg))
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.Close()
		return m, tea.Quit
	case tea.KeyEsc:
		m.hold.Cancel()
		return m, nil
	case tea.KeySpace:
		if seq := m.hold.Press(); seq >= 0 {
			return m, pollCmd(seq)
		}
		return m, nil
	case tea.KeyRunes:
		return m.handleRune(msg.Runes)
	default:
		return m, nil
	}
}

func (m *Model) handleRune(runes []rune) (tea.Model, tea.Cmd) {
	if len(runes) != 1 {
		return m, nil
	}
	// Edit keys only apply between attempts.
	switch s := m.machine.State(); s {
	case model.StateIdle, model.StateStopped:
	default:
		return m, nil
	}
	switch runes[0] {
	case 'q':
		m.Close()
		return m, tea.Quit
	case 'n':
		m.nextScramble()
	case '2':
		m.togglePenalty(model.PenaltyPlus2)
	case 'd':
		m.togglePenalty(model.PenaltyDNF)
	case 'x':
		m.deleteLastSolve()
	}
	return m, nil
}

func (m *Model) nextScramble() {
	if m.practiceCase != nil {
		m.scramble = m.practiceCase.Setup()
		return
	}
	s, err := m.gen.Generate(m.puzzle)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.scramble = s
}

func (m *Model) reload(ctx context.Context) error {
	session, err := m.store.ListSessionSolves(ctx, m.sessionID)
	if err != nil {
		return fmt.Errorf("failed to load session solves: %w", err)
	}
	// Full-solve history is scoped to this puzzle's full solves; case mode
	// to that case's drills. Times from the other mode never mix in.
	filter := model.StatsConfig{Puzzle: m.puzzle}
	if m.practiceCase != nil {
		filter = model.StatsConfig{CaseID: m.practiceCase.ID}
	}
	all, err := m.store.ListSolves(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load solve history: %w", err)
	}
	bests, err := m.store.GetPersonalBests(ctx, m.puzzle)
	if err != nil {
		return fmt.Errorf("failed to load personal bests: %w", err)
	}
	m.session = session
	m.all = all
	m.bests = bests
	m.stats = statsPkg.Compute(session, all)
	return nil
}

func (m *Model) finishSolve(elapsedMs int64) {
	ctx := context.Background()
	solve := model.Solve{
		SessionID: m.sessionID,
		TimeMs:    elapsedMs,
		Puzzle:    m.puzzle,
		Scramble:  m.scramble,
		CaseID:    m.caseID(),
		Date:      time.Now(),
	}
	id, err := m.store.InsertSolve(ctx, solve)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to save solve: %v", err)
		return
	}
	solve.ID = id
	m.lastSolve = &solve
	m.refreshStats(ctx)
	m.nextScramble()
}

// refreshStats recomputes statistics and records any new personal bests.
// Records are tracked for full solves only; drill times stay out of them.
func (m *Model) refreshStats(ctx context.Context) {
	if err := m.reload(ctx); err != nil {
		m.errMsg = err.Error()
		return
	}
	if m.practiceCase != nil {
		return
	}
	stored := make(map[model.PBKind]int64, len(m.bests))
	for kind, pb := range m.bests {
		stored[kind] = pb.TimeMs
	}
	events := statsPkg.DetectPersonalBests(m.all, stored)
	for _, ev := range events {
		pb := model.PersonalBest{Puzzle: m.puzzle, Kind: ev.Kind, TimeMs: ev.TimeMs, AchievedAt: time.Now()}
		if err := m.store.UpsertPersonalBest(ctx, pb); err != nil {
			m.errMsg = fmt.Sprintf("failed to save personal best: %v", err)
			return
		}
		m.bests[ev.Kind] = pb
	}
	if len(events) > 0 {
		m.pbFlash = events
	}
}

func (m *Model) togglePenalty(p model.Penalty) {
	if m.lastSolve == nil {
		return
	}
	next := p
	if m.lastSolve.Penalty == p {
		next = model.PenaltyNone
	}
	ctx := context.Background()
	if err := m.store.UpdatePenalty(ctx, m.lastSolve.ID, next); err != nil {
		m.errMsg = fmt.Sprintf("failed to update penalty: %v", err)
		return
	}
	m.lastSolve.Penalty = next
	m.refreshStats(ctx)
}

func (m *Model) deleteLastSolve() {
	if m.lastSolve == nil {
		return
	}
	ctx := context.Background()
	if err := m.store.DeleteSolve(ctx, m.lastSolve.ID); err != nil {
		m.errMsg = fmt.Sprintf("failed to delete solve: %v", err)
		return
	}
	m.lastSolve = nil
	m.refreshStats(ctx)
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.renderHeader()
	display := m.renderDisplay()
	scrambleBlock := m.renderScramble()
	footer := m.renderFooter()

	content := strings.Join([]string{scrambleBlock, "", display}, "\n")
	if m.width == 0 || m.height == 0 {
		return header + "\n" + content + "\n" + footer
	}
	bodyHeight := m.height - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	headerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Top, header)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Bottom, footer)
	return headerLine + "\n" + body + "\n" + footerLine
}

func (m *Model) renderHeader() string {
	label := m.puzzle
	if m.practiceCase != nil {
		label = fmt.Sprintf("%s · %s", m.practiceCase.Group, m.practiceCase.Name)
	}
	return headerStyle.Render(label)
}

func (m *Model) renderScramble() string {
	width := 40
	if m.width > 0 {
		width = int(float64(m.width) * 0.6)
		if width < 20 {
			width = 20
		}
	}
	return scrambleStyle.Render(wrapMoves(m.scramble, width))
}

func (m *Model) renderDisplay() string {
	switch m.machine.State() {
	case model.StateReady, model.StateInspectionReady:
		return armingStyle.Render(statsPkg.FormatMs(0))
	case model.StateInspection:
		return inspectionStyle.Render(fmt.Sprintf("%d", m.machine.InspectionRemaining()))
	case model.StateRunning:
		return runningStyle.Render(statsPkg.FormatMs(m.machine.Elapsed()))
	case model.StateStopped:
		if m.lastSolve != nil {
			return runningStyle.Render(statsPkg.FormatSolve(*m.lastSolve))
		}
		return runningStyle.Render(statsPkg.FormatMs(m.machine.Elapsed()))
	default:
		if m.lastSolve != nil {
			return idleTimeStyle.Render(statsPkg.FormatSolve(*m.lastSolve))
		}
		return idleTimeStyle.Render(statsPkg.FormatMs(0))
	}
}

func (m *Model) renderFooter() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	if len(m.pbFlash) > 0 {
		labels := make([]string, 0, len(m.pbFlash))
		for _, ev := range m.pbFlash {
			labels = append(labels, fmt.Sprintf("%s %s", ev.Kind, statsPkg.FormatMs(ev.TimeMs)))
		}
		return pbStyle.Render("New PB! " + strings.Join(labels, " · "))
	}
	segments := []string{
		fmt.Sprintf("ao5 %s", statsPkg.FormatMaybe(m.stats.Ao5)),
		fmt.Sprintf("ao12 %s", statsPkg.FormatMaybe(m.stats.Ao12)),
		fmt.Sprintf("best %s", statsPkg.FormatMaybe(m.stats.BestSingle)),
		fmt.Sprintf("solves %d", len(m.session)),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
