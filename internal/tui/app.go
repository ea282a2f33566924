// internal/tui/app.go
//
// This is the main TUI for ConflictDeck. It uses bubbletea, which follows
// The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/medroster/conflictdeck/internal/api"
	"github.com/medroster/conflictdeck/internal/batch"
	"github.com/medroster/conflictdeck/internal/config"
	"github.com/medroster/conflictdeck/internal/conflict"
	"github.com/medroster/conflictdeck/internal/filters"
	"github.com/medroster/conflictdeck/internal/history"
	"github.com/medroster/conflictdeck/internal/logbook"
	"github.com/medroster/conflictdeck/internal/notify"
	"github.com/medroster/conflictdeck/internal/suggest"
)

// Repository is the backend surface the dashboard consumes. *api.Client
// satisfies it; tests substitute a fake.
type Repository interface {
	batch.Resolver
	ListConflicts(ctx context.Context, query url.Values) (api.Page, error)
	GetConflict(ctx context.Context, id string) (conflict.Conflict, error)
	Suggestions(ctx context.Context, id string) ([]conflict.ResolutionSuggestion, error)
	Resolve(ctx context.Context, id string, req api.ResolveRequest) (conflict.Conflict, error)
	UpdateStatus(ctx context.Context, id string, req api.StatusUpdateRequest) (conflict.Conflict, error)
	Override(ctx context.Context, id string, ovr conflict.ManualOverride) (conflict.Conflict, error)
	History(ctx context.Context, id string) ([]conflict.HistoryEntry, error)
	Patterns(ctx context.Context) ([]conflict.Pattern, error)
	Statistics(ctx context.Context, startDate, endDate string) (conflict.Statistics, error)
	Detect(ctx context.Context, req api.DetectRequest) (api.DetectResponse, error)
}

// Batch methods offered in the batch view, in display order.
var batchMethods = []conflict.ResolutionMethod{
	conflict.MethodManualReassign,
	conflict.MethodSwap,
	conflict.MethodCancelAssignment,
	conflict.MethodAddCoverage,
	conflict.MethodManualOverride,
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithRepository overrides the backend client.
func WithRepository(repo Repository) AppOption {
	return func(a *App) {
		if repo != nil {
			a.repo = repo
		}
	}
}

// WithNotifyServer attaches an already-constructed push listener.
func WithNotifyServer(server *notify.Server) AppOption {
	return func(a *App) {
		a.notify = server
	}
}

// WithClock lets tests pin "today" for detection windows.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// Result messages for the async backend calls. Each fetch closure does
// the blocking work and returns one of these into Update.

type listResultMsg struct {
	token uuid.UUID
	page  api.Page
	err   error
}

type statisticsMsg struct {
	stats conflict.Statistics
	err   error
}

type suggestionsMsg struct {
	conflictID string
	items      []conflict.ResolutionSuggestion
	err        error
}

type historyMsg struct {
	conflictID string
	entries    []conflict.HistoryEntry
	err        error
}

type patternsMsg struct {
	patterns []conflict.Pattern
	err      error
}

type mutationDoneMsg struct {
	mutation   api.Mutation
	conflictID string
	err        error
}

type batchDoneMsg struct {
	outcome batch.Outcome
	err     error
}

type detectDoneMsg struct {
	resp api.DetectResponse
	err  error
}

type searchTickMsg struct {
	seq int
}

type notifyEventMsg struct {
	event notify.Event
	ok    bool
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config  *config.Config
	repo    Repository
	logbook *logbook.Logbook
	notify  *notify.Server
	now     func() time.Time

	controller *Controller
	engine     *filters.Engine

	// List view
	listToken   uuid.UUID
	loadingList bool
	page        api.Page
	listErr     string
	stats       conflict.Statistics
	hasStats    bool
	searchInput textinput.Model
	searchOpen  bool
	searchSeq   int

	// Suggestions view
	ranker             *suggest.Ranker
	suggestFocus       int
	suggestErr         string
	loadingSuggestions bool

	// History view
	timeline       []history.TimelineEntry
	analyzer       *history.Analyzer
	historyErr     string
	loadingHistory bool

	// Batch view
	batchMethodIdx int
	batchNotes     string
	batchRunning   bool
	batchErr       string
	lastBatch      *batch.Outcome

	// Override modal
	overrideForm *overrideForm
	overrideErr  string

	statusMsg string
	width     int
	height    int
}

// NewApp creates a new App instance rooted at projectDir.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	logPath := filepath.Join(cfg.DeckProjectDir, "logs", "session.log")
	lb, err := logbook.New(logPath)
	if err != nil {
		lb = nil
	}

	search := textinput.New()
	search.Placeholder = "search conflicts"
	search.CharLimit = 120
	search.Width = 40

	app := &App{
		config:      cfg,
		logbook:     lb,
		now:         func() time.Time { return time.Now().UTC() },
		controller:  NewController(),
		engine:      filters.NewEngine(cfg.PageSize()),
		searchInput: search,
		statusMsg:   "Loading conflicts...",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.repo == nil {
		client, err := api.NewClient(cfg.BaseURL(), api.WithToken(cfg.Token()))
		if err != nil {
			return nil, err
		}
		app.repo = client
	}
	if app.notify == nil && cfg.NotifyEnabled() {
		app.notify = notify.NewServer(cfg.NotifyAddress())
	}
	if lb != nil {
		lb.Info("Session opened · backend %s", cfg.BaseURL())
	}
	return app, nil
}

// Close releases the app's long-lived resources.
func (a *App) Close() {
	if a.notify != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = a.notify.Shutdown(ctx)
	}
	_ = a.logbook.Close()
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.fetchList(), a.fetchStatistics()}
	if a.notify != nil {
		if err := a.notify.Start(context.Background()); err != nil {
			a.logWarn("Push listener unavailable: %v", err)
		} else {
			a.logInfo("Push listener on %s", a.notify.Addr())
			cmds = append(cmds, a.waitForPush())
		}
	}
	return tea.Batch(cmds...)
}

// fetchList issues the canonical list query. The token makes responses
// attributable: a stale response carrying an old token is dropped so an
// out-of-order completion can never overwrite newer results.
func (a *App) fetchList() tea.Cmd {
	token := uuid.New()
	a.listToken = token
	a.loadingList = true
	query := a.engine.Query()
	repo := a.repo
	return func() tea.Msg {
		page, err := repo.ListConflicts(context.Background(), query)
		return listResultMsg{token: token, page: page, err: err}
	}
}

func (a *App) fetchStatistics() tea.Cmd {
	repo := a.repo
	return func() tea.Msg {
		stats, err := repo.Statistics(context.Background(), "", "")
		return statisticsMsg{stats: stats, err: err}
	}
}

func (a *App) fetchSuggestions(conflictID string) tea.Cmd {
	a.loadingSuggestions = true
	a.suggestErr = ""
	repo := a.repo
	return func() tea.Msg {
		items, err := repo.Suggestions(context.Background(), conflictID)
		return suggestionsMsg{conflictID: conflictID, items: items, err: err}
	}
}

func (a *App) fetchHistory(conflictID string) tea.Cmd {
	a.loadingHistory = true
	a.historyErr = ""
	repo := a.repo
	return func() tea.Msg {
		entries, err := repo.History(context.Background(), conflictID)
		return historyMsg{conflictID: conflictID, entries: entries, err: err}
	}
}

func (a *App) fetchPatterns() tea.Cmd {
	a.loadingHistory = true
	a.historyErr = ""
	repo := a.repo
	return func() tea.Msg {
		patterns, err := repo.Patterns(context.Background())
		return patternsMsg{patterns: patterns, err: err}
	}
}

func (a *App) applySelectedSuggestion() tea.Cmd {
	if a.ranker == nil || !a.ranker.HasSelection() {
		a.statusMsg = "Select a suggestion before applying"
		return nil
	}
	sel, _ := a.ranker.Selected()
	conflictID := a.ranker.ConflictID()
	repo := a.repo
	a.statusMsg = "Applying suggestion..."
	return func() tea.Msg {
		_, err := repo.Resolve(context.Background(), conflictID, api.ResolveRequest{SuggestionID: sel.ID})
		return mutationDoneMsg{mutation: api.MutationResolve, conflictID: conflictID, err: err}
	}
}

func (a *App) submitOverride() tea.Cmd {
	form := a.overrideForm
	if form == nil {
		return nil
	}
	ovr, err := form.Build()
	if err != nil {
		a.overrideErr = err.Error()
		return nil
	}
	conflictID := form.ConflictID()
	repo := a.repo
	a.statusMsg = "Submitting override..."
	return func() tea.Msg {
		_, err := repo.Override(context.Background(), conflictID, ovr)
		return mutationDoneMsg{mutation: api.MutationOverride, conflictID: conflictID, err: err}
	}
}

func (a *App) runBatch(ignore bool) tea.Cmd {
	ids := a.controller.Batch().IDs()
	repo := a.repo
	a.batchRunning = true
	a.batchErr = ""
	if ignore {
		notes := a.batchNotes
		return func() tea.Msg {
			outcome, err := batch.Ignore(context.Background(), repo, ids, notes)
			return batchDoneMsg{outcome: outcome, err: err}
		}
	}
	req := batch.Request{
		ConflictIDs: ids,
		Method:      batchMethods[a.batchMethodIdx],
		Notes:       a.batchNotes,
	}
	return func() tea.Msg {
		outcome, err := batch.Resolve(context.Background(), repo, req)
		return batchDoneMsg{outcome: outcome, err: err}
	}
}

func (a *App) runDetection() tea.Cmd {
	end := a.now()
	start := end.AddDate(0, 0, -a.config.DetectWindowDays())
	req := api.DetectRequest{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	}
	repo := a.repo
	a.statusMsg = fmt.Sprintf("Running detection (%s → %s)...", req.StartDate, req.EndDate)
	return func() tea.Msg {
		resp, err := repo.Detect(context.Background(), req)
		return detectDoneMsg{resp: resp, err: err}
	}
}

func (a *App) waitForPush() tea.Cmd {
	server := a.notify
	if server == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-server.Events()
		return notifyEventMsg{event: evt, ok: ok}
	}
}

func (a *App) scheduleSearch() tea.Cmd {
	a.searchSeq++
	seq := a.searchSeq
	debounce := time.Duration(a.config.SearchDebounceMS()) * time.Millisecond
	return tea.Tick(debounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

// refetchFor maps a completed mutation onto fetch commands using the
// invalidation table. Sibling caches (schedule/assignments/validation)
// are owned elsewhere; this app acts on the keys it renders.
func (a *App) refetchFor(mutation api.Mutation) []tea.Cmd {
	var cmds []tea.Cmd
	for _, key := range api.InvalidatedKeys(mutation) {
		switch key {
		case api.KeyConflictList:
			cmds = append(cmds, a.fetchList())
		case api.KeyStatistics:
			cmds = append(cmds, a.fetchStatistics())
		case api.KeyPatterns:
			if a.controller.PatternsMode() {
				cmds = append(cmds, a.fetchPatterns())
			}
		}
	}
	return cmds
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case listResultMsg:
		if msg.token != a.listToken {
			a.logInfo("Dropped stale list response")
			return a, nil
		}
		a.loadingList = false
		if msg.err != nil {
			a.listErr = msg.err.Error()
			a.logError("List fetch failed: %v", msg.err)
			return a, nil
		}
		a.listErr = ""
		a.page = msg.page
		a.controller.ListReloaded(conflictIDs(msg.page.Items))
		a.statusMsg = fmt.Sprintf("%d conflict(s) · page %d/%d", msg.page.Total, msg.page.Page, max(1, msg.page.Pages))
		return a, nil

	case statisticsMsg:
		if msg.err != nil {
			a.logWarn("Statistics fetch failed: %v", msg.err)
			return a, nil
		}
		a.stats = msg.stats
		a.hasStats = true
		return a, nil

	case suggestionsMsg:
		a.loadingSuggestions = false
		// Pending results for a closed or re-targeted panel are discarded.
		if a.controller.ActiveView() != ViewSuggestions || a.controller.SelectedConflictID() != msg.conflictID {
			a.logInfo("Dropped suggestions for closed panel (%s)", msg.conflictID)
			return a, nil
		}
		if msg.err != nil {
			a.suggestErr = msg.err.Error()
			a.logError("Suggestion fetch failed: %v", msg.err)
			return a, nil
		}
		a.ranker = suggest.NewRanker(msg.conflictID, msg.items)
		a.suggestFocus = 0
		return a, nil

	case historyMsg:
		a.loadingHistory = false
		if a.controller.ActiveView() != ViewHistory || a.controller.SelectedConflictID() != msg.conflictID {
			a.logInfo("Dropped history for closed panel (%s)", msg.conflictID)
			return a, nil
		}
		if msg.err != nil {
			a.historyErr = msg.err.Error()
			a.logError("History fetch failed: %v", msg.err)
			return a, nil
		}
		a.timeline = history.Timeline(msg.entries)
		return a, nil

	case patternsMsg:
		a.loadingHistory = false
		if !a.controller.PatternsMode() {
			a.logInfo("Dropped patterns for closed panel")
			return a, nil
		}
		if msg.err != nil {
			a.historyErr = msg.err.Error()
			a.logError("Pattern fetch failed: %v", msg.err)
			return a, nil
		}
		a.analyzer = history.NewAnalyzer(msg.patterns)
		return a, nil

	case mutationDoneMsg:
		return a.handleMutationDone(msg)

	case batchDoneMsg:
		a.batchRunning = false
		if msg.err != nil {
			// Transport failure: the batch view stays open with input intact.
			a.batchErr = msg.err.Error()
			a.logError("Batch failed: %v", msg.err)
			return a, nil
		}
		a.lastBatch = &msg.outcome
		a.statusMsg = fmt.Sprintf("Batch done · %d ok, %d failed of %d",
			msg.outcome.Successful, msg.outcome.Failed, msg.outcome.Total)
		a.logInfo("Batch complete: %d/%d succeeded", msg.outcome.Successful, msg.outcome.Total)
		a.controller.FinishBatch()
		cmds := a.refetchFor(api.MutationBatchResolve)
		return a, tea.Batch(cmds...)

	case detectDoneMsg:
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("Detection failed: %v", msg.err)
			a.logError("Detection failed: %v", msg.err)
			return a, nil
		}
		a.statusMsg = fmt.Sprintf("Detection found %d conflict(s)", msg.resp.Detected)
		a.logInfo("Detection run: %d found, %d new", msg.resp.Detected, msg.resp.New)
		return a, tea.Batch(a.refetchFor(api.MutationDetect)...)

	case searchTickMsg:
		// Only the newest keystroke's tick applies; earlier ticks are
		// superseded by a later seq.
		if msg.seq != a.searchSeq {
			return a, nil
		}
		a.engine.SetSearch(a.searchInput.Value())
		return a, a.fetchList()

	case notifyEventMsg:
		if !msg.ok {
			return a, nil
		}
		a.logInfo("Push event: %s (%s)", msg.event.Type, msg.event.ConflictID)
		return a, tea.Batch(a.fetchList(), a.fetchStatistics(), a.waitForPush())

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The form/panel stays open with input intact so no work is lost.
		switch msg.mutation {
		case api.MutationOverride:
			a.overrideErr = msg.err.Error()
		default:
			a.suggestErr = msg.err.Error()
		}
		a.statusMsg = msg.err.Error()
		a.logError("Mutation %s failed for %s: %v", msg.mutation, msg.conflictID, msg.err)
		return a, nil
	}
	a.logInfo("Mutation %s succeeded for %s", msg.mutation, msg.conflictID)
	switch msg.mutation {
	case api.MutationOverride:
		a.overrideForm = nil
		a.overrideErr = ""
		a.controller.OverrideSubmitted()
		a.statusMsg = "Override recorded"
	default:
		a.ranker = nil
		a.controller.ResolutionApplied()
		a.statusMsg = "Conflict resolved"
	}
	return a, tea.Batch(a.refetchFor(msg.mutation)...)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		a.Close()
		return a, tea.Quit
	}

	// The override modal captures all input while open.
	if a.controller.OverrideOpen() {
		return a.handleOverrideKey(msg)
	}
	if a.searchOpen {
		return a.handleSearchKey(msg)
	}

	switch a.controller.ActiveView() {
	case ViewList:
		return a.handleListKey(key)
	case ViewSuggestions:
		return a.handleSuggestionsKey(key)
	case ViewHistory:
		return a.handleHistoryKey(key)
	case ViewBatch:
		return a.handleBatchKey(msg)
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.searchOpen = false
		a.searchInput.Blur()
		return a, nil
	case "enter":
		a.searchOpen = false
		a.searchInput.Blur()
		a.engine.SetSearch(a.searchInput.Value())
		return a, a.fetchList()
	}
	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	if a.searchInput.Value() != before {
		return a, tea.Batch(cmd, a.scheduleSearch())
	}
	return a, cmd
}

func (a *App) handleListKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		a.Close()
		return a, tea.Quit
	case "j", "down":
		a.controller.MoveFocus(1)
	case "k", "up":
		a.controller.MoveFocus(-1)
	case "enter":
		if c, ok := a.focusedConflict(); ok && a.controller.OpenSuggestions(c.ID) {
			return a, a.fetchSuggestions(c.ID)
		}
	case " ":
		if c, ok := a.focusedConflict(); ok {
			a.controller.Batch().Toggle(c.ID)
		}
	case "a":
		a.controller.Batch().ToggleAll()
	case "b":
		if a.controller.OpenBatch() {
			a.batchMethodIdx = 0
			a.batchErr = ""
		} else {
			a.statusMsg = "Select conflicts first (space toggles)"
		}
	case "h":
		if c, ok := a.focusedConflict(); ok && a.controller.OpenHistory(c.ID) {
			return a, a.fetchHistory(c.ID)
		}
	case "p":
		a.controller.OpenPatterns()
		return a, a.fetchPatterns()
	case "o":
		if c, ok := a.focusedConflict(); ok && a.controller.OpenOverride(c.ID) {
			a.overrideForm = newOverrideForm(c)
			a.overrideErr = ""
		}
	case "d":
		return a, a.runDetection()
	case "r":
		a.statusMsg = "Refreshing..."
		return a, tea.Batch(a.fetchList(), a.fetchStatistics())
	case "/":
		a.searchOpen = true
		a.searchInput.Focus()
	case "c":
		a.engine.ClearAll()
		a.searchInput.SetValue("")
		return a, a.fetchList()
	case "1":
		a.engine.ToggleSeverity(conflict.SeverityCritical)
		return a, a.fetchList()
	case "2":
		a.engine.ToggleSeverity(conflict.SeverityHigh)
		return a, a.fetchList()
	case "3":
		a.engine.ToggleSeverity(conflict.SeverityMedium)
		return a, a.fetchList()
	case "4":
		a.engine.ToggleSeverity(conflict.SeverityLow)
		return a, a.fetchList()
	case "u":
		a.engine.ToggleStatus(conflict.StatusUnresolved)
		return a, a.fetchList()
	case "s":
		a.engine.ToggleSort(filters.SortBySeverity)
		return a, a.fetchList()
	case "n":
		a.engine.ToggleSort(filters.SortByDetectedAt)
		return a, a.fetchList()
	case "t":
		a.engine.ToggleSort(filters.SortByType)
		return a, a.fetchList()
	case "]":
		if a.page.Page < a.page.Pages {
			a.engine.SetPage(a.page.Page + 1)
			return a, a.fetchList()
		}
	case "[":
		if a.page.Page > 1 {
			a.engine.SetPage(a.page.Page - 1)
			return a, a.fetchList()
		}
	}
	return a, nil
}

func (a *App) handleSuggestionsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		a.controller.CloseDetail()
		a.ranker = nil
		a.suggestErr = ""
	case "j", "down":
		if a.ranker != nil && a.suggestFocus < a.ranker.Len()-1 {
			a.suggestFocus++
		}
	case "k", "up":
		if a.suggestFocus > 0 {
			a.suggestFocus--
		}
	case "enter":
		if a.ranker != nil && a.suggestFocus < a.ranker.Len() {
			a.ranker.Select(a.ranker.Suggestions()[a.suggestFocus].ID)
		}
	case "A":
		return a, a.applySelectedSuggestion()
	case "h":
		id := a.controller.SelectedConflictID()
		if a.controller.OpenHistory(id) {
			return a, a.fetchHistory(id)
		}
	case "o":
		id := a.controller.SelectedConflictID()
		if c, ok := a.conflictByID(id); ok && a.controller.OpenOverride(id) {
			a.overrideForm = newOverrideForm(c)
			a.overrideErr = ""
		}
	case "r":
		return a, a.fetchSuggestions(a.controller.SelectedConflictID())
	}
	return a, nil
}

func (a *App) handleHistoryKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		a.controller.CloseDetail()
		a.timeline = nil
		a.historyErr = ""
	case "t":
		if a.controller.PatternsMode() && a.analyzer != nil {
			a.analyzer.SetTypeFilter(nextTypeFilter(a.analyzer.TypeFilter()))
		}
	case "r":
		if a.controller.PatternsMode() {
			return a, a.fetchPatterns()
		}
		return a, a.fetchHistory(a.controller.SelectedConflictID())
	}
	return a, nil
}

func (a *App) handleBatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.batchRunning {
		return a, nil
	}
	switch msg.String() {
	case "esc":
		a.controller.FinishBatch()
		return a, a.fetchList()
	case "j", "down":
		if a.batchMethodIdx < len(batchMethods)-1 {
			a.batchMethodIdx++
		}
	case "k", "up":
		if a.batchMethodIdx > 0 {
			a.batchMethodIdx--
		}
	case "enter":
		return a, a.runBatch(false)
	case "i":
		return a, a.runBatch(true)
	}
	return a, nil
}

func (a *App) handleOverrideKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.controller.CancelOverride()
		a.overrideForm = nil
		a.overrideErr = ""
		return a, nil
	case "enter":
		if a.overrideForm != nil && a.overrideForm.editingText() {
			a.overrideForm.Handle(msg)
			return a, nil
		}
		if a.overrideForm != nil && a.overrideForm.IsValid() {
			return a, a.submitOverride()
		}
		if a.overrideForm != nil {
			a.overrideErr = strings.Join(a.overrideForm.Problems(), "; ")
		}
		return a, nil
	}
	if a.overrideForm != nil {
		a.overrideForm.Handle(msg)
	}
	return a, nil
}

// focusedConflict resolves the keyboard-focused row to its conflict.
func (a *App) focusedConflict() (conflict.Conflict, bool) {
	idx := a.controller.FocusedRow()
	if idx < 0 || idx >= len(a.page.Items) {
		return conflict.Conflict{}, false
	}
	return a.page.Items[idx], true
}

func (a *App) conflictByID(id string) (conflict.Conflict, bool) {
	for _, c := range a.page.Items {
		if c.ID == id {
			return c, true
		}
	}
	return conflict.Conflict{}, false
}

func conflictIDs(items []conflict.Conflict) []string {
	ids := make([]string, len(items))
	for i, c := range items {
		ids[i] = c.ID
	}
	return ids
}

// nextTypeFilter cycles none -> each conflict type -> none.
func nextTypeFilter(current conflict.Type) conflict.Type {
	if current == "" {
		return conflict.Types[0]
	}
	for i, t := range conflict.Types {
		if t == current {
			if i+1 < len(conflict.Types) {
				return conflict.Types[i+1]
			}
			return ""
		}
	}
	return ""
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
