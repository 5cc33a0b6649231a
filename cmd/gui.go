package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DrZoddiak/ore-monitor/config"
	"github.com/DrZoddiak/ore-monitor/db"
	"github.com/DrZoddiak/ore-monitor/logger"
	"github.com/DrZoddiak/ore-monitor/modmeta"
	"github.com/DrZoddiak/ore-monitor/ore"
	"github.com/DrZoddiak/ore-monitor/version"
)

// guiCmd represents the gui command
var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Launch the interactive interface to manage plugins",
	Long:  `Launch an interactive TUI to review installed plugins and install updates from Ore.`,
	Run: func(_ *cobra.Command, _ []string) {
		runGUI()
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

// pluginRow is one plugin as shown in the TUI table.
type pluginRow struct {
	PluginID   string
	Name       string
	Owner      string
	Slug       string
	Installed  string
	Available  string
	StatusText string
	Status     version.Status
	Selected   bool
	Selectable bool
}

// Model represents the state of the TUI
type Model struct {
	rows          []pluginRow
	selectedIndex int
	loading       bool
	installing    bool
	error         string
	message       string
	client        *ore.Client
	cfg           config.Config
	spinner       spinner.Model
	width         int
	height        int
	loadedRows    int
	totalRows     int
	progressChan  chan rowProgressMsg
}

// Initialize the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadPlugins(),
		m.waitForProgress(),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case rowProgressMsg:
		m.loadedRows = msg.current
		m.totalRows = msg.total
		return m, m.waitForProgress()
	case rowsLoadedMsg:
		m.handleRowsLoaded(msg)
	case errorMsg:
		m.error = string(msg)
		m.loading = false
		m.installing = false
	case installCompleteMsg:
		return m.handleInstallComplete(msg)
	case clearMessageMsg:
		m.message = ""
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case "down", "j":
		if m.selectedIndex < len(m.rows)-1 {
			m.selectedIndex++
		}
	case " ":
		if len(m.rows) > 0 && m.rows[m.selectedIndex].Selectable {
			m.rows[m.selectedIndex].Selected = !m.rows[m.selectedIndex].Selected
		}
	case "ctrl+d":
		if !m.installing {
			m.installing = true
			return m, m.installSelected()
		}
	}
	return m, nil
}

func (m *Model) handleRowsLoaded(msg rowsLoadedMsg) {
	m.rows = msg.rows
	m.loading = false
	sort.Slice(m.rows, func(i, j int) bool {
		return strings.ToLower(m.rows[i].PluginID) < strings.ToLower(m.rows[j].PluginID)
	})
	for i := range m.rows {
		m.rows[i].Selected = false
	}
	if m.selectedIndex >= len(m.rows) {
		m.selectedIndex = 0
	}
}

func (m *Model) handleInstallComplete(msg installCompleteMsg) (tea.Model, tea.Cmd) {
	m.installing = false
	m.loading = true
	m.message = msg.message
	m.progressChan = make(chan rowProgressMsg, 16)
	return m, tea.Batch(
		m.loadPlugins(),
		m.waitForProgress(),
		tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearMessageMsg{}
		}),
	)
}

// View renders the UI
func (m Model) View() string {
	if m.loading {
		return m.renderLoadingScreen()
	}

	if m.installing {
		return m.renderInstallingScreen()
	}

	if m.error != "" {
		return fmt.Sprintf("Error: %s\n", m.error)
	}

	if len(m.rows) == 0 {
		return "No plugin archives found in the plugins directory.\n"
	}

	var output string
	output += renderHeader()
	output += "\n"

	for i, row := range m.rows {
		output += m.renderRow(i, row)
		output += "\n"
	}

	output += "\n" + renderFooter()

	if m.message != "" {
		output += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.message)
	}

	return output
}

func (m Model) renderLoadingScreen() string {
	var progressText string
	if m.totalRows > 0 {
		progressText = fmt.Sprintf(" %d/%d plugins", m.loadedRows, m.totalRows)
	}

	loadingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	return loadingStyle.Render(fmt.Sprintf("%s Checking plugins%s...", m.spinner.View(), progressText)) + "\n"
}

func (m Model) renderInstallingScreen() string {
	installingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	return installingStyle.Render(fmt.Sprintf("%s Installing selected plugins...", m.spinner.View())) + "\n"
}

func renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)

	return headerStyle.Render(fmt.Sprintf("%-30s %-20s %-20s %-15s", "Plugin", "Installed", "Available", "Status"))
}

func renderFooter() string {
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true)

	return footerStyle.Render("↑/k: up  ↓/j: down  space: select  ctrl+d: install  q: quit")
}

func (m Model) renderRow(index int, row pluginRow) string {
	var statusColor string
	switch {
	case row.Available == "":
		statusColor = "7" // White
	case row.Status == version.OutOfDate:
		statusColor = "11" // Yellow
	case row.Status == version.UpToDate:
		statusColor = "10" // Green
	default:
		statusColor = "13" // Magenta
	}

	rowStyle := lipgloss.NewStyle().Padding(0, 1)
	if index == m.selectedIndex {
		rowStyle = rowStyle.
			Background(lipgloss.Color("8")).
			Bold(true)
	}

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(statusColor))

	selectionIndicator := " "
	if row.Selected {
		selectionIndicator = "✓"
	} else if !row.Selectable {
		selectionIndicator = "-"
	}

	// Pad status before applying color to maintain column alignment
	paddedStatus := fmt.Sprintf("%-15s", row.StatusText)
	coloredStatus := statusStyle.Render(paddedStatus)

	line := fmt.Sprintf("%s %-29s %-20s %-20s %s",
		selectionIndicator,
		truncate(row.PluginID, 27),
		truncate(row.Installed, 18),
		truncate(row.Available, 18),
		coloredStatus,
	)

	return rowStyle.Render(line)
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}

// Message types
type rowsLoadedMsg struct {
	rows []pluginRow
}

type errorMsg string

type rowProgressMsg struct {
	current int
	total   int
}

type installCompleteMsg struct {
	message string
}

type clearMessageMsg struct{}

// Load plugins from disk and compare them against Ore
func (m Model) loadPlugins() tea.Cmd {
	return func() tea.Msg {
		rows, err := m.fetchRowsWithProgress()
		if err != nil {
			logger.Log.Errorw("Failed to check plugins", zap.Error(err))
			return errorMsg(fmt.Sprintf("Failed to check plugins: %v", err))
		}
		return rowsLoadedMsg{rows: rows}
	}
}

func (m Model) waitForProgress() tea.Cmd {
	ch := m.progressChan
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m Model) fetchRowsWithProgress() ([]pluginRow, error) {
	defer close(m.progressChan)

	mods, err := modmeta.ExtractDir(m.cfg.PluginsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugins directory: %w", err)
	}

	var rows []pluginRow
	for i, mod := range mods {
		m.progressChan <- rowProgressMsg{current: i + 1, total: len(mods)}

		row := pluginRow{
			PluginID:  mod.ModID,
			Name:      mod.Name,
			Installed: mod.Version,
		}

		major, err := mod.SpongeTagVersion()
		if err != nil {
			row.StatusText = "unknown"
			rows = append(rows, row)
			continue
		}

		project, err := m.client.GetProject(mod.ModID)
		if err != nil {
			logger.Log.Warnw("Failed to fetch project", zap.String("plugin_id", mod.ModID), zap.Error(err))
			row.StatusText = "unknown"
			rows = append(rows, row)
			continue
		}

		row.Name = project.Name
		row.Owner = project.Namespace.Owner
		row.Slug = project.Namespace.Slug
		row.Available = project.VersionFromTag(major)

		if row.Available == "" {
			row.StatusText = "no match"
			rows = append(rows, row)
			continue
		}

		row.Status = version.Compare(mod.Version, row.Available)
		switch row.Status {
		case version.OutOfDate:
			row.StatusText = "out of date"
			row.Selectable = true
		case version.UpToDate:
			row.StatusText = "up to date"
		case version.Overdated:
			row.StatusText = "ahead"
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (m Model) installSelected() tea.Cmd {
	return func() tea.Msg {
		var selected []pluginRow
		for _, row := range m.rows {
			if row.Selected {
				selected = append(selected, row)
			}
		}

		if len(selected) == 0 {
			return installCompleteMsg{message: "No plugins selected for install"}
		}

		successCount := 0
		for _, row := range selected {
			if err := m.installRow(row); err != nil {
				logger.Log.Warnw("Failed to install plugin", zap.String("plugin_id", row.PluginID), zap.Error(err))
				continue
			}
			successCount++
		}

		return installCompleteMsg{message: fmt.Sprintf("Installed %d/%d selected plugins", successCount, len(selected))}
	}
}

func (m Model) installRow(row pluginRow) error {
	// Archive the replaced version if it is tracked in the database
	var existing db.Plugin
	result := db.DB.Where("plugin_id = ?", row.PluginID).First(&existing)
	if result.Error == nil {
		archiveAndCleanupOld(existing, m.cfg.PluginsDir, &m.cfg, logger.Log)
	}

	fileName, err := m.client.DownloadPluginFile(logger.Log, m.cfg.PluginsDir, row.Owner, row.Slug, row.Available)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	return m.recordInstall(row, fileName)
}

func (m Model) recordInstall(row pluginRow, fileName string) error {
	installPath := filepath.Join(m.cfg.PluginsDir, fileName)

	var existing db.Plugin
	result := db.DB.Where("plugin_id = ?", row.PluginID).First(&existing)
	if result.Error == nil {
		existing.Version = row.Available
		existing.FileName = fileName
		existing.InstallPath = installPath
		return db.DB.Save(&existing).Error
	}

	return db.DB.Create(&db.Plugin{
		PluginID:    row.PluginID,
		Name:        row.Name,
		Owner:       row.Owner,
		Slug:        row.Slug,
		Version:     row.Available,
		FileName:    fileName,
		InstallPath: installPath,
	}).Error
}

func runGUI() {
	cfg, client := bootstrap(".")

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		loading:      true,
		client:       client,
		cfg:          cfg,
		spinner:      s,
		width:        80,
		height:       24,
		progressChan: make(chan rowProgressMsg, 16),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Log.Fatalw("Failed to run GUI", zap.Error(err))
	}
}
