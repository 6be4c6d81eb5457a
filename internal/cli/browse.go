package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/crossgrid/pkg/generate"
	"github.com/matzehuels/crossgrid/pkg/grid"
)

var (
	gridStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Foreground(colorWhite).
			Padding(0, 1)
	browseDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// browseModel pages through the ranked grids of a report.
type browseModel struct {
	rep    *generate.Report
	cursor int
}

func newBrowseModel(rep *generate.Report) browseModel {
	return browseModel{rep: rep}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(m.rep.Crosswords)
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n", "down", "j", " ":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "left", "h", "p", "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(0, n-1)
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Crossword grids"))
	b.WriteString("  ")
	b.WriteString(browseDimStyle.Render(strings.Join(m.rep.Words, " ")))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("←/→ previous/next  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.rep.Crosswords) == 0 {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("No connected crosswords use the words %v.", m.rep.Words)))
		b.WriteString("\n")
		return b.String()
	}

	cw := m.rep.Crosswords[m.cursor].Align(0, 0)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		gridStyle.Render(gridText(cw)),
		"  ",
		clueTable(cw).Render(),
	))
	b.WriteString("\n\n")

	w, h := cw.BoundingBox()
	b.WriteString(browseDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d x %d  %d crossings",
		m.cursor+1, len(m.rep.Crosswords), w, h, cw.Crossings())))
	if m.rep.IterationLimitReached() {
		b.WriteString("  ")
		b.WriteString(StyleWarning.Render("iteration limit reached"))
	}
	b.WriteString("\n")
	return b.String()
}

// gridText draws the cells with blank squares shown as dots.
func gridText(cw *grid.Crossword) string {
	rows := cw.Cells()
	lines := make([]string, len(rows))
	for y, row := range rows {
		cells := make([]string, len(row))
		for x, r := range row {
			if r == grid.Blank {
				cells[x] = browseDimStyle.Render("·")
			} else {
				cells[x] = string(r)
			}
		}
		lines[y] = strings.Join(cells, " ")
	}
	return strings.Join(lines, "\n")
}

func clueTable(cw *grid.Crossword) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := [][]string{}
	for _, c := range cw.Clues() {
		rows = append(rows, []string{c.Word, strconv.Itoa(c.Row), strconv.Itoa(c.Col), c.Direction})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Word", "Row", "Col", "Dir").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			default:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
		})
}

func (c *CLI) browseCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "browse WORD...",
		Short: "Generate grids and page through them interactively",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			genOpts, err := c.generateOptions(cmd, opts)
			if err != nil {
				return err
			}
			if !isTerminal(os.Stdout) {
				return errors.New("browse needs an interactive terminal; use generate instead")
			}
			runner, err := c.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			genOpts.Logger = loggerFromContext(ctx)
			spinner := newSpinnerWithContext(ctx, "Searching...")
			spinner.Start()
			rep, err := runner.Generate(ctx, args, genOpts)
			spinner.Stop()
			if err != nil {
				return err
			}

			_, err = tea.NewProgram(newBrowseModel(rep), tea.WithContext(ctx), tea.WithAltScreen()).Run()
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.limit, "limit", "n", 0, "maximum number of grids to browse")
	f.IntVar(&opts.iterations, "iterations", 0, "maximum number of candidate grids to examine")
	f.DurationVar(&opts.timeout, "timeout", 0, "search time limit")
	f.BoolVar(&opts.firstSeedOnly, "first-seed-only", false, "only start the search from the first word")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	f.BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")
	return cmd
}
