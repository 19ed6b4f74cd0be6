package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/clhatlas/reco4011-ssim/pkg/ism"
	"github.com/clhatlas/reco4011-ssim/pkg/study"
)

// judgeCommand creates the judge command: an interactive walk over the
// upper-triangle factor pairs collecting V/A/X/O judgments.
func (c *CLI) judgeCommand() *cobra.Command {
	var (
		output string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "judge <factors.csv|study.json>",
		Short: "Collect SSIM judgments interactively",
		Long: `Judge loads a factor list (CSV with an id,code,description,category
header, or an existing study JSON to revise) and walks through every
factor pair in upper-triangle order. For each pair (i, j) press:

  v   factor i influences factor j
  a   factor j influences factor i
  x   both influence each other
  o   no relation

Existing judgments are preserved as defaults when revising a study.
The collected judgments are written as a study JSON file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadJudgeInput(args[0], name)
			if err != nil {
				return err
			}
			if len(st.Factors) < 2 {
				return fmt.Errorf("need at least 2 factors, have %d", len(st.Factors))
			}

			model := newJudgeModel(st)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return fmt.Errorf("run judgment session: %w", err)
			}

			m, ok := final.(judgeModel)
			if !ok || !m.done {
				printWarning("Judgment session aborted, nothing written")
				return nil
			}

			st.Judgments = m.judgments
			if err := study.ExportJSON(st, output); err != nil {
				return err
			}

			printSuccess("Recorded %d pairwise judgments", len(m.pairs))
			printFile(output)
			printNextStep("Analyze the study", fmt.Sprintf("%s analyze %s", appName, output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "study.json", "output study file")
	cmd.Flags().StringVar(&name, "name", "", "study name recorded in the output")

	return cmd
}

// loadJudgeInput accepts a factor CSV or an existing study JSON.
func loadJudgeInput(path, name string) (*study.Study, error) {
	if filepath.Ext(path) == ".csv" {
		factors, err := study.ImportFactorsCSV(path)
		if err != nil {
			return nil, err
		}
		st := &study.Study{Name: name, Factors: factors, Judgments: ism.Judgments{}}
		return st, nil
	}

	st, err := study.ImportJSON(path)
	if err != nil {
		return nil, err
	}
	if st.Judgments == nil {
		st.Judgments = ism.Judgments{}
	}
	if name != "" {
		st.Name = name
	}
	return st, nil
}

// pair is one upper-triangle factor pair awaiting judgment.
type pair struct {
	row, col int
}

// judgeModel is the bubbletea model for the judgment walk.
type judgeModel struct {
	factors   []ism.Factor
	pairs     []pair
	judgments ism.Judgments
	cursor    int
	done      bool
}

func newJudgeModel(st *study.Study) judgeModel {
	var pairs []pair
	for i := 0; i < len(st.Factors); i++ {
		for j := i + 1; j < len(st.Factors); j++ {
			pairs = append(pairs, pair{row: i, col: j})
		}
	}

	judgments := ism.Judgments{}
	for _, p := range pairs {
		row, col := st.Factors[p.row].ID, st.Factors[p.col].ID
		if s := st.Judgments.Lookup(row, col); s != ism.SymbolO {
			judgments.Set(row, col, s)
		}
	}

	return judgeModel{
		factors:   st.Factors,
		pairs:     pairs,
		judgments: judgments,
	}
}

func (m judgeModel) Init() tea.Cmd {
	return nil
}

func (m judgeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "v", "a", "x", "o":
		p := m.pairs[m.cursor]
		row, col := m.factors[p.row].ID, m.factors[p.col].ID
		s, _ := ism.ParseSymbol(key.String())
		if s == ism.SymbolO {
			// O is the default; an explicit O clears any earlier answer.
			if cols, ok := m.judgments[row]; ok {
				delete(cols, col)
			}
		} else {
			m.judgments.Set(row, col, s)
		}
		if m.cursor == len(m.pairs)-1 {
			m.done = true
			return m, tea.Quit
		}
		m.cursor++
	case "left", "u":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right":
		if m.cursor < len(m.pairs)-1 {
			m.cursor++
		}
	}
	return m, nil
}

var (
	judgeRowStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	judgeColStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	judgeKeyStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

func (m judgeModel) View() string {
	if m.done {
		return ""
	}

	p := m.pairs[m.cursor]
	row, col := m.factors[p.row], m.factors[p.col]

	var b strings.Builder
	b.WriteString(StyleTitle.Render("SSIM Judgment"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.pairs))))
	b.WriteString("\n\n")

	b.WriteString("  " + judgeRowStyle.Render(row.Label()))
	if row.Description != "" {
		b.WriteString(StyleDim.Render("  " + row.Description))
	}
	b.WriteString("\n  " + StyleDim.Render("vs"))
	b.WriteString("\n  " + judgeColStyle.Render(col.Label()))
	if col.Description != "" {
		b.WriteString(StyleDim.Render("  " + col.Description))
	}
	b.WriteString("\n\n")

	current := m.judgments.Lookup(row.ID, col.ID)
	choices := []struct {
		key  string
		desc string
	}{
		{"v", fmt.Sprintf("%s influences %s", row.Label(), col.Label())},
		{"a", fmt.Sprintf("%s influences %s", col.Label(), row.Label())},
		{"x", "both directions"},
		{"o", "no relation"},
	}
	for _, ch := range choices {
		marker := "  "
		if strings.EqualFold(ch.key, string(current)) {
			marker = judgeKeyStyle.Render(iconSuccess) + " "
		}
		b.WriteString(fmt.Sprintf("  %s%s  %s\n", marker, judgeKeyStyle.Render(ch.key), ch.desc))
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  ←/u back  →/skip forward  q abort"))
	b.WriteString("\n")
	return b.String()
}
