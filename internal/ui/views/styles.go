package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title            lipgloss.Style
	SearchBar        lipgloss.Style
	SearchBarFocused lipgloss.Style
	Recording        lipgloss.Style
	GroupLabel       lipgloss.Style
	Suggestion       lipgloss.Style
	SuggestionActive lipgloss.Style
	SuggestionCount  lipgloss.Style
	ResultTitle      lipgloss.Style
	ResultActive     lipgloss.Style
	ResultMeta       lipgloss.Style
	ResultSummary    lipgloss.Style
	Status           lipgloss.Style
	StatusError      lipgloss.Style
	Dim              lipgloss.Style
	Help             lipgloss.Style
	Filter           lipgloss.Style
	FacetBox         lipgloss.Style
	FacetActive      lipgloss.Style
	FacetOn          lipgloss.Style
	Panel            lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		SearchBar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		SearchBarFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Recording:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		GroupLabel:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Suggestion:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		SuggestionActive: lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("226")),
		SuggestionCount:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		ResultTitle:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		ResultActive:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		ResultMeta:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		ResultSummary:    lipgloss.NewStyle().Foreground(lipgloss.Color("248")),
		Status:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Dim:              lipgloss.NewStyle().Faint(true),
		Help:             lipgloss.NewStyle().Faint(true),
		Filter:           lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		FacetBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		FacetActive: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		FacetOn:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
	}
}
