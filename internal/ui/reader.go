package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"searchdeck/internal/domain"
)

// Reader pages a full post body through an embedded ov pager, falling back
// to `less -R`. The Bubble Tea program releases the terminal while the pager
// runs and restores it after.
type Reader struct {
	program *tea.Program
}

// NewReader creates a new reader
func NewReader() *Reader {
	return &Reader{}
}

// SetProgram sets the program reference for terminal management
func (r *Reader) SetProgram(p *tea.Program) {
	r.program = p
}

// Show renders the document and pages it, handling terminal release/restore
func (r *Reader) Show(doc *domain.Document) error {
	if r.program == nil {
		return fmt.Errorf("program not set")
	}
	content := renderDocument(doc)

	if err := r.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		fmt.Print("\x1b[2J\x1b[H")
		// small delay so the pager has fully exited before restoring
		time.Sleep(150 * time.Millisecond)
		_ = r.program.RestoreTerminal()
	}()

	if err := r.pageWithOv(content); err != nil {
		return r.pageWithLess(content)
	}
	return nil
}

// pageWithOv pages the content with the embedded ov pager
func (r *Reader) pageWithOv(content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// don't write the document back to the screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// pageWithLess pages the content through `less -R`
func (r *Reader) pageWithLess(content string) error {
	if _, err := exec.LookPath("less"); err != nil {
		return fmt.Errorf("less not found in PATH")
	}
	lessCmd := exec.Command("less", "-R")
	lessCmd.Stdin = strings.NewReader(content)
	lessCmd.Stdout = os.Stdout
	lessCmd.Stderr = os.Stderr
	return lessCmd.Run()
}

// renderDocument lays out the pager content for one post
func renderDocument(doc *domain.Document) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(doc.Title))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("%s · %s", doc.Author, doc.PublishedAt.Format("2006-01-02"))))
	b.WriteString("\n\n")
	b.WriteString(doc.Content)
	b.WriteString("\n")
	return b.String()
}
