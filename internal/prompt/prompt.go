// Package prompt asks the user for a MIDI file path on the console.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Prompter reads file paths line by line.
type Prompter struct {
	in   *bufio.Reader
	out  io.Writer
	stat func(string) (os.FileInfo, error)
}

// New returns a prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, stat: os.Stat}
}

// ReadPath prompts until the user names an existing file. It returns
// io.EOF once input is exhausted.
func (p *Prompter) ReadPath() (string, error) {
	for {
		fmt.Fprint(p.out, promptStyle.Render("Enter file name >"))
		line, err := p.in.ReadString('\n')
		name := strings.TrimSpace(line)
		if err != nil && !(errors.Is(err, io.EOF) && name != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(p.out)
				return "", io.EOF
			}
			p.Error(fmt.Sprintf("Unable to read line: %v", err))
			continue
		}
		if name == "" {
			continue
		}
		if info, serr := p.stat(name); serr != nil || info.IsDir() {
			p.Error(fmt.Sprintf("File %s doesn't exist!\n", name))
			continue
		}
		return name, nil
	}
}

// Error prints a message in the error style.
func (p *Prompter) Error(msg string) {
	fmt.Fprintln(p.out, errorStyle.Render(msg))
}

// Info prints a message in the info style.
func (p *Prompter) Info(msg string) {
	fmt.Fprintln(p.out, infoStyle.Render(msg))
}
