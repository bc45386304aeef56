package main

import (
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
)

var (
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	fileStyle = lipgloss.NewStyle().Faint(true)
)

func reportError(file string, err error) {
	fmt.Fprintf(os.Stderr, "%s %s: %s", failStyle.Render("fail"), file, err)
	fmt.Fprintln(os.Stderr)
}

func reportSuccess(file, out string) {
	fmt.Fprintf(os.Stdout, "%s %s %s", passStyle.Render("done"), file, fileStyle.Render("-> "+out))
	fmt.Fprintln(os.Stdout)
}

func reportValid(file string) {
	fmt.Fprintf(os.Stdout, "%s %s: document is valid", passStyle.Render("pass"), file)
	fmt.Fprintln(os.Stdout)
}
