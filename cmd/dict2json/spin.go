package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/term"
)

var spinStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

type Spinner struct {
	frames  []string
	message string
	delay   time.Duration
	out     io.Writer
	enabled bool

	mu      sync.Mutex
	running bool

	stop sync.Once
	done chan struct{}
	wait sync.WaitGroup
}

func NewSpinner() *Spinner {
	return &Spinner{
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		delay:   time.Millisecond * 90,
		out:     os.Stderr,
		enabled: term.IsTerminal(os.Stderr.Fd()),
		done:    make(chan struct{}),
	}
}

func (s *Spinner) Disable() {
	s.enabled = false
}

func (s *Spinner) SetMessage(msg string) {
	msg = strings.TrimSpace(msg)
	msg = strings.TrimRight(msg, ".")
	s.message = msg
}

func (s *Spinner) Run(fn func()) {
	if !s.enabled {
		fn()
		return
	}
	s.Start()
	defer s.Stop()
	fn()
}

func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.wait.Add(1)
	go s.run()
}

func (s *Spinner) Stop() {
	s.stop.Do(func() {
		close(s.done)
		s.wait.Wait()

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.running {
			io.WriteString(s.out, "\x1b[0G\x1b[2K\x1b[0G")
		}
	})
}

func (s *Spinner) run() {
	defer s.wait.Done()

	tick := time.NewTicker(s.delay)
	defer tick.Stop()
	for i := 0; ; i++ {
		select {
		case <-tick.C:
			frame := spinStyle.Render(s.frames[i%len(s.frames)])
			if s.message == "" {
				fmt.Fprintf(s.out, "\r%s", frame)
			} else {
				fmt.Fprintf(s.out, "\r%s %s...", frame, s.message)
			}
		case <-s.done:
			return
		}
	}
}
