package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"grievlog/internal/sheet"
)

// Tagged results handed back from the network workers. Update is the
// only consumer, so view state never needs a lock.
type fetchDoneMsg struct {
	rows []sheet.Record
	err  error
}

type submitDoneMsg struct {
	err error
}

// SheetClient is what the coordinator needs from the transport; tests
// substitute a fake.
type SheetClient interface {
	FetchAll(ctx context.Context) ([]sheet.Record, error)
	Submit(ctx context.Context, rec sheet.Record) error
}

func (m *Model) fetchCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		rows, err := client.FetchAll(context.Background())
		return fetchDoneMsg{rows: rows, err: err}
	}
}

func (m *Model) submitCmd(rec sheet.Record) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return submitDoneMsg{err: client.Submit(context.Background(), rec)}
	}
}

func copyToClipboard(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("empty")
	}
	switch runtime.GOOS {
	case "darwin":
		return pipeTo(exec.Command("pbcopy"), s)
	case "linux":
		// try wl-copy then xclip
		if _, err := exec.LookPath("wl-copy"); err == nil {
			return pipeTo(exec.Command("wl-copy"), s)
		}
		if _, err := exec.LookPath("xclip"); err == nil {
			return pipeTo(exec.Command("xclip", "-selection", "clipboard"), s)
		}
	}
	return fmt.Errorf("no clipboard utility found")
}

func pipeTo(cmd *exec.Cmd, s string) error {
	in, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	_, _ = in.Write([]byte(s))
	_ = in.Close()
	return cmd.Wait()
}
