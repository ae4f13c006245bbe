package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/mydehq/hwrename/internal/types"
)

func TestScanStatus(t *testing.T) {
	tests := []struct {
		name string
		in   types.ScanResult
		want string
	}{
		{"not found", types.ScanResult{Target: "x"}, StatusNotFound},
		{"rename", types.ScanResult{Target: "x", MatchedFile: "x.txt", NewName: "y.txt"}, StatusRename},
		{"same", types.ScanResult{Target: "x", MatchedFile: "x.txt", NewName: "x.txt"}, StatusSame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScanStatus(tt.in); got != tt.want {
				t.Errorf("ScanStatus() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestOutcomeLabel(t *testing.T) {
	tests := map[types.Outcome]string{
		types.OutcomeSuccess:           "Done",
		types.OutcomeSourceMissing:     "Failed: missing",
		types.OutcomeDestinationExists: "Failed: exists",
		types.OutcomeFailed:            "Failed",
	}
	for in, want := range tests {
		if got := OutcomeLabel(in); got != want {
			t.Errorf("OutcomeLabel(%s) = %q; want %q", in, got, want)
		}
	}
}

func TestColorizeEventKeepsText(t *testing.T) {
	tests := []struct {
		msg   string
		parts []string
	}{
		{"Renamed: old.pdf → new.pdf", []string{"Renamed:", "old.pdf", "→", "new.pdf"}},
		{"Failed: a.txt (file exists)", []string{"Failed:", "a.txt (file exists)"}},
		{"Not found: 张三", []string{"Not found:", "张三"}},
		{"plain message", []string{"plain message"}},
	}

	for _, tt := range tests {
		got := ColorizeEvent(tt.msg)
		for _, p := range tt.parts {
			if !strings.Contains(got, p) {
				t.Errorf("ColorizeEvent(%q) = %q; missing %q", tt.msg, got, p)
			}
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tt := range tests {
		if got := NewLogger(&bytes.Buffer{}, tt.in).GetLevel(); got != tt.want {
			t.Errorf("NewLogger(%q) level = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestHandleAbort(t *testing.T) {
	if err := HandleAbort(nil); err != nil {
		t.Errorf("HandleAbort(nil) = %v", err)
	}
	if err := HandleAbort(huh.ErrUserAborted); !errors.Is(err, ErrUserAborted) {
		t.Errorf("HandleAbort(huh.ErrUserAborted) = %v; want ErrUserAborted", err)
	}
	other := errors.New("boom")
	if err := HandleAbort(other); err != other {
		t.Errorf("HandleAbort(other) = %v; want it unchanged", err)
	}
}
