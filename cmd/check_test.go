package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/DrZoddiak/ore-monitor/version"
)

func TestCheckResultRender(t *testing.T) {
	t.Run("compared versions", func(t *testing.T) {
		res := checkResult{
			ModID:         "nucleus",
			LocalVersion:  "2.1.4",
			RemoteVersion: "2.1.5",
			Status:        version.OutOfDate,
			statusKnown:   true,
		}
		out := res.render()

		for _, want := range []string{
			"ModID: nucleus",
			"Local Version : 2.1.4",
			"Remote Version : 2.1.5",
			"Version is outdated",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("render() missing %q in:\n%s", want, out)
			}
		}
	})

	t.Run("no compatible remote version", func(t *testing.T) {
		res := checkResult{
			ModID:        "griefdefender",
			LocalVersion: "2.0.0",
		}
		out := res.render()

		if !strings.Contains(out, "no compatible remote version") {
			t.Errorf("render() missing sentinel message in:\n%s", out)
		}
		if !strings.Contains(out, "Version Status : unknown") {
			t.Errorf("render() missing unknown status in:\n%s", out)
		}
	})

	t.Run("error result", func(t *testing.T) {
		res := checkResult{
			ModID:        "luckperms",
			LocalVersion: "5.0.0",
			Err:          errors.New("cannot determine platform compatibility"),
		}
		out := res.render()

		if !strings.Contains(out, "Remote Version : unknown") {
			t.Errorf("render() missing unknown remote in:\n%s", out)
		}
		if !strings.Contains(out, "cannot determine platform compatibility") {
			t.Errorf("render() missing error text in:\n%s", out)
		}
	})
}

func TestCheckResultRenderShape(t *testing.T) {
	res := checkResult{
		ModID:         "nucleus",
		LocalVersion:  "2.1.4",
		RemoteVersion: "2.1.4",
		Status:        version.UpToDate,
		statusKnown:   true,
	}
	lines := strings.Split(strings.TrimRight(res.render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("render() produced %d lines, want 4:\n%s", len(lines), res.render())
	}
	if !strings.HasPrefix(lines[0], "ModID: ") {
		t.Errorf("first line should carry the mod id, got %q", lines[0])
	}
}
