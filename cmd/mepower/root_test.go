package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nao1215/mepower/internal/config"
)

const (
	yorkTop = `<html><body>
<p align="right">Update: Oct 11, 2022 12:40 AM</p>
<table>
<tr><th>County</th><th>Customers</th><th>Out</th></tr>
<tr><td><a href="york.html">YORK</a></td><td>100</td><td>5</td></tr>
</table></body></html>`

	yorkCounty = `<html><body><table>
<tr><th>Town</th><th>Customers</th><th>Out</th></tr>
<tr><td><a href="kittery.html">KITTERY</a></td><td>20</td><td>5</td></tr>
</table></body></html>`

	yorkTown = `<html><body><table>
<tr><th>Street</th><th>Customers</th><th>Out</th><th>Estimated Restoration</th></tr>
<tr><td>MAIN ST</td><td>9</td><td>5</td><td>11:00 PM</td></tr>
</table></body></html>`

	yorkLine = `{"outage_update":"Oct 11, 2022 12:40 AM","county":"York","county_total":"100","county_out":"5",` +
		`"muni":"Kittery","muni_total":"20","muni_out":"5","street":"Main St","street_out":"5",` +
		`"street_restoration":"11:00 PM","message":""}`
)

// newPortal serves pages under /OutageReports. The returned function
// reports the User-Agent of the last request.
func newPortal(t *testing.T, pages map[string]string) (*httptest.Server, func() string) {
	t.Helper()

	var (
		mu        sync.Mutex
		userAgent string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		userAgent = r.Header.Get("User-Agent")
		mu.Unlock()

		body, ok := pages[strings.TrimPrefix(r.URL.Path, "/OutageReports/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, func() string {
		mu.Lock()
		defer mu.Unlock()
		return userAgent
	}
}

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "mepower" {
			t.Errorf("expected use 'mepower', got %q", cmd.Use)
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"init", "version"} {
			found := false
			for _, sub := range cmd.Commands() {
				if sub.Name() == name {
					found = true
				}
			}
			if !found {
				t.Errorf("expected subcommand %q", name)
			}
		}
	})

	t.Run("has flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{
			"config", "base-url", "user-agent", "concurrency", "timeout",
			"retries", "proxy", "on-branch-error", "format", "output",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q", name)
			}
		}
		for _, name := range []string{"verbose", "log-format"} {
			if cmd.PersistentFlags().Lookup(name) == nil {
				t.Errorf("expected persistent flag %q", name)
			}
		}
	})
}

// TestRootCmdScrape runs the whole command against a local portal.
func TestRootCmdScrape(t *testing.T) {
	t.Parallel()

	t.Run("writes one line per street", func(t *testing.T) {
		t.Parallel()

		srv, ua := newPortal(t, map[string]string{
			"CMP.html":     yorkTop,
			"york.html":    yorkCounty,
			"kittery.html": yorkTown,
		})

		stdout, _, err := runRoot(t, "--base-url", srv.URL+"/OutageReports")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != yorkLine+"\n" {
			t.Errorf("expected %q, got %q", yorkLine+"\n", stdout)
		}
		if !strings.Contains(ua(), "Chrome/106.0.0.0") {
			t.Errorf("expected browser User-Agent, got %q", ua())
		}
	})

	t.Run("empty portal", func(t *testing.T) {
		t.Parallel()

		srv, _ := newPortal(t, map[string]string{
			"CMP.html": `<p align="right">Update: Oct 11, 2022 12:40 AM</p><table></table>`,
		})

		stdout, _, err := runRoot(t, "-u", srv.URL+"/OutageReports")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"outage_update":"Oct 11, 2022 12:40 AM","message":"No outage data found."}` + "\n"
		if stdout != want {
			t.Errorf("expected %q, got %q", want, stdout)
		}
	})

	t.Run("unreachable portal exits cleanly", func(t *testing.T) {
		t.Parallel()

		srv, _ := newPortal(t, nil)

		stdout, stderr, err := runRoot(t, "-u", srv.URL+"/OutageReports")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(stdout, `"message":"Scraping Error"`) || strings.Count(stdout, "\n") != 1 {
			t.Errorf("expected one scraping error line, got %q", stdout)
		}
		if !strings.Contains(stderr, "scrape failed") {
			t.Errorf("expected failure to be logged, got %q", stderr)
		}
	})

	t.Run("report policy marks failing town", func(t *testing.T) {
		t.Parallel()

		srv, _ := newPortal(t, map[string]string{
			"CMP.html":  yorkTop,
			"york.html": yorkCounty,
		})

		stdout, _, err := runRoot(t, "-u", srv.URL+"/OutageReports", "--on-branch-error", "report")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, `"muni":"Kittery"`) || !strings.Contains(stdout, "Scraping Error: ") {
			t.Errorf("expected branch record for Kittery, got %q", stdout)
		}
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		srv, ua := newPortal(t, map[string]string{"CMP.html": yorkTop})
		if _, _, err := runRoot(t, "-u", srv.URL+"/OutageReports", "--user-agent", "mepower-test/1.0"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ua() != "mepower-test/1.0" {
			t.Errorf("expected custom User-Agent, got %q", ua())
		}
	})

	t.Run("writes markdown to a file", func(t *testing.T) {
		t.Parallel()

		srv, _ := newPortal(t, map[string]string{
			"CMP.html":     yorkTop,
			"york.html":    yorkCounty,
			"kittery.html": yorkTown,
		})
		outPath := filepath.Join(t.TempDir(), "nested", "outages.md")

		stdout, _, err := runRoot(t, "-u", srv.URL+"/OutageReports", "-f", "markdown", "-o", outPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "" {
			t.Errorf("expected nothing on stdout, got %q", stdout)
		}

		content, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if !strings.Contains(string(content), "Main St") {
			t.Errorf("expected markdown table with Main St, got %q", content)
		}
	})
}

// TestRootCmdConfig tests configuration errors and layering.
func TestRootCmdConfig(t *testing.T) {
	t.Parallel()

	t.Run("invalid flag value", func(t *testing.T) {
		t.Parallel()

		_, _, err := runRoot(t, "--concurrency", "0")
		if !errors.Is(err, config.ErrInvalidConcurrency) {
			t.Errorf("expected ErrInvalidConcurrency, got %v", err)
		}
	})

	t.Run("invalid policy", func(t *testing.T) {
		t.Parallel()

		_, _, err := runRoot(t, "--on-branch-error", "retry")
		if !errors.Is(err, config.ErrInvalidBranchPolicy) {
			t.Errorf("expected ErrInvalidBranchPolicy, got %v", err)
		}
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		t.Parallel()

		_, _, err := runRoot(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		t.Parallel()

		if _, _, err := runRoot(t, "york"); err == nil {
			t.Error("expected error for positional argument")
		}
	})

	t.Run("flags override the config file", func(t *testing.T) {
		t.Parallel()

		srv, ua := newPortal(t, map[string]string{
			"CMP.html":     yorkTop,
			"york.html":    yorkCounty,
			"kittery.html": yorkTown,
		})
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		content := "base_url: " + srv.URL + "/OutageReports\nuser_agent: from-file\nformat: csv\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		stdout, _, err := runRoot(t, "-c", configPath, "-f", "ndjson")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ua() != "from-file" {
			t.Errorf("expected User-Agent from file, got %q", ua())
		}
		if stdout != yorkLine+"\n" {
			t.Errorf("expected NDJSON output, got %q", stdout)
		}
	})
}
