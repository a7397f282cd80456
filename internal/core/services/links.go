package services

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/qubrix-cli/internal/core/ports/driving"
)

// Ensure LinkService implements the interface.
var _ driving.LinkService = (*LinkService)(nil)

// LinkService resolves image references against the analysis endpoint.
type LinkService struct {
	base   *url.URL
	opener driven.URLOpener
}

// NewLinkService creates a link service for baseURL. A nil opener
// uses the platform's default handler.
func NewLinkService(baseURL string, opener driven.URLOpener) *LinkService {
	var base *url.URL
	if u, err := url.Parse(strings.TrimSpace(baseURL)); err == nil && u.IsAbs() {
		base = u
	}
	if opener == nil {
		opener = systemOpener{}
	}
	return &LinkService{base: base, opener: opener}
}

// Resolve turns "/api/jobs/..." into an absolute URL. Absolute references
// and references that do not parse are returned unchanged.
func (s *LinkService) Resolve(ref string) string {
	if ref == "" || s.base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	return s.base.ResolveReference(u).String()
}

// Open opens the resolved reference in the default browser.
func (s *LinkService) Open(ref string) error {
	resolved := s.Resolve(ref)
	if resolved == "" {
		return fmt.Errorf("nothing to open")
	}
	return s.opener.Open(resolved)
}

// systemOpener opens a URL using the OS-specific command.
type systemOpener struct{}

func (systemOpener) Open(target string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
