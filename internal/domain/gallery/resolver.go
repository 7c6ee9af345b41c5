package gallery

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"showhome/internal/graph"
)

// DriveClient is the slice of the Graph client the gallery needs.
type DriveClient interface {
	ItemByPath(ctx context.Context, path string) (*graph.DriveItem, error)
	SharedItem(ctx context.Context, link string) (*graph.DriveItem, error)
	Children(ctx context.Context, itemID string) ([]graph.DriveItem, error)
	LargeThumbnailURL(ctx context.Context, itemID string) (string, error)
}

// ProbeResult records the outcome of one path-candidate attempt, kept
// for diagnostics regardless of which candidate won.
type ProbeResult struct {
	Candidate string `json:"candidate"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// Resolver turns a loosely specified folder reference into a concrete
// drive item. The drive's path addressing is prefix-sensitive and
// inconsistently rooted, so the resolver tries an ordered list of
// plausible spellings rather than trusting any single canonical form.
type Resolver struct {
	drive    DriveClient
	prefixes []string
	log      *logrus.Entry
}

// NewResolver builds a resolver trying the given library-root prefixes
// in order. The prefix list is configuration; hardcoding it is what
// caused the churn this design replaces.
func NewResolver(drive DriveClient, prefixes []string, log *logrus.Logger) *Resolver {
	return &Resolver{
		drive:    drive,
		prefixes: prefixes,
		log:      log.WithField("component", "resolver"),
	}
}

// Resolve probes candidates in order and returns the first item that
// resolves, along with the outcome of every attempt. Sharing-link
// inputs bypass path probing and resolve through the shares endpoint.
func (r *Resolver) Resolve(ctx context.Context, path string) (*graph.DriveItem, []ProbeResult, error) {
	if isShareLink(path) {
		item, err := r.drive.SharedItem(ctx, path)
		probe := ProbeResult{Candidate: path, OK: err == nil}
		if err != nil {
			probe.Error = err.Error()
			if errors.Is(err, graph.ErrNotFound) {
				return nil, []ProbeResult{probe}, ErrPathNotFound
			}
			return nil, []ProbeResult{probe}, upstream(err)
		}
		return item, []ProbeResult{probe}, nil
	}

	probes := make([]ProbeResult, 0, 8)
	var upstreamErr error
	for _, candidate := range pathCandidates(path, r.prefixes) {
		item, err := r.drive.ItemByPath(ctx, candidate)
		if err == nil {
			probes = append(probes, ProbeResult{Candidate: candidate, OK: true})
			r.log.WithField("candidate", candidate).Debug("path resolved")
			return item, probes, nil
		}

		probes = append(probes, ProbeResult{Candidate: candidate, Error: err.Error()})
		if !errors.Is(err, graph.ErrNotFound) && upstreamErr == nil {
			upstreamErr = err
		}
	}

	if upstreamErr != nil {
		r.log.WithField("path", path).WithError(upstreamErr).Warn("path probing hit upstream failure")
		return nil, probes, upstream(upstreamErr)
	}
	return nil, probes, ErrPathNotFound
}

// pathCandidates builds the ordered, de-duplicated list of spellings to
// probe: the normalized path first, then each library-root prefix
// applied to it, then percent-encoded variants of all of the above.
// De-duplication is case-insensitive and keeps first-seen order.
func pathCandidates(path string, prefixes []string) []string {
	normalized := normalizePath(path)
	if normalized == "" {
		return nil
	}

	raw := []string{normalized}
	for _, prefix := range prefixes {
		prefix = strings.Trim(strings.TrimSpace(prefix), "/")
		if prefix == "" || hasPrefixFold(normalized, prefix+"/") || strings.EqualFold(normalized, prefix) {
			continue
		}
		raw = append(raw, prefix+"/"+normalized)
	}

	candidates := append([]string{}, raw...)
	for _, c := range raw {
		candidates = append(candidates, encodeSegments(c))
	}

	seen := make(map[string]bool, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		key := strings.ToLower(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func normalizePath(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "/")
	return p
}

// encodeSegments percent-escapes each path segment while keeping the
// slashes, the escaping the drive API expects for paths with spaces or
// special characters.
func encodeSegments(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isShareLink(p string) bool {
	p = strings.ToLower(strings.TrimSpace(p))
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

func upstream(err error) error {
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
