package gallery

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"showhome/internal/domain/access"
	"showhome/internal/graph"
)

const videoExtension = ".mp4"

// mediaExtensions is the fixed allow-list of file types the gallery
// shows.
var mediaExtensions = map[string]bool{
	".mp4":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MediaItem is one display-ready gallery entry, derived per request and
// never persisted.
type MediaItem struct {
	Name         string   `json:"name"`
	FriendlyName string   `json:"friendly_name"`
	URL          string   `json:"url"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Categories   []string `json:"categories"`
	IsVideo      bool     `json:"is_video"`
}

// Listing is the gallery response: the items in enumeration order plus
// an optional title from the access-code record. Title is null when
// browsing the default (un-coded) folder.
type Listing struct {
	Title *string     `json:"title"`
	Items []MediaItem `json:"items"`
}

// CodeLookup is the slice of the registry the gallery reads. The
// registry owns all writes; the gallery only resolves codes.
type CodeLookup interface {
	GetByCode(ctx context.Context, code string) (*access.AccessCode, error)
}

type Service struct {
	drive             DriveClient
	resolver          *Resolver
	codes             CodeLookup
	defaultFolderPath string
	log               *logrus.Entry
}

func NewService(drive DriveClient, resolver *Resolver, codes CodeLookup, defaultFolderPath string, log *logrus.Logger) *Service {
	return &Service{
		drive:             drive,
		resolver:          resolver,
		codes:             codes,
		defaultFolderPath: defaultFolderPath,
		log:               log.WithField("component", "gallery"),
	}
}

// ListByCode resolves an access code to its folder and lists the media
// there. The registry lookup happens first: an unknown or expired code
// never reaches the drive API.
func (s *Service) ListByCode(ctx context.Context, code string) (*Listing, error) {
	rec, err := s.codes.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	items, err := s.listPath(ctx, rec.SharePath)
	if err != nil {
		return nil, err
	}

	listing := &Listing{Items: items}
	if rec.DisplayName != "" {
		listing.Title = &rec.DisplayName
	}
	return listing, nil
}

// ListDefault lists the configured default folder with no title.
func (s *Service) ListDefault(ctx context.Context) (*Listing, error) {
	if s.defaultFolderPath == "" {
		return nil, ErrPathNotFound
	}
	items, err := s.listPath(ctx, s.defaultFolderPath)
	if err != nil {
		return nil, err
	}
	return &Listing{Items: items}, nil
}

func (s *Service) listPath(ctx context.Context, folderPath string) ([]MediaItem, error) {
	folder, probes, err := s.resolver.Resolve(ctx, folderPath)
	if err != nil {
		s.log.WithFields(logrus.Fields{"path": folderPath, "probes": len(probes)}).
			WithError(err).Info("folder resolution failed")
		return nil, err
	}

	children, err := s.drive.Children(ctx, folder.ID)
	if err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			return nil, ErrPathNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	items := make([]MediaItem, 0, len(children))
	thumbIDs := make([]string, 0, len(children))
	for _, child := range children {
		if child.IsFolder() {
			continue
		}
		ext := strings.ToLower(path.Ext(child.Name))
		if !mediaExtensions[ext] {
			continue
		}

		item := MediaItem{
			Name:         child.Name,
			FriendlyName: FriendlyName(child.Name),
			URL:          primaryURL(&child),
			Categories:   categoriesOf(&child),
			IsVideo:      ext == videoExtension,
		}
		// Thumbnail falls back to the primary reference; a successful
		// fetch below overwrites it.
		item.ThumbnailURL = item.URL

		items = append(items, item)
		if item.IsVideo {
			thumbIDs = append(thumbIDs, child.ID)
		} else {
			thumbIDs = append(thumbIDs, "")
		}
	}

	s.fetchThumbnails(ctx, items, thumbIDs)
	return items, nil
}

// fetchThumbnails fans out one request per video item. Results are
// keyed by index so completion order cannot reorder the listing, and a
// failed fetch simply leaves the fallback URL in place.
func (s *Service) fetchThumbnails(ctx context.Context, items []MediaItem, ids []string) {
	var wg sync.WaitGroup
	for i := range items {
		if ids[i] == "" {
			continue
		}
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			url, err := s.drive.LargeThumbnailURL(ctx, id)
			if err != nil {
				s.log.WithField("item", items[i].Name).WithError(err).Debug("thumbnail fetch failed")
				return
			}
			items[i].ThumbnailURL = url
		}(i, ids[i])
	}
	wg.Wait()
}

// primaryURL prefers the ephemeral direct-download reference and falls
// back to the persistent web URL.
func primaryURL(item *graph.DriveItem) string {
	if item.DownloadURL != "" {
		return item.DownloadURL
	}
	return item.WebURL
}

func categoriesOf(item *graph.DriveItem) []string {
	if item.ListItem == nil {
		return []string{}
	}
	return item.ListItem.Fields.Categories.Values()
}
