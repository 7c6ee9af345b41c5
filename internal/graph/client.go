// Package graph is a thin typed client for the Microsoft Graph drive
// endpoints the gallery uses: item-by-path, shared-item resolution,
// child enumeration and thumbnails.
package graph

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://graph.microsoft.com/v1.0"
	graphScope     = "https://graph.microsoft.com/.default"
	pageSize       = 200
)

var (
	// ErrNotFound means the drive item does not exist at the requested
	// address. Path probing treats this as "try the next spelling".
	ErrNotFound = errors.New("drive item not found")
	// ErrUpstream covers transport, auth and server-side Graph
	// failures. Never conflated with ErrNotFound.
	ErrUpstream = errors.New("graph request failed")
)

// Client calls Graph with an app-only token from the supplied
// credential. SiteID and DriveID address the document library all
// paths resolve against.
type Client struct {
	httpClient *http.Client
	cred       azcore.TokenCredential
	baseURL    string
	siteID     string
	driveID    string
	log        *logrus.Entry
}

type Options struct {
	SiteID  string
	DriveID string
	// BaseURL overrides the Graph endpoint, used by tests.
	BaseURL string
	// HTTPClient overrides the transport, used by tests.
	HTTPClient *http.Client
}

func NewClient(cred azcore.TokenCredential, opts Options, log *logrus.Logger) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		cred:       cred,
		baseURL:    baseURL,
		siteID:     opts.SiteID,
		driveID:    opts.DriveID,
		log:        log.WithField("component", "graph"),
	}
}

// ItemByPath resolves a drive item by its path relative to the drive
// root. The path is inserted verbatim: the resolver supplies both raw
// and percent-encoded spellings, so encoding again here would corrupt
// the encoded candidates.
func (c *Client) ItemByPath(ctx context.Context, path string) (*DriveItem, error) {
	url := fmt.Sprintf("%s/sites/%s/drives/%s/root:/%s", c.baseURL, c.siteID, c.driveID, path)
	var item DriveItem
	if err := c.getJSON(ctx, url, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// SharedItem resolves a sharing link through the shares endpoint. The
// link becomes the share key via the documented "u!" base64url (no
// padding) encoding.
func (c *Client) SharedItem(ctx context.Context, link string) (*DriveItem, error) {
	key := "u!" + base64.RawURLEncoding.EncodeToString([]byte(link))
	url := fmt.Sprintf("%s/shares/%s/driveItem", c.baseURL, key)
	var item DriveItem
	if err := c.getJSON(ctx, url, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Children enumerates the immediate children of an item, expanding the
// list-item fields so taxonomy tags arrive with the listing. Follows
// @odata.nextLink until exhausted; order is as served.
func (c *Client) Children(ctx context.Context, itemID string) ([]DriveItem, error) {
	url := fmt.Sprintf("%s/sites/%s/drives/%s/items/%s/children?$expand=listItem($expand=fields)&$top=%d",
		c.baseURL, c.siteID, c.driveID, itemID, pageSize)

	var items []DriveItem
	for url != "" {
		var page childrenPage
		if err := c.getJSON(ctx, url, &page); err != nil {
			return nil, err
		}
		items = append(items, page.Value...)
		url = page.NextLink
	}
	return items, nil
}

// LargeThumbnailURL fetches the large-size thumbnail reference for an
// item. Callers degrade on any error here; it is never fatal.
func (c *Client) LargeThumbnailURL(ctx context.Context, itemID string) (string, error) {
	url := fmt.Sprintf("%s/sites/%s/drives/%s/items/%s/thumbnails/0/large", c.baseURL, c.siteID, c.driveID, itemID)
	var thumb thumbnail
	if err := c.getJSON(ctx, url, &thumb); err != nil {
		return "", err
	}
	if thumb.URL == "" {
		return "", fmt.Errorf("%w: empty thumbnail url", ErrUpstream)
	}
	return thumb.URL, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	token, err := c.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{graphScope}})
	if err != nil {
		return fmt.Errorf("%w: acquire token: %v", ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.WithFields(logrus.Fields{"status": resp.StatusCode, "url": url}).Warn("graph request failed")
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	return nil
}
