package graph

import (
	"encoding/json"
	"strings"
)

// DriveItem is the subset of the Graph drive-item resource the gallery
// needs.
type DriveItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	WebURL      string       `json:"webUrl"`
	DownloadURL string       `json:"@microsoft.graph.downloadUrl"`
	Folder      *FolderFacet `json:"folder,omitempty"`
	File        *FileFacet   `json:"file,omitempty"`
	ListItem    *ListItem    `json:"listItem,omitempty"`
}

// IsFolder reports whether the item carries the folder facet.
func (d *DriveItem) IsFolder() bool { return d.Folder != nil }

type FolderFacet struct {
	ChildCount int `json:"childCount"`
}

type FileFacet struct {
	MimeType string `json:"mimeType"`
}

// ListItem carries the SharePoint list fields attached to a drive item.
type ListItem struct {
	Fields ItemFields `json:"fields"`
}

type ItemFields struct {
	Categories CategorySet `json:"Categories"`
}

// CategorySet is the taxonomy field as SharePoint serves it: absent, a
// single string, or an array of strings. The variant is discriminated
// once here and exposed only as a normalized list.
type CategorySet struct {
	values []string
}

func (c *CategorySet) UnmarshalJSON(data []byte) error {
	c.values = nil

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		c.values = appendNonBlank(nil, single)
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		for _, v := range many {
			c.values = appendNonBlank(c.values, v)
		}
		return nil
	}

	// Unknown shape (object, number, null): treat as untagged rather
	// than failing the whole listing.
	return nil
}

func (c CategorySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Values())
}

// Values returns the normalized, non-blank taxonomy tags. Never nil.
func (c CategorySet) Values() []string {
	if c.values == nil {
		return []string{}
	}
	return c.values
}

func appendNonBlank(dst []string, v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return dst
	}
	return append(dst, v)
}

type thumbnail struct {
	URL string `json:"url"`
}

type childrenPage struct {
	Value    []DriveItem `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}
