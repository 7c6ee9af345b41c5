package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorySetUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"single string", `{"Categories":"Kitchens"}`, []string{"Kitchens"}},
		{"array", `{"Categories":["Kitchens","Exteriors"]}`, []string{"Kitchens", "Exteriors"}},
		{"absent", `{}`, []string{}},
		{"empty string", `{"Categories":""}`, []string{}},
		{"blank entries dropped", `{"Categories":["  ","Decks",""]}`, []string{"Decks"}},
		{"null", `{"Categories":null}`, []string{}},
		{"unexpected shape ignored", `{"Categories":{"odd":true}}`, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var fields ItemFields
			require.NoError(t, json.Unmarshal([]byte(tc.in), &fields))
			assert.Equal(t, tc.want, fields.Categories.Values())
			assert.NotNil(t, fields.Categories.Values(), "Values must never be nil")
		})
	}
}

func TestCategorySetMarshal(t *testing.T) {
	var fields ItemFields
	require.NoError(t, json.Unmarshal([]byte(`{"Categories":"Baths"}`), &fields))

	out, err := json.Marshal(fields.Categories)
	require.NoError(t, err)
	assert.JSONEq(t, `["Baths"]`, string(out))

	out, err = json.Marshal(CategorySet{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(out), "untagged marshals as an empty array, not null")
}

func TestDriveItemFacets(t *testing.T) {
	var folder DriveItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","name":"Media","folder":{"childCount":4}}`), &folder))
	assert.True(t, folder.IsFolder())

	var file DriveItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"2","name":"tour.mp4","file":{"mimeType":"video/mp4"},"@microsoft.graph.downloadUrl":"https://dl/tour.mp4"}`), &file))
	assert.False(t, file.IsFolder())
	assert.Equal(t, "https://dl/tour.mp4", file.DownloadURL)
}
