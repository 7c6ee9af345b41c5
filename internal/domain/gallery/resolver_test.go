package gallery

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"showhome/internal/graph"
)

type mockDrive struct {
	mock.Mock
}

func (m *mockDrive) ItemByPath(ctx context.Context, path string) (*graph.DriveItem, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*graph.DriveItem), args.Error(1)
}

func (m *mockDrive) SharedItem(ctx context.Context, link string) (*graph.DriveItem, error) {
	args := m.Called(ctx, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*graph.DriveItem), args.Error(1)
}

func (m *mockDrive) Children(ctx context.Context, itemID string) ([]graph.DriveItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]graph.DriveItem), args.Error(1)
}

func (m *mockDrive) LargeThumbnailURL(ctx context.Context, itemID string) (string, error) {
	args := m.Called(ctx, itemID)
	return args.String(0), args.Error(1)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestPathCandidatesOrder(t *testing.T) {
	got := pathCandidates("Media/Smith House", []string{"Shared Documents", "Documents"})

	want := []string{
		"Media/Smith House",
		"Shared Documents/Media/Smith House",
		"Documents/Media/Smith House",
		"Media/Smith%20House",
		"Shared%20Documents/Media/Smith%20House",
		"Documents/Media/Smith%20House",
	}
	assert.Equal(t, want, got)
}

func TestPathCandidatesDedup(t *testing.T) {
	// A path that already sits under a library root must not get the
	// same root applied twice, and encoding that changes nothing must
	// not duplicate the raw spelling.
	got := pathCandidates("shared documents/media", []string{"Shared Documents"})
	assert.Equal(t, []string{"shared documents/media", "shared%20documents/media"}, got)

	got = pathCandidates("Media", nil)
	assert.Equal(t, []string{"Media"}, got)
}

func TestPathCandidatesNormalization(t *testing.T) {
	got := pathCandidates(`\Media\2024 Tours`, []string{"Documents"})
	require.NotEmpty(t, got)
	assert.Equal(t, "Media/2024 Tours", got[0])
	assert.Equal(t, "Documents/Media/2024 Tours", got[1])
}

func TestPathCandidatesEmpty(t *testing.T) {
	assert.Nil(t, pathCandidates("   ", []string{"Documents"}))
	assert.Nil(t, pathCandidates("", nil))
}

func TestResolveFirstHitWins(t *testing.T) {
	drive := new(mockDrive)
	r := NewResolver(drive, []string{"Shared Documents"}, quietLogger())

	folder := &graph.DriveItem{ID: "item-1", Name: "Smith"}
	drive.On("ItemByPath", mock.Anything, "Media/Smith").Return(nil, graph.ErrNotFound).Once()
	drive.On("ItemByPath", mock.Anything, "Shared Documents/Media/Smith").Return(folder, nil).Once()

	item, probes, err := r.Resolve(context.Background(), "Media/Smith")
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)

	require.Len(t, probes, 2, "probing must stop at the first hit")
	assert.False(t, probes[0].OK)
	assert.True(t, probes[1].OK)
	assert.Equal(t, "Shared Documents/Media/Smith", probes[1].Candidate)
	drive.AssertExpectations(t)
}

func TestResolveAllMiss(t *testing.T) {
	drive := new(mockDrive)
	r := NewResolver(drive, nil, quietLogger())

	drive.On("ItemByPath", mock.Anything, mock.Anything).Return(nil, graph.ErrNotFound)

	_, probes, err := r.Resolve(context.Background(), "Media/Nowhere")
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.NotEmpty(t, probes)
	for _, p := range probes {
		assert.False(t, p.OK)
		assert.NotEmpty(t, p.Error)
	}
}

func TestResolveUpstreamFailure(t *testing.T) {
	drive := new(mockDrive)
	r := NewResolver(drive, nil, quietLogger())

	drive.On("ItemByPath", mock.Anything, mock.Anything).Return(nil, errors.New("503 service unavailable"))

	_, _, err := r.Resolve(context.Background(), "Media/Smith")
	assert.ErrorIs(t, err, ErrUpstream, "a non-404 failure must not read as path-not-found")
}

func TestResolveMixedMissAndFailure(t *testing.T) {
	drive := new(mockDrive)
	r := NewResolver(drive, []string{"Documents"}, quietLogger())

	// One candidate 404s, one hits a transient failure. The sweep
	// finishes, but the outcome is upstream, never not-found.
	drive.On("ItemByPath", mock.Anything, "Media/Smith").Return(nil, graph.ErrNotFound).Once()
	drive.On("ItemByPath", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, probes, err := r.Resolve(context.Background(), "Media/Smith")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Len(t, probes, 2)
}

func TestResolveShareLink(t *testing.T) {
	drive := new(mockDrive)
	r := NewResolver(drive, []string{"Documents"}, quietLogger())

	link := "https://contoso.sharepoint.com/:f:/s/media/AbCdEf"
	folder := &graph.DriveItem{ID: "shared-1"}
	drive.On("SharedItem", mock.Anything, link).Return(folder, nil).Once()

	item, probes, err := r.Resolve(context.Background(), link)
	require.NoError(t, err)
	assert.Equal(t, "shared-1", item.ID)
	require.Len(t, probes, 1)
	assert.True(t, probes[0].OK)
	drive.AssertNotCalled(t, "ItemByPath")
}

func TestResolveShareLinkNotFound(t *testing.T) {
	drive := new(mockDrive)
	r := NewResolver(drive, nil, quietLogger())

	drive.On("SharedItem", mock.Anything, mock.Anything).Return(nil, graph.ErrNotFound).Once()

	_, _, err := r.Resolve(context.Background(), "https://contoso.sharepoint.com/:f:/s/gone")
	assert.ErrorIs(t, err, ErrPathNotFound)
}
