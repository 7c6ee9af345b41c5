package gallery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"showhome/internal/domain/access"
	"showhome/internal/graph"
)

func setupGalleryRouter(drive *mockDrive, codes *mockCodeLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(newGalleryService(drive, codes))
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestListVideosMalformedCode(t *testing.T) {
	drive := new(mockDrive)
	codes := new(mockCodeLookup)
	r := setupGalleryRouter(drive, codes)

	for _, raw := range []string{"abc", "ABCDEF", "AB-DE", "AB0DE"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/videos?code="+raw, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "code %q", raw)
	}
	codes.AssertNotCalled(t, "GetByCode")
	drive.AssertNotCalled(t, "ItemByPath")
}

func TestListVideosUnknownCode(t *testing.T) {
	drive := new(mockDrive)
	codes := new(mockCodeLookup)
	r := setupGalleryRouter(drive, codes)

	codes.On("GetByCode", mock.Anything, "ZZZZZ").Return(nil, access.ErrNotFound).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos?code=zzzzz", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	drive.AssertNotCalled(t, "ItemByPath")
}

func TestListVideosByCode(t *testing.T) {
	drive := new(mockDrive)
	codes := new(mockCodeLookup)
	r := setupGalleryRouter(drive, codes)

	rec := &access.AccessCode{Code: "ABCDE", DisplayName: "Smith Residence", SharePath: "Media/Smith"}
	codes.On("GetByCode", mock.Anything, "ABCDE").Return(rec, nil).Once()
	drive.On("ItemByPath", mock.Anything, "Media/Smith").Return(folderItem("f1"), nil).Once()
	drive.On("Children", mock.Anything, "f1").Return([]graph.DriveItem{
		fileItem("p1", "kitchen.jpg", "https://dl/kitchen.jpg"),
	}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos?code=abcde", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool    `json:"success"`
		Data    Listing `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Data.Title)
	assert.Equal(t, "Smith Residence", *body.Data.Title)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "Kitchen", body.Data.Items[0].FriendlyName)
}

func TestListVideosDefault(t *testing.T) {
	drive := new(mockDrive)
	codes := new(mockCodeLookup)
	r := setupGalleryRouter(drive, codes)

	drive.On("ItemByPath", mock.Anything, "Media/Default").Return(folderItem("f1"), nil).Once()
	drive.On("Children", mock.Anything, "f1").Return([]graph.DriveItem{}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":null`)
}

func TestListVideosUpstreamDown(t *testing.T) {
	drive := new(mockDrive)
	codes := new(mockCodeLookup)
	r := setupGalleryRouter(drive, codes)

	codes.On("GetByCode", mock.Anything, "ABCDE").Return(nil, access.ErrStoreUnavailable).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos?code=ABCDE", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "UPSTREAM_ERROR")
}
