package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/pixelgrove/simple-gallery/pkg/simplegallery"
	"github.com/pixelgrove/simple-gallery/pkg/simplegallery/repo/memory"
	memorystorage "github.com/pixelgrove/simple-gallery/pkg/simplegallery/storage/memory"
)

// setupAPITest builds a router with every handler mounted the way the server
// binary mounts them.
func setupAPITest(t *testing.T) (chi.Router, simplegallery.Service) {
	service, err := simplegallery.New(
		simplegallery.WithRepository(memory.New()),
		simplegallery.WithImageStore(memorystorage.New()),
	)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Mount("/pages", NewPagesHandler(service).Routes())
	r.Mount("/rows", NewRowsHandler(service).Routes())
	r.Mount("/images", NewImagesHandler(service).Routes())
	r.Mount("/share-links", NewShareLinksHandler(service).Routes())
	r.Mount("/upload", NewUploadHandler(service).Routes())

	return r, service
}

func doJSON(t *testing.T, router chi.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func createPageViaAPI(t *testing.T, router chi.Router, name string) simplegallery.Page {
	w := doJSON(t, router, http.MethodPost, "/pages", CreatePageRequest{Name: name})
	require.Equal(t, http.StatusCreated, w.Code)
	var page simplegallery.Page
	decodeBody(t, w, &page)
	return page
}

func createRowViaAPI(t *testing.T, router chi.Router, pageID uuid.UUID, title string) simplegallery.Row {
	w := doJSON(t, router, http.MethodPost, "/rows", CreateRowRequest{PageID: pageID.String(), Title: title})
	require.Equal(t, http.StatusCreated, w.Code)
	var row simplegallery.Row
	decodeBody(t, w, &row)
	return row
}

func TestPagesEndpoints(t *testing.T) {
	router, _ := setupAPITest(t)

	t.Run("CreateAndList", func(t *testing.T) {
		first := createPageViaAPI(t, router, "First")
		second := createPageViaAPI(t, router, "Second")
		assert.Equal(t, 0, first.Order)
		assert.Equal(t, 1, second.Order)

		w := doJSON(t, router, http.MethodGet, "/pages", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var pages []simplegallery.Page
		decodeBody(t, w, &pages)
		require.Len(t, pages, 2)
		assert.Equal(t, "First", pages[0].Name)
		assert.Equal(t, "Second", pages[1].Name)
	})

	t.Run("CreateEmptyNameIs400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/pages", CreatePageRequest{Name: ""})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var errResp ErrorResponse
		decodeBody(t, w, &errResp)
		assert.Equal(t, "name", errResp.Field)
	})

	t.Run("GetUnknownIs404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/pages/"+uuid.New().String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GetMalformedIDIs400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/pages/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Patch", func(t *testing.T) {
		page := createPageViaAPI(t, router, "Before")
		name := "After"

		w := doJSON(t, router, http.MethodPatch, "/pages/"+page.ID.String(), UpdatePageRequest{Name: &name})
		require.Equal(t, http.StatusOK, w.Code)

		var updated simplegallery.Page
		decodeBody(t, w, &updated)
		assert.Equal(t, "After", updated.Name)
		assert.Equal(t, page.Order, updated.Order)
	})

	t.Run("PatchUnknownIs404", func(t *testing.T) {
		name := "x"
		w := doJSON(t, router, http.MethodPatch, "/pages/"+uuid.New().String(), UpdatePageRequest{Name: &name})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DeleteIs204AndIdempotent", func(t *testing.T) {
		page := createPageViaAPI(t, router, "Doomed")

		w := doJSON(t, router, http.MethodDelete, "/pages/"+page.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, router, http.MethodDelete, "/pages/"+page.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRowsEndpoints(t *testing.T) {
	router, _ := setupAPITest(t)
	page := createPageViaAPI(t, router, "Gallery")

	t.Run("CreateAndListByPage", func(t *testing.T) {
		rowA := createRowViaAPI(t, router, page.ID, "Row A")
		rowB := createRowViaAPI(t, router, page.ID, "Row B")
		assert.Equal(t, 0, rowA.Order)
		assert.Equal(t, 1, rowB.Order)

		w := doJSON(t, router, http.MethodGet, "/pages/"+page.ID.String()+"/rows", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var rows []simplegallery.Row
		decodeBody(t, w, &rows)
		require.Len(t, rows, 2)
		assert.Equal(t, "Row A", rows[0].Title)
	})

	t.Run("CreateForUnknownPageIs404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/rows", CreateRowRequest{PageID: uuid.New().String(), Title: "Orphan"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("CreateEmptyTitleIs400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/rows", CreateRowRequest{PageID: page.ID.String(), Title: " "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("PatchAndDelete", func(t *testing.T) {
		row := createRowViaAPI(t, router, page.ID, "Before")
		title := "After"

		w := doJSON(t, router, http.MethodPatch, "/rows/"+row.ID.String(), UpdateRowRequest{Title: &title})
		require.Equal(t, http.StatusOK, w.Code)

		var updated simplegallery.Row
		decodeBody(t, w, &updated)
		assert.Equal(t, "After", updated.Title)
		assert.Equal(t, row.Order, updated.Order)

		w = doJSON(t, router, http.MethodDelete, "/rows/"+row.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestImagesEndpoints(t *testing.T) {
	router, _ := setupAPITest(t)
	page := createPageViaAPI(t, router, "Gallery")
	row := createRowViaAPI(t, router, page.ID, "Row")

	t.Run("CreateAndListByRow", func(t *testing.T) {
		subtitle := "dusk"
		w := doJSON(t, router, http.MethodPost, "/images", CreateImageRequest{
			RowID:    row.ID.String(),
			URL:      "https://example.com/a.jpg",
			Title:    "A",
			Subtitle: &subtitle,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var image simplegallery.GalleryImage
		decodeBody(t, w, &image)
		assert.Equal(t, 0, image.Order)
		require.NotNil(t, image.Subtitle)
		assert.Equal(t, "dusk", *image.Subtitle)

		w = doJSON(t, router, http.MethodGet, "/rows/"+row.ID.String()+"/images", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var images []simplegallery.GalleryImage
		decodeBody(t, w, &images)
		assert.Len(t, images, 1)
	})

	t.Run("CreateBadURLIs400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/images", CreateImageRequest{
			RowID: row.ID.String(),
			URL:   "notaurl",
			Title: "Broken",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var errResp ErrorResponse
		decodeBody(t, w, &errResp)
		assert.Equal(t, "url", errResp.Field)
	})

	t.Run("PatchUnknownIs404", func(t *testing.T) {
		title := "x"
		w := doJSON(t, router, http.MethodPatch, "/images/"+uuid.New().String(), UpdateImageRequest{Title: &title})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DeleteIs204", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/images", CreateImageRequest{
			RowID: row.ID.String(),
			URL:   "https://example.com/b.jpg",
			Title: "B",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var image simplegallery.GalleryImage
		decodeBody(t, w, &image)

		w = doJSON(t, router, http.MethodDelete, "/images/"+image.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestShareLinkEndpoints(t *testing.T) {
	router, _ := setupAPITest(t)
	page := createPageViaAPI(t, router, "Shared")

	t.Run("FirstPostIs201SecondIs200", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/share-links/"+page.ID.String(), nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var first simplegallery.ShareLink
		decodeBody(t, w, &first)
		assert.Len(t, first.ShortCode, simplegallery.ShortCodeLength)

		w = doJSON(t, router, http.MethodPost, "/share-links/"+page.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var second simplegallery.ShareLink
		decodeBody(t, w, &second)
		assert.Equal(t, first.ShortCode, second.ShortCode)
	})

	t.Run("PostForUnknownPageIs404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/share-links/"+uuid.New().String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ResolveRoundTrip", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/share-links/"+page.ID.String(), nil)
		var link simplegallery.ShareLink
		decodeBody(t, w, &link)

		w = doJSON(t, router, http.MethodGet, "/share-links/"+link.ShortCode, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resolved simplegallery.ShareLink
		decodeBody(t, w, &resolved)
		assert.Equal(t, page.ID, resolved.PageID)
	})

	t.Run("ResolveUnknownCodeIs404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/share-links/ffffffff", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("SharedPageComposition", func(t *testing.T) {
		row := createRowViaAPI(t, router, page.ID, "Viewer Row")
		w := doJSON(t, router, http.MethodPost, "/images", CreateImageRequest{
			RowID: row.ID.String(),
			URL:   "https://example.com/v.jpg",
			Title: "Viewer Image",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, router, http.MethodPost, "/share-links/"+page.ID.String(), nil)
		var link simplegallery.ShareLink
		decodeBody(t, w, &link)

		w = doJSON(t, router, http.MethodGet, "/share-links/"+link.ShortCode+"/page", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var shared simplegallery.SharedPage
		decodeBody(t, w, &shared)
		assert.Equal(t, page.ID, shared.Page.ID)
		require.Len(t, shared.Rows, 1)
		assert.Equal(t, "Viewer Row", shared.Rows[0].Row.Title)
		require.Len(t, shared.Rows[0].Images, 1)
		assert.Equal(t, "Viewer Image", shared.Rows[0].Images[0].Title)
	})
}

func TestUploadEndpoint(t *testing.T) {
	router, svc := setupAPITest(t)

	t.Run("UploadReturnsHostedURL", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("image", "photo.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp UploadResponse
		decodeBody(t, w, &resp)
		assert.True(t, strings.HasPrefix(resp.URL, "memory://gallery-images/"))
		assert.True(t, strings.HasSuffix(resp.URL, ".jpg"))
	})

	t.Run("MissingFileIs400", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("not_image", "x"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	// uploaded URLs must be creatable as images right away
	t.Run("UploadedURLAcceptedByCreateImage", func(t *testing.T) {
		ctx := context.Background()
		page, err := svc.CreatePage(ctx, simplegallery.CreatePageRequest{Name: "Upload Target"})
		require.NoError(t, err)
		row, err := svc.CreateRow(ctx, simplegallery.CreateRowRequest{PageID: page.ID, Title: "Uploads"})
		require.NoError(t, err)

		url, err := svc.UploadImageData(ctx, strings.NewReader("data"), simplegallery.UploadParams{
			ObjectKey: simplegallery.NewObjectKey("direct.png"),
			MimeType:  "image/png",
		})
		require.NoError(t, err)

		w := doJSON(t, router, http.MethodPost, "/images", CreateImageRequest{
			RowID: row.ID.String(),
			URL:   url,
			Title: "Hosted",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
