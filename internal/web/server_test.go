package web

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/db"
	"bookcatalog/internal/httpapi"
	"bookcatalog/internal/models"
	"bookcatalog/internal/page"
	"bookcatalog/internal/service"
)

type harness struct {
	web   *httptest.Server
	api   *httptest.Server
	store *db.MemoryStore
	logs  *bytes.Buffer
}

func newHarness(t *testing.T, seed ...models.Book) *harness {
	t.Helper()

	var logs bytes.Buffer
	logger := log.New(&logs, "", 0)

	store := db.NewMemoryStore(seed...)
	api := httptest.NewServer(httpapi.New(store, logger).Handler())
	t.Cleanup(api.Close)

	client := service.NewCatalogClient(api.Client(), api.URL+"/books")
	p := page.New(client, page.NewRegions(), logger)
	web := httptest.NewServer(New(p, []string{"Fiction", "SciFi"}, logger).Handler())
	t.Cleanup(web.Close)

	return &harness{web: web, api: api, store: store, logs: &logs}
}

func get(t *testing.T, u string) (*goquery.Document, int) {
	t.Helper()
	resp, err := http.Get(u)
	return fetch(t, resp, err)
}

func postForm(t *testing.T, u string, form url.Values) (*goquery.Document, int) {
	t.Helper()
	resp, err := http.PostForm(u, form)
	return fetch(t, resp, err)
}

func fetch(t *testing.T, resp *http.Response, err error) (*goquery.Document, int) {
	t.Helper()
	require.NoError(t, err)
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc, resp.StatusCode
}

func visibleRows(doc *goquery.Document) []string {
	var titles []string
	doc.Find("#booksTableBody tr").Each(func(_ int, s *goquery.Selection) {
		if style, _ := s.Attr("style"); style == "display: none" {
			return
		}
		titles = append(titles, s.Find("td").First().Text())
	})
	return titles
}

func placeholderShown(doc *goquery.Document) bool {
	_, hidden := doc.Find("#noBooks").Attr("style")
	return !hidden
}

func TestIndexEmpty(t *testing.T) {
	h := newHarness(t)

	doc, status := get(t, h.web.URL+"/")

	assert.Equal(t, http.StatusOK, status)
	assert.Zero(t, doc.Find("#booksTableBody tr").Length())
	assert.True(t, placeholderShown(doc))
	assert.Equal(t, page.MsgNoBooks, doc.Find("#noBooks").Text())
	assert.Equal(t, 3, doc.Find("#genre option").Length())
}

func TestIndexEscapesText(t *testing.T) {
	h := newHarness(t, models.Book{ID: "x1", Title: "<b>Bold</b>", Author: "Tom & Jerry", PublicationYear: 1940, Genre: "Fiction"})

	doc, _ := get(t, h.web.URL+"/")

	row := doc.Find("#booksTableBody tr")
	require.Equal(t, 1, row.Length())
	assert.Zero(t, row.Find("b").Length())
	assert.Equal(t, "<b>Bold</b>", row.Find("td").Eq(0).Text())
	assert.Equal(t, "Tom & Jerry", row.Find("td").Eq(1).Text())
	id, _ := row.Find("button.delete-btn").Attr("data-id")
	assert.Equal(t, "x1", id)
	assert.False(t, placeholderShown(doc))
}

func TestSubmitAddsBook(t *testing.T) {
	h := newHarness(t)

	doc, status := postForm(t, h.web.URL+"/books", url.Values{
		"title":           {"Dune"},
		"author":          {"Frank Herbert"},
		"publicationYear": {"1965"},
		"genre":           {"SciFi"},
	})

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Dune"}, visibleRows(doc))
	assert.Empty(t, doc.Find("#formError").Text())
	title, _ := doc.Find("#title").Attr("value")
	assert.Empty(t, title)

	books, _ := h.store.List(context.Background())
	require.Len(t, books, 1)
	assert.Equal(t, 1965, books[0].PublicationYear)
}

func TestSubmitInvalidKeepsForm(t *testing.T) {
	h := newHarness(t)

	doc, status := postForm(t, h.web.URL+"/books", url.Values{
		"title":           {"Dune"},
		"author":          {"Frank H3rbert"},
		"publicationYear": {"1965"},
		"genre":           {"SciFi"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, page.MsgInvalidAuthorChars, doc.Find("#formError").Text())
	author, _ := doc.Find("#author").Attr("value")
	assert.Equal(t, "Frank H3rbert", author)
	_, selected := doc.Find(`#genre option[value="SciFi"]`).Attr("selected")
	assert.True(t, selected)

	books, _ := h.store.List(context.Background())
	assert.Empty(t, books)
}

func TestSubmitCreateFailure(t *testing.T) {
	h := newHarness(t)
	h.api.Close()

	doc, status := postForm(t, h.web.URL+"/books", url.Values{
		"title":           {"Dune"},
		"author":          {"Frank Herbert"},
		"publicationYear": {"1965"},
		"genre":           {"SciFi"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, page.MsgCreateFailed, doc.Find("#formError").Text())
	title, _ := doc.Find("#title").Attr("value")
	assert.Equal(t, "Dune", title)
}

func TestDeleteFlow(t *testing.T) {
	h := newHarness(t,
		models.Book{ID: "1", Title: "Dune", Author: "Frank Herbert", PublicationYear: 1965, Genre: "SciFi"},
		models.Book{ID: "2", Title: "1984", Author: "George Orwell", PublicationYear: 1949, Genre: "Fiction"},
	)

	_, _ = get(t, h.web.URL+"/")
	doc, status := postForm(t, h.web.URL+"/books/1/delete", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"1984"}, visibleRows(doc))

	_, status = postForm(t, h.web.URL+"/books/1/delete", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteKeepsIDsWithEscapes(t *testing.T) {
	ids := []string{"50%off", "%41", "a/b"}
	var seed []models.Book
	for _, id := range ids {
		seed = append(seed, models.Book{ID: id, Title: "Book " + id, Author: "Some Author", PublicationYear: 2000, Genre: "Fiction"})
	}
	h := newHarness(t, seed...)
	_, _ = get(t, h.web.URL+"/")

	for i, id := range ids {
		doc, status := postForm(t, h.web.URL+"/books/"+url.PathEscape(id)+"/delete", nil)

		require.Equal(t, http.StatusOK, status, "id %q", id)
		assert.Len(t, visibleRows(doc), len(ids)-i-1)
		assert.NotContains(t, visibleRows(doc), "Book "+id)
	}

	books, err := h.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestSearchFiltersRenderedRows(t *testing.T) {
	h := newHarness(t,
		models.Book{ID: "1", Title: "Dune", Author: "Frank Herbert", PublicationYear: 1965, Genre: "SciFi"},
		models.Book{ID: "2", Title: "1984", Author: "George Orwell", PublicationYear: 1949, Genre: "Fiction"},
	)
	_, _ = get(t, h.web.URL+"/")

	// New books on the server are not picked up by a search.
	_, err := h.store.Create(context.Background(), models.Draft{Title: "Animal Farm", Author: "George Orwell", PublicationYear: 1945, Genre: "Fiction"})
	require.NoError(t, err)

	doc, _ := get(t, h.web.URL+"/search?q=orwell")
	assert.Equal(t, []string{"1984"}, visibleRows(doc))
	assert.False(t, placeholderShown(doc))
	q, _ := doc.Find("#searchInput").Attr("value")
	assert.Equal(t, "orwell", q)

	doc, _ = get(t, h.web.URL+"/search?q=zzz")
	assert.Empty(t, visibleRows(doc))
	assert.True(t, placeholderShown(doc))
	assert.Equal(t, page.MsgNoMatches, doc.Find("#noBooks").Text())
}

func TestIndexListFailureKeepsRows(t *testing.T) {
	h := newHarness(t, models.Book{ID: "1", Title: "Dune", Author: "Frank Herbert", PublicationYear: 1965, Genre: "SciFi"})
	_, _ = get(t, h.web.URL+"/")
	h.api.Close()

	doc, status := get(t, h.web.URL+"/")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Dune"}, visibleRows(doc))
	assert.True(t, strings.Contains(h.logs.String(), "load books"))
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)

	resp, err := http.Get(h.web.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
