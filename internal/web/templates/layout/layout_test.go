package layout

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDoc(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestBaseWrapsChildren(t *testing.T) {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p id="inner">hello</p>`)
		return err
	})
	ctx := templ.WithChildren(context.Background(), body)

	var buf bytes.Buffer
	require.NoError(t, Base(PageData{Title: "Game"}).Render(ctx, &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	assert.Equal(t, "Game | Connect Four", doc.Find("title").Text())
	assert.Equal(t, "hello", doc.Find("main #inner").Text())
	assert.Zero(t, doc.Find("#flash").Length())
	href, _ := doc.Find(`link[rel="stylesheet"]`).Attr("href")
	assert.Equal(t, "/static/style.css", href)
}

func TestBaseDefaultTitle(t *testing.T) {
	doc := renderDoc(t, Base(PageData{}))
	assert.Equal(t, "Connect Four", doc.Find("title").Text())
}

func TestFlashRendersTypeAndEscapedMessage(t *testing.T) {
	doc := renderDoc(t, Base(PageData{Flash: &FlashMessage{Type: "error", Message: "<b>nope</b>"}}))

	flash := doc.Find("main #flash")
	require.Equal(t, 1, flash.Length())
	assert.True(t, flash.HasClass("flash"))
	assert.True(t, flash.HasClass("flash-error"))
	assert.Equal(t, "<b>nope</b>", flash.Text())
	assert.Zero(t, flash.Find("b").Length())
}
