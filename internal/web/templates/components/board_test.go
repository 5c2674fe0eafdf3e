package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/connectfour-go/internal/model"
)

func renderDoc(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func newGame(t *testing.T, columns ...int) *model.Game {
	t.Helper()
	g, err := model.NewGame("g1",
		model.Player{Name: "Alice", Color: "#ff0000"},
		model.Player{Name: "Bob", Color: "gold"},
		model.WithSize(4, 4),
	)
	require.NoError(t, err)
	for _, col := range columns {
		_, err := g.DropPiece(col)
		require.NoError(t, err)
	}
	return g
}

func TestBoardRendersCells(t *testing.T) {
	doc := renderDoc(t, Board(newGame(t, 1, 1)))

	assert.Equal(t, 4, doc.Find("tr").Length())
	assert.Equal(t, 16, doc.Find("td.cell").Length())

	bottom := doc.Find("#cell-3-1 .piece")
	require.Equal(t, 1, bottom.Length())
	style, _ := bottom.Attr("style")
	assert.Contains(t, style, "#ff0000")

	above, _ := doc.Find("#cell-2-1 .piece").Attr("title")
	assert.Equal(t, "Bob", above)
}

func TestColumnTopsPostColumnIndex(t *testing.T) {
	doc := renderDoc(t, ColumnTops(newGame(t)))

	forms := doc.Find("#column-top form")
	require.Equal(t, 4, forms.Length())
	forms.Each(func(i int, f *goquery.Selection) {
		action, _ := f.Attr("action")
		assert.Equal(t, "/game/g1/drop", action)
		value, _ := f.Find(`input[name="column"]`).Attr("value")
		assert.Equal(t, []string{"0", "1", "2", "3"}[i], value)
	})
	assert.Zero(t, doc.Find("button[disabled]").Length())
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Alice's turn", StatusText(newGame(t)))
	assert.Equal(t, "Bob's turn", StatusText(newGame(t, 0)))
	assert.Equal(t, "Alice won!", StatusText(newGame(t, 0, 1, 0, 1, 0, 1, 0)))
}

func TestSafeColor(t *testing.T) {
	for _, ok := range []string{"red", "#abc", "#A1B2C3", "rebeccapurple"} {
		assert.Equal(t, ok, SafeColor(ok))
	}
	for _, bad := range []string{"", "red;x", "url(x)", "#12", "rgb(1,2,3)", `"red"`} {
		assert.Equal(t, FallbackColor, SafeColor(bad), bad)
	}
}

func TestColumnTopsMarkFullColumnsAndDisableWhenOver(t *testing.T) {
	doc := renderDoc(t, ColumnTops(newGame(t, 0, 0, 0, 0)))
	assert.True(t, doc.Find("#drop-0").HasClass("full"))
	assert.False(t, doc.Find("#drop-1").HasClass("full"))
	style, _ := doc.Find("#drop-1").Attr("style")
	assert.Contains(t, style, "--piece-color: #ff0000")

	over := renderDoc(t, ColumnTops(newGame(t, 0, 1, 0, 1, 0, 1, 0)))
	assert.Equal(t, 4, over.Find("button[disabled]").Length())
}

func TestStatusShowsRematchOnceOver(t *testing.T) {
	doc := renderDoc(t, Status(newGame(t)))
	assert.True(t, doc.Find("#game-status").HasClass("status-in_progress"))
	assert.Zero(t, doc.Find("#rematch-form").Length())

	doc = renderDoc(t, Status(newGame(t, 0, 1, 0, 1, 0, 1, 0)))
	assert.Equal(t, "Alice won!", doc.Find(".status-text").Text())
	action, _ := doc.Find("#rematch-form").Attr("action")
	assert.Equal(t, "/game/g1/rematch", action)
}

func TestPlayersMarksCurrentSeat(t *testing.T) {
	doc := renderDoc(t, Players(newGame(t, 0)))
	items := doc.Find("#players li")
	require.Equal(t, 2, items.Length())
	assert.False(t, items.Eq(0).HasClass("current"))
	assert.True(t, items.Eq(1).HasClass("current"))
	assert.Equal(t, "Bob", items.Eq(1).Text())
}
