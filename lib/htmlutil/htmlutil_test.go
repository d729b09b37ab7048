package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestGetAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div>
			<a href="http://ufcstats.com/fighter-details/1">
				Tom
			</a>
			<a href="http://ufcstats.com/fighter-details/1"></a>
			<a href="http://ufcstats.com/fighter-details/1">The   Hammer</a>
			<a>no href</a>
		</div>
	`))
	require.NoError(t, err)

	anchors := GetAnchors(context.Background(), doc.Find("a"))
	require.Equal(t, []Anchor{
		{Name: "Tom", Href: "http://ufcstats.com/fighter-details/1"},
		{Name: "", Href: "http://ufcstats.com/fighter-details/1"},
		{Name: "The Hammer", Href: "http://ufcstats.com/fighter-details/1"},
		{Name: "no href", Href: ""},
	}, anchors)
}

func TestNextSiblingText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<ul><li><i>Height:</i> 5' 11"</li><li><i>Empty:</i></li></ul>`,
	))
	require.NoError(t, err)

	items := doc.Find("i")
	require.Equal(t, ` 5' 11"`, NextSiblingText(items.First()))
	require.Equal(t, "", NextSiblingText(items.Last()))
	require.Equal(t, "", NextSiblingText(doc.Find("span")))
}
