package listing

import (
	"context"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
)

// DefaultURL is the church's temple list page.
const DefaultURL = "https://www.churchofjesuschrist.org/temples/list?lang=eng"

// Downloader fetches a URL body.
type Downloader interface {
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Scraper fetches the temple list page and parses it into a Listing.
type Scraper struct {
	url        string
	downloader Downloader
}

// NewScraper creates a Scraper for url using d.
func NewScraper(url string, d Downloader) *Scraper {
	if url == "" {
		url = DefaultURL
	}
	return &Scraper{url: url, downloader: d}
}

// Fetch implements Fetcher.
func (s *Scraper) Fetch(ctx context.Context) (temple.Listing, error) {
	body, err := s.downloader.Download(ctx, s.url)
	if err != nil {
		return nil, eris.Wrap(err, "listing: download")
	}
	defer body.Close() //nolint:errcheck

	l, err := Parse(body)
	if err != nil {
		return nil, err
	}
	zap.L().Info("listing scraped", zap.String("url", s.url), zap.Int("temples", len(l)))
	return l, nil
}

// Parse extracts one entry per <li> inside <main>: the first <span> holds
// the name and the third the dedication date or status. Items with fewer
// than three spans are not temples and are skipped.
func Parse(r io.Reader) (temple.Listing, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, eris.Wrap(err, "listing: parse html")
	}

	root := findFirst(doc, atom.Main)
	if root == nil {
		return nil, eris.New("listing: page has no <main> element")
	}

	var out temple.Listing
	seen := make(map[string]int)
	for _, li := range findAll(root, atom.Li) {
		spans := findAll(li, atom.Span)
		if len(spans) < 3 {
			continue
		}
		name := strings.TrimSpace(textContent(spans[0]))
		text := strings.TrimSpace(textContent(spans[2]))
		if name == "" {
			continue
		}
		if i, dup := seen[name]; dup {
			out[i].Text = text
			continue
		}
		seen[name] = len(out)
		out = append(out, temple.Entry{Name: name, Text: text})
	}

	if len(out) == 0 {
		return nil, eris.New("listing: no temples found in page")
	}
	return out, nil
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant of n (excluding n) with atom a, in document order.
func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == a {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
