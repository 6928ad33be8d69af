package registry

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// detailMarker identifies links pointing at an entity detail page.
// Used by the fallback strategy when no results table is found.
const detailMarker = "SearchResultDetail"

// statusRE matches status-like vocabulary in a table cell. This is a loose
// heuristic over markup we don't control: an unrelated cell containing one
// of these words will be picked up as the status, and that is accepted.
var statusRE = regexp.MustCompile(`(?i)(active|inact|status)`)

// Extract parses a search-results page and returns the matches found on it.
//
// The primary strategy walks the results table: the first cell's first link
// provides the name and detail URL, the second cell the document number,
// and the first cell anywhere in the row with status-like text the status.
// Rows without cells or without a name are skipped.
//
// If the table yields nothing, the whole document is scanned for detail
// links instead, producing matches with only a name and URL.
//
// Extract never fails: malformed or unexpected markup degrades to an empty
// slice. The registry's page structure is not contractually stable, so the
// selectors here are heuristics, not a format.
func Extract(markup, baseAddress string) []Match {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	base, err := url.Parse(baseAddress)
	if err != nil {
		base = nil
	}

	var matches []Match
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return // header or decoration row
		}

		link := cells.First().Find("a").First()
		name := strings.TrimSpace(link.Text())
		if name == "" {
			return
		}

		m := Match{Name: name}
		if href, ok := link.Attr("href"); ok {
			m.URL = resolveURL(base, href)
		}
		if cells.Length() > 1 {
			m.DocumentNumber = strings.TrimSpace(cells.Eq(1).Text())
		}
		cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
			text := strings.TrimSpace(cell.Text())
			if statusRE.MatchString(text) {
				m.Status = text
				return false
			}
			return true
		})

		matches = append(matches, m)
	})

	if len(matches) == 0 {
		matches = extractDetailLinks(doc, base)
	}
	return matches
}

// extractDetailLinks is the fallback strategy: any link whose target
// contains the detail-page marker becomes a match with name and URL only.
func extractDetailLinks(doc *goquery.Document, base *url.URL) []Match {
	var matches []Match
	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !strings.Contains(href, detailMarker) {
			return
		}
		name := strings.TrimSpace(link.Text())
		if name == "" {
			return
		}
		matches = append(matches, Match{
			Name: name,
			URL:  resolveURL(base, href),
		})
	})
	return matches
}

// resolveURL resolves href against base, returning an absolute address.
// An unparsable href resolves to empty rather than propagating an error.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
