package platform

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"digital.vasic.sweepbot/pkg/entry"
)

// Extraction errors.
var (
	ErrGiveawayNotFound   = errors.New("giveaway data not found in page")
	ErrContestantNotFound = errors.New("contestant data not found in page")
	ErrInvalidEntryCount  = errors.New("invalid entry count")
)

// Page is what a campaign page carries for the bot.
type Page struct {
	Giveaway   entry.Giveaway
	Contestant entry.Contestant
	// EntryCount is the campaign's total entries, when shown.
	EntryCount *int
	// CSRFToken is the csrf-token meta value; empty when absent.
	CSRFToken string
}

const (
	initCampaign   = "initCampaign("
	initContestant = "initContestant("
	initEntryCount = "initEntryCount("
)

// ExtractPage parses a campaign page. Giveaway and contestant
// data are required; the entry count and CSRF token are not.
func ExtractPage(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var (
		page                         Page
		campaignSrc, contestantSrc   string
		entryCountSrc                string
		haveCampaign, haveContestant bool
		haveCount                    bool
	)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				switch {
				case a.Key == "ng-init":
					if s, ok := callArgs(a.Val, initCampaign); ok && !haveCampaign {
						campaignSrc, haveCampaign = s, true
					}
					if s, ok := callArgs(a.Val, initContestant); ok && !haveContestant {
						contestantSrc, haveContestant = s, true
					}
				case n.Data == "meta" && a.Key == "name" && a.Val == "csrf-token":
					page.CSRFToken = attr(n, "content")
				}
				if s, ok := callArgs(a.Val, initEntryCount); ok && !haveCount {
					entryCountSrc, haveCount = s, true
				}
			}
		}
		if n.Type == html.TextNode && !haveCount {
			if s, ok := callArgs(n.Data, initEntryCount); ok {
				entryCountSrc, haveCount = s, true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if !haveCampaign {
		return nil, ErrGiveawayNotFound
	}
	if err := decodeFirstValue(campaignSrc, &page.Giveaway); err != nil {
		return nil, fmt.Errorf("failed to decode giveaway: %w", err)
	}

	if haveCount {
		count := entryCountSrc
		if i := strings.IndexByte(count, ')'); i >= 0 {
			count = count[:i]
		}
		if count = strings.TrimSpace(count); count != "" {
			n, err := strconv.Atoi(count)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidEntryCount, count)
			}
			page.EntryCount = &n
		}
	}

	if !haveContestant {
		return nil, ErrContestantNotFound
	}
	var ic entry.InitContestant
	if err := decodeFirstValue(contestantSrc, &ic); err != nil {
		return nil, fmt.Errorf("failed to decode contestant: %w", err)
	}
	page.Contestant = ic.Contestant

	return &page, nil
}

// callArgs returns the text following fn in s. The HTML parser
// has already unescaped &quot; and &#39; in attribute values.
func callArgs(s, fn string) (string, bool) {
	i := strings.Index(s, fn)
	if i < 0 {
		return "", false
	}
	return s[i+len(fn):], true
}

// decodeFirstValue decodes the first JSON value of src, ignoring
// whatever follows it (the closing parenthesis and later calls).
func decodeFirstValue(src string, dst any) error {
	return json.NewDecoder(strings.NewReader(src)).Decode(dst)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
