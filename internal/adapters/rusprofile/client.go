// Package rusprofile scrapes the secondary provider's public company pages.
// The scraped document is attached to company details as an opaque
// pass-through payload; a failed scrape produces a payload carrying the
// error instead of failing the request.
package rusprofile

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch scrapes the company page reached by searching for the INN. It never
// fails: scraping problems are recorded in the returned document under
// "error".
func (c *Client) Fetch(ctx context.Context, inn string) map[string]any {
	data, err := c.companyData(ctx, inn)
	if err != nil {
		return map[string]any{
			"source": "rusprofile",
			"inn":    inn,
			"error":  err.Error(),
		}
	}
	return map[string]any{
		"source": "rusprofile",
		"inn":    inn,
		"data":   data,
	}
}

func (c *Client) companyData(ctx context.Context, inn string) (map[string]any, error) {
	params := url.Values{}
	params.Set("query", inn)
	params.Set("type", "ul")

	doc, err := c.getDocument(ctx, c.baseURL+"/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	data := extractCompany(doc)

	// The activity-code page carries industry rankings worth attaching.
	if href, ok := doc.Find(`a[href^="/okved/"]`).First().Attr("href"); ok {
		okvedURL := c.baseURL + href
		data["okved_url"] = okvedURL
		if okvedDoc, err := c.getDocument(ctx, okvedURL); err == nil {
			data["okved"] = extractOKVED(okvedDoc)
		}
	}
	return data, nil
}

func (c *Client) getDocument(ctx context.Context, rawurl string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, err
	}
	// The site serves a degraded page to obvious bots.
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	req.Header.Set("Referer", "https://yandex.ru/")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rusprofile: status %d for %s", resp.StatusCode, rawurl)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}
