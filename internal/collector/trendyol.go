package collector

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"SmartWorth/internal/model"
)

const (
	trendyolBaseURL = "https://www.trendyol.com"
	browserUA       = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var (
	trendyolPriceRe = regexp.MustCompile(`class="(?:prc-box-dscntd|prc-box-sllng|price-item)[^"]*"[^>]*>([^<]+)<`)
	trendyolNameRe  = regexp.MustCompile(`class="prdct-desc-cntnr-name[^"]*"[^>]*>([^<]+)<`)
	trendyolStockRe = regexp.MustCompile(`class="(?:stock-info|sold-out|product-stamp)[^"]*"[^>]*>([^<]+)<`)
)

// TrendyolFetcher scrapes the Trendyol marketplace search page.
type TrendyolFetcher struct {
	BaseURL    string
	MaxResults int
	Client     *http.Client
	retry      retryPolicy
}

// NewTrendyolFetcher creates a fetcher with optional proxy support.
// An empty baseURL targets the public site.
func NewTrendyolFetcher(baseURL string, maxResults int, proxyURL string) *TrendyolFetcher {
	if baseURL == "" {
		baseURL = trendyolBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TrendyolFetcher{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		MaxResults: maxResults,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		retry: retryPolicy{MaxAttempts: 3, BaseDelay: time.Second},
	}
}

func (f *TrendyolFetcher) Name() string { return "trendyol" }

func (f *TrendyolFetcher) searchURL(query string) string {
	return fmt.Sprintf("%s/sr?q=%s", f.BaseURL, url.QueryEscape(query))
}

func (f *TrendyolFetcher) FetchListings(ctx context.Context, query string) (*model.SourceListing, error) {
	var body []byte
	err := f.retry.do(ctx, "trendyol search", func() error {
		var err error
		body, err = f.get(ctx, f.searchURL(query))
		return err
	})
	if err != nil {
		return nil, err
	}
	return parseTrendyolPage(string(body), f.MaxResults), nil
}

func (f *TrendyolFetcher) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.8")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trendyol fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("trendyol read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trendyol: status %d", resp.StatusCode)
	}
	return body, nil
}

// parseTrendyolPage extracts price texts plus product names and stock
// stamps, which become the description.
func parseTrendyolPage(page string, maxResults int) *model.SourceListing {
	listing := &model.SourceListing{Source: "trendyol"}
	for _, m := range trendyolPriceRe.FindAllStringSubmatch(page, -1) {
		if maxResults > 0 && len(listing.RawPrices) >= maxResults {
			break
		}
		listing.RawPrices = append(listing.RawPrices, html.UnescapeString(strings.TrimSpace(m[1])))
	}

	var desc []string
	for _, re := range []*regexp.Regexp{trendyolNameRe, trendyolStockRe} {
		for i, m := range re.FindAllStringSubmatch(page, -1) {
			if maxResults > 0 && i >= maxResults {
				break
			}
			if text := strings.TrimSpace(html.UnescapeString(m[1])); text != "" {
				desc = append(desc, text)
			}
		}
	}
	listing.Description = strings.Join(desc, " ")
	return listing
}
