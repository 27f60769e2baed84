package collector

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"SmartWorth/internal/model"
)

const googleBaseURL = "https://www.google.com"

// googleShoppingJS collects price texts and result snippets from a Google
// Shopping results page.
const googleShoppingJS = `
(function(limit) {
	var prices = [], snippets = [];
	var priceNodes = document.querySelectorAll('span.a8Pemb, span.HRLxBb, span[aria-hidden="true"].T14wmb, div.XrAfOe span');
	for (var i = 0; i < priceNodes.length && prices.length < limit; i++) {
		var t = (priceNodes[i].textContent || '').trim();
		if (t && /\d/.test(t)) prices.push(t);
	}
	var textNodes = document.querySelectorAll('h3, h4, div.sh-dgr__content, div.rgHvZc, div.dD8iuc, span.vEjMR');
	for (var j = 0; j < textNodes.length && snippets.length < limit * 2; j++) {
		var s = (textNodes[j].textContent || '').trim();
		if (s) snippets.push(s);
	}
	return {prices: prices, snippets: snippets};
})(%d)
`

type googleResult struct {
	Prices   []string `json:"prices"`
	Snippets []string `json:"snippets"`
}

// GoogleFetcher drives headless Chrome through Google Shopping results.
type GoogleFetcher struct {
	BaseURL    string
	MaxResults int
	ChromeBin  string
	Proxy      string
	PageWait   time.Duration
}

// NewGoogleFetcher creates a headless-browser fetcher. An empty chromeBin
// searches the usual install locations.
func NewGoogleFetcher(baseURL string, maxResults int, chromeBin, proxyURL string) *GoogleFetcher {
	if baseURL == "" {
		baseURL = googleBaseURL
	}
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &GoogleFetcher{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		MaxResults: maxResults,
		ChromeBin:  chromeBin,
		Proxy:      proxyURL,
		PageWait:   3 * time.Second,
	}
}

func (f *GoogleFetcher) Name() string { return "google" }

func (f *GoogleFetcher) searchURL(query string) string {
	return fmt.Sprintf("%s/search?tbm=shop&hl=tr&gl=tr&q=%s", f.BaseURL, url.QueryEscape(query))
}

func (f *GoogleFetcher) FetchListings(ctx context.Context, query string) (*model.SourceListing, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(browserUA),
	)
	if f.ChromeBin != "" {
		opts = append(opts, chromedp.ExecPath(f.ChromeBin))
	}
	if f.Proxy != "" {
		opts = append(opts, chromedp.ProxyServer(f.Proxy))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	limit := f.MaxResults
	if limit <= 0 {
		limit = 20
	}
	var res googleResult
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(f.searchURL(query)),
		chromedp.Sleep(f.PageWait),
		chromedp.Evaluate(fmt.Sprintf(googleShoppingJS, limit), &res),
	)
	if err != nil {
		return nil, fmt.Errorf("google shopping: %w", err)
	}

	return &model.SourceListing{
		Source:      f.Name(),
		RawPrices:   res.Prices,
		Description: strings.Join(res.Snippets, " "),
	}, nil
}

func findChromeBinary() string {
	for _, p := range []string{
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
