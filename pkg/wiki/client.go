package wiki

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/dtnitsch/wiki-word-freq/models"
	"github.com/dtnitsch/wiki-word-freq/pkg/fetcher"
	"github.com/dtnitsch/wiki-word-freq/pkg/parser"
)

// ErrTransientFetch marks a failed call to the content source. Callers
// recover from it by skipping the page or variant.
var ErrTransientFetch = errors.New("transient fetch error")

// Options configures a Client. Zero values fall back to models.DefaultConfig.
type Options struct {
	APIURL          string
	SiteURL         string
	MaxPages        int
	ExtractFormat   string
	ArticleFallback bool
	Logger          *slog.Logger
}

// Client talks to the MediaWiki action API.
type Client struct {
	fetcher *fetcher.Fetcher
	parser  *parser.Parser
	opts    Options
	logger  *slog.Logger
}

func NewClient(f *fetcher.Fetcher, opts Options) *Client {
	def := models.DefaultConfig()
	if opts.APIURL == "" {
		opts.APIURL = def.APIURL
	}
	if opts.SiteURL == "" {
		opts.SiteURL = def.SiteURL
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = def.MaxPages
	}
	if opts.ExtractFormat == "" {
		opts.ExtractFormat = def.ExtractFormat
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if f == nil {
		f = fetcher.NewFetcher()
	}
	return &Client{
		fetcher: f,
		parser:  &parser.Parser{},
		opts:    opts,
		logger:  logger,
	}
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type categoryMembersResponse struct {
	Error *apiError `json:"error"`
	Query *struct {
		CategoryMembers []struct {
			PageID int    `json:"pageid"`
			NS     int    `json:"ns"`
			Title  string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
}

type extractsResponse struct {
	Error *apiError `json:"error"`
	Query *struct {
		Pages map[string]struct {
			Title   string  `json:"title"`
			Extract *string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// ResolvePages returns the articles (namespace 0) of category. Each surface
// form from Variants is queried in order and the first one with at least one
// article is used. Failed lookups move on to the next form. No article in
// any form yields an empty slice and a nil error.
func (c *Client) ResolvePages(ctx context.Context, category string) ([]models.PageRef, error) {
	variants := Variants(category)
	c.logger.Info("Trying category variations", "category", category, "variants", len(variants))

	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pages, err := c.categoryMembers(ctx, v.Title)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.logger.Warn("Error fetching pages for category", "variant", v.Title, "rule", v.Rule, "error", err)
			continue
		}
		if len(pages) > 0 {
			c.logger.Info("Found pages in category", "variant", v.Title, "rule", v.Rule, "pages", len(pages))
			return pages, nil
		}
		c.logger.Info("No pages found for category", "variant", v.Title, "rule", v.Rule)
	}

	c.logger.Warn("No pages found in any category variation", "category", category)
	return []models.PageRef{}, nil
}

func (c *Client) categoryMembers(ctx context.Context, title string) ([]models.PageRef, error) {
	params := url.Values{
		"action":  {"query"},
		"list":    {"categorymembers"},
		"cmtitle": {models.CategoryPrefix + title},
		"cmlimit": {strconv.Itoa(c.opts.MaxPages)},
		"format":  {"json"},
	}

	var resp categoryMembersResponse
	if err := c.fetcher.GetJSON(ctx, c.opts.APIURL, params, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransientFetch, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: api error %s: %s", ErrTransientFetch, resp.Error.Code, resp.Error.Info)
	}
	if resp.Query == nil {
		return nil, nil
	}

	var pages []models.PageRef
	for _, m := range resp.Query.CategoryMembers {
		ref := models.PageRef{Title: m.Title, Namespace: m.NS}
		if ref.IsArticle() {
			pages = append(pages, ref)
		}
	}
	return pages, nil
}

// FetchContent returns the plain-text extract of page. Pages without an
// extract (redirects, disambiguation pages, missing titles) yield "" and a
// nil error. Transport failures are wrapped in ErrTransientFetch.
func (c *Client) FetchContent(ctx context.Context, page models.PageRef) (string, error) {
	params := url.Values{
		"action":  {"query"},
		"prop":    {"extracts"},
		"exlimit": {"1"},
		"titles":  {page.Title},
		"format":  {"json"},
	}
	if c.opts.ExtractFormat != models.ExtractFormatHTML {
		params.Set("explaintext", "1")
	}

	var resp extractsResponse
	if err := c.fetcher.GetJSON(ctx, c.opts.APIURL, params, &resp); err != nil {
		return "", fmt.Errorf("%w: page %q: %w", ErrTransientFetch, page.Title, err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("%w: page %q: api error %s: %s", ErrTransientFetch, page.Title, resp.Error.Code, resp.Error.Info)
	}

	text := firstExtract(resp)
	if text != "" && c.opts.ExtractFormat == models.ExtractFormatHTML {
		plain, err := c.parser.HTMLText(text)
		if err != nil {
			return "", fmt.Errorf("page %q: %w", page.Title, err)
		}
		text = plain
	}

	if text == "" && c.opts.ArticleFallback {
		return c.articleText(ctx, page)
	}
	return text, nil
}

func firstExtract(resp extractsResponse) string {
	if resp.Query == nil || len(resp.Query.Pages) == 0 {
		return ""
	}
	ids := make([]string, 0, len(resp.Query.Pages))
	for id := range resp.Query.Pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if p := resp.Query.Pages[id]; p.Extract != nil {
			return *p.Extract
		}
	}
	return ""
}

// ArticleURL returns the rendered article address of title.
func (c *Client) ArticleURL(title string) (string, error) {
	u, err := url.Parse(c.opts.SiteURL)
	if err != nil {
		return "", fmt.Errorf("invalid site URL %q: %w", c.opts.SiteURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/wiki/" + strings.ReplaceAll(title, " ", "_")
	return u.String(), nil
}

// articleText downloads the rendered article and keeps its main content.
func (c *Client) articleText(ctx context.Context, page models.PageRef) (string, error) {
	articleURL, err := c.ArticleURL(page.Title)
	if err != nil {
		return "", err
	}

	html, err := c.fetcher.GetBytes(ctx, articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: article %q: %w", ErrTransientFetch, page.Title, err)
	}

	text, err := c.parser.ArticleText(articleURL, string(html))
	if err != nil {
		c.logger.Warn("No readable content in article", "page", page.Title, "error", err)
		return "", nil
	}
	c.logger.Info("Used article fallback", "page", page.Title)
	return text, nil
}
