// Package edgar fetches filings from the SEC EDGAR system: ticker to
// CIK resolution, recent filing listings, and document download. The SEC
// requires a descriptive User-Agent with a contact address on every
// request.
package edgar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	ErrTickerNotFound = errors.New("ticker not found in EDGAR company index")
	ErrRequestFailed  = errors.New("EDGAR request failed")
)

const (
	defaultWWWBase  = "https://www.sec.gov"
	defaultDataBase = "https://data.sec.gov"
)

// Filing identifies one filing listed in an EDGAR submissions index.
type Filing struct {
	CIK             string `json:"cik"`
	AccessionNumber string `json:"accession_number"`
	Form            string `json:"form"`
	FilingDate      string `json:"filing_date"`
	PrimaryDocument string `json:"primary_document"`
}

// Client is a thin EDGAR API client.
type Client struct {
	http     *resty.Client
	wwwBase  string
	dataBase string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the EDGAR endpoints. Tests point both at a
// local httptest server.
func WithBaseURLs(wwwBase, dataBase string) Option {
	return func(c *Client) {
		c.wwwBase = strings.TrimRight(wwwBase, "/")
		c.dataBase = strings.TrimRight(dataBase, "/")
	}
}

// NewClient creates an EDGAR client. userAgent must identify the caller
// with a contact address (SEC fair-access policy), e.g.
// "finsight research@example.com".
func NewClient(userAgent string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(userAgent) == "" {
		return nil, fmt.Errorf("user agent with a contact address is required by the SEC")
	}

	http := resty.New().
		SetHeader("User-Agent", userAgent).
		SetTimeout(30 * time.Second)

	client := &Client{
		http:     http,
		wwwBase:  defaultWWWBase,
		dataBase: defaultDataBase,
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// companyTickers mirrors the company_tickers.json index: a map keyed by
// arbitrary ordinals.
type companyTickers map[string]struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// ResolveCIK maps a ticker symbol to its zero-padded 10-digit CIK.
func (c *Client) ResolveCIK(ctx context.Context, ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return "", fmt.Errorf("ticker cannot be empty")
	}

	var index companyTickers
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&index).
		Get(c.wwwBase + "/files/company_tickers.json")
	if err != nil {
		return "", fmt.Errorf("%w: fetching company index: %w", ErrRequestFailed, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: company index returned %s", ErrRequestFailed, resp.Status())
	}

	for _, entry := range index {
		if strings.EqualFold(entry.Ticker, ticker) {
			return fmt.Sprintf("%010d", entry.CIK), nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
}

// submissions mirrors the relevant part of the submissions API response,
// which stores recent filings as parallel arrays.
type submissions struct {
	CIK     string `json:"cik"`
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			Form            []string `json:"form"`
			FilingDate      []string `json:"filingDate"`
			PrimaryDocument []string `json:"primaryDocument"`
		} `json:"recent"`
	} `json:"filings"`
}

// RecentFilings lists the most recent filings of the given form type
// (e.g. "10-K") for a CIK, newest first, capped at limit.
func (c *Client) RecentFilings(ctx context.Context, cik, form string, limit int) ([]Filing, error) {
	if cik == "" {
		return nil, fmt.Errorf("CIK cannot be empty")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	var subs submissions
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&subs).
		Get(c.dataBase + "/submissions/CIK" + cik + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: fetching submissions: %w", ErrRequestFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: submissions returned %s", ErrRequestFailed, resp.Status())
	}

	recent := subs.Filings.Recent
	var filings []Filing
	for i := range recent.AccessionNumber {
		if i >= len(recent.Form) || i >= len(recent.FilingDate) || i >= len(recent.PrimaryDocument) {
			break
		}
		if !strings.EqualFold(recent.Form[i], form) {
			continue
		}
		filings = append(filings, Filing{
			CIK:             cik,
			AccessionNumber: recent.AccessionNumber[i],
			Form:            recent.Form[i],
			FilingDate:      recent.FilingDate[i],
			PrimaryDocument: recent.PrimaryDocument[i],
		})
		if len(filings) >= limit {
			break
		}
	}

	return filings, nil
}

// DownloadFiling fetches the primary document of a filing from the EDGAR
// archive.
func (c *Client) DownloadFiling(ctx context.Context, filing Filing) ([]byte, error) {
	if filing.CIK == "" || filing.AccessionNumber == "" || filing.PrimaryDocument == "" {
		return nil, fmt.Errorf("filing requires CIK, accession number, and primary document")
	}

	accession := strings.ReplaceAll(filing.AccessionNumber, "-", "")
	url := fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s",
		c.wwwBase, strings.TrimLeft(filing.CIK, "0"), accession, filing.PrimaryDocument)

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: downloading filing: %w", ErrRequestFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: archive returned %s", ErrRequestFailed, resp.Status())
	}

	return resp.Body(), nil
}
