// Package tallyhttp talks to the Tally Prime HTTP-XML gateway. Tally's
// responses are XML in name only (unescaped ampersands, no declaration), so
// the response side scans with patterns instead of a strict decoder.
package tallyhttp

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/autoledger-in/tallybridge/internal/apperrors"
	portssvc "github.com/autoledger-in/tallybridge/internal/core/ports/services"
	"github.com/autoledger-in/tallybridge/internal/middleware"
	"github.com/autoledger-in/tallybridge/internal/models"
	"github.com/autoledger-in/tallybridge/internal/tallyxml"
)

var (
	createdRe   = regexp.MustCompile(`<CREATED>(\d+)</CREATED>`)
	alteredRe   = regexp.MustCompile(`<ALTERED>(\d+)</ALTERED>`)
	errorsRe    = regexp.MustCompile(`<ERRORS>(\d+)</ERRORS>`)
	lineErrorRe = regexp.MustCompile(`<LINEERROR>(.*?)</LINEERROR>`)
	lastVchRe   = regexp.MustCompile(`<LASTVCHID>(\d+)</LASTVCHID>`)
	nameAttrRe  = regexp.MustCompile(`NAME="([^"]*)"`)
	companyRe   = regexp.MustCompile(`<SVCURRENTCOMPANY[^>]*>(.*?)</SVCURRENTCOMPANY>`)
)

// Client implements the TallyClientSvc port over HTTP.
type Client struct {
	baseURL       string
	http          *http.Client
	healthTimeout time.Duration
}

// NewClient creates a gateway client. timeout bounds import and export
// requests; healthTimeout bounds the connectivity probe only.
func NewClient(baseURL string, timeout, healthTimeout time.Duration) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: timeout},
		healthTimeout: healthTimeout,
	}
}

var _ portssvc.TallyClientSvc = (*Client)(nil)

func (c *Client) BaseURL() string {
	return c.baseURL
}

// CheckHealth probes the gateway's /health path; a live gateway answers 200.
func (c *Client) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.NewAppError(502, "tally gateway unreachable", apperrors.ErrTallyUnreachable)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewAppError(502,
			fmt.Sprintf("tally gateway returned status %d", resp.StatusCode),
			apperrors.ErrTallyUnreachable)
	}
	return nil
}

// post sends an XML body and returns the raw response text.
func (c *Client) post(ctx context.Context, body string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperrors.NewAppError(502, "tally gateway unreachable", apperrors.ErrTallyUnreachable)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewAppError(502,
			fmt.Sprintf("tally gateway returned status %d", resp.StatusCode),
			apperrors.ErrTallyUnreachable)
	}
	return string(raw), nil
}

// Import posts a rendered envelope and parses Tally's counters out of the
// response.
func (c *Client) Import(ctx context.Context, xml string) (models.ImportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	raw, err := c.post(ctx, xml)
	if err != nil {
		return models.ImportResult{}, err
	}

	result := models.ImportResult{
		Created: firstInt(createdRe, raw),
		Altered: firstInt(alteredRe, raw),
		Errors:  firstInt(errorsRe, raw),
	}
	for _, m := range lineErrorRe.FindAllStringSubmatch(raw, -1) {
		result.LineErrors = append(result.LineErrors, html.UnescapeString(m[1]))
	}
	if m := lastVchRe.FindStringSubmatch(raw); m != nil {
		result.LastVoucher = m[1]
	}

	logger.Info("Tally import response",
		slog.Int("created", result.Created),
		slog.Int("altered", result.Altered),
		slog.Int("errors", result.Errors),
	)
	return result, nil
}

// FetchLedgerNames exports the "List of Accounts" collection and pulls the
// NAME attributes out of it.
func (c *Client) FetchLedgerNames(ctx context.Context, company string) ([]string, error) {
	raw, err := c.post(ctx, tallyxml.LedgerExportRequest(company).Render())
	if err != nil {
		return nil, err
	}

	var names []string
	seen := map[string]struct{}{}
	for _, m := range nameAttrRe.FindAllStringSubmatch(raw, -1) {
		name := html.UnescapeString(strings.TrimSpace(m[1]))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

// FetchCompanies asks for the list of open companies.
func (c *Client) FetchCompanies(ctx context.Context) ([]string, error) {
	raw, err := c.post(ctx, companiesRequest())
	if err != nil {
		return nil, err
	}

	var companies []string
	seen := map[string]struct{}{}
	add := func(name string) {
		name = html.UnescapeString(strings.TrimSpace(name))
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		companies = append(companies, name)
	}
	for _, m := range nameAttrRe.FindAllStringSubmatch(raw, -1) {
		add(m[1])
	}
	for _, m := range companyRe.FindAllStringSubmatch(raw, -1) {
		add(m[1])
	}
	return companies, nil
}

// companiesRequest builds the collection export for open companies.
func companiesRequest() string {
	collection := tallyxml.NewElement("COLLECTION").
		WithAttr("NAME", "OpenCompanies").
		WithAttr("ISMODIFY", "No").
		AddText("TYPE", "Company").
		AddText("NATIVEMETHOD", "Name")
	tdl := tallyxml.NewElement("TDL").
		Add(tallyxml.NewElement("TDLMESSAGE").Add(collection))
	desc := tallyxml.NewElement("DESC").
		Add(
			tallyxml.NewElement("STATICVARIABLES").
				AddText("SVEXPORTFORMAT", "$$SysName:XML"),
			tdl,
		)
	return tallyxml.NewElement("ENVELOPE").
		Add(
			tallyxml.NewElement("HEADER").
				AddText("VERSION", "1").
				AddText("TALLYREQUEST", "Export").
				AddText("TYPE", "Collection").
				AddText("ID", "OpenCompanies"),
			tallyxml.NewElement("BODY").Add(desc),
		).Render()
}

func firstInt(re *regexp.Regexp, raw string) int {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
