package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jomei/notionapi"
)

const (
	// Property names of the task database.
	PropertyName   = "Name"
	PropertyDate   = "Date"
	PropertyTags   = "Tags"
	PropertyStatus = "Status"

	blocksPageSize = 100
)

var errNoRawBody = errors.New("notion response body was not captured")

// Record is a database page together with what typed decoding loses:
// notionapi decodes "2026-10-15" and "2026-10-15T00:00:00Z" to the same time.
type Record struct {
	notionapi.Page
	DateOnly bool // the Date start has no time of day
}

// Client is a thin wrapper over the Notion API bound to one database.
type Client struct {
	api        *notionapi.Client
	databaseID notionapi.DatabaseID
}

// NewClient creates a Notion client for the given integration token and database.
// httpClient may be nil.
func NewClient(token, databaseID string, httpClient *http.Client) *Client {
	hc := &http.Client{}
	if httpClient != nil {
		copied := *httpClient
		hc = &copied
	}
	next := hc.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	hc.Transport = bodyTap{next: next}

	return &Client{
		api:        notionapi.NewClient(notionapi.Token(token), notionapi.WithHTTPClient(hc)),
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// QueryDatabase returns every page whose Name is not empty, sorted by Date ascending.
func (c *Client) QueryDatabase(ctx context.Context) ([]Record, error) {
	req := &notionapi.DatabaseQueryRequest{
		Filter: notionapi.OrCompoundFilter{
			notionapi.PropertyFilter{
				Property: PropertyName,
				RichText: &notionapi.TextFilterCondition{IsNotEmpty: true},
			},
		},
		Sorts: []notionapi.SortObject{
			{Property: PropertyDate, Direction: notionapi.SortOrderASC},
		},
	}

	var records []Record
	for {
		var raw []byte
		resp, err := c.api.Database.Query(withBodySink(ctx, &raw), c.databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("failed to query notion database: %w", err)
		}

		var rawResp struct {
			Results []rawPage `json:"results"`
		}
		if err := decodeRaw(raw, &rawResp); err != nil {
			return nil, err
		}
		dateOnly := make(map[string]bool, len(rawResp.Results))
		for _, p := range rawResp.Results {
			dateOnly[p.ID] = p.dateOnly()
		}

		for _, page := range resp.Results {
			records = append(records, Record{Page: page, DateOnly: dateOnly[page.ID.String()]})
		}
		if !resp.HasMore || resp.NextCursor == "" {
			return records, nil
		}
		req.StartCursor = resp.NextCursor
	}
}

// FetchBlocks returns the first page (up to 100) of child blocks of a page.
func (c *Client) FetchBlocks(ctx context.Context, pageID string) ([]notionapi.Block, error) {
	resp, err := c.api.Block.GetChildren(ctx, notionapi.BlockID(pageID), &notionapi.Pagination{PageSize: blocksPageSize})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notion blocks: %w", err)
	}
	return resp.Results, nil
}

// UpdatePage patches the given properties of a page and returns the updated record.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (Record, error) {
	var raw []byte
	page, err := c.api.Page.Update(withBodySink(ctx, &raw), notionapi.PageID(pageID), &notionapi.PageUpdateRequest{Properties: properties})
	if err != nil {
		return Record{}, fmt.Errorf("failed to update notion page: %w", err)
	}

	var rp rawPage
	if err := decodeRaw(raw, &rp); err != nil {
		return Record{}, err
	}
	return Record{Page: *page, DateOnly: rp.dateOnly()}, nil
}

// GetDatabase fetches the database schema.
func (c *Client) GetDatabase(ctx context.Context) (*notionapi.Database, error) {
	db, err := c.api.Database.Get(ctx, c.databaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notion database: %w", err)
	}
	return db, nil
}

// rawPage keeps the Date start exactly as Notion sent it.
type rawPage struct {
	ID         string `json:"id"`
	Properties map[string]struct {
		Date *struct {
			Start string `json:"start"`
		} `json:"date"`
	} `json:"properties"`
}

func (p rawPage) dateOnly() bool {
	prop, ok := p.Properties[PropertyDate]
	return ok && prop.Date != nil && len(prop.Date.Start) == len(dateLayout)
}

func decodeRaw(raw []byte, v any) error {
	if len(raw) == 0 {
		return errNoRawBody
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode raw notion response: %w", err)
	}
	return nil
}

type bodySinkKey struct{}

func withBodySink(ctx context.Context, sink *[]byte) context.Context {
	return context.WithValue(ctx, bodySinkKey{}, sink)
}

// bodyTap copies successful response bodies into the sink carried by the
// request context. Retried requests overwrite the sink.
type bodyTap struct {
	next http.RoundTripper
}

func (t bodyTap) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	sink, ok := req.Context().Value(bodySinkKey{}).(*[]byte)
	if !ok || resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	*sink = body
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
