package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a typed gateway to the marketplace REST API. Retry and backoff are
// the caller's concern; transport errors are returned as-is.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a marketplace client for the given base URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, rawURL string, body any) ([]byte, string, error) {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encoding request body: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, "", fmt.Errorf("unexpected status code %d for %s %s", resp.StatusCode, method, rawURL)
	}

	return respBody, resp.Header.Get("Link"), nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, string, error) {
	rawURL := c.baseURL + endpoint
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	return c.do(ctx, http.MethodGet, rawURL, nil)
}

// getURL issues a GET against a continuation URL exactly as given.
func (c *Client) getURL(ctx context.Context, rawURL string) ([]byte, string, error) {
	return c.do(ctx, http.MethodGet, rawURL, nil)
}

func (c *Client) put(ctx context.Context, endpoint string, body any) ([]byte, error) {
	respBody, _, err := c.do(ctx, http.MethodPut, c.baseURL+endpoint, body)
	return respBody, err
}

func decodeOrders(records []json.RawMessage) ([]Order, error) {
	orders := make([]Order, len(records))
	for i, raw := range records {
		if err := json.Unmarshal(raw, &orders[i]); err != nil {
			return nil, fmt.Errorf("decoding order: %w", err)
		}
	}

	return orders, nil
}

// byOrderID re-keys an order list into order_id -> order.
func byOrderID(orders []Order) map[string]Order {
	m := make(map[string]Order, len(orders))
	for _, o := range orders {
		m[o.OrderID] = o
	}

	return m
}

// byCommercialAndOrderID groups orders two levels deep, commercial_id ->
// order_id -> order, for workflows that handle one checkout as a unit.
func byCommercialAndOrderID(orders []Order) map[string]map[string]Order {
	m := make(map[string]map[string]Order)

	for _, o := range orders {
		group, ok := m[o.CommercialID]
		if !ok {
			group = make(map[string]Order)
			m[o.CommercialID] = group
		}

		group[o.OrderID] = o
	}

	return m
}

func (c *Client) listOrders(ctx context.Context, query url.Values) ([]Order, error) {
	records, err := c.fetchPaginated(ctx, "orders", "", "/api/orders", query)
	if err != nil {
		return nil, err
	}

	return decodeOrders(records)
}

// ListOrders returns all orders keyed by order id.
func (c *Client) ListOrders(ctx context.Context) (map[string]Order, error) {
	orders, err := c.listOrders(ctx, nil)
	if err != nil {
		return nil, err
	}

	return byOrderID(orders), nil
}

// ListOrdersByDate returns orders created since the given time, keyed by order id.
func (c *Client) ListOrdersByDate(ctx context.Context, since time.Time) (map[string]Order, error) {
	orders, err := c.listOrders(ctx, url.Values{"start_date": []string{FormatDate(since)}})
	if err != nil {
		return nil, err
	}

	return byOrderID(orders), nil
}

// ListOrdersByID returns the given orders keyed by order id.
func (c *Client) ListOrdersByID(ctx context.Context, orderIDs []string) (map[string]Order, error) {
	orders, err := c.listOrders(ctx, url.Values{"order_ids": []string{strings.Join(orderIDs, ",")}})
	if err != nil {
		return nil, err
	}

	return byOrderID(orders), nil
}

// ListOrdersByCommercialID returns the orders of the given checkouts grouped
// by commercial id, then keyed by order id.
func (c *Client) ListOrdersByCommercialID(ctx context.Context, commercialIDs []string) (map[string]map[string]Order, error) {
	orders, err := c.listOrders(ctx, url.Values{"commercial_ids": []string{strings.Join(commercialIDs, ",")}})
	if err != nil {
		return nil, err
	}

	return byCommercialAndOrderID(orders), nil
}

// ListPendingDebits returns orders awaiting debit validation, grouped by
// commercial id. The endpoint nests the collection under orders.order.
func (c *Client) ListPendingDebits(ctx context.Context) (map[string]map[string]Order, error) {
	records, err := c.fetchPaginated(ctx, "orders", "order", "/api/payment/debit", nil)
	if err != nil {
		return nil, err
	}

	orders, err := decodeOrders(records)
	if err != nil {
		return nil, err
	}

	return byCommercialAndOrderID(orders), nil
}

// ListPendingRefunds returns orders carrying refunds awaiting validation,
// keyed by order id.
func (c *Client) ListPendingRefunds(ctx context.Context) (map[string]Order, error) {
	records, err := c.fetchPaginated(ctx, "orders", "order", "/api/payment/refund", nil)
	if err != nil {
		return nil, err
	}

	orders, err := decodeOrders(records)
	if err != nil {
		return nil, err
	}

	return byOrderID(orders), nil
}

// ValidatePayments confirms debit validation for the given orders.
func (c *Client) ValidatePayments(ctx context.Context, orders []OrderValidation) error {
	_, err := c.put(ctx, "/api/payment/debit", map[string]any{"orders": orders})
	return err
}

// ValidateRefunds confirms refund validation for the given refunds.
func (c *Client) ValidateRefunds(ctx context.Context, refunds []RefundValidation) error {
	_, err := c.put(ctx, "/api/payment/refund", map[string]any{"refunds": refunds})
	return err
}

func decodeInvoices(records []json.RawMessage) (map[string]Invoice, error) {
	m := make(map[string]Invoice, len(records))

	for _, raw := range records {
		var inv Invoice
		if err := json.Unmarshal(raw, &inv); err != nil {
			return nil, fmt.Errorf("decoding invoice: %w", err)
		}

		m[inv.ID()] = inv
	}

	return m, nil
}

func (c *Client) listInvoices(ctx context.Context, query url.Values) (map[string]Invoice, error) {
	records, err := c.fetchPaginated(ctx, "invoices", "", "/api/invoices", query)
	if err != nil {
		return nil, err
	}

	return decodeInvoices(records)
}

// ListInvoices returns all invoices keyed by invoice id.
func (c *Client) ListInvoices(ctx context.Context) (map[string]Invoice, error) {
	return c.listInvoices(ctx, nil)
}

// ListInvoicesByDate returns invoices issued since the given time, keyed by invoice id.
func (c *Client) ListInvoicesByDate(ctx context.Context, since time.Time) (map[string]Invoice, error) {
	return c.listInvoices(ctx, url.Values{"start_date": []string{FormatDate(since)}})
}

// ListInvoicesByShop returns the invoices of one shop keyed by invoice id.
func (c *Client) ListInvoicesByShop(ctx context.Context, shopID int64) (map[string]Invoice, error) {
	return c.listInvoices(ctx, url.Values{"shop": []string{strconv.FormatInt(shopID, 10)}})
}

// FetchShops returns shop directory entries. A nil shopIDs fetches all shops;
// updatedSince narrows to shops changed after that time.
func (c *Client) FetchShops(ctx context.Context, shopIDs []int64, updatedSince *time.Time, paginate bool) ([]Shop, error) {
	query := url.Values{
		"domains":  []string{"PRODUCT,SERVICE"},
		"paginate": []string{strconv.FormatBool(paginate)},
	}

	if shopIDs != nil {
		ids := make([]string, len(shopIDs))
		for i, id := range shopIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}

		query.Set("shop_ids", strings.Join(ids, ","))
	}

	if updatedSince != nil {
		query.Set("updated_since", FormatDate(*updatedSince))
	}

	body, _, err := c.get(ctx, "/api/shops", query)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Shops []Shop `json:"shops"`
	}

	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding shops: %w", err)
	}

	return resp.Shops, nil
}

// PatchShops applies partial updates to shop records and returns the per-shop
// results reported by the marketplace.
func (c *Client) PatchShops(ctx context.Context, patches []ShopPatch) ([]Shop, error) {
	body, err := c.put(ctx, "/api/shops", map[string]any{"shops": patches})
	if err != nil {
		return nil, err
	}

	var resp struct {
		ShopReturns []Shop `json:"shop_returns"`
	}

	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding shop returns: %w", err)
	}

	return resp.ShopReturns, nil
}

// FlattenOrderRefunds walks the order lines of the given orders and returns
// their refunds with parent order context attached.
func FlattenOrderRefunds(orders map[string]Order) []OrderRefund {
	var refunds []OrderRefund

	for _, order := range orders {
		for _, line := range order.OrderLines {
			for _, refund := range line.Refunds {
				refunds = append(refunds, OrderRefund{
					ID:              refund.ID,
					OrderID:         order.OrderID,
					OrderLineID:     line.OrderLineID,
					CommercialID:    order.CommercialID,
					Amount:          refund.Amount,
					CurrencyISOCode: order.CurrencyISOCode,
				})
			}
		}
	}

	return refunds
}
