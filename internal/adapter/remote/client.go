package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"github.com/faisalawaludin/kasir-chain/internal/usecase"
)

// RemoteError is an application-level failure embedded in the service's
// response envelope, as opposed to a transport failure.
type RemoteError struct {
	Op  string
	Msg string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote %s: %s", e.Op, e.Msg)
}

// result is the tagged ok/err envelope every non-list call returns.
type result[T any] struct {
	Ok  *T      `json:"ok"`
	Err *string `json:"err"`
}

type empty struct{}

// Client talks to the remote catalog/order/voucher service. Every call is
// bounded by the client timeout unless the caller already set a deadline.
type Client struct {
	base    string
	hc      *http.Client
	timeout time.Duration
	ua      string
}

func NewClient(baseURL string, timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:    baseURL,
		hc:      &http.Client{},
		timeout: timeout,
		ua:      userAgent,
	}
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("remote %s: encode: %w", op, err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("remote %s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("remote %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("remote %s: status %d", op, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("remote %s: decode: %w", op, err)
		}
	}
	return nil
}

// call runs a non-list operation and unwraps its envelope.
func call[T any](ctx context.Context, c *Client, op, method, path string, in any) (*T, error) {
	var res result[T]
	if err := c.do(ctx, op, method, path, in, &res); err != nil {
		return nil, err
	}
	if res.Err != nil {
		return nil, &RemoteError{Op: op, Msg: *res.Err}
	}
	return res.Ok, nil
}

// list runs a list operation; list endpoints return a bare array.
func list[T any](ctx context.Context, c *Client, op, path string) ([]T, error) {
	var out []T
	if err := c.do(ctx, op, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- catalog ----

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	raw, err := list[productData](ctx, c, "listProducts", "/products")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, len(raw))
	for i, d := range raw {
		out[i] = productFromWire(d)
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	d, err := call[productData](ctx, c, "getProduct", http.MethodGet, "/products/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	p := productFromWire(*d)
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, p domain.Product) error {
	_, err := call[empty](ctx, c, "addProduct", http.MethodPost, "/products", productToWire(p))
	return err
}

func (c *Client) UpdateProduct(ctx context.Context, p domain.Product) error {
	_, err := call[empty](ctx, c, "updateProduct", http.MethodPut, "/products/"+url.PathEscape(p.ID), productToWire(p))
	return err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := call[empty](ctx, c, "deleteProduct", http.MethodDelete, "/products/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	raw, err := list[categoryData](ctx, c, "listCategories", "/categories")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, len(raw))
	for i, d := range raw {
		out[i] = categoryFromWire(d)
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, cat domain.Category) error {
	_, err := call[empty](ctx, c, "addCategory", http.MethodPost, "/categories", categoryToWire(cat))
	return err
}

func (c *Client) UpdateCategory(ctx context.Context, cat domain.Category) error {
	_, err := call[empty](ctx, c, "updateCategory", http.MethodPut, "/categories/"+url.PathEscape(cat.ID), categoryToWire(cat))
	return err
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := call[empty](ctx, c, "deleteCategory", http.MethodDelete, "/categories/"+url.PathEscape(id), nil)
	return err
}

// ---- orders ----

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	raw, err := list[orderData](ctx, c, "listOrders", "/orders")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, len(raw))
	for i, d := range raw {
		out[i] = orderFromWire(d)
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	d, err := call[orderData](ctx, c, "getOrder", http.MethodGet, "/orders/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	o := orderFromWire(*d)
	return &o, nil
}

func (c *Client) CreateOrder(ctx context.Context, o domain.Order) error {
	_, err := call[empty](ctx, c, "addOrder", http.MethodPost, "/orders", orderToWire(o))
	return err
}

func (c *Client) UpdateOrder(ctx context.Context, o domain.Order) error {
	_, err := call[empty](ctx, c, "updateOrder", http.MethodPut, "/orders/"+url.PathEscape(o.ID), orderToWire(o))
	return err
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	_, err := call[empty](ctx, c, "deleteOrder", http.MethodDelete, "/orders/"+url.PathEscape(id), nil)
	return err
}

// ---- vouchers ----

func (c *Client) ListVouchers(ctx context.Context) ([]domain.Voucher, error) {
	raw, err := list[voucherData](ctx, c, "listVouchers", "/vouchers")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Voucher, len(raw))
	for i, d := range raw {
		out[i] = voucherFromWire(d)
	}
	return out, nil
}

func (c *Client) CreateVoucher(ctx context.Context, v domain.Voucher) error {
	_, err := call[empty](ctx, c, "addVoucher", http.MethodPost, "/vouchers", voucherToWire(v))
	return err
}

func (c *Client) UpdateVoucher(ctx context.Context, v domain.Voucher) error {
	_, err := call[empty](ctx, c, "updateVoucher", http.MethodPut, "/vouchers/"+url.PathEscape(v.ID), voucherToWire(v))
	return err
}

func (c *Client) DeleteVoucher(ctx context.Context, id string) error {
	_, err := call[empty](ctx, c, "deleteVoucher", http.MethodDelete, "/vouchers/"+url.PathEscape(id), nil)
	return err
}

var (
	_ usecase.CatalogStore = (*Client)(nil)
	_ usecase.OrderStore   = (*Client)(nil)
	_ usecase.VoucherStore = (*Client)(nil)
)
