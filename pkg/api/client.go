package api

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
)

type Client interface {
	Header(name, value string) Client
	Query(query Parameter) Client
	Body(body Body) Client
	GET(ctx context.Context) (*Response, error)
	POST(ctx context.Context) (*Response, error)
}

// Generator creates clients towards a service known by one or more domains.
type Generator interface {
	New(path string, args ...any) Client
}

type defaultGenerator struct {
	domains []string
}

func NewGenerator(domains ...string) *defaultGenerator {
	return &defaultGenerator{domains: domains}
}

func (g *defaultGenerator) New(path string, args ...any) Client {
	return &defaultClient{
		domains: g.domains,
		path:    fmt.Sprintf(path, args...),
		headers: make(http.Header),
	}
}

type defaultClient struct {
	domains []string
	method  string
	path    string
	headers http.Header
	query   Parameter
	body    Body
}

func (c *defaultClient) Header(name, value string) Client {
	c.headers[name] = []string{value}
	return c
}

func (c *defaultClient) Query(query Parameter) Client {
	c.query = query
	return c
}

func (c *defaultClient) Body(body Body) Client {
	c.body = body
	return c
}

func (c *defaultClient) GET(ctx context.Context) (*Response, error) {
	c.method = http.MethodGet
	return c.call(ctx)
}

func (c *defaultClient) POST(ctx context.Context) (*Response, error) {
	c.method = http.MethodPost
	return c.call(ctx)
}

func (c *defaultClient) call(ctx context.Context) (*Response, error) {
	if len(c.domains) == 0 {
		return nil, fmt.Errorf("no domain to call")
	}

	domain := c.domains[rand.Intn(len(c.domains))]
	url := domain + c.path
	if len(c.query) > 0 {
		url = url + "?" + c.query.Encode()
	}

	var reader io.Reader
	if c.body != nil {
		var contentType string
		var err error
		reader, contentType, err = c.body.ToReader()
		if err != nil {
			return nil, err
		}

		if _, ok := c.headers["Content-Type"]; !ok {
			c.headers.Set("Content-Type", contentType)
		}
	}

	req, err := http.NewRequestWithContext(ctx, c.method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header = c.headers

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{Code: resp.StatusCode, Body: b}, nil
}
