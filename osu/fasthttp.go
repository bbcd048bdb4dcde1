package osu

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// maxRedirects matches net/http's default redirect policy.
const maxRedirects = 10

// FastHTTPFetcher is a Fetcher backed by fasthttp.
//
// fasthttp has no context support. Requests whose context can be cancelled
// therefore run on a dedicated connection that is closed as soon as the
// context is done. Requests with a context that is never cancelled share the
// client's connection pool.
type FastHTTPFetcher struct {
	client *fasthttp.Client
}

// NewFastHTTPFetcher wraps client. A nil client gets fasthttp's defaults.
func NewFastHTTPFetcher(client *fasthttp.Client) *FastHTTPFetcher {
	if client == nil {
		client = NewFastHTTPClient(0, 0)
	}
	return &FastHTTPFetcher{client: client}
}

// NewFastHTTPClient returns a fasthttp client for a single API host. Zero
// values keep fasthttp's defaults. maxConnsPerHost bounds the shared pool
// only; cancellable requests each use their own connection.
func NewFastHTTPClient(maxConnsPerHost int, timeout time.Duration) *fasthttp.Client {
	return &fasthttp.Client{
		Name:                      UserAgent,
		MaxConnsPerHost:           maxConnsPerHost,
		ReadTimeout:               timeout,
		WriteTimeout:              timeout,
		MaxIdleConnDuration:       90 * time.Second,
		MaxIdemponentCallAttempts: 1,
	}
}

// Fetch implements Fetcher. Redirects are followed like net/http does, up
// to maxRedirects hops.
func (f *FastHTTPFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	if err := ValidateURI(uri); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	err := f.follow(ctx, req, resp)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, &Error{Kind: KindTransport, Err: ctxErr}
	}
	if err != nil {
		return nil, transportError("request failed", err)
	}

	status := resp.StatusCode()
	// resp.Body() is reused after release.
	body := append([]byte(nil), resp.Body()...)
	if status < 200 || status > 299 {
		return nil, statusError(status, body)
	}
	return body, nil
}

func (f *FastHTTPFetcher) follow(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	for hops := 0; ; hops++ {
		if err := f.do(ctx, req, resp); err != nil {
			return err
		}
		if !fasthttp.StatusCodeIsRedirect(resp.StatusCode()) {
			return nil
		}
		if hops == maxRedirects {
			return fasthttp.ErrTooManyRedirects
		}
		location := resp.Header.Peek(fasthttp.HeaderLocation)
		if len(location) == 0 {
			return fasthttp.ErrMissingLocation
		}
		req.URI().UpdateBytes(location)
		resp.Reset()
	}
}

func (f *FastHTTPFetcher) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if ctx.Done() == nil {
		return f.client.Do(req, resp)
	}

	addr, isTLS := hostAddr(req.URI())
	hc := &fasthttp.HostClient{
		Addr:                      addr,
		IsTLS:                     isTLS,
		Name:                      f.client.Name,
		TLSConfig:                 f.client.TLSConfig,
		ReadTimeout:               f.client.ReadTimeout,
		WriteTimeout:              f.client.WriteTimeout,
		MaxResponseBodySize:       f.client.MaxResponseBodySize,
		MaxConns:                  1,
		MaxIdemponentCallAttempts: 1,
		Dial:                      contextDialer(ctx),
	}
	defer hc.CloseIdleConnections()

	// The connection dies with the context, so it must never be pooled.
	req.SetConnectionClose()

	if deadline, ok := ctx.Deadline(); ok {
		return hc.DoDeadline(req, resp, deadline)
	}
	return hc.Do(req, resp)
}

// contextDialer dials connections that are closed once ctx is done, which
// unblocks any read or write in flight on them.
func contextDialer(ctx context.Context) fasthttp.DialFunc {
	return func(addr string) (net.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, err
		}
		stop := context.AfterFunc(ctx, func() { conn.Close() })
		return &boundConn{Conn: conn, stop: stop}, nil
	}
}

type boundConn struct {
	net.Conn
	stop func() bool
}

func (c *boundConn) Close() error {
	c.stop()
	return c.Conn.Close()
}

// hostAddr returns the host:port to dial for u.
func hostAddr(u *fasthttp.URI) (string, bool) {
	isTLS := strings.EqualFold(string(u.Scheme()), "https")
	host := string(u.Host())
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host, isTLS
	}
	port := "80"
	if isTLS {
		port = "443"
	}
	return net.JoinHostPort(strings.Trim(host, "[]"), port), isTLS
}
