// Package ufcstats fetches pages from ufcstats.com and reduces each page type
// to the ordered field values it carries. The page markup is treated as a
// fixed contract: whenever an assumed cardinality does not hold the parse
// fails with ErrUnexpectedShape instead of returning misaligned values.
package ufcstats

import (
	"bytes"
	"context"
	"time"
	"ufcstats/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("ufcstats.lib.scrapers.ufcstats")

var (
	ErrFetch           = errors.New("fetch failed")
	ErrUnexpectedShape = errors.New("unexpected document shape")
)

type Options struct {
	UserAgent        string
	Timeout          time.Duration
	CloudflareBypass bool
	// Output receives a dump of every request/response pair, it may be nil.
	Output restyutil.InstrumentOutput
}

type Client struct {
	http *resty.Client
}

func NewClient(opts Options) *Client {
	client := resty.New()
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	if opts.UserAgent != "" {
		client.SetHeader("user-agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	restyutil.InstrumentClient(client, tracer, opts.Output)
	return &Client{http: client}
}

// Fetch downloads `link` and parses it. Transport errors and non-2xx
// statuses are both marked with ErrFetch.
func (c *Client) Fetch(ctx context.Context, link string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "Fetch", trace.WithAttributes(
		attribute.String("url", link),
	))
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make request")
		return nil, errors.Mark(errors.Wrapf(err, "get %s", link), ErrFetch)
	}
	if res.IsError() {
		err = errors.Mark(errors.Newf("get %s: status %d", link, res.StatusCode()), ErrFetch)
		span.RecordError(err)
		span.SetStatus(codes.Error, "non-2xx status")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, errors.Wrapf(err, "parse %s", link)
	}
	return doc, nil
}
