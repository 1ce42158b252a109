package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/newsboard/newsboard/internal/domain/model"
	apperrors "github.com/newsboard/newsboard/internal/errors"
	"github.com/newsboard/newsboard/internal/ports"
)

var _ ports.NewsGateway = (*NewsClient)(nil)

// NewsClientOptions groups dependencies for NewsClient.
type NewsClientOptions struct {
	Endpoint string
	Config   Config
	// Decoder overrides the built-in array/envelope decoding (e.g. a QueryDecoder).
	Decoder model.NewsListDecoder
}

// NewsClient lists and creates news items at a single endpoint.
type NewsClient struct {
	endpoint string
	t        transport
	decoder  model.NewsListDecoder
}

// NewNewsClient constructs a NewsClient.
func NewNewsClient(opts NewsClientOptions) *NewsClient {
	dec := opts.Decoder
	if dec == nil {
		dec = model.NewsListDecoderFunc(model.DecodeNewsList)
	}
	return &NewsClient{
		endpoint: opts.Endpoint,
		t:        newTransport(opts.Config),
		decoder:  dec,
	}
}

// List issues GET {endpoint} with no query parameters.
func (c *NewsClient) List(ctx context.Context) (model.NewsList, error) {
	r, err := c.t.do(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return model.NewsList{}, err
	}
	if !r.ok() {
		return model.NewsList{}, apperrors.Wrap(
			&model.GatewayRejection{StatusCode: r.StatusCode},
			apperrors.ErrCodeUpstream,
			"fetch news",
		)
	}

	list, err := c.decoder.DecodeNewsList(r.Body)
	if err != nil {
		return model.NewsList{}, apperrors.Wrap(err, apperrors.ErrCodeMalformed, "decode news list")
	}
	return list, nil
}

// Create posts the item as JSON. Any 2xx status is success; otherwise the
// body's "error" field becomes the rejection reason.
func (c *NewsClient) Create(ctx context.Context, req model.CreateNewsRequest) error {
	r, err := c.t.do(ctx, http.MethodPost, c.endpoint, req)
	if err != nil {
		return err
	}
	if r.ok() {
		return nil
	}

	var body struct {
		Error model.Text `json:"error"`
	}
	// Non-JSON error bodies leave Reason empty.
	_ = json.Unmarshal(r.Body, &body)

	return apperrors.Wrap(
		&model.GatewayRejection{StatusCode: r.StatusCode, Reason: body.Error.String()},
		apperrors.ErrCodeUpstream,
		"create news",
	)
}
