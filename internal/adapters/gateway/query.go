package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/newsboard/newsboard/internal/domain/model"
)

var _ model.NewsListDecoder = (*QueryDecoder)(nil)

// QueryDecoder selects the item array from a list response with a JMESPath
// expression, for gateways that nest items somewhere other than "news".
type QueryDecoder struct {
	expr string
}

// NewQueryDecoder validates expr and returns a decoder for it.
func NewQueryDecoder(expr string) (*QueryDecoder, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("news list query is empty")
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return nil, fmt.Errorf("compile news list query %q: %w", expr, err)
	}
	return &QueryDecoder{expr: expr}, nil
}

// DecodeNewsList implements model.NewsListDecoder.
func (q *QueryDecoder) DecodeNewsList(body []byte) (model.NewsList, error) {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return model.NewsList{}, fmt.Errorf("decode news list: %w", err)
	}

	result, err := jmespath.Search(q.expr, data)
	if err != nil {
		return model.NewsList{}, fmt.Errorf("evaluate news list query: %w", err)
	}

	raw, ok := result.([]any)
	if !ok {
		return model.NewsList{}, model.ErrUnexpectedListShape
	}

	items := make([]model.NewsItem, 0, len(raw))
	for _, v := range raw {
		// Non-object elements render as empty cards, matching DecodeNewsList.
		obj, _ := v.(map[string]any)
		items = append(items, model.NewsItemFromMap(obj))
	}
	return model.NewsList{Shape: model.NewsListShapeQuery, Items: items}, nil
}
