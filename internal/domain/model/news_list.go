package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// NewsListShape records which response layout the list endpoint used.
type NewsListShape string

const (
	// NewsListShapeArray is a bare JSON array of items.
	NewsListShapeArray NewsListShape = "array"
	// NewsListShapeEnvelope is an object with a "news" array member.
	NewsListShapeEnvelope NewsListShape = "envelope"
	// NewsListShapeQuery means the items were selected by a configured query expression.
	NewsListShapeQuery NewsListShape = "query"
)

// ErrUnexpectedListShape is returned when the list body is neither an array nor a news envelope.
var ErrUnexpectedListShape = errors.New("unexpected news list response shape")

// NewsList is the decoded list response. Shape is informational; rendering
// depends on Items alone, so equal item lists render identically.
type NewsList struct {
	Shape NewsListShape
	Items []NewsItem
}

// NewsListDecoder turns a raw list response body into a NewsList.
type NewsListDecoder interface {
	DecodeNewsList(body []byte) (NewsList, error)
}

// NewsListDecoderFunc adapts a function to NewsListDecoder.
type NewsListDecoderFunc func(body []byte) (NewsList, error)

// DecodeNewsList implements NewsListDecoder.
func (f NewsListDecoderFunc) DecodeNewsList(body []byte) (NewsList, error) { return f(body) }

// DecodeNewsList accepts either `[...]` or `{"news": [...]}`.
func DecodeNewsList(body []byte) (NewsList, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return NewsList{}, ErrUnexpectedListShape
	}

	switch trimmed[0] {
	case '[':
		items, err := decodeItems(trimmed)
		if err != nil {
			return NewsList{}, fmt.Errorf("decode news array: %w", err)
		}
		return NewsList{Shape: NewsListShapeArray, Items: items}, nil
	case '{':
		var env struct {
			News json.RawMessage `json:"news"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return NewsList{}, fmt.Errorf("decode news envelope: %w", err)
		}
		news := bytes.TrimSpace(env.News)
		if len(news) == 0 || news[0] != '[' {
			return NewsList{}, ErrUnexpectedListShape
		}
		items, err := decodeItems(news)
		if err != nil {
			return NewsList{}, fmt.Errorf("decode news envelope: %w", err)
		}
		return NewsList{Shape: NewsListShapeEnvelope, Items: items}, nil
	default:
		return NewsList{}, ErrUnexpectedListShape
	}
}

// decodeItems decodes a JSON array element by element. An element that is
// not an object becomes an empty item (a "No Image" card) instead of failing
// the whole list.
func decodeItems(data []byte) ([]NewsItem, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	items := make([]NewsItem, 0, len(raw))
	for _, elem := range raw {
		var item NewsItem
		if err := json.Unmarshal(elem, &item); err != nil {
			item = NewsItem{}
		}
		items = append(items, item)
	}
	return items, nil
}
