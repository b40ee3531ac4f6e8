package cms

import (
	"context"
	"net/http"
	"strings"
)

func itemsPath(collection string, id ...string) string {
	return "/" + strings.Join(append([]string{"items", collection}, id...), "/")
}

// ReadItems returns the items of collection matching q. The result is never
// nil on success.
func ReadItems[T any](ctx context.Context, c *Client, collection string, q Query) ([]T, error) {
	var items []T
	if err := c.do(ctx, http.MethodGet, itemsPath(collection), q.Values(), nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// ReadItem returns one item by primary key. Only q.Fields applies.
func ReadItem[T any](ctx context.Context, c *Client, collection, id string, q Query) (T, error) {
	var item T
	err := c.do(ctx, http.MethodGet, itemsPath(collection, id), Query{Fields: q.Fields}.Values(), nil, &item)
	return item, err
}

// CreateItem inserts payload and returns the created item projected by q.Fields.
func CreateItem[T any](ctx context.Context, c *Client, collection string, payload any, q Query) (T, error) {
	var item T
	err := c.do(ctx, http.MethodPost, itemsPath(collection), Query{Fields: q.Fields}.Values(), payload, &item)
	return item, err
}

// UpdateItem applies payload as a partial update and returns the updated item.
func UpdateItem[T any](ctx context.Context, c *Client, collection, id string, payload any, q Query) (T, error) {
	var item T
	err := c.do(ctx, http.MethodPatch, itemsPath(collection, id), Query{Fields: q.Fields}.Values(), payload, &item)
	return item, err
}

// DeleteItem removes an item by primary key.
func DeleteItem(ctx context.Context, c *Client, collection, id string) error {
	return c.do(ctx, http.MethodDelete, itemsPath(collection, id), nil, nil, nil)
}
