package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ruth8415/TeamTasks/logging"
	"github.com/ruth8415/TeamTasks/store"
)

// loadInto fetches a list and commits it to coll. The fetched items are returned
// even when a newer load has already replaced the collection.
func loadInto[T any](ctx context.Context, client *Client, coll *store.Collection[T], path string, query url.Values) ([]T, error) {
	ticket := coll.Begin()

	items, err := fetch[T](ctx, client, path, query)
	if err != nil {
		coll.Fail(ticket)
		return nil, err
	}

	if !coll.Commit(ticket, items) {
		logging.Logger.Debugf("Event ID: STALE_LOAD_DROPPED, Description: Newer load of %s already applied", path)
	}
	return items, nil
}

// fetch gets a list without touching any collection. A null body is an empty list.
func fetch[T any](ctx context.Context, client *Client, path string, query url.Values) ([]T, error) {
	var items []T
	if err := client.Get(ctx, path, query, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// reloadAfter runs reload after a successful mutation. A failed reload does not
// undo the mutation, so it is only logged.
func reloadAfter(ctx context.Context, what string, reload func(context.Context) error) {
	if err := reload(ctx); err != nil {
		logging.Logger.Warnf("Event ID: RELOAD_AFTER_MUTATION_FAILED, Description: %s changed but reload failed: %v", what, err)
	}
}

func idPath(base string, id int64, rest ...string) string {
	p := fmt.Sprintf("%s/%d", base, id)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}
