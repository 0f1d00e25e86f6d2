package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/staffdesk/staffdesk/internal/core/catalog"
	"github.com/staffdesk/staffdesk/internal/core/tableview"
	"github.com/staffdesk/staffdesk/internal/upstream"
)

// parseQuery reads the table view state from list query parameters:
// ?search=...&filter[status]=Active&sort=name&dir=desc
func parseQuery(c *gin.Context) tableview.Query {
	q := tableview.Query{
		Search:  c.Query("search"),
		Filters: c.QueryMap("filter"),
	}
	if key := c.Query("sort"); key != "" {
		dir := tableview.SortAsc
		if c.Query("dir") == string(tableview.SortDesc) {
			dir = tableview.SortDesc
		}
		q.Sort = &tableview.Sort{Key: key, Dir: dir}
	}
	return q
}

// schemaLoader builds the current catalog for an entity. A failing or
// malformed field-management call degrades to an empty catalog so list
// pages keep rendering.
type schemaLoader struct {
	client *upstream.Client
	logger *logrus.Logger
}

func (l *schemaLoader) catalog(ctx context.Context, token string, entity catalog.Entity) *catalog.Catalog {
	fields, err := l.client.FieldSchema(ctx, token, entity)
	if err != nil {
		l.logger.WithError(err).WithField("entity", entity).Warn("field schema unavailable, using empty catalog")
		fields = nil
	}
	return catalog.Build(entity, fields)
}
