package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nrfta/datagrid-go"
)

// rawBody is the optional POST body carrying server-side overrides. It is an
// escape hatch for trusted callers, not part of the DataTables protocol, and
// is never read on GET requests.
type rawBody struct {
	Collection string         `json:"collection"`
	Query      map[string]any `json:"query"`
	Projection map[string]any `json:"projection"`
}

// datatable serves the DataTables server-side processing protocol. Paging,
// search and ordering arrive as query-string parameters; every malformed
// value resolves to a safe default instead of failing the request.
func (s *Server) datatable(c *gin.Context) {
	q := datagrid.Query{
		Search: c.Query("search[value]"),
		SortColumn: resolveOrderColumn(c.Query("order[0][column]"), func(idx int) string {
			return c.Query(fmt.Sprintf("columns[%d][data]", idx))
		}),
		Dir:    datagrid.ParseDirection(c.Query("order[0][dir]")),
		Start:  datagrid.NormalizeStart(datagrid.ParseInt(c.Query("start"), 0)),
		Length: datagrid.NormalizeLength(datagrid.ParseInt(c.Query("length"), datagrid.DefaultLength)),
	}
	draw := datagrid.ParseInt(c.Query("draw"), 1)

	var collection string
	if c.Request.Method == http.MethodPost {
		var body rawBody
		// A missing or malformed body leaves the validated path untouched.
		if err := c.ShouldBindJSON(&body); err == nil {
			if body.Collection != "" || body.Query != nil || body.Projection != nil {
				q.Raw = &datagrid.RawOptions{
					Collection: body.Collection,
					Query:      body.Query,
					Projection: body.Projection,
				}
				collection = body.Collection
			}
		}
	}

	page, err := s.engine.FindPage(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}

	// recordsTotal ignores filtering but follows a collection override.
	total, err := s.engine.CountAll(c.Request.Context(), collection)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draw":            draw,
		"recordsTotal":    total,
		"recordsFiltered": page.Filtered,
		"data":            page.Rows,
	})
}

// resolveOrderColumn turns the protocol's positional ordering into a column
// name. The index selects the client-sent columns[idx][data] label when that
// label is allow-listed; otherwise the index falls back to the allow-list's
// own order, bounds-checked; otherwise the default column stands. A
// non-integer index resolves to the default rather than erroring.
func resolveOrderColumn(rawIdx string, labelAt func(int) string) string {
	if rawIdx == "" {
		return datagrid.DefaultColumn
	}
	idx, err := strconv.Atoi(rawIdx)
	if err != nil {
		return datagrid.DefaultColumn
	}

	if name, ok := datagrid.ResolveColumn(labelAt(idx)); ok {
		return name
	}
	if name, ok := datagrid.ColumnAt(idx); ok {
		return name
	}
	return datagrid.DefaultColumn
}
