package server

import (
	"net/http"

	"github.com/friendsofgo/errors"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/spf13/cast"

	"github.com/nrfta/datagrid-go"
)

// Person is the GraphQL view of one record. The json tags double as the
// GraphQL field names through the library's default resolver.
type Person struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Position  string `json:"position"`
	Office    string `json:"office"`
	Age       int    `json:"age"`
	StartDate string `json:"startDate"`
	Salary    int    `json:"salary"`
}

// PersonPage is one page of people plus the grid counts.
type PersonPage struct {
	Records         []Person `json:"records"`
	RecordsTotal    int64    `json:"recordsTotal"`
	RecordsFiltered int64    `json:"recordsFiltered"`
}

// buildSchema wires the people query over the engine. The GraphQL surface
// exposes no raw-predicate escape hatch; everything funnels through the
// validated query path.
func buildSchema(engine Engine) (graphql.Schema, error) {
	personType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Person",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"position":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"office":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"age":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"startDate": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"salary":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	pageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PersonPage",
		Fields: graphql.Fields{
			"records":         &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(personType)))},
			"recordsTotal":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"recordsFiltered": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"people": &graphql.Field{
				Type: graphql.NewNonNull(pageType),
				Args: graphql.FieldConfigArgument{
					"search": &graphql.ArgumentConfig{
						Type:         graphql.String,
						DefaultValue: "",
					},
					"orderColumn": &graphql.ArgumentConfig{
						Type:         graphql.String,
						DefaultValue: datagrid.DefaultColumn,
					},
					"orderDir": &graphql.ArgumentConfig{
						Type:         graphql.String,
						DefaultValue: string(datagrid.Asc),
					},
					"start": &graphql.ArgumentConfig{
						Type:         graphql.Int,
						DefaultValue: 0,
					},
					"length": &graphql.ArgumentConfig{
						Type:         graphql.Int,
						DefaultValue: datagrid.DefaultLength,
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := datagrid.Query{
						Search:     cast.ToString(p.Args["search"]),
						SortColumn: cast.ToString(p.Args["orderColumn"]),
						Dir:        datagrid.ParseDirection(cast.ToString(p.Args["orderDir"])),
						Start:      datagrid.NormalizeStart(cast.ToInt(p.Args["start"])),
						Length:     datagrid.NormalizeLength(cast.ToInt(p.Args["length"])),
					}

					page, err := engine.FindPage(p.Context, q)
					if err != nil {
						return nil, errors.Wrap(err, "fetch people page")
					}
					total, err := engine.CountAll(p.Context, "")
					if err != nil {
						return nil, errors.Wrap(err, "count people")
					}

					return PersonPage{
						Records:         toPersons(page.Rows),
						RecordsTotal:    total,
						RecordsFiltered: page.Filtered,
					}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}

// toPersons converts raw documents into the typed GraphQL shape, coercing
// the driver's numeric types (int32, int64, float64) along the way.
func toPersons(rows []datagrid.Document) []Person {
	people := make([]Person, 0, len(rows))
	for _, row := range rows {
		people = append(people, Person{
			ID:        cast.ToInt(row["id"]),
			Name:      cast.ToString(row["name"]),
			Position:  cast.ToString(row["position"]),
			Office:    cast.ToString(row["office"]),
			Age:       cast.ToInt(row["age"]),
			StartDate: cast.ToString(row["start_date"]),
			Salary:    cast.ToInt(row["salary"]),
		})
	}
	return people
}

// graphqlRequest is the standard GraphQL-over-HTTP envelope.
type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// graphql executes a query against the schema. POST carries the standard
// JSON envelope; GET takes the query document as a query parameter. GraphQL
// errors travel in the 200 response body per convention.
func (s *Server) graphql(c *gin.Context) {
	var req graphqlRequest
	if c.Request.Method == http.MethodPost {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	} else {
		req.Query = c.Query("query")
	}

	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request.Context(),
	})
	c.JSON(http.StatusOK, result)
}
