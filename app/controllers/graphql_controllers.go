package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/kidstore/app/services"
	gqlschema "github.com/shashiranjanraj/kidstore/pkg/graphql"
	"github.com/shashiranjanraj/kidstore/pkg/response"
)

// GraphQLController exposes read-only catalog queries:
//
//	{ products { id name retailPrice } }
//	{ product(id: "…") { name barcode } }
type GraphQLController struct {
	schema graphql.Schema
}

func NewGraphQLController(service *services.ProductService) (*GraphQLController, error) {
	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		// Field values resolve through the model's json tags.
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.String},
			"name":           &graphql.Field{Type: graphql.String},
			"category":       &graphql.Field{Type: graphql.String},
			"brand":          &graphql.Field{Type: graphql.String},
			"location":       &graphql.Field{Type: graphql.String},
			"unit":           &graphql.Field{Type: graphql.String},
			"barcode":        &graphql.Field{Type: graphql.String},
			"importPrice":    &graphql.Field{Type: graphql.Float},
			"wholesalePrice": &graphql.Field{Type: graphql.Float},
			"retailPrice":    &graphql.Field{Type: graphql.Float},
			"stockAlert":     &graphql.Field{Type: graphql.Int},
			"hasVariants":    &graphql.Field{Type: graphql.Boolean},
			"allowSelling":   &graphql.Field{Type: graphql.Boolean},
			"fastSell":       &graphql.Field{Type: graphql.Boolean},
			"image":          &graphql.Field{Type: graphql.String},
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return service.List(p.Context)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					product, err := service.Get(p.Context, id)
					if err != nil {
						return nil, err
					}
					if product == nil {
						return nil, nil // absent is a normal outcome, not an error
					}
					return *product, nil
				},
			},
		},
	})

	schema, err := gqlschema.NewSchema(rootQuery)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

// Handle serves POST /api/graphql.
func (c *GraphQLController) Handle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid GraphQL request body")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         c.schema,
		RequestString:  body.Query,
		OperationName:  body.OperationName,
		VariableValues: body.Variables,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result) //nolint:errcheck
}
