package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"storefront.GO/graphql"
	gqlmodels "storefront.GO/graphql/models"
	"storefront.GO/graphql/resolvers"
	"storefront.GO/service/guest"
)

// RootResolver is the root for graphql-go. The guest of each request is read
// from the context by the query resolver.
type RootResolver struct {
	Guests                *guest.Registry
	FreeShippingThreshold int
	ShippingFee           int
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{res: resolvers.NewResolver(r.Guests, r.FreeShippingThreshold, r.ShippingFee)}
}

// QueryResolver implements Query fields. Delegates to resolvers package.
type QueryResolver struct {
	res *resolvers.QueryResolver
}

func (r *QueryResolver) Cart(ctx context.Context) (*gqlmodels.Cart, error) {
	return r.res.Cart(ctx)
}

func (r *QueryResolver) Wishlist(ctx context.Context) (*gqlmodels.Wishlist, error) {
	return r.res.Wishlist(ctx)
}

// FormatPriceArgs matches the formatPrice query arguments.
type FormatPriceArgs struct {
	Amount int32
}

func (r *QueryResolver) FormatPrice(args FormatPriceArgs) string {
	return r.res.FormatPrice(int(args.Amount))
}

// InWishlistArgs matches the inWishlist query arguments.
type InWishlistArgs struct {
	ProductID gql.ID
}

func (r *QueryResolver) InWishlist(ctx context.Context, args InWishlistArgs) (bool, error) {
	return r.res.InWishlist(ctx, string(args.ProductID))
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := r.res.Extension(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(root *RootResolver) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), root, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
