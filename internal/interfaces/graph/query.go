package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

type itemWhereInput struct {
	TitleContains       *string
	DescriptionContains *string
}

func (w *itemWhereInput) toDTO() dto.ItemWhere {
	if w == nil {
		return dto.ItemWhere{}
	}
	return dto.ItemWhere{TitleContains: w.TitleContains, DescriptionContains: w.DescriptionContains}
}

func (r *Resolver) Items(ctx context.Context, args struct {
	Where   *itemWhereInput
	OrderBy *string
	Skip    *int32
	First   *int32
}) ([]*itemResolver, error) {
	in := dto.ListItemsRequest{Where: args.Where.toDTO()}
	if args.OrderBy != nil {
		in.OrderBy = *args.OrderBy
	}
	if args.Skip != nil {
		in.Page.Skip = int(*args.Skip)
	}
	if args.First != nil {
		first := int(*args.First)
		in.Page.First = &first
	}
	items, err := r.items.List(ctx, in)
	if err != nil {
		return nil, r.toError("items", err)
	}
	return r.itemList(items), nil
}

func (r *Resolver) Item(ctx context.Context, args struct {
	Where struct{ ID graphql.ID }
}) (*itemResolver, error) {
	it, err := r.items.Get(ctx, string(args.Where.ID))
	if err != nil {
		return nil, r.toError("item", err)
	}
	if it == nil {
		return nil, nil
	}
	return &itemResolver{r: r, it: it}, nil
}

func (r *Resolver) ItemsConnection(args struct{ Where *itemWhereInput }) *itemConnectionResolver {
	return &itemConnectionResolver{r: r, where: args.Where.toDTO()}
}

// Me es null sin sesión o si el token apunta a un usuario que ya no existe.
func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	u, err := r.auth.Me(ctx, ViewerID(ctx))
	if err != nil {
		return nil, r.toError("me", err)
	}
	if u == nil {
		return nil, nil
	}
	return &userResolver{r: r, u: u}, nil
}

func (r *Resolver) Users(ctx context.Context) ([]*userResolver, error) {
	users, err := r.auth.Users(ctx, ViewerID(ctx))
	if err != nil {
		return nil, r.toError("users", err)
	}
	out := make([]*userResolver, len(users))
	for i, u := range users {
		out[i] = &userResolver{r: r, u: u, trusted: true}
	}
	return out, nil
}

func (r *Resolver) itemList(items []*entity.Item) []*itemResolver {
	out := make([]*itemResolver, len(items))
	for i, it := range items {
		out[i] = &itemResolver{r: r, it: it}
	}
	return out
}
