package graph

import (
	"context"
	"errors"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

var errOrphanCartItem = errors.New("cart item sin usuario")

type userResolver struct {
	r       *Resolver
	u       *entity.User
	self    bool // recién autenticado en esta misma petición
	trusted bool // obtenido por una operación que ya exigió ADMIN/PERMISSIONUPDATE
}

func (u *userResolver) ID() graphql.ID { return graphql.ID(u.u.ID) }
func (u *userResolver) Name() string   { return u.u.Name }

// Email y Permissions solo para el propio usuario o tras el control de users/updatePermissions.
func (u *userResolver) Email(ctx context.Context) *string {
	if !u.private(ctx) {
		return nil
	}
	return &u.u.Email
}

func (u *userResolver) Permissions(ctx context.Context) []string {
	if !u.private(ctx) {
		return []string{}
	}
	out := make([]string, len(u.u.Permissions))
	for i, p := range u.u.Permissions {
		out[i] = string(p)
	}
	return out
}

func (u *userResolver) isViewer(ctx context.Context) bool {
	return u.self || ViewerID(ctx) == u.u.ID
}

func (u *userResolver) private(ctx context.Context) bool {
	return u.trusted || u.isViewer(ctx)
}

// Cart solo se muestra al propio usuario.
func (u *userResolver) Cart(ctx context.Context) ([]*cartItemResolver, error) {
	if !u.isViewer(ctx) {
		return []*cartItemResolver{}, nil
	}
	lines, err := u.r.cart.ListByUser(ctx, u.u.ID)
	if err != nil {
		return nil, u.r.toError("user.cart", err)
	}
	out := make([]*cartItemResolver, len(lines))
	for i, ci := range lines {
		out[i] = &cartItemResolver{r: u.r, ci: ci}
	}
	return out, nil
}

type itemResolver struct {
	r  *Resolver
	it *entity.Item
}

func (i *itemResolver) ID() graphql.ID         { return graphql.ID(i.it.ID) }
func (i *itemResolver) Title() string          { return i.it.Title }
func (i *itemResolver) Description() string    { return i.it.Description }
func (i *itemResolver) Image() *string         { return optional(i.it.Image) }
func (i *itemResolver) LargeImage() *string    { return optional(i.it.LargeImage) }
func (i *itemResolver) Price() int32           { return int32(i.it.Price) }
func (i *itemResolver) FormattedPrice() string { return entity.FormatMoney(i.it.Price) }

func (i *itemResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := i.r.auth.GetUser(ctx, i.it.UserID)
	if err != nil {
		return nil, i.r.toError("item.user", err)
	}
	if u == nil {
		return nil, nil
	}
	return &userResolver{r: i.r, u: u}, nil
}

type cartItemResolver struct {
	r  *Resolver
	ci *entity.CartItem
}

func (c *cartItemResolver) ID() graphql.ID  { return graphql.ID(c.ci.ID) }
func (c *cartItemResolver) Quantity() int32 { return int32(c.ci.Quantity) }

func (c *cartItemResolver) Item(ctx context.Context) (*itemResolver, error) {
	if c.ci.ItemID == nil {
		return nil, nil
	}
	it, err := c.r.items.Get(ctx, *c.ci.ItemID)
	if err != nil {
		return nil, c.r.toError("cartItem.item", err)
	}
	if it == nil {
		return nil, nil
	}
	return &itemResolver{r: c.r, it: it}, nil
}

func (c *cartItemResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := c.r.auth.GetUser(ctx, c.ci.UserID)
	if err != nil {
		return nil, c.r.toError("cartItem.user", err)
	}
	if u == nil {
		// la FK con ON DELETE CASCADE impide llegar aquí
		return nil, c.r.toError("cartItem.user", errOrphanCartItem)
	}
	return &userResolver{r: c.r, u: u}, nil
}

type itemConnectionResolver struct {
	r     *Resolver
	where dto.ItemWhere
}

func (c *itemConnectionResolver) Aggregate(ctx context.Context) (*aggregateItemResolver, error) {
	n, err := c.r.items.Count(ctx, c.where)
	if err != nil {
		return nil, c.r.toError("itemsConnection", err)
	}
	return &aggregateItemResolver{count: int32(n)}, nil
}

type aggregateItemResolver struct{ count int32 }

func (a *aggregateItemResolver) Count() int32 { return a.count }

type successResolver struct{ msg string }

func (s *successResolver) Message() *string { return &s.msg }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
