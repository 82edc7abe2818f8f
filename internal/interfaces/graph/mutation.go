package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/jhoicas/storefront-api/internal/application/dto"
)

func (r *Resolver) CreateItem(ctx context.Context, args struct {
	Title       *string
	Description *string
	Price       *int32
	Image       *string
	LargeImage  *string
}) (*itemResolver, error) {
	in := dto.CreateItemRequest{
		Title:       deref(args.Title),
		Description: deref(args.Description),
		Image:       deref(args.Image),
		LargeImage:  deref(args.LargeImage),
	}
	if args.Price != nil {
		in.Price = int64(*args.Price)
	}
	it, err := r.items.Create(ctx, ViewerID(ctx), in)
	if err != nil {
		return nil, r.toError("createItem", err)
	}
	return &itemResolver{r: r, it: it}, nil
}

func (r *Resolver) UpdateItem(ctx context.Context, args struct {
	ID          graphql.ID
	Title       *string
	Description *string
	Price       *int32
	Image       *string
	LargeImage  *string
}) (*itemResolver, error) {
	in := dto.UpdateItemRequest{
		ID:          string(args.ID),
		Title:       args.Title,
		Description: args.Description,
		Image:       args.Image,
		LargeImage:  args.LargeImage,
	}
	if args.Price != nil {
		p := int64(*args.Price)
		in.Price = &p
	}
	it, err := r.items.Update(ctx, in)
	if err != nil {
		return nil, r.toError("updateItem", err)
	}
	return &itemResolver{r: r, it: it}, nil
}

func (r *Resolver) DeleteItem(ctx context.Context, args struct{ ID graphql.ID }) (*itemResolver, error) {
	it, err := r.items.Delete(ctx, ViewerID(ctx), string(args.ID))
	if err != nil {
		return nil, r.toError("deleteItem", err)
	}
	return &itemResolver{r: r, it: it}, nil
}

func (r *Resolver) Signup(ctx context.Context, args struct {
	Email    string
	Password string
	Name     string
}) (*userResolver, error) {
	res, err := r.auth.Signup(ctx, dto.SignupRequest{Email: args.Email, Password: args.Password, Name: args.Name})
	if err != nil {
		return nil, r.toError("signup", err)
	}
	return r.startSession(ctx, res), nil
}

func (r *Resolver) Signin(ctx context.Context, args struct {
	Email    string
	Password string
}) (*userResolver, error) {
	res, err := r.auth.Signin(ctx, dto.SigninRequest{Email: args.Email, Password: args.Password})
	if err != nil {
		return nil, r.toError("signin", err)
	}
	return r.startSession(ctx, res), nil
}

func (r *Resolver) Signout(ctx context.Context) *successResolver {
	session(ctx).ClearSession()
	return &successResolver{msg: "Goodbye!"}
}

func (r *Resolver) RequestReset(ctx context.Context, args struct{ Email string }) (*successResolver, error) {
	if err := r.auth.RequestReset(ctx, args.Email); err != nil {
		return nil, r.toError("requestReset", err)
	}
	return &successResolver{msg: "Thanks!"}, nil
}

func (r *Resolver) ResetPassword(ctx context.Context, args struct {
	ResetToken      string
	Password        string
	ConfirmPassword string
}) (*userResolver, error) {
	res, err := r.auth.ResetPassword(ctx, dto.ResetPasswordRequest{
		ResetToken:      args.ResetToken,
		Password:        args.Password,
		ConfirmPassword: args.ConfirmPassword,
	})
	if err != nil {
		return nil, r.toError("resetPassword", err)
	}
	return r.startSession(ctx, res), nil
}

func (r *Resolver) UpdatePermissions(ctx context.Context, args struct {
	Permissions []string
	UserID      graphql.ID
}) (*userResolver, error) {
	u, err := r.auth.UpdatePermissions(ctx, ViewerID(ctx), dto.UpdatePermissionsRequest{
		UserID:      string(args.UserID),
		Permissions: args.Permissions,
	})
	if err != nil {
		return nil, r.toError("updatePermissions", err)
	}
	if u == nil {
		return nil, nil
	}
	return &userResolver{r: r, u: u, trusted: true}, nil
}

func (r *Resolver) AddToCart(ctx context.Context, args struct{ ID graphql.ID }) (*cartItemResolver, error) {
	ci, err := r.cart.AddToCart(ctx, ViewerID(ctx), string(args.ID))
	if err != nil {
		return nil, r.toError("addToCart", err)
	}
	return &cartItemResolver{r: r, ci: ci}, nil
}

func (r *Resolver) RemoveFromCart(ctx context.Context, args struct{ ID graphql.ID }) (*cartItemResolver, error) {
	ci, err := r.cart.RemoveFromCart(ctx, ViewerID(ctx), string(args.ID))
	if err != nil {
		return nil, r.toError("removeFromCart", err)
	}
	return &cartItemResolver{r: r, ci: ci}, nil
}

// startSession deja el token para la cookie y marca al usuario como viewer del resto de la petición.
func (r *Resolver) startSession(ctx context.Context, res *dto.SessionResult) *userResolver {
	session(ctx).SetSession(res.Token)
	return &userResolver{r: r, u: res.User, self: true}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
