package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/johanfuertv/WhereToGo-App/internal/client"
	"github.com/johanfuertv/WhereToGo-App/internal/client/api"
	"github.com/johanfuertv/WhereToGo-App/internal/client/session"
	"github.com/johanfuertv/WhereToGo-App/internal/client/syncer"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
	"github.com/johanfuertv/WhereToGo-App/pkg/utils"
)

func newFlags(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

// signedIn restores the stored session; commands on per-user data need it.
func (a *app) signedIn(ctx context.Context) (session.Session, error) {
	sess, ok, err := a.client.Session.Restore(ctx)
	if err != nil {
		return session.Session{}, err
	}
	if !ok {
		return session.Session{}, apperrors.NewUnauthorizedError("not signed in, run wheretogo login")
	}
	return sess, nil
}

func placeFlags(fs *flag.FlagSet) (*string, *string) {
	return fs.String("place", "", "place id"), fs.String("type", "", "place type")
}

func placeKey(id, t string) (entities.PlaceKey, error) {
	place := entities.PlaceKey{PlaceID: id, PlaceType: entities.PlaceType(t)}
	if id == "" || !place.PlaceType.Valid() {
		return place, apperrors.NewValidationError("-place and a valid -type (restaurant, hotel, activity, city) are required")
	}
	return place, nil
}

func runStatus(ctx context.Context, a *app, args []string) error {
	return a.print(a.client.Status(ctx))
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sess, err := a.client.Session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	return a.print(sess.User)
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", string(entities.RoleTraveler), "traveler or business")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sess, err := a.client.Session.Register(ctx, api.RegisterRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     entities.Role(*role),
	})
	if err != nil {
		return err
	}
	if err := a.client.Notifications.RegisterUser(ctx, sess.User.ID, sess.User.Name); err != nil {
		a.warn("could not subscribe to promotions", err)
	}
	return a.print(sess.User)
}

func runLogout(ctx context.Context, a *app, args []string) error {
	if _, _, err := a.client.Session.Restore(ctx); err != nil {
		return err
	}
	return a.client.Session.Logout(ctx)
}

func runWhoami(ctx context.Context, a *app, args []string) error {
	sess, err := a.signedIn(ctx)
	if err != nil {
		return err
	}
	return a.print(sess.User)
}

func runPassword(ctx context.Context, a *app, args []string) error {
	fs := newFlags("password")
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := a.signedIn(ctx); err != nil {
		return err
	}
	return a.client.Session.ChangePassword(ctx, *current, *next)
}

func runFavorites(ctx context.Context, a *app, args []string) error {
	sess, err := a.signedIn(ctx)
	if err != nil {
		return err
	}
	favs := a.client.UserFavorites(sess.User.ID)
	res, err := favs.Load(ctx)
	if err != nil {
		return err
	}

	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		return a.print(map[string]interface{}{"source": res.Source, "favorites": res.Data})
	case "add":
		fs := newFlags("favorites add")
		id := fs.String("id", "", "place id, derived from the name when empty")
		name := fs.String("name", "", "place name")
		t := fs.String("type", "", "restaurant, hotel or activity")
		location := fs.String("location", "", "place location")
		image := fs.String("image", "", "image url")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *id == "" {
			*id = utils.PlaceSlug(*name)
		}
		return favs.Add(ctx, entities.FavoritePlace{
			ID:       *id,
			UserID:   sess.User.ID,
			Name:     *name,
			Type:     entities.PlaceType(*t),
			Location: *location,
			Image:    *image,
		})
	case "remove":
		fs := newFlags("favorites remove")
		id := fs.String("id", "", "place id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return favs.Remove(ctx, *id)
	default:
		return fmt.Errorf("unknown favorites command %q", sub)
	}
}

func runRate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("rate")
	id, t := placeFlags(fs)
	score := fs.Int("score", 0, "1 to 5")
	if err := fs.Parse(args); err != nil {
		return err
	}
	place, err := placeKey(*id, *t)
	if err != nil {
		return err
	}
	sess, err := a.signedIn(ctx)
	if err != nil {
		return err
	}
	ratings := a.client.UserRatings(sess.User.ID)
	if _, err := ratings.Load(ctx); err != nil {
		return err
	}
	return ratings.Add(ctx, entities.Rating{
		PlaceID:   place.PlaceID,
		PlaceType: place.PlaceType,
		UserID:    sess.User.ID,
		UserName:  sess.User.Name,
		Rating:    *score,
	})
}

func runUnrate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("unrate")
	id, t := placeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	place, err := placeKey(*id, *t)
	if err != nil {
		return err
	}
	sess, err := a.signedIn(ctx)
	if err != nil {
		return err
	}
	ratings := a.client.UserRatings(sess.User.ID)
	if _, err := ratings.Load(ctx); err != nil {
		return err
	}
	return ratings.Remove(ctx, client.PlaceKeyString(place))
}

func runReview(ctx context.Context, a *app, args []string) error {
	fs := newFlags("review")
	id, t := placeFlags(fs)
	score := fs.Int("score", 0, "1 to 5")
	comment := fs.String("comment", "", "review text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	place, err := placeKey(*id, *t)
	if err != nil {
		return err
	}
	sess, err := a.signedIn(ctx)
	if err != nil {
		return err
	}
	reviews := a.client.UserReviews(sess.User.ID)
	if _, err := reviews.Load(ctx); err != nil {
		return err
	}
	return reviews.Add(ctx, entities.Review{
		PlaceID:   place.PlaceID,
		PlaceType: place.PlaceType,
		UserID:    sess.User.ID,
		UserName:  sess.User.Name,
		Rating:    *score,
		Comment:   *comment,
	})
}

func runPlace(ctx context.Context, a *app, args []string) error {
	fs := newFlags("place")
	id, t := placeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	place, err := placeKey(*id, *t)
	if err != nil {
		return err
	}

	ratings, err := a.client.PlaceRatings(ctx, place)
	if err != nil {
		return err
	}
	reviews, err := a.client.PlaceReviews(ctx, place)
	if err != nil {
		return err
	}
	out := map[string]interface{}{
		"ratings": map[string]interface{}{"source": ratings.Source, "items": ratings.Data},
		"reviews": map[string]interface{}{"source": reviews.Source, "items": reviews.Data},
	}
	if ratings.Source == syncer.SourceRemote {
		if avg, err := a.client.Ratings.Average(ctx, place); err == nil {
			out["average"] = avg
		}
	}
	return a.print(out)
}

func runMine(ctx context.Context, a *app, args []string) error {
	sess, err := a.signedIn(ctx)
	if err != nil {
		return err
	}
	what := "ratings"
	if len(args) > 0 {
		what = args[0]
	}
	switch what {
	case "ratings":
		res, err := a.client.UserRatings(sess.User.ID).Load(ctx)
		if err != nil {
			return err
		}
		return a.print(map[string]interface{}{"source": res.Source, "ratings": res.Data})
	case "reviews":
		res, err := a.client.UserReviews(sess.User.ID).Load(ctx)
		if err != nil {
			return err
		}
		return a.print(map[string]interface{}{"source": res.Source, "reviews": res.Data})
	default:
		return fmt.Errorf("unknown collection %q", what)
	}
}

func runNotifications(ctx context.Context, a *app, args []string) error {
	sess, err := a.signedIn(ctx)
	if err != nil {
		return err
	}
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	n := a.client.Notifications
	switch sub {
	case "list":
		fs := newFlags("notifications list")
		limit := fs.Int("limit", 0, "page size")
		offset := fs.Int("offset", 0, "page offset")
		if err := fs.Parse(args); err != nil {
			return err
		}
		page, err := n.List(ctx, sess.User.ID, *limit, *offset)
		if err != nil {
			return err
		}
		return a.print(page)
	case "read":
		fs := newFlags("notifications read")
		id := fs.String("id", "", "notification id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return n.MarkRead(ctx, *id, sess.User.ID)
	case "read-all":
		count, err := n.MarkAllRead(ctx, sess.User.ID)
		if err != nil {
			return err
		}
		return a.print(map[string]int{"updatedCount": count})
	default:
		return fmt.Errorf("unknown notifications command %q", sub)
	}
}
