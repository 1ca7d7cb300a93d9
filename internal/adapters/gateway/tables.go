package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Binarybee001/Shabana-Palace/internal/domain"
)

const rest = "/rest/v1"

// eq renders a PostgREST equality filter value; pair it with the column name
// as the query key: ?id=eq.<value>.
func eq(value string) string { return "eq." + value }

func listQuery(order string) url.Values {
	q := url.Values{}
	q.Set("select", "*")
	if order != "" {
		q.Set("order", order)
	}
	return q
}

// ---- rooms ----

func (c *Client) ListRooms(ctx context.Context) ([]domain.Room, error) {
	var out []domain.Room
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   rest + "/rooms",
		query:  listQuery("created_at.desc"),
	}, &out)
	return out, err
}

func (c *Client) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	q := listQuery("")
	q.Set("id", eq(id))
	var out []domain.Room
	if err := c.do(ctx, request{method: http.MethodGet, path: rest + "/rooms", query: q}, &out); err != nil {
		return domain.Room{}, err
	}
	if len(out) == 0 {
		return domain.Room{}, domain.ErrNotFound
	}
	return out[0], nil
}

func (c *Client) InsertRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	var out []domain.Room
	err := c.do(ctx, request{
		method:         http.MethodPost,
		path:           rest + "/rooms",
		body:           []insertRoom{newInsertRoom(r)},
		representation: true,
	}, &out)
	if err != nil {
		return domain.Room{}, err
	}
	if len(out) == 0 {
		return domain.Room{}, domain.ErrNotFound
	}
	return out[0], nil
}

func (c *Client) UpdateRoom(ctx context.Context, id string, p domain.RoomPatch) (domain.Room, error) {
	q := url.Values{}
	q.Set("id", eq(id))
	var out []domain.Room
	err := c.do(ctx, request{
		method:         http.MethodPatch,
		path:           rest + "/rooms",
		query:          q,
		body:           p,
		representation: true,
	}, &out)
	if err != nil {
		return domain.Room{}, err
	}
	if len(out) == 0 {
		return domain.Room{}, domain.ErrNotFound
	}
	return out[0], nil
}

func (c *Client) DeleteRoom(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", eq(id))
	return c.do(ctx, request{method: http.MethodDelete, path: rest + "/rooms", query: q}, nil)
}

// insertRoom omits id and timestamps so the gateway generates them; the
// authoritative record comes back in the representation.
type insertRoom struct {
	Name          string   `json:"name"`
	Number        string   `json:"number"`
	PricePerNight int      `json:"price_per_night"`
	Beds          int      `json:"beds"`
	Description   string   `json:"description"`
	Amenities     []string `json:"amenities"`
	Photos        []string `json:"photos"`
}

func newInsertRoom(r domain.Room) insertRoom {
	return insertRoom{
		Name:          r.Name,
		Number:        r.Number,
		PricePerNight: r.PricePerNight,
		Beds:          r.Beds,
		Description:   r.Description,
		Amenities:     r.Amenities,
		Photos:        r.Photos,
	}
}

// ---- reviews ----

func (c *Client) ListReviews(ctx context.Context, roomID string) ([]domain.Review, error) {
	q := listQuery("created_at.desc")
	q.Set("room_id", eq(roomID))
	var out []domain.Review
	err := c.do(ctx, request{method: http.MethodGet, path: rest + "/reviews", query: q}, &out)
	return out, err
}

func (c *Client) InsertReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	type insertReview struct {
		RoomID  string `json:"room_id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Comment string `json:"comment"`
		Rating  int    `json:"rating"`
	}
	var out []domain.Review
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   rest + "/reviews",
		body: []insertReview{{
			RoomID: rv.RoomID, Name: rv.Name, Email: rv.Email,
			Comment: rv.Comment, Rating: rv.Rating,
		}},
		representation: true,
	}, &out)
	if err != nil {
		return domain.Review{}, err
	}
	if len(out) == 0 {
		return domain.Review{}, domain.ErrNotFound
	}
	return out[0], nil
}

func (c *Client) DeleteReview(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", eq(id))
	return c.do(ctx, request{method: http.MethodDelete, path: rest + "/reviews", query: q}, nil)
}

// ---- messages ----

func (c *Client) ListMessages(ctx context.Context) ([]domain.Message, error) {
	var out []domain.Message
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   rest + "/messages",
		query:  listQuery("created_at.desc"),
	}, &out)
	return out, err
}

func (c *Client) InsertMessage(ctx context.Context, m domain.Message) (domain.Message, error) {
	type insertMessage struct {
		Name    string         `json:"name"`
		Email   string         `json:"email"`
		Phone   string         `json:"phone,omitempty"`
		Body    string         `json:"message"`
		Replies []domain.Reply `json:"replies"`
	}
	replies := m.Replies
	if replies == nil {
		replies = []domain.Reply{}
	}
	var out []domain.Message
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   rest + "/messages",
		body: []insertMessage{{
			Name: m.Name, Email: m.Email, Phone: m.Phone,
			Body: m.Body, Replies: replies,
		}},
		representation: true,
	}, &out)
	if err != nil {
		return domain.Message{}, err
	}
	if len(out) == 0 {
		return domain.Message{}, domain.ErrNotFound
	}
	return out[0], nil
}

func (c *Client) SetReplies(ctx context.Context, id string, replies []domain.Reply) (domain.Message, error) {
	q := url.Values{}
	q.Set("id", eq(id))
	patch := struct {
		Replies []domain.Reply `json:"replies"`
	}{Replies: replies}
	var out []domain.Message
	err := c.do(ctx, request{
		method:         http.MethodPatch,
		path:           rest + "/messages",
		query:          q,
		body:           patch,
		representation: true,
	}, &out)
	if err != nil {
		return domain.Message{}, err
	}
	if len(out) == 0 {
		return domain.Message{}, domain.ErrNotFound
	}
	return out[0], nil
}

// ---- admin roles ----

func (c *Client) AdminRole(ctx context.Context, userID string) (string, error) {
	q := url.Values{}
	q.Set("select", "role")
	q.Set("user_id", eq(userID))
	var out []struct {
		Role string `json:"role"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: rest + "/admin_roles", query: q}, &out); err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", domain.ErrNotFound
	}
	return out[0].Role, nil
}
