package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Binarybee001/Shabana-Palace/internal/domain"
)

func jsonStr(v any) string {
	b, _ := json.Marshal(v)
	if len(b) == 0 || string(b) == "null" {
		return "[]"
	}
	return string(b)
}

// Gateway is the self-hosted backend: the same contract the hosted table
// service fulfils, served from a local MySQL. Inserts generate ids here and
// read the row back so callers get server timestamps either way.
type Gateway struct{ db *sql.DB }

func New(db *sql.DB) *Gateway { return &Gateway{db: db} }

// Migrate applies the embedded schema. Requires multiStatements=true in the
// DSN. Statements are idempotent, so re-running on boot is safe.
func (g *Gateway) Migrate(ctx context.Context) error {
	if _, err := g.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (g *Gateway) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := g.db.QueryContext(ctx, listRoomsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (g *Gateway) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	r, err := scanRoom(g.db.QueryRowContext(ctx, getRoomSQL, id))
	if err == sql.ErrNoRows {
		return domain.Room{}, domain.ErrNotFound
	}
	return r, err
}

func (g *Gateway) InsertRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	r.ID = uuid.NewString()
	_, err := g.db.ExecContext(ctx, insertRoomSQL,
		r.ID, r.Name, r.Number, r.PricePerNight, r.Beds, r.Description,
		jsonStr(r.Amenities), jsonStr(r.Photos),
	)
	if err != nil {
		return domain.Room{}, err
	}
	return g.GetRoom(ctx, r.ID)
}

func (g *Gateway) UpdateRoom(ctx context.Context, id string, p domain.RoomPatch) (domain.Room, error) {
	sets := make([]string, 0, 8)
	args := make([]any, 0, 9)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Number != nil {
		add("number", *p.Number)
	}
	if p.PricePerNight != nil {
		add("price_per_night", *p.PricePerNight)
	}
	if p.Beds != nil {
		add("beds", *p.Beds)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Amenities != nil {
		add("amenities", jsonStr(p.Amenities))
	}
	if p.Photos != nil {
		add("photos", jsonStr(p.Photos))
	}
	add("updated_at", p.UpdatedAt.UTC())

	_, err := g.db.ExecContext(ctx,
		"UPDATE rooms SET "+strings.Join(sets, ", ")+" WHERE id = ?",
		append(args, id)...,
	)
	if err != nil {
		return domain.Room{}, err
	}
	// read back: yields ErrNotFound for a missing id, fresh timestamps otherwise
	return g.GetRoom(ctx, id)
}

func (g *Gateway) DeleteRoom(ctx context.Context, id string) error {
	_, err := g.db.ExecContext(ctx, deleteRoomSQL, id)
	return err
}

func (g *Gateway) ListReviews(ctx context.Context, roomID string) ([]domain.Review, error) {
	rows, err := g.db.QueryContext(ctx, listReviewsSQL, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.RoomID, &rv.Name, &rv.Email, &rv.Comment, &rv.Rating, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (g *Gateway) InsertReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	rv.ID = uuid.NewString()
	_, err := g.db.ExecContext(ctx, insertReviewSQL,
		rv.ID, rv.RoomID, rv.Name, rv.Email, rv.Comment, rv.Rating,
	)
	if err != nil {
		return domain.Review{}, err
	}
	var got domain.Review
	err = g.db.QueryRowContext(ctx, getReviewSQL, rv.ID).
		Scan(&got.ID, &got.RoomID, &got.Name, &got.Email, &got.Comment, &got.Rating, &got.CreatedAt)
	return got, err
}

func (g *Gateway) DeleteReview(ctx context.Context, id string) error {
	_, err := g.db.ExecContext(ctx, deleteReviewSQL, id)
	return err
}

func (g *Gateway) ListMessages(ctx context.Context) ([]domain.Message, error) {
	rows, err := g.db.QueryContext(ctx, listMessagesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (g *Gateway) InsertMessage(ctx context.Context, m domain.Message) (domain.Message, error) {
	m.ID = uuid.NewString()
	_, err := g.db.ExecContext(ctx, insertMessageSQL,
		m.ID, m.Name, m.Email, m.Phone, m.Body, jsonStr(m.Replies),
	)
	if err != nil {
		return domain.Message{}, err
	}
	return g.getMessage(ctx, m.ID)
}

func (g *Gateway) SetReplies(ctx context.Context, id string, replies []domain.Reply) (domain.Message, error) {
	if _, err := g.db.ExecContext(ctx, setRepliesSQL, jsonStr(replies), id); err != nil {
		return domain.Message{}, err
	}
	return g.getMessage(ctx, id)
}

func (g *Gateway) AdminRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := g.db.QueryRowContext(ctx, adminRoleSQL, userID).Scan(&role)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	return role, err
}

func (g *Gateway) getMessage(ctx context.Context, id string) (domain.Message, error) {
	m, err := scanMessage(g.db.QueryRowContext(ctx, getMessageSQL, id))
	if err == sql.ErrNoRows {
		return domain.Message{}, domain.ErrNotFound
	}
	return m, err
}

type scanner interface{ Scan(dst ...any) error }

func scanRoom(s scanner) (domain.Room, error) {
	var r domain.Room
	var amenities, photos []byte
	err := s.Scan(&r.ID, &r.Name, &r.Number, &r.PricePerNight, &r.Beds,
		&r.Description, &amenities, &photos, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return domain.Room{}, err
	}
	_ = json.Unmarshal(amenities, &r.Amenities)
	_ = json.Unmarshal(photos, &r.Photos)
	return r, nil
}

func scanMessage(s scanner) (domain.Message, error) {
	var m domain.Message
	var replies []byte
	err := s.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Body, &replies, &m.CreatedAt)
	if err != nil {
		return domain.Message{}, err
	}
	_ = json.Unmarshal(replies, &m.Replies)
	return m, nil
}
