package mysql

// Schema for the self-hosted backend. Replies live in a JSON column on the
// message row itself, mirroring the hosted service's embedded-array shape.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS rooms (
  id              CHAR(36)     NOT NULL PRIMARY KEY,
  name            VARCHAR(120) NOT NULL,
  number          VARCHAR(32)  NOT NULL,
  price_per_night INT          NOT NULL,
  beds            INT          NOT NULL,
  description     TEXT         NOT NULL,
  amenities       JSON         NOT NULL,
  photos          JSON         NOT NULL,
  created_at      TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at      TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS reviews (
  id         CHAR(36)     NOT NULL PRIMARY KEY,
  room_id    CHAR(36)     NOT NULL,
  name       VARCHAR(120) NOT NULL,
  email      VARCHAR(254) NOT NULL,
  comment    TEXT         NOT NULL,
  rating     INT          NOT NULL,
  created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
  KEY idx_reviews_room (room_id, created_at)
);

CREATE TABLE IF NOT EXISTS messages (
  id         CHAR(36)     NOT NULL PRIMARY KEY,
  name       VARCHAR(120) NOT NULL,
  email      VARCHAR(254) NOT NULL,
  phone      VARCHAR(40)  NOT NULL,
  message    TEXT         NOT NULL,
  replies    JSON         NOT NULL,
  created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS admin_roles (
  user_id CHAR(36)    NOT NULL PRIMARY KEY,
  role    VARCHAR(32) NOT NULL
);
`

const listRoomsSQL = `
SELECT id, name, number, price_per_night, beds, description, amenities, photos, created_at, updated_at
FROM rooms
ORDER BY created_at DESC, id DESC
`

const getRoomSQL = `
SELECT id, name, number, price_per_night, beds, description, amenities, photos, created_at, updated_at
FROM rooms
WHERE id = ?
`

const insertRoomSQL = `
INSERT INTO rooms (id, name, number, price_per_night, beds, description, amenities, photos)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

const deleteRoomSQL = `DELETE FROM rooms WHERE id = ?`

const listReviewsSQL = `
SELECT id, room_id, name, email, comment, rating, created_at
FROM reviews
WHERE room_id = ?
ORDER BY created_at DESC, id DESC
`

const insertReviewSQL = `
INSERT INTO reviews (id, room_id, name, email, comment, rating)
VALUES (?, ?, ?, ?, ?, ?)
`

const getReviewSQL = `
SELECT id, room_id, name, email, comment, rating, created_at
FROM reviews
WHERE id = ?
`

const deleteReviewSQL = `DELETE FROM reviews WHERE id = ?`

const listMessagesSQL = `
SELECT id, name, email, phone, message, replies, created_at
FROM messages
ORDER BY created_at DESC, id DESC
`

const getMessageSQL = `
SELECT id, name, email, phone, message, replies, created_at
FROM messages
WHERE id = ?
`

const insertMessageSQL = `
INSERT INTO messages (id, name, email, phone, message, replies)
VALUES (?, ?, ?, ?, ?, ?)
`

const setRepliesSQL = `UPDATE messages SET replies = ? WHERE id = ?`

const adminRoleSQL = `SELECT role FROM admin_roles WHERE user_id = ?`
