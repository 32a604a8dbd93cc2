package models

import "encoding/json"

// Stats event type constants
const (
	StatTypeAnswer = "answer"
	StatTypeFav    = "fav"
)

// Favorite action constants
const (
	FavActionAdd    = "add"
	FavActionRemove = "remove"
)

// Request types

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// records/favs are opaque client blobs, stored and returned verbatim
type UploadRequest struct {
	Records json.RawMessage `json:"records"`
	Favs    json.RawMessage `json:"favs"`
}

type PostCommentRequest struct {
	Content  string `json:"content"`
	Nickname string `json:"nickname"`
}

type EditCommentRequest struct {
	CommentID int64  `json:"commentId"`
	Content   string `json:"content"`
}

type StatsRequest struct {
	QuestionID string `json:"questionId"`
	Type       string `json:"type"`
	Value      int    `json:"value"`
}

type FavRequest struct {
	QuestionID string `json:"questionId"`
	Action     string `json:"action"`
}

type BatchRequest struct {
	IDs []string `json:"ids"`
}

// Response types

type SuccessResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

type UploadResponse struct {
	Success bool  `json:"success"`
	Time    int64 `json:"time"`
}

type DownloadResponse struct {
	Success   bool            `json:"success"`
	Records   json.RawMessage `json:"records"`
	Favs      json.RawMessage `json:"favs"`
	UpdatedAt int64           `json:"updated_at"`
}

type DownloadEmptyResponse struct {
	Empty bool `json:"empty"`
}

type FavResponse struct {
	Count int64 `json:"count"`
}

// Per-question aggregate returned by the batch-info endpoint.
// Rate is a rounded integer percentage of correct answers.
type QuestionInfo struct {
	Rate  int   `json:"rate"`
	Total int64 `json:"total"`
	Fav   int64 `json:"fav"`
}

// Domain types

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never expose in JSON
	Salt         string `json:"-"` // Never expose in JSON
	CreatedAt    int64  `json:"created_at"`
}

type Session struct {
	Token     string `json:"-"` // Never expose in JSON
	UserID    int64  `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
}

type Comment struct {
	ID        int64  `json:"id"`
	Nickname  string `json:"nickname"`
	Content   string `json:"content"`
	UserID    *int64 `json:"user_id"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt *int64 `json:"updated_at"`
}

type QuestionStats struct {
	QuestionID   string `json:"question_id"`
	CorrectCount int64  `json:"correct_count"`
	TotalCount   int64  `json:"total_count"`
	FavCount     int64  `json:"fav_count"`
	LastUpdated  *int64 `json:"last_updated,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
