// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CredentialsRequest: username, password (register and login)
  - UploadRequest: records, favs (opaque progress blobs)
  - PostCommentRequest: nickname, content
  - EditCommentRequest: comment_id, content
  - StatsRequest: questionId, type, value
  - FavRequest: questionId, action
  - BatchRequest: ids

# Response Types

Types for JSON responses:

  - SuccessResponse: success, msg
  - LoginResponse: success, token, username
  - UploadResponse: success, time
  - DownloadResponse: records, favs, updated_at
  - DownloadEmptyResponse: empty
  - FavResponse: count
  - QuestionInfo: rate, total, fav (batch-info values)
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - User: account row with salted password hash
  - Session: bearer token with expiry
  - Comment: question comment with optional owner
  - QuestionStats: per-question answer and favorite counters

# Constants

Stat event types:

	StatTypeAnswer = "answer"
	StatTypeFav    = "fav"

Favorite actions:

	FavActionAdd    = "add"
	FavActionRemove = "remove"
*/
package models
