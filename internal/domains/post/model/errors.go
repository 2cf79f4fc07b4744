package model

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not the post owner")
)
