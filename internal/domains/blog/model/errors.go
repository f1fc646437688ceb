package model

import "errors"

const ErrCodePostNotFound = "BLG001"

var ErrPostNotFound = errors.New("blog post not found")
