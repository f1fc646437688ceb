package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"My First Post!":              "my-first-post",
		"  Hello,   World  ":          "hello-world",
		"Tax & Accounting -- 2024":    "tax-accounting-2024",
		"Café Crème":                  "cafe-creme",
		"Nguyễn Nhật Ánh":             "nguyen-nhat-anh",
		"Đà Nẵng office":              "da-nang-office",
		"already-a-slug":              "already-a-slug",
		"snake_case_title":            "snake-case-title",
		"!!!":                         "",
		"Investment\tStrategy\nForum": "investment-strategy-forum",
	}
	for in, want := range cases {
		assert.Equal(t, want, GenerateSlug(in), "input %q", in)
	}
}
