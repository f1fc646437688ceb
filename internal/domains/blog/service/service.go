package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"consulting-backend/internal/domains/blog/model"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/shared/utils"
)

type Records = record.Service[model.Post, *model.Post]

type Service struct {
	records *Records
}

func NewService(repo record.Repository[model.Post]) *Service {
	return &Service{records: record.NewService[model.Post, *model.Post]("blog", repo)}
}

func (s *Service) Records() *Records { return s.records }

// GetBySlug finds a post by slug. Drafts are only visible when
// includeDrafts is set.
func (s *Service) GetBySlug(ctx context.Context, slug string, includeDrafts bool) (*model.Post, error) {
	filters := []record.Filter{record.Eq("slug", utils.GenerateSlug(slug))}
	if !includeDrafts {
		filters = append(filters, model.PublicFilter)
	}

	post, err := s.records.FindOne(ctx, filters...)
	if errors.Is(err, record.ErrNotFound) {
		return nil, model.ErrPostNotFound
	}
	return post, err
}

// SetPublished publishes or unpublishes a post.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) (*model.Post, error) {
	post, err := s.records.Update(ctx, id, func(p *model.Post) error {
		p.Published = published
		return nil
	})
	if errors.Is(err, record.ErrNotFound) {
		return nil, model.ErrPostNotFound
	}
	return post, err
}

// ListByTag returns published posts carrying tag (case-insensitive).
func (s *Service) ListByTag(ctx context.Context, tag string) ([]*model.Post, error) {
	posts, err := s.records.List(ctx, record.ListOptions{Filters: []record.Filter{model.PublicFilter}})
	if err != nil {
		return nil, err
	}

	out := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		for _, t := range p.TagList() {
			if strings.EqualFold(t, tag) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

// TagCount is one entry of the public tag cloud.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Tags counts tags over published posts, most used first.
func (s *Service) Tags(ctx context.Context) ([]TagCount, error) {
	posts, err := s.records.List(ctx, record.ListOptions{Filters: []record.Filter{model.PublicFilter}})
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var counts []TagCount
	for _, p := range posts {
		for _, t := range p.TagList() {
			key := strings.ToLower(t)
			if i, ok := index[key]; ok {
				counts[i].Count++
				continue
			}
			index[key] = len(counts)
			counts = append(counts, TagCount{Tag: t, Count: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return strings.ToLower(counts[i].Tag) < strings.ToLower(counts[j].Tag)
	})
	return counts, nil
}
