// Package search indexes leads in Elasticsearch for free-text lookup.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/oksasatya/go-lead-crm/internal/domain/entity"
	"github.com/oksasatya/go-lead-crm/pkg/helpers"
)

// Mapping is the index definition used by EnsureIndex.
const Mapping = `{
  "mappings": {
    "properties": {
      "id":        {"type": "keyword"},
      "name":      {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "email":     {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "phone":     {"type": "keyword"},
      "company":   {"type": "text"},
      "message":   {"type": "text"},
      "source":    {"type": "keyword"},
      "createdAt": {"type": "date"}
    }
  }
}`

const defaultSize = 20

type LeadIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewLeadIndex(es *elasticsearch.Client, index string) *LeadIndex {
	return &LeadIndex{es: es, index: index}
}

func (x *LeadIndex) EnsureIndex(ctx context.Context) error {
	return helpers.EnsureIndex(ctx, x.es, x.index, Mapping)
}

// Index upserts the lead document under its id.
func (x *LeadIndex) Index(ctx context.Context, lead *entity.Lead) error {
	body, err := json.Marshal(lead)
	if err != nil {
		return err
	}
	res, err := x.es.Index(x.index, bytes.NewReader(body),
		x.es.Index.WithContext(ctx),
		x.es.Index.WithDocumentID(lead.ID),
	)
	if err != nil {
		return fmt.Errorf("es: index lead %s: %w", lead.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es: index lead %s: %s", lead.ID, res.Status())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source entity.Lead `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a prefix-aware match of text against name and email, best match first.
func (x *LeadIndex) Search(ctx context.Context, text string, size int) ([]*entity.Lead, error) {
	if size <= 0 {
		size = defaultSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  text,
				"type":   "bool_prefix",
				"fields": []string{"name", "email"},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := x.es.Search(
		x.es.Search.WithContext(ctx),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(&buf),
		x.es.Search.WithSize(size),
	)
	if err != nil {
		return nil, fmt.Errorf("es: search leads: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 1<<10))
		return nil, fmt.Errorf("es: search leads: %s: %s", res.Status(), b)
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("es: decode search response: %w", err)
	}
	out := make([]*entity.Lead, 0, len(sr.Hits.Hits))
	for i := range sr.Hits.Hits {
		l := sr.Hits.Hits[i].Source
		out = append(out, &l)
	}
	return out, nil
}
