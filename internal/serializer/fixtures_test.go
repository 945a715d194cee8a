package serializer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/histcollect/histcollect/internal/domain"
)

type fakeEncoder struct{}

func (fakeEncoder) EncodeID(id int64) string { return fmt.Sprintf("enc%d", id) }

type fakeURLs struct{}

func (fakeURLs) URLFor(route string, params map[string]string) (string, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return route + "?" + strings.Join(parts, "&"), nil
}

var fixtureTime = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

func testContext() *Context {
	return &Context{User: &domain.User{ID: 1}, URLs: fakeURLs{}}
}

func newHDA(id int64, name string) *domain.HDA {
	return &domain.HDA{
		ID:         id,
		HistoryID:  7,
		HID:        int(id),
		Name:       name,
		Extension:  "fastqsanger",
		State:      domain.DatasetStateOK,
		Visible:    true,
		CreateTime: fixtureTime,
		UpdateTime: fixtureTime,
	}
}

// pairedCollection returns a paired collection of two datasets
func pairedCollection(id int64) *domain.DatasetCollection {
	dc := &domain.DatasetCollection{
		ID:             id,
		CollectionType: "paired",
		Populated:      true,
		PopulatedState: domain.PopulatedStateOK,
		CreateTime:     fixtureTime,
		UpdateTime:     fixtureTime,
	}
	dc.AddElement("forward", newHDA(100, "f.fq")).ID = 1000
	dc.AddElement("reverse", newHDA(101, "r.fq")).ID = 1001
	return dc
}

func newHDCA(dc *domain.DatasetCollection) *domain.HDCA {
	return &domain.HDCA{
		ID:           42,
		HistoryID:    7,
		HID:          3,
		Name:         "pairs",
		Visible:      true,
		CollectionID: dc.ID,
		CreateTime:   fixtureTime,
		UpdateTime:   fixtureTime,
		Collection:   dc,
	}
}
