package fakeqcamap

import (
	"strconv"

	"github.com/qcatools/qcamap.go/pkg/models"
)

func varInt(vars map[string]string, key string) int64 {
	n, _ := strconv.ParseInt(vars[key], 10, 64)
	return n
}

func indexOf(recs []models.Record, id int64) int {
	for i, r := range recs {
		if r.Int64(models.FieldID) == id {
			return i
		}
	}
	return -1
}

func cloneAll(recs []models.Record) []models.Record {
	out := make([]models.Record, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out
}
