// File path: internal/api/types.go
package api

import (
	"github.com/hadithlens/hadithlens/internal/commentary"
	"github.com/hadithlens/hadithlens/internal/data/orchestrator"
)

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Result string `json:"result"`
}

type commentaryRequest = commentary.Request

type commentaryResponse = commentary.Result

type narratorRequest struct {
	Name string `json:"name"`
}

type narratorResponse struct {
	Bio string `json:"bio"`
}

type collectionSummary struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Records   int    `json:"records"`
	Source    string `json:"source,omitempty"`
	LoadError string `json:"load_error,omitempty"`
}

type collectionsResponse struct {
	Collections []collectionSummary `json:"collections"`
	Records     int                 `json:"records"`
	Indexed     int                 `json:"indexed"`
	Ready       bool                `json:"ready"`
	Threshold   float64             `json:"threshold"`
}

type reloadResponse = orchestrator.Status
