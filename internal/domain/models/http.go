package models

// StocksRequest is the query for a pipeline run over the API.
type StocksRequest struct {
	Max int `query:"max" default:"50" validate:"gte=1,lte=500"`
}
