package dto

import "storefront/internal/domain"

// ItemRequest is the body of item create/update calls; the name comes from the
// URL, never from the body.
type ItemRequest struct {
	Price   *float64 `json:"price"`
	StoreID *uint    `json:"store_id"`
}

type ItemListResponse struct {
	Items []domain.Item `json:"items"`
}

type StoreListResponse struct {
	Stores []domain.Store `json:"stores"`
}
