package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/domain"
	"storefront/internal/dto"
	"storefront/internal/store"
)

type catalogHandler struct {
	items  ItemStore
	stores StoreStore
}

// ---- items ----

func (h *catalogHandler) getItem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	item, err := h.items.GetByName(r.Context(), name)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "item_not_found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *catalogHandler) createItem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, err := h.items.GetByName(r.Context(), name); err == nil {
		writeMessage(w, http.StatusBadRequest, "item_name_exists", name)
		return
	}

	req, ok := decodeItemRequest(w, r, true)
	if !ok {
		return
	}

	item := &domain.Item{Name: name, Price: *req.Price, StoreID: *req.StoreID}
	if err := h.items.Create(r.Context(), item); err != nil {
		writeInternal(w, "item_error_inserting", err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// upsertItem updates the price of an existing item or creates it outright.
func (h *catalogHandler) upsertItem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	item, err := h.items.GetByName(r.Context(), name)
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		writeInternal(w, "internal_server_error", err)
		return
	}

	if item != nil {
		req, ok := decodeItemRequest(w, r, false)
		if !ok {
			return
		}
		item.Price = *req.Price
		if err := h.items.Save(r.Context(), item); err != nil {
			writeInternal(w, "item_error_inserting", err)
			return
		}
		writeJSON(w, http.StatusOK, item)
		return
	}

	req, ok := decodeItemRequest(w, r, true)
	if !ok {
		return
	}
	item = &domain.Item{Name: name, Price: *req.Price, StoreID: *req.StoreID}
	if err := h.items.Create(r.Context(), item); err != nil {
		writeInternal(w, "item_error_inserting", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *catalogHandler) deleteItem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	err := h.items.Delete(r.Context(), name)
	switch {
	case err == nil:
		writeMessage(w, http.StatusOK, "item_deleted")
	case errors.Is(err, store.ErrRecordNotFound):
		writeMessage(w, http.StatusNotFound, "item_not_found")
	default:
		writeInternal(w, "internal_server_error", err)
	}
}

func (h *catalogHandler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.All(r.Context())
	if err != nil {
		writeInternal(w, "internal_server_error", err)
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	writeJSON(w, http.StatusOK, dto.ItemListResponse{Items: items})
}

// decodeItemRequest enforces the required fields: price always, store_id only
// when the item is being created.
func decodeItemRequest(w http.ResponseWriter, r *http.Request, needStoreID bool) (dto.ItemRequest, bool) {
	var req dto.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "field_blank", "body")
		return req, false
	}
	if req.Price == nil {
		writeMessage(w, http.StatusBadRequest, "field_blank", "price")
		return req, false
	}
	if needStoreID && req.StoreID == nil {
		writeMessage(w, http.StatusBadRequest, "field_blank", "store_id")
		return req, false
	}
	return req, true
}

// ---- stores ----

func (h *catalogHandler) getStore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	st, err := h.stores.GetByName(r.Context(), name)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "store_not_found")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *catalogHandler) createStore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, err := h.stores.GetByName(r.Context(), name); err == nil {
		writeMessage(w, http.StatusBadRequest, "store_name_exists", name)
		return
	}

	st := &domain.Store{Name: name}
	if err := h.stores.Create(r.Context(), st); err != nil {
		writeInternal(w, "store_error_inserting", err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (h *catalogHandler) deleteStore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	err := h.stores.Delete(r.Context(), name)
	switch {
	case err == nil:
		writeMessage(w, http.StatusOK, "store_deleted")
	case errors.Is(err, store.ErrRecordNotFound):
		writeMessage(w, http.StatusNotFound, "store_not_found")
	default:
		writeInternal(w, "internal_server_error", err)
	}
}

func (h *catalogHandler) listStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.stores.All(r.Context())
	if err != nil {
		writeInternal(w, "internal_server_error", err)
		return
	}
	if stores == nil {
		stores = []domain.Store{}
	}
	writeJSON(w, http.StatusOK, dto.StoreListResponse{Stores: stores})
}
