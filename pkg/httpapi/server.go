package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"dispenser/pkg/cash"
	"dispenser/pkg/catalog"
	"dispenser/pkg/vending"
)

// Server wires HTTP endpoints to the channel-serialized vending machine.
type Server struct {
	machine *vending.Machine
	logger  *zap.Logger
}

// New builds the server; a nil logger is replaced with a no-op one so tests stay quiet.
func New(machine *vending.Machine, logger *zap.Logger) (*Server, error) {
	if machine == nil {
		return nil, errors.New("a vending machine is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{machine: machine, logger: logger}, nil
}

// Handler exposes the operator and customer JSON endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/items", s.itemsEndpoint())
	mux.Handle("/api/items/price", s.priceEndpoint())
	mux.Handle("/api/restock", s.restockEndpoint())
	mux.Handle("/api/purchase", s.purchaseEndpoint())
	mux.Handle("/api/change", s.changeEndpoint())
	mux.Handle("/api/cash", s.cashEndpoint())
	mux.Handle("/api/sales", s.salesEndpoint())
	return mux
}

// itemsEndpoint handles both catalog listing and item creation in one place.
func (s *Server) itemsEndpoint() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.listItems(w, r)
		case http.MethodPost:
			s.addItem(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

// priceEndpoint changes the unit price for an item by name.
func (s *Server) priceEndpoint() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload pricePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			s.logger.Warn("price update failed: unable to decode payload", zap.Error(err))
			s.respondError(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if err := payload.Validate(); err != nil {
			s.logger.Warn("price update rejected", zap.Error(err))
			s.respondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := s.machine.SetPrice(ctx, payload.Name, payload.Price); err != nil {
			s.logger.Warn("price update failed", zap.String("item", payload.Name), zap.Error(err))
			s.respondError(w, err.Error(), statusFor(err))
			return
		}
		s.logger.Info("price updated", zap.String("item", payload.Name), zap.Int("price", payload.Price))
		w.WriteHeader(http.StatusNoContent)
	})
}

// restockEndpoint supports both the per-item form and the bulk-distribution form.
func (s *Server) restockEndpoint() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload restockPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			s.logger.Warn("restock failed: unable to decode payload", zap.Error(err))
			s.respondError(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if payload.Quantity < 0 {
			s.logger.Warn("restock rejected: negative quantity", zap.Int("quantity", payload.Quantity))
			s.respondError(w, "quantity must not be negative", http.StatusBadRequest)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if strings.TrimSpace(payload.Name) == "" {
			placed, err := s.machine.RestockAll(ctx, payload.Quantity)
			if err != nil {
				s.logger.Warn("bulk restock failed", zap.Error(err))
				s.respondError(w, err.Error(), statusFor(err))
				return
			}
			s.logger.Info("bulk restock placed units", zap.Int("placed", placed), zap.Int("budget", payload.Quantity))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]int{"placed": placed})
			return
		}

		if err := s.machine.RestockItem(ctx, payload.Name, payload.Quantity); err != nil {
			s.logger.Warn("restock failed", zap.String("item", payload.Name), zap.Error(err))
			s.respondError(w, err.Error(), statusFor(err))
			return
		}
		s.logger.Info("item restocked", zap.String("item", payload.Name), zap.Int("quantity", payload.Quantity))
		w.WriteHeader(http.StatusNoContent)
	})
}

// purchaseEndpoint runs one transaction and returns the receipt on success.
func (s *Server) purchaseEndpoint() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload purchasePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			s.logger.Warn("purchase failed: unable to decode payload", zap.Error(err))
			s.respondError(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		receipt, err := s.machine.Purchase(ctx, payload.Slot, payload.Payment)
		if err != nil {
			s.logger.Warn("purchase rejected",
				zap.Int("slot", payload.Slot),
				zap.Int("payment", payload.Payment),
				zap.String("status", vending.StatusOf(err).String()),
				zap.Error(err))
			s.respondError(w, err.Error(), statusFor(err))
			return
		}
		s.logger.Info("purchase committed",
			zap.String("receipt", receipt.ID),
			zap.String("item", receipt.ItemName),
			zap.Int("change_due", receipt.ChangeDue))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(receipt)
	})
}

// changeEndpoint serves standalone change requests without a purchase.
func (s *Server) changeEndpoint() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload changePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			s.logger.Warn("change request failed: unable to decode payload", zap.Error(err))
			s.respondError(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if payload.Amount < 0 {
			s.logger.Warn("change request rejected: negative amount", zap.Int("amount", payload.Amount))
			s.respondError(w, "amount must not be negative", http.StatusBadRequest)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		breakdown, err := s.machine.DispenseChange(ctx, payload.Amount)
		if err != nil {
			s.logger.Warn("change request failed", zap.Int("amount", payload.Amount), zap.Error(err))
			s.respondError(w, err.Error(), statusFor(err))
			return
		}
		s.logger.Info("change dispensed", zap.Int("amount", payload.Amount))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(breakdown)
	})
}

// cashEndpoint reports the note inventory for operator displays.
func (s *Server) cashEndpoint() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		counts, err := s.machine.CashCounts(ctx)
		if err != nil {
			s.logger.Error("cash listing failed", zap.Error(err))
			s.respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(counts)
	})
}

// salesEndpoint returns total revenue and per-item units sold.
func (s *Server) salesEndpoint() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		summary, err := s.machine.SalesSummary(ctx)
		if err != nil {
			s.logger.Error("sales summary failed", zap.Error(err))
			s.respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		s.logger.Info("sales summary served", zap.Int("total_revenue", summary.TotalRevenue))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	})
}

// listItems sends the catalog projection used by customer displays.
func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	listings, err := s.machine.ListItems(ctx)
	if err != nil {
		s.logger.Error("item listing failed", zap.Error(err))
		s.respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.logger.Info("item listing served", zap.Int("count", len(listings)))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listings)
}

// addItem registers a new product definition in the lowest free slot.
func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.logger.Warn("item creation failed: unable to decode payload", zap.Error(err))
		s.respondError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := payload.Validate(); err != nil {
		s.logger.Warn("item creation rejected", zap.Error(err))
		s.respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	slot, err := s.machine.AddItem(ctx, payload.Name, payload.Price, payload.Calories, payload.Quantity)
	if err != nil {
		s.logger.Warn("item creation failed", zap.String("item", payload.Name), zap.Error(err))
		s.respondError(w, err.Error(), statusFor(err))
		return
	}
	s.logger.Info("item added", zap.String("item", payload.Name), zap.Int("slot", slot))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"slot": slot})
}

// respondError keeps JSON formatting consistent across endpoints.
func (s *Server) respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case catalog.IsInvalidArgument(err):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, catalog.ErrSlotEmpty),
		errors.Is(err, vending.ErrInvalidSlot):
		return http.StatusNotFound
	case errors.Is(err, vending.ErrInsufficientPayment):
		return http.StatusPaymentRequired
	case errors.Is(err, catalog.ErrFull),
		errors.Is(err, catalog.ErrOutOfStock),
		errors.Is(err, cash.ErrChangeInfeasible):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// itemPayload keeps transport level parsing separate from core types.
type itemPayload struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Calories int    `json:"calories"`
	Quantity int    `json:"quantity"`
}

// Validate applies the same input rules the store enforces so errors surface early.
func (p *itemPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if p.Price <= 0 {
		return errors.New("price must be positive")
	}
	if p.Calories < 0 {
		return errors.New("calories must not be negative")
	}
	if p.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	return nil
}

// pricePayload carries a price change request.
type pricePayload struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Validate rejects requests the machine would refuse anyway.
func (p *pricePayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if p.Price <= 0 {
		return errors.New("price must be positive")
	}
	return nil
}

// restockPayload serves both restock forms; an empty name selects bulk distribution.
type restockPayload struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// purchasePayload carries a single transaction request.
type purchasePayload struct {
	Slot    int `json:"slot"`
	Payment int `json:"payment"`
}

// changePayload carries a standalone change request.
type changePayload struct {
	Amount int `json:"amount"`
}
