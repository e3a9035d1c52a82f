/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package rest

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/rulego/strokeorder/api/types"
	"github.com/rulego/strokeorder/api/types/metrics"
	"github.com/rulego/strokeorder/utils/json"
)

// StrokeOrderRequest is the body of POST /api/v1/strokeorder.
type StrokeOrderRequest struct {
	Decompositions []string `json:"decompositions"`
}

// StrokeOrderErrorRequest is the body of POST /api/v1/strokeorder/error.
type StrokeOrderErrorRequest struct {
	Decomposition string `json:"decomposition"`
}

// StrokeOrderResponse describes a derived stroke order. An empty StrokeOrder means not deducible.
type StrokeOrderResponse struct {
	Character   string `json:"character,omitempty"`
	StrokeOrder string `json:"strokeOrder"`
	StrokeCount int    `json:"strokeCount"`
	Glyphs      string `json:"glyphs"`
	Deducible   bool   `json:"deducible"`
}

// StrokeOrderErrorResponse carries the diagnostic of one decomposition, empty when it evaluates.
type StrokeOrderErrorResponse struct {
	Decomposition string `json:"decomposition"`
	Error         string `json:"error"`
}

// ErrorResponse is written for every failed request.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Kind   string   `json:"kind,omitempty"`
	Orders []string `json:"orders,omitempty"`
}

// EngineInfo describes one engine of the pool.
type EngineInfo struct {
	Id       string                `json:"id"`
	Rules    int                   `json:"rules"`
	LoadedAt string                `json:"loadedAt"`
	Metrics  metrics.EngineMetrics `json:"metrics"`
}

func (r *Rest) listEngines(exchange *Exchange) {
	infos := []EngineInfo{}
	for _, id := range r.Engines.Ids() {
		if e, ok := r.Engines.Get(id); ok {
			infos = append(infos, EngineInfo{
				Id:       id,
				Rules:    e.Rules().Len(),
				LoadedAt: e.LoadedAt().Format(time.RFC3339),
				Metrics:  e.Metrics(),
			})
		}
	}
	r.writeJson(exchange, http.StatusOK, infos)
}

func (r *Rest) characterStrokeOrder(exchange *Exchange) {
	e, ok := r.engine(exchange)
	if !ok {
		return
	}
	char := exchange.In.GetParam("char")
	order, err := e.GetCharacterStrokeOrder(exchange.Context(), char)
	if err != nil {
		r.writeError(exchange, statusOf(err), err)
		return
	}
	r.writeJson(exchange, http.StatusOK, StrokeOrderResponse{
		Character:   char,
		StrokeOrder: string(order),
		StrokeCount: order.Count(),
		Glyphs:      e.GetUnicodeFormsForStrokeNames(order),
		Deducible:   !order.IsEmpty(),
	})
}

func (r *Rest) strokeOrder(exchange *Exchange) {
	e, ok := r.engine(exchange)
	if !ok {
		return
	}
	var req StrokeOrderRequest
	if err := json.Decode(bytes.NewReader(exchange.In.Body()), &req); err != nil {
		r.writeError(exchange, http.StatusBadRequest, err)
		return
	}
	order, err := e.GetStrokeOrder(exchange.Context(), req.Decompositions)
	if err != nil {
		r.writeError(exchange, statusOf(err), err)
		return
	}
	r.writeJson(exchange, http.StatusOK, StrokeOrderResponse{
		StrokeOrder: string(order),
		StrokeCount: order.Count(),
		Glyphs:      e.GetUnicodeFormsForStrokeNames(order),
		Deducible:   !order.IsEmpty(),
	})
}

func (r *Rest) strokeOrderError(exchange *Exchange) {
	e, ok := r.engine(exchange)
	if !ok {
		return
	}
	var req StrokeOrderErrorRequest
	if err := json.Decode(bytes.NewReader(exchange.In.Body()), &req); err != nil {
		r.writeError(exchange, http.StatusBadRequest, err)
		return
	}
	r.writeJson(exchange, http.StatusOK, StrokeOrderErrorResponse{
		Decomposition: req.Decomposition,
		Error:         e.GetStrokeOrderError(exchange.Context(), req.Decomposition),
	})
}

func (r *Rest) strokeGlyphs(exchange *Exchange) {
	e, ok := r.engine(exchange)
	if !ok {
		return
	}
	order := types.StrokeOrder(exchange.In.GetParam("order"))
	r.writeJson(exchange, http.StatusOK, StrokeOrderResponse{
		StrokeOrder: string(order),
		StrokeCount: order.Count(),
		Glyphs:      e.GetUnicodeFormsForStrokeNames(order),
		Deducible:   !order.IsEmpty(),
	})
}

// reload reloads the engine named by the request, or every engine when none is named.
func (r *Rest) reload(exchange *Exchange) {
	if !r.Config.AllowReload {
		r.writeError(exchange, http.StatusForbidden, errors.New("reload is disabled"))
		return
	}
	var err error
	if exchange.In.GetParam("engine") == "" {
		err = r.Engines.Reload()
	} else if e, ok := r.engine(exchange); ok {
		err = e.Reload()
	} else {
		return
	}
	if err != nil {
		r.Logger.Printf("reload failed, request %s: %v", exchange.RequestId, err)
		r.writeError(exchange, http.StatusUnprocessableEntity, err)
		return
	}
	r.listEngines(exchange)
}
